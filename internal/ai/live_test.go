package ai

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"travelchat/internal/config"
)

// Hits the configured provider; run with TRAVELCHAT_LIVE_TESTS=1 and a real key.
func TestLiveCompletion(t *testing.T) {
	if os.Getenv("TRAVELCHAT_LIVE_TESTS") != "1" {
		t.Skip("set TRAVELCHAT_LIVE_TESTS=1 to call the real completion API")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Skipf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	completer, closeFn, err := NewCompleter(ctx, cfg.LLM)
	if err != nil {
		t.Fatalf("NewCompleter: %v", err)
	}
	defer closeFn()

	reply, err := completer.Complete(ctx, cfg.LLM.Model, []Message{
		{Role: RoleSystem, Content: "Recommend destinations using the format LOCATION: [City, Country]."},
		{Role: RoleUser, Content: "Recommend one city in Japan."},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	t.Logf("reply: %s", reply)
	if !strings.Contains(strings.ToUpper(reply), "LOCATION:") {
		t.Errorf("reply has no LOCATION marker: %q", reply)
	}
}
