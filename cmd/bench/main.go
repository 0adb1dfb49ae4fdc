// README: Smoke and load runner against a live travelchat server; prints one line per case.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type Config struct {
	BaseURL     string
	RedisAddr   string
	Live        bool
	Strict      bool
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
}

var cfg Config

var rootCmd = &cobra.Command{
	Use:           "bench",
	Short:         "Smoke and load checks for a running travelchat server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
		defer cancel()

		results := NewRunner(cfg).RunAll(ctx)
		s := summarize(results)
		fmt.Println("\n== Summary ==")
		fmt.Printf("PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", s.pass, s.fail, s.pending, s.skipped)

		if s.fail > 0 || (cfg.Strict && s.pending > 0) {
			return fmt.Errorf("%d failed, %d pending", s.fail, s.pending)
		}
		return nil
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cfg.BaseURL, "base-url", envOrDefault("TRAVELCHAT_BENCH_BASE_URL", "http://localhost:8080"), "server base URL")
	f.StringVar(&cfg.RedisAddr, "redis", os.Getenv("TRAVELCHAT_REDIS_ADDR"), "Redis address (empty skips the Redis check)")
	f.BoolVar(&cfg.Live, "live", false, "run cases that call the completion provider")
	f.BoolVar(&cfg.Strict, "strict", false, "fail on pending cases")
	f.DurationVar(&cfg.Timeout, "timeout", 2*time.Minute, "total timeout")
	f.IntVar(&cfg.Concurrency, "concurrency", 20, "workers for load and overlap cases")
	f.DurationVar(&cfg.Duration, "duration", 10*time.Second, "duration of each load case")
}

type summary struct {
	pass, fail, pending, skipped int
}

func summarize(results []Result) summary {
	var s summary
	for _, r := range results {
		switch r.Status {
		case statusPass:
			s.pass++
		case statusFail:
			s.fail++
		case statusPending:
			s.pending++
		case statusSkip:
			s.skipped++
		}
	}
	return s
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
