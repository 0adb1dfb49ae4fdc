// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"travelchat/internal/ai"
	"travelchat/internal/config"
	httptransport "travelchat/internal/http"
	"travelchat/internal/infra"
	"travelchat/internal/logging"
	"travelchat/internal/maps"
	"travelchat/internal/modules/chat"
	"travelchat/internal/modules/mapview"
)

const redisPingTimeout = 5 * time.Second

func main() {
	cfg, cfgErr := config.Load()
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrMissingAPIKey) {
		log.Fatal(cfgErr)
	}

	if _, err := logging.Init(cfg.Log); err != nil {
		log.Fatalf("logging init: %v", err)
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := httptransport.RouterDeps{
		ConfigErr:    cfgErr,
		KeyEnv:       cfg.LLM.KeyEnv,
		SecureCookie: cfg.HTTP.SecureCookie,
	}

	if cfgErr != nil {
		slog.Warn("completion_unconfigured", "error", cfgErr)
	} else {
		store, closeStore := newStore(ctx, cfg)
		defer closeStore()

		completer, closeCompleter, err := ai.NewCompleter(ctx, cfg.LLM)
		if err != nil {
			log.Fatalf("completion provider: %v", err)
		}
		defer closeCompleter()

		geocoder, err := maps.NewGeocoder(cfg.Geocoder)
		if err != nil {
			log.Fatalf("geocoder: %v", err)
		}

		deps.Chat = chat.NewService(store, completer, cfg.LLM)
		deps.Map = mapview.NewService(geocoder, cfg.Geocoder.Parallel)
		slog.Info("travelchat_ready",
			"provider", cfg.LLM.Provider,
			"model", cfg.LLM.Model,
			"geocoder", cfg.Geocoder.Backend,
		)
	}

	server := httptransport.NewServer(cfg.HTTP.Addr, httptransport.NewRouter(deps))
	if err := httptransport.Run(ctx, server); err != nil {
		log.Fatal(err)
	}
}

func newStore(ctx context.Context, cfg config.Config) (chat.Store, func()) {
	if cfg.Redis.Addr == "" {
		return chat.NewMemoryStore(cfg.Session.TTL), func() {}
	}
	client, err := infra.NewRedis(ctx, cfg.Redis.Addr, redisPingTimeout)
	if err != nil {
		log.Fatalf("redis init: %v", err)
	}
	slog.Info("session_store", "backend", "redis", "addr", cfg.Redis.Addr)
	return chat.NewRedisStore(client, cfg.Session.TTL), func() { _ = client.Close() }
}
