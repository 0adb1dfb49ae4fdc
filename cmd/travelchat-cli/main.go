// README: Terminal chat; same turn pipeline as the web server, locations printed with coordinates.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"travelchat/internal/ai"
	"travelchat/internal/config"
	"travelchat/internal/locale"
	"travelchat/internal/logging"
	"travelchat/internal/maps"
	"travelchat/internal/modules/chat"
	"travelchat/internal/modules/mapview"
)

var langFlag string

var rootCmd = &cobra.Command{
	Use:           "travelchat-cli",
	Short:         "Travel chatbot in the terminal",
	Long:          `Ask travel questions; recommended destinations are geocoded and listed after each answer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, ok := locale.Parse(langFlag)
		if !ok {
			return fmt.Errorf("unknown language %q", langFlag)
		}

		cfg, err := config.Load()
		if errors.Is(err, config.ErrMissingAPIKey) {
			return fmt.Errorf(locale.Lookup(lang).APIError, cfg.LLM.KeyEnv)
		}
		if err != nil {
			return err
		}
		// The terminal is the chat surface; logs only go to a file when configured.
		if cfg.Log.File == "" {
			cfg.Log.Level = "error"
		}
		if _, err := logging.Init(cfg.Log); err != nil {
			return err
		}

		ctx := cmd.Context()
		completer, closeCompleter, err := ai.NewCompleter(ctx, cfg.LLM)
		if err != nil {
			return err
		}
		defer closeCompleter()

		geocoder, err := maps.NewGeocoder(cfg.Geocoder)
		if err != nil {
			return err
		}

		r := &repl{
			chat: chat.NewService(chat.NewMemoryStore(0), completer, cfg.LLM),
			maps: mapview.NewService(geocoder, cfg.Geocoder.Parallel),
			lang: lang,
			in:   cmd.InOrStdin(),
			out:  cmd.OutOrStdout(),
		}
		return r.run(ctx)
	},
}

func init() {
	rootCmd.Flags().StringVar(&langFlag, "lang", string(locale.Default), "Language (ko, en)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
