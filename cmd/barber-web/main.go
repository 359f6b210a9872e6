package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gburgcut/barber-ai/internal/auth"
	"github.com/gburgcut/barber-ai/internal/config"
	"github.com/gburgcut/barber-ai/internal/gateway"
	"github.com/gburgcut/barber-ai/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// CLI flags
var (
	portFlag     int
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "barber-web",
	Short: "API server for the barbershop AI features",
	Long: `Barber Web serves the AI endpoints behind the shop's site: style
advice, haircut visualization, cinematic video previews, the concierge chat,
and the maps-grounded neighborhood lookup.

Examples:
  barber-web
  barber-web --port 9090
  barber-web --log-level debug`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "Log level (overrides LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if portFlag != 0 {
		cfg.Port = portFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	logging.Init(cfg.LogLevel)

	if cfg.GeminiAPIKey == "" {
		log.Fatal().Msg("GEMINI_API_KEY is not set")
	}

	ctx := context.Background()
	client, err := gateway.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}
	if err := auth.ValidateKey(ctx, client, cfg.AdviceModel); err != nil {
		log.Fatal().Err(err).Msg("Invalid API key")
	}

	gw := gateway.New(client, gateway.OptionsFromConfig(cfg))
	srv := newServer(gw)

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      withLogging(withCORS(srv.mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpSrv.Shutdown(ctx)
	}()

	log.Info().Int("port", cfg.Port).Msg("Starting web server")

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
