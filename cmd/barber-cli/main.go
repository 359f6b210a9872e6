package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gburgcut/barber-ai/internal/auth"
	"github.com/gburgcut/barber-ai/internal/config"
	"github.com/gburgcut/barber-ai/internal/gateway"
	"github.com/gburgcut/barber-ai/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// CLI flags shared across subcommands
var (
	languageFlag string
	imageFlag    string
	styleFlag    string
	outFlag      string
)

var rootCmd = &cobra.Command{
	Use:   "barber-cli",
	Short: "Command-line access to the barbershop AI features",
	Long: `Barber CLI talks to the same Gemini-backed features the site exposes:
style advice, haircut visualization, cinematic video previews, the concierge
chat, and the maps-grounded neighborhood lookup.

Examples:
  barber-cli advice "I want a low-maintenance professional cut"
  barber-cli advice --image selfie.jpg --language es "something sharp"
  barber-cli visualize --image selfie.jpg --style fade --out preview.png
  barber-cli video --image selfie.jpg --style pompadour --out preview.mp4
  barber-cli nearby --language ru
  barber-cli chat`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&languageFlag, "language", "l", "en", "Response language (en, es, ru)")

	adviceCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Photo to include in the consultation")
	rootCmd.AddCommand(adviceCmd)

	visualizeCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Photo to restyle (required)")
	visualizeCmd.Flags().StringVarP(&styleFlag, "style", "s", "", "Catalog style id (required)")
	visualizeCmd.Flags().StringVarP(&outFlag, "out", "o", "preview.png", "Output file")
	visualizeCmd.MarkFlagRequired("image")
	visualizeCmd.MarkFlagRequired("style")
	rootCmd.AddCommand(visualizeCmd)

	videoCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Photo to animate (required)")
	videoCmd.Flags().StringVarP(&styleFlag, "style", "s", "", "Catalog style id (required)")
	videoCmd.Flags().StringVarP(&outFlag, "out", "o", "preview.mp4", "Output file")
	videoCmd.MarkFlagRequired("image")
	videoCmd.MarkFlagRequired("style")
	rootCmd.AddCommand(videoCmd)

	rootCmd.AddCommand(nearbyCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(stylesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, validates the key, and builds the gateway all
// subcommands share.
func setup(ctx context.Context) *gateway.Gateway {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logging.Init(cfg.LogLevel)

	if cfg.GeminiAPIKey == "" {
		log.Fatal().Msg("GEMINI_API_KEY is not set")
	}

	client, err := gateway.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}
	if err := auth.ValidateKey(ctx, client, cfg.AdviceModel); err != nil {
		handleValidationError(err)
	}

	return gateway.New(client, gateway.OptionsFromConfig(cfg))
}

// loadImage reads a photo from disk into gateway input.
func loadImage(path string) (gateway.ImageInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gateway.ImageInput{}, err
	}
	return gateway.ImageInput{Data: data, MIMEType: mimeForPath(path)}, nil
}

// handleValidationError exits with an actionable message per failure type.
func handleValidationError(err error) {
	var validationErr *auth.ValidationError
	if errors.As(err, &validationErr) {
		switch validationErr.Type {
		case auth.ErrTypeInvalidKey:
			log.Fatal().Err(err).Msg("Invalid API key. Please check your API key and try again")
		case auth.ErrTypeNetworkError:
			log.Fatal().Err(err).Msg("Network error. Please check your internet connection")
		case auth.ErrTypeQuotaExceeded:
			log.Fatal().Err(err).Msg("API quota exceeded. Please try again later")
		default:
			log.Fatal().Err(err).Msg("API key validation failed")
		}
	}
	log.Fatal().Err(err).Msg("Unexpected error during API key validation")
}
