package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gburgcut/barber-ai/internal/catalog"
	"github.com/gburgcut/barber-ai/internal/gateway"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

var adviceCmd = &cobra.Command{
	Use:   "advice [prompt]",
	Short: "Get a personalized style consultation",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		gw := setup(ctx)

		req := gateway.AdviceRequest{
			Language: catalog.ParseLanguage(languageFlag),
		}
		if len(args) > 0 {
			req.Prompt = args[0]
		}
		if imageFlag != "" {
			img, err := loadImage(imageFlag)
			if err != nil {
				log.Fatal().Err(err).Str("path", imageFlag).Msg("Failed to read image")
			}
			req.Image = &img
		}

		advice, err := gw.GetAdvice(ctx, req)
		if err != nil {
			log.Fatal().Err(err).Msg("Consultation failed")
		}

		fmt.Println()
		fmt.Println("💈 Recommendation")
		fmt.Println("  " + advice.Recommendation)
		fmt.Println()
		fmt.Println("✂️  Pro Tips")
		for _, tip := range advice.Tips {
			fmt.Println("  - " + tip)
		}
		fmt.Println()
		fmt.Println("🧴 Maintenance")
		fmt.Println("  " + advice.Maintenance)
	},
}

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Preview a catalog haircut on your own photo",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		gw := setup(ctx)

		img, err := loadImage(imageFlag)
		if err != nil {
			log.Fatal().Err(err).Str("path", imageFlag).Msg("Failed to read image")
		}

		fmt.Println("⏳ Generating preview...")
		result, err := gw.Visualize(ctx, img, styleFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Visualization failed")
		}

		if err := os.WriteFile(outFlag, result.Data, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", outFlag).Msg("Failed to write output")
		}
		fmt.Printf("✅ Preview written to %s (%s, %d bytes)\n", outFlag, result.MIMEType, len(result.Data))
	},
}

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Generate a cinematic video preview of a haircut",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		gw := setup(ctx)

		img, err := loadImage(imageFlag)
		if err != nil {
			log.Fatal().Err(err).Str("path", imageFlag).Msg("Failed to read image")
		}

		fmt.Println("⏳ Submitting video job. This takes a few minutes...")
		asset, err := gw.GenerateVideo(ctx, img, styleFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Video synthesis failed")
		}

		if err := os.WriteFile(outFlag, asset.Data, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", outFlag).Msg("Failed to write output")
		}
		fmt.Printf("✅ Video written to %s (%s, %d bytes)\n", outFlag, asset.MIMEType, len(asset.Data))
	},
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Find highly-rated spots around the shop",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		gw := setup(ctx)

		answer, err := gw.FindNearby(ctx, nil, catalog.ParseLanguage(languageFlag))
		if err != nil {
			log.Fatal().Err(err).Msg("Nearby lookup failed")
		}

		fmt.Println()
		fmt.Println(answer.Text)
		if len(answer.References) > 0 {
			fmt.Println()
			fmt.Println("Sources:")
			for _, ref := range answer.References {
				title := ref.Title
				if title == "" {
					title = ref.URI
				}
				fmt.Printf("  - %s (%s)\n", title, ref.URI)
			}
		}
	},
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the haircut styles available to visualize",
	Run: func(cmd *cobra.Command, args []string) {
		lang := catalog.ParseLanguage(languageFlag)
		for _, style := range catalog.Styles(lang) {
			fmt.Printf("  %-10s %s\n", style.ID, style.Label)
		}
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the shop's concierge",
	Long: `Chat starts an interactive concierge session. Type a message and press
enter; type "exit" to quit or "/lang es" to switch language (which starts a
fresh conversation).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		gw := setup(ctx)
		manager := gateway.NewSessionManager(gw)

		session := manager.Create(catalog.ParseLanguage(languageFlag))
		printTurns(session.Turns())

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("you> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				return
			}
			line = strings.TrimSpace(line)

			switch {
			case line == "":
				continue
			case line == "exit" || line == "quit":
				return
			case strings.HasPrefix(line, "/lang "):
				lang := catalog.ParseLanguage(strings.TrimSpace(strings.TrimPrefix(line, "/lang ")))
				session, err = manager.SetLanguage(session.ID, lang)
				if err != nil {
					log.Error().Err(err).Msg("Language switch failed")
					continue
				}
				printTurns(session.Turns())
				continue
			}

			reply, err := session.Send(ctx, line)
			if err != nil {
				log.Error().Err(err).Msg("Message failed")
				continue
			}
			fmt.Println("shop> " + reply)
		}
	},
}

func printTurns(turns []gateway.Turn) {
	for _, t := range turns {
		prefix := "you>  "
		if t.Role == gateway.RoleAssistant {
			prefix = "shop> "
		}
		fmt.Println(prefix + t.Text)
	}
}
