package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/gburgcut/barber-ai/internal/catalog"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// ImageResult is an edited photo returned by the visualizer.
type ImageResult struct {
	Data     []byte
	MIMEType string
}

// Visualize edits the uploaded photo so only the hairstyle changes, matching
// the catalog style. The first inline image part of the response wins;
// additional parts are ignored. No retry.
func (g *Gateway) Visualize(ctx context.Context, image ImageInput, styleID string) (*ImageResult, error) {
	if err := g.guard.acquire("visualize"); err != nil {
		return nil, err
	}
	defer g.guard.release("visualize")

	if len(image.Data) == 0 {
		return nil, fmt.Errorf("visualize: base image required: %w", ErrInvalidInput)
	}
	label, ok := catalog.EnglishStyleLabel(styleID)
	if !ok {
		return nil, fmt.Errorf("visualize: unknown style %q: %w", styleID, ErrInvalidInput)
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: image.MIMEType, Data: image.Data}},
			{Text: visualizeInstruction(label)},
		},
	}}
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	log.Info().
		Str("style", styleID).
		Int("image_bytes", len(image.Data)).
		Str("image_mime", image.MIMEType).
		Msg("Requesting haircut visualization")

	start := time.Now()
	resp, err := g.provider.GenerateContent(ctx, g.models.Image, contents, cfg)
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("Visualization request failed")
		return nil, &TransportError{Op: "visualize", Err: err}
	}
	if resp == nil {
		return nil, fmt.Errorf("visualize: empty provider response: %w", ErrNoImageReturned)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				log.Info().
					Int("output_bytes", len(part.InlineData.Data)).
					Str("output_mime", part.InlineData.MIMEType).
					Dur("duration", time.Since(start)).
					Msg("Visualization complete")
				return &ImageResult{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	return nil, fmt.Errorf("visualize: %w", ErrNoImageReturned)
}
