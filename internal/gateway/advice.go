package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gburgcut/barber-ai/internal/catalog"
	"github.com/gburgcut/barber-ai/internal/jsonutil"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// StyleAdvice is the structured advisor output. All three fields are
// required and tips carries at least one entry; anything less is a
// malformed response.
type StyleAdvice struct {
	Recommendation string   `json:"recommendation"`
	Tips           []string `json:"tips"`
	Maintenance    string   `json:"maintenance"`
}

// AdviceRequest is one advisor consultation. Prompt or Image must be
// present; both absent is a caller error.
type AdviceRequest struct {
	Prompt   string
	Language catalog.Language
	Image    *ImageInput
}

// adviceSchema is the output contract demanded from the provider.
var adviceSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recommendation": {Type: genai.TypeString, Description: "A detailed style recommendation"},
		"tips": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Pro tips for achieving this look",
		},
		"maintenance": {Type: genai.TypeString, Description: "How to maintain this style"},
	},
	Required: []string{"recommendation", "tips", "maintenance"},
}

// GetAdvice sends one consultation to the provider and returns the parsed
// result. No retry; transport and schema failures surface to the caller.
func (g *Gateway) GetAdvice(ctx context.Context, req AdviceRequest) (*StyleAdvice, error) {
	if err := g.guard.acquire("advice"); err != nil {
		return nil, err
	}
	defer g.guard.release("advice")

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" && req.Image == nil {
		return nil, fmt.Errorf("advice: prompt and image both absent: %w", ErrInvalidInput)
	}

	var parts []*genai.Part
	if prompt != "" {
		parts = append(parts, &genai.Part{Text: prompt})
	}
	if req.Image != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: req.Image.MIMEType,
				Data:     req.Image.Data,
			},
		})
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: adviceSystemInstruction(req.Language)}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   adviceSchema,
	}

	log.Debug().
		Str("language", string(req.Language)).
		Int("prompt_length", len(prompt)).
		Bool("has_image", req.Image != nil).
		Msg("Requesting style advice")

	start := time.Now()
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	resp, err := g.provider.GenerateContent(ctx, g.models.Advice, contents, cfg)
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("Advice request failed")
		return nil, &TransportError{Op: "advice", Err: err}
	}
	if resp == nil {
		return nil, fmt.Errorf("advice: empty provider response: %w", ErrMalformedResponse)
	}

	advice, err := jsonutil.Decode[StyleAdvice](resp.Text())
	if err != nil {
		log.Warn().Err(err).Msg("Advice response failed to parse")
		return nil, fmt.Errorf("advice: %s: %w", err, ErrMalformedResponse)
	}
	if advice.Recommendation == "" || advice.Maintenance == "" || len(advice.Tips) == 0 {
		return nil, fmt.Errorf("advice: required field missing: %w", ErrMalformedResponse)
	}

	log.Info().
		Int("tips", len(advice.Tips)).
		Dur("duration", time.Since(start)).
		Msg("Style advice complete")

	return &advice, nil
}
