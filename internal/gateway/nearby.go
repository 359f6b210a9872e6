package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gburgcut/barber-ai/internal/catalog"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Coordinates is an optional lat/lng bias for the grounded lookup.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Reference is one citation attached to a grounded answer.
type Reference struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri"`
}

// GroundedAnswer is prose plus the citations backing it.
type GroundedAnswer struct {
	Text       string      `json:"text"`
	References []Reference `json:"references"`
}

// FindNearby asks the provider for highly-rated spots around the shop,
// grounded via the Google Maps tool. Coordinates, when available, bias the
// grounding; without them the textual locality in the query carries it.
// References without a usable link are dropped. No retry.
func (g *Gateway) FindNearby(ctx context.Context, coords *Coordinates, lang catalog.Language) (*GroundedAnswer, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
	}
	if coords != nil {
		cfg.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{Latitude: genai.Ptr(coords.Lat), Longitude: genai.Ptr(coords.Lng)},
			},
		}
	}

	log.Debug().
		Bool("has_coords", coords != nil).
		Str("language", string(lang)).
		Msg("Requesting grounded nearby lookup")

	start := time.Now()
	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: nearbyQuery(lang)}},
	}}
	resp, err := g.provider.GenerateContent(ctx, g.models.Nearby, contents, cfg)
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("Nearby lookup failed")
		return nil, fmt.Errorf("%w: %s", ErrLookupFailed, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: empty provider response", ErrLookupFailed)
	}

	answer := &GroundedAnswer{
		Text:       strings.TrimSpace(resp.Text()),
		References: extractReferences(resp),
	}

	log.Info().
		Int("references", len(answer.References)).
		Dur("duration", time.Since(start)).
		Msg("Nearby lookup complete")

	return answer, nil
}

// extractReferences collects grounding citations, keeping only entries with
// a link.
func extractReferences(resp *genai.GenerateContentResponse) []Reference {
	refs := []Reference{}
	for _, cand := range resp.Candidates {
		if cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			switch {
			case chunk.Maps != nil && chunk.Maps.URI != "":
				refs = append(refs, Reference{Title: chunk.Maps.Title, URI: chunk.Maps.URI})
			case chunk.Web != nil && chunk.Web.URI != "":
				refs = append(refs, Reference{Title: chunk.Web.Title, URI: chunk.Web.URI})
			}
		}
	}
	return refs
}
