package gateway

import (
	"context"
	"testing"

	"github.com/gburgcut/barber-ai/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func groundedResponse(text string, chunks []*genai.GroundingChunk) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: text}},
			},
			GroundingMetadata: &genai.GroundingMetadata{GroundingChunks: chunks},
		}},
	}
}

func TestFindNearbyFiltersLinklessReferences(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return groundedResponse("Two solid picks near the shop.", []*genai.GroundingChunk{
				{Maps: &genai.GroundingChunkMaps{Title: "Quincy's Cafe", URI: "https://maps.example/quincys"}},
				{Maps: &genai.GroundingChunkMaps{Title: "No Link Diner", URI: ""}},
				{Web: &genai.GroundingChunkWeb{Title: "Main St Eats", URI: "https://example.com/eats"}},
			}), nil
		},
	}
	g := newTestGateway(stub, Options{})

	answer, err := g.FindNearby(context.Background(), nil, catalog.LangEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Two solid picks near the shop.", answer.Text)
	require.Len(t, answer.References, 2)
	assert.Equal(t, "Quincy's Cafe", answer.References[0].Title)
	assert.Equal(t, "Main St Eats", answer.References[1].Title)
}

func TestFindNearbyUsesMapsToolAndCoordinateBias(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return groundedResponse("Plenty nearby.", nil), nil
		},
	}
	g := newTestGateway(stub, Options{})

	_, err := g.FindNearby(context.Background(), &Coordinates{Lat: 39.1434, Lng: -77.2014}, catalog.LangSpanish)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", stub.lastModel)
	require.NotNil(t, stub.lastConfig)
	require.Len(t, stub.lastConfig.Tools, 1)
	assert.NotNil(t, stub.lastConfig.Tools[0].GoogleMaps)
	require.NotNil(t, stub.lastConfig.ToolConfig)
	require.NotNil(t, stub.lastConfig.ToolConfig.RetrievalConfig.LatLng)
	require.NotNil(t, stub.lastConfig.ToolConfig.RetrievalConfig.LatLng.Latitude)
	assert.InDelta(t, 39.1434, *stub.lastConfig.ToolConfig.RetrievalConfig.LatLng.Latitude, 1e-9)

	require.Len(t, stub.lastContents, 1)
	assert.Contains(t, stub.lastContents[0].Parts[0].Text, catalog.ShopLocality)
	assert.Contains(t, stub.lastContents[0].Parts[0].Text, "Spanish")
}

func TestFindNearbyWithoutCoordinatesOmitsBias(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return groundedResponse("Nothing fancy, but the coffee is good.", nil), nil
		},
	}
	g := newTestGateway(stub, Options{})

	answer, err := g.FindNearby(context.Background(), nil, catalog.LangEnglish)
	require.NoError(t, err)
	assert.Nil(t, stub.lastConfig.ToolConfig)
	assert.Empty(t, answer.References)
}

func TestFindNearbyLookupFailure(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, assert.AnError
		},
	}
	g := newTestGateway(stub, Options{})

	_, err := g.FindNearby(context.Background(), nil, catalog.LangEnglish)
	require.ErrorIs(t, err, ErrLookupFailed)
}

func TestFindNearbyDeterministicForSameQuery(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return groundedResponse("Same answer every time.", []*genai.GroundingChunk{
				{Maps: &genai.GroundingChunkMaps{Title: "The Corner Roastery", URI: "https://maps.example/roastery"}},
			}), nil
		},
	}
	g := newTestGateway(stub, Options{})

	first, err := g.FindNearby(context.Background(), nil, catalog.LangEnglish)
	require.NoError(t, err)
	second, err := g.FindNearby(context.Background(), nil, catalog.LangEnglish)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
