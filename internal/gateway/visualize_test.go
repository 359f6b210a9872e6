package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func imageResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: genai.RoleModel, Parts: parts},
		}},
	}
}

func TestVisualizeReturnsFirstInlineImage(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return imageResponse(
				&genai.Part{Text: "Here is the edit."},
				&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("first")}},
				&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("second")}},
			), nil
		},
	}
	g := newTestGateway(stub, Options{})

	result, err := g.Visualize(context.Background(), ImageInput{Data: []byte{1}, MIMEType: "image/jpeg"}, "fade")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), result.Data)
	assert.Equal(t, "image/png", result.MIMEType)

	assert.Equal(t, "gemini-2.5-flash-image", stub.lastModel)
	require.NotNil(t, stub.lastConfig)
	assert.Equal(t, []string{"TEXT", "IMAGE"}, stub.lastConfig.ResponseModalities)
	require.Len(t, stub.lastContents, 1)
	require.Len(t, stub.lastContents[0].Parts, 2)
	assert.NotNil(t, stub.lastContents[0].Parts[0].InlineData)
	assert.Contains(t, stub.lastContents[0].Parts[1].Text, "Fade")
}

func TestVisualizeUnknownStyleFailsBeforeProviderCall(t *testing.T) {
	stub := &stubProvider{}
	g := newTestGateway(stub, Options{})

	_, err := g.Visualize(context.Background(), ImageInput{Data: []byte{1}, MIMEType: "image/jpeg"}, "mullet")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, stub.generateCalls)
}

func TestVisualizeRequiresImage(t *testing.T) {
	stub := &stubProvider{}
	g := newTestGateway(stub, Options{})

	_, err := g.Visualize(context.Background(), ImageInput{}, "fade")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, stub.generateCalls)
}

func TestVisualizeNoImageReturned(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return imageResponse(&genai.Part{Text: "Sorry, I can only describe the cut."}), nil
		},
	}
	g := newTestGateway(stub, Options{})

	_, err := g.Visualize(context.Background(), ImageInput{Data: []byte{1}, MIMEType: "image/jpeg"}, "buzz")
	require.ErrorIs(t, err, ErrNoImageReturned)
}

func TestVisualizeTransportError(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, assert.AnError
		},
	}
	g := newTestGateway(stub, Options{})

	_, err := g.Visualize(context.Background(), ImageInput{Data: []byte{1}, MIMEType: "image/jpeg"}, "crew")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "visualize", te.Op)
}
