package gateway

import (
	"context"
	"testing"

	"github.com/gburgcut/barber-ai/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewChatSessionStartsWithWelcome(t *testing.T) {
	g := newTestGateway(&stubProvider{}, Options{})
	s := g.NewChatSession(catalog.LangEnglish)

	turns := s.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, RoleAssistant, turns[0].Role)
	assert.Equal(t, catalog.ChatWelcome(catalog.LangEnglish), turns[0].Text)
}

func TestSendAppendsBothTurns(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("We open at 9am, Tuesday through Saturday."), nil
		},
	}
	g := newTestGateway(stub, Options{})
	s := g.NewChatSession(catalog.LangEnglish)

	reply, err := s.Send(context.Background(), "What are your hours?")
	require.NoError(t, err)
	assert.Equal(t, "We open at 9am, Tuesday through Saturday.", reply)

	turns := s.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, RoleUser, turns[1].Role)
	assert.Equal(t, "What are your hours?", turns[1].Text)
	assert.Equal(t, RoleAssistant, turns[2].Role)

	require.NotNil(t, stub.lastConfig)
	assert.Contains(t, stub.lastConfig.SystemInstruction.Parts[0].Text, catalog.ShopName)
}

func TestSendExcludesWelcomeFromProviderHistory(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("Of course."), nil
		},
	}
	g := newTestGateway(stub, Options{})
	s := g.NewChatSession(catalog.LangEnglish)

	_, err := s.Send(context.Background(), "Do you do beard trims?")
	require.NoError(t, err)
	require.Len(t, stub.lastContents, 1, "welcome turn must not be replayed")

	_, err = s.Send(context.Background(), "And how much?")
	require.NoError(t, err)
	require.Len(t, stub.lastContents, 3)
	assert.Equal(t, genai.RoleUser, stub.lastContents[0].Role)
	assert.Equal(t, genai.RoleModel, stub.lastContents[1].Role)
	assert.Equal(t, "And how much?", stub.lastContents[2].Parts[0].Text)
}

func TestSendEmptyMessage(t *testing.T) {
	stub := &stubProvider{}
	g := newTestGateway(stub, Options{})
	s := g.NewChatSession(catalog.LangEnglish)

	_, err := s.Send(context.Background(), "  \n ")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, stub.generateCalls)
}

func TestSendFallbackOnProviderFailure(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, assert.AnError
		},
	}
	g := newTestGateway(stub, Options{})
	s := g.NewChatSession(catalog.LangRussian)

	reply, err := s.Send(context.Background(), "Привет")
	require.NoError(t, err, "transport failure stays inside the session")
	assert.Equal(t, catalog.ChatFallback(catalog.LangRussian), reply)

	// The fallback turn is visible but synthesized: a later send must not
	// replay it to the provider.
	stub.generateFn = func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse("ok"), nil
	}
	_, err = s.Send(context.Background(), "Вы открыты?")
	require.NoError(t, err)
	require.Len(t, stub.lastContents, 2)
	assert.Equal(t, "Привет", stub.lastContents[0].Parts[0].Text)
	assert.Equal(t, "Вы открыты?", stub.lastContents[1].Parts[0].Text)
}

func TestSendFallbackOnEmptyReply(t *testing.T) {
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("   "), nil
		},
	}
	g := newTestGateway(stub, Options{})
	s := g.NewChatSession(catalog.LangSpanish)

	reply, err := s.Send(context.Background(), "Hola")
	require.NoError(t, err)
	assert.Equal(t, catalog.ChatFallback(catalog.LangSpanish), reply)
}

func TestSessionManagerLanguageChangeReplacesSession(t *testing.T) {
	g := newTestGateway(&stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("Sure thing."), nil
		},
	}, Options{})
	m := NewSessionManager(g)

	s := m.Create(catalog.LangEnglish)
	_, err := s.Send(context.Background(), "hi")
	require.NoError(t, err)

	replacement, err := m.SetLanguage(s.ID, catalog.LangSpanish)
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, replacement.ID)
	assert.Equal(t, catalog.LangSpanish, replacement.Language)

	turns := replacement.Turns()
	require.Len(t, turns, 1, "replacement transcript is exactly one welcome turn")
	assert.Equal(t, catalog.ChatWelcome(catalog.LangSpanish), turns[0].Text)

	_, ok := m.Get(s.ID)
	assert.False(t, ok, "old session is gone")
	_, ok = m.Get(replacement.ID)
	assert.True(t, ok)
}

func TestSessionManagerSameLanguageNoop(t *testing.T) {
	g := newTestGateway(&stubProvider{}, Options{})
	m := NewSessionManager(g)

	s := m.Create(catalog.LangEnglish)
	same, err := m.SetLanguage(s.ID, catalog.LangEnglish)
	require.NoError(t, err)
	assert.Equal(t, s.ID, same.ID)
}

func TestSessionManagerUnknownSession(t *testing.T) {
	g := newTestGateway(&stubProvider{}, Options{})
	m := NewSessionManager(g)

	_, err := m.SetLanguage("nope", catalog.LangSpanish)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendRejectsConcurrentTurn(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	stub := &stubProvider{
		generateFn: func(_ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			close(started)
			<-release
			return textResponse("done"), nil
		},
	}
	g := newTestGateway(stub, Options{})
	s := g.NewChatSession(catalog.LangEnglish)

	errc := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "first")
		errc <- err
	}()
	<-started

	_, err := s.Send(context.Background(), "second")
	require.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-errc)
}
