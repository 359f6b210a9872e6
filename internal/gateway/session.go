package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gburgcut/barber-ai/internal/catalog"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Role labels one side of a concierge conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of a session's visible transcript.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`

	// synthesized turns (the welcome message, failure fallbacks) are shown
	// to the user but never replayed to the provider.
	synthesized bool
}

// ChatSession is one concierge conversation bound to a language fixed at
// creation. The session owns its transcript: turns are append-only and the
// whole session is replaced, never mutated, on a language change.
type ChatSession struct {
	ID       string
	Language catalog.Language

	gw *Gateway

	mu    sync.Mutex
	busy  bool
	turns []Turn
}

// NewChatSession creates a session whose transcript starts with the
// localized welcome turn.
func (g *Gateway) NewChatSession(lang catalog.Language) *ChatSession {
	return &ChatSession{
		ID:       uuid.NewString(),
		Language: lang,
		gw:       g,
		turns: []Turn{{
			Role:        RoleAssistant,
			Text:        catalog.ChatWelcome(lang),
			synthesized: true,
		}},
	}
}

// Turns returns a copy of the visible transcript.
func (s *ChatSession) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Send appends the user turn, asks the provider with the full history, and
// appends the reply. Failures never escape as errors: a transport failure or
// empty reply becomes a localized fallback turn, keeping the conversation
// alive. Only input validation and re-entrancy are reported to the caller.
func (s *ChatSession) Send(ctx context.Context, userText string) (string, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return "", fmt.Errorf("chat: empty message: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", fmt.Errorf("chat session %s: %w", s.ID, ErrBusy)
	}
	s.busy = true
	history := s.providerHistory()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	contents := append(history, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: userText}},
	})
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: conciergeSystemInstruction(s.Language)}},
		},
	}

	reply := ""
	synthesized := false
	resp, err := s.gw.provider.GenerateContent(ctx, s.gw.models.Advice, contents, cfg)
	if err != nil {
		log.Warn().Err(err).Str("session", s.ID).Msg("Chat turn failed, using fallback reply")
	} else if resp != nil {
		reply = strings.TrimSpace(resp.Text())
	}
	if reply == "" {
		reply = catalog.ChatFallback(s.Language)
		synthesized = true
	}

	s.mu.Lock()
	s.turns = append(s.turns,
		Turn{Role: RoleUser, Text: userText},
		Turn{Role: RoleAssistant, Text: reply, synthesized: synthesized},
	)
	s.mu.Unlock()

	return reply, nil
}

// providerHistory converts the transcript into provider contents, skipping
// synthesized turns. Caller must hold s.mu.
func (s *ChatSession) providerHistory() []*genai.Content {
	history := make([]*genai.Content, 0, len(s.turns))
	for _, t := range s.turns {
		if t.synthesized {
			continue
		}
		role := genai.RoleUser
		if t.Role == RoleAssistant {
			role = genai.RoleModel
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Text}},
		})
	}
	return history
}

// SessionManager owns the live sessions, keyed by id. Each session has a
// single owner surface; the manager only creates, looks up, and replaces.
type SessionManager struct {
	gw       *Gateway
	mu       sync.Mutex
	sessions map[string]*ChatSession
}

// NewSessionManager creates an empty manager over the gateway.
func NewSessionManager(gw *Gateway) *SessionManager {
	return &SessionManager{
		gw:       gw,
		sessions: make(map[string]*ChatSession),
	}
}

// Create starts a session in the given language.
func (m *SessionManager) Create(lang catalog.Language) *ChatSession {
	s := m.gw.NewChatSession(lang)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	log.Debug().Str("session", s.ID).Str("language", string(lang)).Msg("Chat session created")
	return s
}

// Get returns a live session by id.
func (m *SessionManager) Get(id string) (*ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// SetLanguage replaces the session with a fresh one in the new language.
// The old session is discarded wholesale: new id, transcript reset to a
// single welcome turn. A same-language call returns the session unchanged.
func (m *SessionManager) SetLanguage(id string, lang catalog.Language) (*ChatSession, error) {
	m.mu.Lock()
	old, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return nil, fmt.Errorf("chat: unknown session %q: %w", id, ErrInvalidInput)
	}
	if old.Language == lang {
		m.mu.Unlock()
		return old, nil
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	replacement := m.Create(lang)
	log.Debug().
		Str("old_session", id).
		Str("new_session", replacement.ID).
		Str("language", string(lang)).
		Msg("Chat session replaced on language change")
	return replacement, nil
}

// Remove drops a session. In-flight sends on the removed session finish
// against the abandoned object and are discarded with it.
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
