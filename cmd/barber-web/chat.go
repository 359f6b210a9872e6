package main

import (
	"encoding/json"
	"net/http"

	"github.com/gburgcut/barber-ai/internal/catalog"
	"github.com/gburgcut/barber-ai/internal/gateway"
)

func sessionJSON(s *gateway.ChatSession) map[string]interface{} {
	return map[string]interface{}{
		"id":       s.ID,
		"language": s.Language,
		"turns":    s.Turns(),
	}
}

// POST /api/chat/session
func (s *server) handleChatSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session := s.sessions.Create(catalog.ParseLanguage(req.Language))
	respondJSON(w, http.StatusCreated, sessionJSON(session))
}

// POST /api/chat/send
func (s *server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, ok := s.sessions.Get(req.SessionID)
	if !ok {
		httpError(w, http.StatusNotFound, "session not found")
		return
	}

	reply, err := session.Send(r.Context(), req.Message)
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// POST /api/chat/language
func (s *server) handleChatLanguage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		SessionID string `json:"sessionId"`
		Language  string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.sessions.SetLanguage(req.SessionID, catalog.ParseLanguage(req.Language))
	if err != nil {
		writeGatewayError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionJSON(session))
}
