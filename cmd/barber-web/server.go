package main

import (
	"net/http"

	"github.com/gburgcut/barber-ai/internal/gateway"
)

// server wires the gateway and the live chat sessions behind the API mux.
type server struct {
	gw       *gateway.Gateway
	sessions *gateway.SessionManager
	jobs     *videoJobs
	mux      *http.ServeMux
}

func newServer(gw *gateway.Gateway) *server {
	s := &server{
		gw:       gw,
		sessions: gateway.NewSessionManager(gw),
		jobs:     newVideoJobs(),
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/catalog", s.handleCatalog)
	s.mux.HandleFunc("/api/advice", s.handleAdvice)
	s.mux.HandleFunc("/api/visualize", s.handleVisualize)
	s.mux.HandleFunc("/api/video/start", s.handleVideoStart)
	s.mux.HandleFunc("/api/video/", s.handleVideoRoutes)
	s.mux.HandleFunc("/api/chat/session", s.handleChatSession)
	s.mux.HandleFunc("/api/chat/send", s.handleChatSend)
	s.mux.HandleFunc("/api/chat/language", s.handleChatLanguage)
	s.mux.HandleFunc("/api/nearby", s.handleNearby)

	return s
}

// imagePayload is a client upload: base64 bytes plus media type.
type imagePayload struct {
	Data     string `json:"data"`
	MIMEType string `json:"mimeType"`
}
