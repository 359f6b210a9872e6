package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gburgcut/barber-ai/internal/gateway"
	"github.com/rs/zerolog/log"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func httpError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// writeGatewayError maps the gateway's failure taxonomy onto HTTP statuses.
// Credential failures carry a machine-readable code so the frontend can open
// the key-selection flow and retry.
func writeGatewayError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gateway.ErrInvalidInput):
		httpError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, gateway.ErrBusy):
		httpError(w, http.StatusConflict, err.Error())
	case errors.Is(err, gateway.ErrCredentialRequired):
		respondJSON(w, http.StatusPaymentRequired, map[string]string{
			"error": err.Error(),
			"code":  "credential_required",
		})
	case errors.Is(err, gateway.ErrCredentialExpired):
		respondJSON(w, http.StatusPaymentRequired, map[string]string{
			"error": err.Error(),
			"code":  "credential_expired",
		})
	default:
		httpError(w, http.StatusBadGateway, err.Error())
	}
}

// --- Middleware ---

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if strings.HasPrefix(r.URL.Path, "/api/") {
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("API request")
		}
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only allow localhost origins; the frontend is served off the same
		// host in production.
		origin := r.Header.Get("Origin")
		if origin != "" && (strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
