package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gburgcut/barber-ai/internal/gateway"
	"github.com/rs/zerolog/log"
)

// --- Video Job Management ---
//
// Video synthesis takes minutes, far past any sane request timeout, so the
// endpoint is asynchronous: start returns a job id, the frontend polls status
// and fetches the asset once complete.

type videoJob struct {
	mu     sync.Mutex
	id     string
	status string // "processing", "complete", "error"
	asset  *gateway.VideoAsset
	err    error
}

type videoJobs struct {
	mu   sync.Mutex
	jobs map[string]*videoJob
}

func newVideoJobs() *videoJobs {
	return &videoJobs{jobs: make(map[string]*videoJob)}
}

// newJobID generates a cryptographically random job id to prevent
// sequential enumeration.
func newJobID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate random job ID")
	}
	return "video-" + hex.EncodeToString(b)
}

func (v *videoJobs) create() *videoJob {
	v.mu.Lock()
	defer v.mu.Unlock()
	j := &videoJob{id: newJobID(), status: "processing"}
	v.jobs[j.id] = j
	return j
}

func (v *videoJobs) get(id string) *videoJob {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.jobs[id]
}

// --- Video HTTP Handlers ---

// POST /api/video/start
func (s *server) handleVideoStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Image   imagePayload `json:"image"`
		StyleID string       `json:"styleId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	img, err := decodeImage(&req.Image)
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid image encoding")
		return
	}

	job := s.jobs.create()
	go s.runVideoJob(job, img, req.StyleID)

	respondJSON(w, http.StatusAccepted, map[string]string{"id": job.id})
}

// runVideoJob drives one synthesis cycle in the background. The request
// context is gone by the time this runs, so the job gets its own deadline
// sized to the poll budget.
func (s *server) runVideoJob(job *videoJob, img gateway.ImageInput, styleID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	asset, err := s.gw.GenerateVideo(ctx, img, styleID)

	job.mu.Lock()
	defer job.mu.Unlock()
	if err != nil {
		log.Error().Err(err).Str("job", job.id).Msg("Video job failed")
		job.status = "error"
		job.err = err
		return
	}
	job.status = "complete"
	job.asset = asset
	log.Info().Str("job", job.id).Int("bytes", len(asset.Data)).Msg("Video job complete")
}

// Routes under /api/video/{id}/...
func (s *server) handleVideoRoutes(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/video/"), "/")
	if len(parts) < 2 {
		httpError(w, http.StatusNotFound, "not found")
		return
	}
	jobID, action := parts[0], parts[1]

	job := s.jobs.get(jobID)
	if job == nil {
		httpError(w, http.StatusNotFound, "job not found")
		return
	}

	switch action {
	case "status":
		s.handleVideoStatus(w, r, job)
	case "result":
		s.handleVideoResult(w, r, job)
	default:
		httpError(w, http.StatusNotFound, "not found")
	}
}

// GET /api/video/{id}/status
func (s *server) handleVideoStatus(w http.ResponseWriter, r *http.Request, job *videoJob) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	job.mu.Lock()
	defer job.mu.Unlock()

	resp := map[string]interface{}{
		"id":     job.id,
		"status": job.status,
	}
	if job.err != nil {
		resp["error"] = job.err.Error()
		switch {
		case errors.Is(job.err, gateway.ErrCredentialRequired):
			resp["code"] = "credential_required"
		case errors.Is(job.err, gateway.ErrCredentialExpired):
			resp["code"] = "credential_expired"
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// GET /api/video/{id}/result
func (s *server) handleVideoResult(w http.ResponseWriter, r *http.Request, job *videoJob) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	job.mu.Lock()
	defer job.mu.Unlock()

	switch job.status {
	case "complete":
		respondJSON(w, http.StatusOK, map[string]string{
			"data":     base64.StdEncoding.EncodeToString(job.asset.Data),
			"mimeType": job.asset.MIMEType,
		})
	case "error":
		writeGatewayError(w, job.err)
	default:
		httpError(w, http.StatusConflict, "job still processing")
	}
}
