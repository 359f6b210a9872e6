package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gburgcut/barber-ai/internal/catalog"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// VideoAsset is a completed cinematic preview, held in memory for playback.
// SourceURI is the provider's signed reference; it expires and needs the
// API key appended, so callers should use Data.
type VideoAsset struct {
	Data      []byte
	MIMEType  string
	SourceURI string
}

// GenerateVideo runs the full video synthesis cycle: submit the Veo job,
// poll until done, then fetch the signed asset. The polling loop is bounded
// by MaxPolls; a job that never completes fails instead of spinning forever.
//
// Veo requires a billing-capable key. A missing key fails up front with
// ErrCredentialRequired; a key the provider no longer recognizes surfaces as
// ErrCredentialExpired so the caller can re-prompt selection and retry.
func (g *Gateway) GenerateVideo(ctx context.Context, image ImageInput, styleID string) (*VideoAsset, error) {
	if err := g.guard.acquire("video"); err != nil {
		return nil, err
	}
	defer g.guard.release("video")

	if g.apiKey == "" {
		return nil, fmt.Errorf("video: %w", ErrCredentialRequired)
	}
	if len(image.Data) == 0 {
		return nil, fmt.Errorf("video: base image required: %w", ErrInvalidInput)
	}
	label, ok := catalog.EnglishStyleLabel(styleID)
	if !ok {
		return nil, fmt.Errorf("video: unknown style %q: %w", styleID, ErrInvalidInput)
	}

	cfg := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     "720p",
		AspectRatio:    "9:16",
	}

	log.Info().
		Str("style", styleID).
		Str("model", g.models.Video).
		Msg("Submitting video synthesis job")

	start := time.Now()
	op, err := g.provider.GenerateVideos(ctx, g.models.Video, videoPrompt(label), &genai.Image{
		ImageBytes: image.Data,
		MIMEType:   image.MIMEType,
	}, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Video job submission failed")
		return nil, classifyVideoError("video submit", err)
	}

	polls := 0
	for op != nil && !op.Done {
		if polls >= g.maxPolls {
			log.Error().
				Int("polls", polls).
				Dur("elapsed", time.Since(start)).
				Msg("Video job did not complete within the poll budget")
			return nil, &TransportError{
				Op:  "video poll",
				Err: fmt.Errorf("job not done after %d polls", polls),
			}
		}
		if err := g.sleep(ctx, g.pollInterval); err != nil {
			return nil, &TransportError{Op: "video poll", Err: err}
		}

		op, err = g.provider.GetVideosOperation(ctx, op)
		if err != nil {
			log.Error().Err(err).Int("poll", polls+1).Msg("Video job poll failed")
			return nil, classifyVideoError("video poll", err)
		}
		polls++
		log.Debug().Int("poll", polls).Bool("done", op != nil && op.Done).Msg("Polled video job")
	}

	video := extractVideo(op)
	if video == nil {
		return nil, fmt.Errorf("video: job completed without a result: %w", ErrNoVideoReturned)
	}

	// Some models inline the bytes directly; otherwise fetch the signed URI.
	if len(video.VideoBytes) > 0 {
		log.Info().
			Int("bytes", len(video.VideoBytes)).
			Dur("duration", time.Since(start)).
			Msg("Video synthesis complete (inline payload)")
		return &VideoAsset{Data: video.VideoBytes, MIMEType: video.MIMEType, SourceURI: video.URI}, nil
	}
	if video.URI == "" {
		return nil, fmt.Errorf("video: no download reference in job result: %w", ErrNoVideoReturned)
	}

	data, mime, err := g.fetchVideo(ctx, video.URI)
	if err != nil {
		return nil, err
	}
	if mime == "" {
		mime = video.MIMEType
	}

	log.Info().
		Int("bytes", len(data)).
		Int("polls", polls).
		Dur("duration", time.Since(start)).
		Msg("Video synthesis complete")

	return &VideoAsset{Data: data, MIMEType: mime, SourceURI: video.URI}, nil
}

// extractVideo pulls the first generated video out of a finished operation.
func extractVideo(op *genai.GenerateVideosOperation) *genai.Video {
	if op == nil || op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return nil
	}
	return op.Response.GeneratedVideos[0].Video
}

// fetchVideo downloads the signed asset. The URI is time-limited and only
// fetchable with the API key appended.
func (g *Gateway) fetchVideo(ctx context.Context, uri string) ([]byte, string, error) {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+sep+"key="+g.apiKey, nil)
	if err != nil {
		return nil, "", &TransportError{Op: "video download", Err: err}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, "", &TransportError{Op: "video download", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &TransportError{
			Op:  "video download",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &TransportError{Op: "video download", Err: err}
	}
	return data, resp.Header.Get("Content-Type"), nil
}
