package gateway

import (
	"context"
	"sync"
	"time"

	"google.golang.org/genai"
)

// stubProvider scripts provider behavior per call and records everything the
// gateway sent, so tests can assert on both sides of the exchange.
type stubProvider struct {
	mu sync.Mutex

	generateFn func(model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	submitFn   func(model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	pollFn     func(op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)

	generateCalls int
	submitCalls   int
	pollCalls     int

	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
	lastPrompt   string
	lastImage    *genai.Image
	lastVideoCfg *genai.GenerateVideosConfig
}

func (s *stubProvider) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.mu.Lock()
	s.generateCalls++
	s.lastModel = model
	s.lastContents = contents
	s.lastConfig = cfg
	fn := s.generateFn
	s.mu.Unlock()
	if fn == nil {
		return textResponse(""), nil
	}
	return fn(model, contents, cfg)
}

func (s *stubProvider) GenerateVideos(_ context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	s.mu.Lock()
	s.submitCalls++
	s.lastModel = model
	s.lastPrompt = prompt
	s.lastImage = image
	s.lastVideoCfg = cfg
	fn := s.submitFn
	s.mu.Unlock()
	if fn == nil {
		return &genai.GenerateVideosOperation{Done: true}, nil
	}
	return fn(model, prompt, image, cfg)
}

func (s *stubProvider) GetVideosOperation(_ context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	s.mu.Lock()
	s.pollCalls++
	fn := s.pollFn
	s.mu.Unlock()
	if fn == nil {
		return op, nil
	}
	return fn(op)
}

var _ Provider = (*stubProvider)(nil)

// textResponse wraps text in the single-candidate shape the SDK returns.
func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}

// sleepRecorder stands in for the poll wait and logs each requested duration.
type sleepRecorder struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	r.slept = append(r.slept, d)
	r.mu.Unlock()
	return nil
}

func newTestGateway(p Provider, opts Options) *Gateway {
	if opts.Sleep == nil {
		rec := &sleepRecorder{}
		opts.Sleep = rec.sleep
	}
	return New(p, opts)
}
