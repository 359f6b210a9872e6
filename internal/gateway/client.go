// Package gateway is the AI interaction layer between the site's UI surfaces
// and the Gemini provider: style advice, haircut visualization, video
// synthesis, the concierge chat, and the maps-grounded neighborhood lookup.
// All provider round trips block until response or error; every operation is
// single-flight per feature instance and nothing is retried by this layer.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gburgcut/barber-ai/internal/config"
	"google.golang.org/genai"
)

// Provider is the slice of the Gemini SDK the gateway depends on. Tests
// substitute a scripted implementation.
type Provider interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateVideos(ctx context.Context, model string, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

// Client adapts *genai.Client to the Provider interface.
type Client struct {
	genai *genai.Client
}

// NewClient creates a Gemini-backed provider using the public Gemini API
// backend.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &Client{genai: c}, nil
}

func (c *Client) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.genai.Models.GenerateContent(ctx, model, contents, cfg)
}

func (c *Client) GenerateVideos(ctx context.Context, model string, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return c.genai.Models.GenerateVideos(ctx, model, prompt, image, cfg)
}

func (c *Client) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	return c.genai.Operations.GetVideosOperation(ctx, op, nil)
}

var _ Provider = (*Client)(nil)

// Models names the provider model used for each operation.
type Models struct {
	Advice string
	Image  string
	Video  string
	Nearby string
}

// ImageInput is a decoded client upload: raw bytes plus media type.
type ImageInput struct {
	Data     []byte
	MIMEType string
}

// Gateway owns the provider adapter and the per-feature busy flags.
type Gateway struct {
	provider Provider
	apiKey   string
	models   Models

	pollInterval time.Duration
	maxPolls     int
	httpClient   *http.Client
	sleep        func(ctx context.Context, d time.Duration) error

	guard *busyGuard
}

// Options configures a Gateway. Zero fields take the defaults below.
type Options struct {
	// APIKey is the credential forwarded when fetching signed video URIs.
	// Empty means no billing-capable credential is configured yet.
	APIKey string

	Models Models

	// PollInterval and MaxPolls bound the video job polling loop.
	PollInterval time.Duration
	MaxPolls     int

	// HTTPClient fetches completed video assets. Defaults to a client with
	// a generous timeout; video downloads are large.
	HTTPClient *http.Client

	// Sleep is the wait between video polls. Tests inject a recorder.
	Sleep func(ctx context.Context, d time.Duration) error
}

// New builds a Gateway over the given provider.
func New(provider Provider, opts Options) *Gateway {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}
	if opts.MaxPolls <= 0 {
		opts.MaxPolls = 60
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 5 * time.Minute}
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepCtx
	}
	if opts.Models.Advice == "" {
		opts.Models = DefaultModels()
	}
	return &Gateway{
		provider:     provider,
		apiKey:       opts.APIKey,
		models:       opts.Models,
		pollInterval: opts.PollInterval,
		maxPolls:     opts.MaxPolls,
		httpClient:   opts.HTTPClient,
		sleep:        opts.Sleep,
		guard:        newBusyGuard(),
	}
}

// DefaultModels returns the models the site was built against.
func DefaultModels() Models {
	return Models{
		Advice: "gemini-3-flash-preview",
		Image:  "gemini-2.5-flash-image",
		Video:  "veo-3.1-fast-generate-preview",
		Nearby: "gemini-2.5-flash",
	}
}

// OptionsFromConfig maps runtime configuration onto gateway options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		APIKey: cfg.GeminiAPIKey,
		Models: Models{
			Advice: cfg.AdviceModel,
			Image:  cfg.ImageModel,
			Video:  cfg.VideoModel,
			Nearby: cfg.NearbyModel,
		},
		PollInterval: cfg.VideoPollInterval,
		MaxPolls:     cfg.VideoMaxPolls,
	}
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
