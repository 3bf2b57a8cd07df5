// Package gemini is a raw HTTP client for the Gemini generative-AI API:
// unary and streamed content generation, long-running video generation,
// model listing, and the bidirectional live WebSocket endpoint.
package gemini

import (
	"context"
	"net/http"
)

const (
	// DefaultBaseURL is the default Gemini REST endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultLiveURL is the default bidirectional live WebSocket endpoint.
	DefaultLiveURL = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"
)

// Provider talks to the Gemini API. Every call is attempted exactly once;
// retry policy belongs to the caller.
type Provider struct {
	apiKey     string
	baseURL    string
	liveURL    string
	httpClient *http.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL overrides the REST endpoint (used by tests).
func WithBaseURL(url string) Option {
	return func(p *Provider) { p.baseURL = url }
}

// WithLiveURL overrides the live WebSocket endpoint.
func WithLiveURL(url string) Option {
	return func(p *Provider) { p.liveURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) { p.httpClient = client }
}

// New creates a Gemini provider.
func New(apiKey string, opts ...Option) *Provider {
	p := &Provider{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		liveURL:    DefaultLiveURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GenerateContent sends a unary generateContent request.
func (p *Provider) GenerateContent(ctx context.Context, model string, req *Request) (*Response, error) {
	return p.doGenerate(ctx, model, req)
}

// StreamGenerateContent opens a streamed generateContent request and returns
// an iterator over its chunks.
func (p *Provider) StreamGenerateContent(ctx context.Context, model string, req *Request) (*EventStream, error) {
	body, err := p.doStream(ctx, model, req)
	if err != nil {
		return nil, err
	}
	return newEventStream(body), nil
}
