// Package studio is a client SDK for the Gemini generative-AI API. It
// exposes one service per capability: streamed chat with optional grounding,
// image generation/editing/analysis, long-running video generation, speech
// synthesis, transcription, and bidirectional live voice sessions.
//
// The client holds no durable state. Every remote call is attempted exactly
// once; the caller decides whether to retry.
package studio

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/oriel-ai/studio/pkg/gemini"
)

// Default models per capability.
const (
	DefaultChatModel       = "gemini-2.5-flash"
	DefaultImageModel      = "gemini-2.5-flash-image"
	DefaultVideoModel      = "veo-2.0-generate-001"
	DefaultSpeechModel     = "gemini-2.5-flash-preview-tts"
	DefaultTranscribeModel = "gemini-2.5-flash"
	DefaultLiveModel       = "gemini-2.0-flash-live-001"
	DefaultVoice           = "Zephyr"
)

// Client is the entry point for the SDK.
type Client struct {
	Chat          *ChatService
	Images        *ImagesService
	Videos        *VideosService
	Speech        *SpeechService
	Transcription *TranscriptionService
	Live          *LiveService
	Models        *ModelsService

	provider   *gemini.Provider
	logger     *slog.Logger
	locator    Locator
	httpClient *http.Client

	apiKey  string
	baseURL string
	liveURL string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API credential. Defaults to GEMINI_API_KEY, falling
// back to GOOGLE_API_KEY.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) { c.apiKey = key }
}

// WithBaseURL overrides the REST endpoint (used by tests).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithLiveURL overrides the live WebSocket endpoint.
func WithLiveURL(url string) ClientOption {
	return func(c *Client) { c.liveURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = client }
}

// WithLogger sets the logger for the client.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithLocator supplies a device location source for maps-grounded chat.
// Location is an enhancement: lookups that fail or time out are logged and
// the call proceeds without one.
func WithLocator(l Locator) ClientOption {
	return func(c *Client) { c.locator = l }
}

// NewClient creates a new client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		c.apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.apiKey == "" {
		c.apiKey = os.Getenv("GOOGLE_API_KEY")
	}

	var providerOpts []gemini.Option
	if c.baseURL != "" {
		providerOpts = append(providerOpts, gemini.WithBaseURL(c.baseURL))
	}
	if c.liveURL != "" {
		providerOpts = append(providerOpts, gemini.WithLiveURL(c.liveURL))
	}
	if c.httpClient != nil {
		providerOpts = append(providerOpts, gemini.WithHTTPClient(c.httpClient))
	}
	c.provider = gemini.New(c.apiKey, providerOpts...)

	c.Chat = &ChatService{client: c}
	c.Images = &ImagesService{client: c}
	c.Videos = &VideosService{client: c}
	c.Speech = &SpeechService{client: c}
	c.Transcription = &TranscriptionService{client: c}
	c.Live = &LiveService{client: c}
	c.Models = &ModelsService{client: c}
	return c
}

// Provider returns the underlying Gemini provider.
func (c *Client) Provider() *gemini.Provider {
	return c.provider
}

// Attachment is binary input to a multimodal call: raw bytes plus their
// MIME type.
type Attachment struct {
	MIMEType string
	Data     []byte
}
