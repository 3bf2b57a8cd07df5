package studio

import (
	"context"
	"io"
	"time"

	"github.com/oriel-ai/studio/pkg/audio"
	"github.com/oriel-ai/studio/pkg/gemini"
)

// locationTimeout bounds the device-location lookup for maps grounding.
const locationTimeout = 5 * time.Second

// GroundingMode selects the retrieval source backing a chat answer.
type GroundingMode int

const (
	GroundingNone GroundingMode = iota
	GroundingSearch
	GroundingMaps
)

// ChatService streams model answers.
type ChatService struct {
	client *Client
}

// ChatRequest configures one streamed chat call.
type ChatRequest struct {
	Prompt     string
	System     string
	Model      string // DefaultChatModel when empty
	Grounding  GroundingMode
	Attachment *Attachment // optional binary context (image, audio, video)
}

// Citation is a grounding source, in the relevance order returned by the
// API.
type Citation = gemini.Citation

// ChatChunk is one increment of a streamed answer. Citations, if any,
// arrive on the final chunk.
type ChatChunk struct {
	Text      string
	Citations []Citation
}

// ChatStream is a lazy sequence of answer fragments. It is restartable per
// call but never resumable mid-stream; an abandoned stream just needs Close.
type ChatStream struct {
	inner *gemini.EventStream
}

// Next returns the next fragment, or io.EOF at the end of the answer.
func (s *ChatStream) Next() (*ChatChunk, error) {
	chunk, err := s.inner.Next()
	if err != nil {
		return nil, err
	}
	return &ChatChunk{Text: chunk.Text, Citations: chunk.Citations}, nil
}

// Close releases the stream.
func (s *ChatStream) Close() error {
	return s.inner.Close()
}

// Stream opens a streamed chat call. With maps grounding the device
// location is read with a 5-second timeout; on failure the call proceeds
// without a location (logged, not surfaced — location is an enhancement,
// not a requirement).
func (s *ChatService) Stream(ctx context.Context, req *ChatRequest) (*ChatStream, error) {
	model := req.Model
	if model == "" {
		model = DefaultChatModel
	}

	parts := []gemini.Part{{Text: req.Prompt}}
	if req.Attachment != nil {
		parts = append(parts, gemini.InlinePart(req.Attachment.MIMEType, audio.EncodeBase64(req.Attachment.Data)))
	}

	apiReq := &gemini.Request{Contents: gemini.UserParts(parts...)}
	if req.System != "" {
		apiReq.SystemInstruction = &gemini.Content{Parts: []gemini.Part{{Text: req.System}}}
	}

	switch req.Grounding {
	case GroundingSearch:
		apiReq.Tools = []gemini.Tool{{GoogleSearch: &gemini.GoogleSearch{}}}
	case GroundingMaps:
		apiReq.Tools = []gemini.Tool{{GoogleMaps: &gemini.GoogleMaps{}}}
		if loc, ok := s.deviceLocation(ctx); ok {
			apiReq.ToolConfig = &gemini.ToolConfig{
				RetrievalConfig: &gemini.RetrievalConfig{
					LatLng: &gemini.LatLng{Latitude: loc.Latitude, Longitude: loc.Longitude},
				},
			}
		}
	}

	stream, err := s.client.provider.StreamGenerateContent(ctx, model, apiReq)
	if err != nil {
		return nil, err
	}
	return &ChatStream{inner: stream}, nil
}

// Generate runs a chat call to completion and returns the full answer text
// with its citations.
func (s *ChatService) Generate(ctx context.Context, req *ChatRequest) (string, []Citation, error) {
	stream, err := s.Stream(ctx, req)
	if err != nil {
		return "", nil, err
	}
	defer stream.Close()

	var text string
	var citations []Citation
	for {
		chunk, err := stream.Next()
		if err == io.EOF {
			return text, citations, nil
		}
		if err != nil {
			return "", nil, err
		}
		text += chunk.Text
		citations = append(citations, chunk.Citations...)
	}
}

// deviceLocation reads the configured locator under the location timeout.
func (s *ChatService) deviceLocation(ctx context.Context) (Location, bool) {
	if s.client.locator == nil {
		return Location{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, locationTimeout)
	defer cancel()

	loc, err := s.client.locator.Locate(ctx)
	if err != nil {
		s.client.logger.Warn("device location unavailable, proceeding without it", "error", err)
		return Location{}, false
	}
	return loc, true
}
