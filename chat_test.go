package studio

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oriel-ai/studio/pkg/gemini"
)

const chatStreamPath = "/models/gemini-2.5-flash:streamGenerateContent"

// chatStreamServer answers the streaming endpoint with fixed SSE lines and
// captures the decoded request body.
func chatStreamServer(t *testing.T, lines []string) (*httptest.Server, *gemini.Request) {
	t.Helper()
	captured := &gemini.Request{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != chatStreamPath {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, line := range lines {
			_, _ = io.WriteString(w, line+"\n\n")
		}
	}))
	return server, captured
}

func TestChatStream(t *testing.T) {
	server, captured := chatStreamServer(t, []string{
		`data: {"candidates": [{"content": {"role": "model", "parts": [{"text": "Hello"}]}}]}`,
		`data: {"candidates": [{"content": {"role": "model", "parts": [{"text": ", world"}]}, "groundingMetadata": {"groundingChunks": [{"web": {"uri": "https://example.com", "title": "Example"}}]}}]}`,
	})
	defer server.Close()

	c := NewClient(WithAPIKey("k"), WithBaseURL(server.URL))
	text, citations, err := c.Chat.Generate(context.Background(), &ChatRequest{
		Prompt:    "greet",
		System:    "be brief",
		Grounding: GroundingSearch,
	})
	if err != nil {
		t.Fatalf("Generate error = %v", err)
	}
	if text != "Hello, world" {
		t.Fatalf("text = %q", text)
	}
	if len(citations) != 1 || citations[0].URI != "https://example.com" || citations[0].Title != "Example" {
		t.Fatalf("citations = %+v", citations)
	}

	if captured.SystemInstruction == nil || captured.SystemInstruction.Parts[0].Text != "be brief" {
		t.Fatalf("systemInstruction = %+v", captured.SystemInstruction)
	}
	if len(captured.Tools) != 1 || captured.Tools[0].GoogleSearch == nil {
		t.Fatalf("tools = %+v", captured.Tools)
	}
}

type fixedLocator struct {
	loc Location
	err error
}

func (l fixedLocator) Locate(ctx context.Context) (Location, error) {
	return l.loc, l.err
}

func TestChatMapsGroundingAttachesLocation(t *testing.T) {
	server, captured := chatStreamServer(t, []string{
		`data: {"candidates": [{"content": {"role": "model", "parts": [{"text": "nearby"}]}}]}`,
	})
	defer server.Close()

	c := NewClient(
		WithAPIKey("k"),
		WithBaseURL(server.URL),
		WithLocator(fixedLocator{loc: Location{Latitude: 37.77, Longitude: -122.41}}),
	)
	if _, _, err := c.Chat.Generate(context.Background(), &ChatRequest{Prompt: "coffee", Grounding: GroundingMaps}); err != nil {
		t.Fatalf("Generate error = %v", err)
	}

	if len(captured.Tools) != 1 || captured.Tools[0].GoogleMaps == nil {
		t.Fatalf("tools = %+v", captured.Tools)
	}
	cfg := captured.ToolConfig
	if cfg == nil || cfg.RetrievalConfig == nil || cfg.RetrievalConfig.LatLng == nil {
		t.Fatalf("toolConfig = %+v, want latLng", cfg)
	}
	ll := cfg.RetrievalConfig.LatLng
	if ll.Latitude != 37.77 || ll.Longitude != -122.41 {
		t.Fatalf("latLng = %+v", ll)
	}
}

func TestChatMapsGroundingProceedsWithoutLocation(t *testing.T) {
	server, captured := chatStreamServer(t, []string{
		`data: {"candidates": [{"content": {"role": "model", "parts": [{"text": "nearby"}]}}]}`,
	})
	defer server.Close()

	c := NewClient(
		WithAPIKey("k"),
		WithBaseURL(server.URL),
		WithLocator(fixedLocator{err: errors.New("permission denied")}),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	text, _, err := c.Chat.Generate(context.Background(), &ChatRequest{Prompt: "coffee", Grounding: GroundingMaps})
	if err != nil {
		t.Fatalf("Generate error = %v", err)
	}
	if text != "nearby" {
		t.Fatalf("text = %q", text)
	}
	if captured.ToolConfig != nil {
		t.Fatalf("toolConfig = %+v, want nil when location fails", captured.ToolConfig)
	}
}

func TestChatStreamNextAfterEOF(t *testing.T) {
	server, _ := chatStreamServer(t, []string{
		`data: {"candidates": [{"content": {"role": "model", "parts": [{"text": "hi"}]}}]}`,
	})
	defer server.Close()

	c := NewClient(WithAPIKey("k"), WithBaseURL(server.URL))
	stream, err := c.Chat.Stream(context.Background(), &ChatRequest{Prompt: "p"})
	if err != nil {
		t.Fatalf("Stream error = %v", err)
	}
	defer stream.Close()

	if _, err := stream.Next(); err != nil {
		t.Fatalf("first Next error = %v", err)
	}
	if _, err := stream.Next(); err != io.EOF {
		t.Fatalf("Next past end = %v, want io.EOF", err)
	}
	if _, err := stream.Next(); err != io.EOF {
		t.Fatalf("repeated Next past end = %v, want io.EOF", err)
	}
}
