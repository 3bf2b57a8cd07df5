package studio

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oriel-ai/studio/pkg/gemini"
)

func imageResponse(mimeType string, data []byte) gemini.Response {
	return gemini.Response{
		Candidates: []gemini.Candidate{{
			Content: gemini.Content{Role: "model", Parts: []gemini.Part{
				{Text: "here you go"},
				{InlineData: &gemini.Blob{
					MIMEType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(data),
				}},
			}},
		}},
	}
}

func TestGenerateImage(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash-image:generateContent" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req gemini.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.GenerationConfig == nil || req.GenerationConfig.ImageConfig.AspectRatio != "16:9" {
			t.Errorf("generationConfig = %+v", req.GenerationConfig)
		}
		_ = json.NewEncoder(w).Encode(imageResponse("image/png", raw))
	}))
	defer server.Close()

	c := NewClient(WithAPIKey("k"), WithBaseURL(server.URL))
	img, err := c.Images.Generate(context.Background(), &GenerateImageRequest{Prompt: "a lighthouse", AspectRatio: "16:9"})
	if err != nil {
		t.Fatalf("Generate error = %v", err)
	}
	if img.MIMEType != "image/png" || !bytes.Equal(img.Data, raw) {
		t.Fatalf("image = %+v", img)
	}
}

func TestEditImageNoPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(gemini.Response{
			Candidates: []gemini.Candidate{{
				Content: gemini.Content{Role: "model", Parts: []gemini.Part{{Text: "refused"}}},
			}},
		})
	}))
	defer server.Close()

	c := NewClient(WithAPIKey("k"), WithBaseURL(server.URL))
	_, err := c.Images.Edit(context.Background(), &EditImageRequest{
		Prompt:     "make it night",
		Attachment: &Attachment{MIMEType: "image/png", Data: []byte{1}},
	})
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("error = %v, want ErrNoImage", err)
	}
}

func TestEditImageRequiresAttachment(t *testing.T) {
	c := NewClient(WithAPIKey("k"))
	if _, err := c.Images.Edit(context.Background(), &EditImageRequest{Prompt: "p"}); err == nil {
		t.Fatal("error = nil, want missing-attachment error")
	}
}

func TestAnalyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash:generateContent" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req gemini.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		parts := req.Contents[0].Parts
		if len(parts) != 2 || parts[0].InlineData == nil || parts[1].Text != "what is in this video?" {
			t.Errorf("parts = %+v", parts)
		}
		_ = json.NewEncoder(w).Encode(gemini.Response{
			Candidates: []gemini.Candidate{{
				Content: gemini.Content{Role: "model", Parts: []gemini.Part{{Text: "a dog chasing a ball"}}},
			}},
		})
	}))
	defer server.Close()

	c := NewClient(WithAPIKey("k"), WithBaseURL(server.URL))
	text, err := c.Images.Analyze(context.Background(), &AnalyzeRequest{
		Prompt:     "what is in this video?",
		Attachment: &Attachment{MIMEType: "video/mp4", Data: []byte{1, 2}},
	})
	if err != nil {
		t.Fatalf("Analyze error = %v", err)
	}
	if text != "a dog chasing a ball" {
		t.Fatalf("text = %q", text)
	}
}
