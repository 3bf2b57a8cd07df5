package studio

import (
	"context"
	"fmt"

	"github.com/oriel-ai/studio/pkg/audio"
	"github.com/oriel-ai/studio/pkg/gemini"
)

// ImagesService generates, edits, and analyzes images.
type ImagesService struct {
	client *Client
}

// Image is a generated or edited image.
type Image struct {
	MIMEType string
	Data     []byte
}

// GenerateImageRequest configures image generation.
type GenerateImageRequest struct {
	Prompt      string
	AspectRatio string // e.g. "1:1", "16:9"; provider default when empty
	Model       string // DefaultImageModel when empty
}

// Generate creates an image from a text prompt.
func (s *ImagesService) Generate(ctx context.Context, req *GenerateImageRequest) (*Image, error) {
	model := req.Model
	if model == "" {
		model = DefaultImageModel
	}

	apiReq := &gemini.Request{Contents: gemini.UserText(req.Prompt)}
	if req.AspectRatio != "" {
		apiReq.GenerationConfig = &gemini.GenerationConfig{
			ImageConfig: &gemini.ImageConfig{AspectRatio: req.AspectRatio},
		}
	}

	resp, err := s.client.provider.GenerateContent(ctx, model, apiReq)
	if err != nil {
		return nil, err
	}
	return imageFromResponse(resp)
}

// EditImageRequest configures an image edit. The attachment is required.
type EditImageRequest struct {
	Prompt     string
	Attachment *Attachment
	Model      string
}

// Edit applies a prompted edit to the attached image. A response without an
// image payload yields ErrNoImage.
func (s *ImagesService) Edit(ctx context.Context, req *EditImageRequest) (*Image, error) {
	if req.Attachment == nil {
		return nil, fmt.Errorf("studio: image edit requires an attachment")
	}
	model := req.Model
	if model == "" {
		model = DefaultImageModel
	}

	resp, err := s.client.provider.GenerateContent(ctx, model, &gemini.Request{
		Contents: gemini.UserParts(
			gemini.InlinePart(req.Attachment.MIMEType, audio.EncodeBase64(req.Attachment.Data)),
			gemini.Part{Text: req.Prompt},
		),
	})
	if err != nil {
		return nil, err
	}
	return imageFromResponse(resp)
}

// AnalyzeRequest configures content analysis of attached image or video
// bytes. The attachment is required.
type AnalyzeRequest struct {
	Prompt     string
	Attachment *Attachment
	Model      string
}

// Analyze describes the attached media according to the prompt.
func (s *ImagesService) Analyze(ctx context.Context, req *AnalyzeRequest) (string, error) {
	if req.Attachment == nil {
		return "", fmt.Errorf("studio: analysis requires an attachment")
	}
	model := req.Model
	if model == "" {
		model = DefaultChatModel
	}

	resp, err := s.client.provider.GenerateContent(ctx, model, &gemini.Request{
		Contents: gemini.UserParts(
			gemini.InlinePart(req.Attachment.MIMEType, audio.EncodeBase64(req.Attachment.Data)),
			gemini.Part{Text: req.Prompt},
		),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func imageFromResponse(resp *gemini.Response) (*Image, error) {
	blob := resp.InlineData("image/")
	if blob == nil {
		return nil, ErrNoImage
	}
	data, err := audio.DecodeBase64(blob.Data)
	if err != nil {
		return nil, err
	}
	return &Image{MIMEType: blob.MIMEType, Data: data}, nil
}
