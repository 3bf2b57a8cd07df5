package studio

import (
	"context"
	"fmt"

	"github.com/oriel-ai/studio/pkg/audio"
	"github.com/oriel-ai/studio/pkg/gemini"
)

// transcribeInstruction is the fixed prompt wrapped around audio input.
const transcribeInstruction = "Transcribe this audio"

// TranscriptionService converts audio to text.
type TranscriptionService struct {
	client *Client
}

// TranscribeRequest configures one transcription call. The attachment is
// required.
type TranscribeRequest struct {
	Audio *Attachment
	Model string // DefaultTranscribeModel when empty
}

// Transcribe returns the transcript of the attached audio.
func (s *TranscriptionService) Transcribe(ctx context.Context, req *TranscribeRequest) (string, error) {
	if req.Audio == nil {
		return "", fmt.Errorf("studio: transcription requires audio input")
	}
	model := req.Model
	if model == "" {
		model = DefaultTranscribeModel
	}

	resp, err := s.client.provider.GenerateContent(ctx, model, &gemini.Request{
		Contents: gemini.UserParts(
			gemini.Part{Text: transcribeInstruction},
			gemini.InlinePart(req.Audio.MIMEType, audio.EncodeBase64(req.Audio.Data)),
		),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
