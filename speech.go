package studio

import (
	"context"

	"github.com/oriel-ai/studio/pkg/audio"
	"github.com/oriel-ai/studio/pkg/gemini"
)

// speechSampleRate is the PCM rate of synthesized audio.
const speechSampleRate = 24000

// SpeechService synthesizes speech from text.
type SpeechService struct {
	client *Client
}

// SpeechRequest configures one synthesis call.
type SpeechRequest struct {
	Text  string
	Voice string // prebuilt voice name; DefaultVoice when empty
	Model string // DefaultSpeechModel when empty
}

// SpeechResult is synthesized audio wrapped in a playable WAV container.
type SpeechResult struct {
	WAV        []byte
	SampleRate int
}

// Synthesize converts text to speech. The returned PCM is wrapped in a
// canonical WAV container at 24 kHz mono 16-bit. A response without an
// audio payload yields ErrNoAudio.
func (s *SpeechService) Synthesize(ctx context.Context, req *SpeechRequest) (*SpeechResult, error) {
	model := req.Model
	if model == "" {
		model = DefaultSpeechModel
	}
	voice := req.Voice
	if voice == "" {
		voice = DefaultVoice
	}

	resp, err := s.client.provider.GenerateContent(ctx, model, &gemini.Request{
		Contents: gemini.UserText(req.Text),
		GenerationConfig: &gemini.GenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &gemini.SpeechConfig{
				VoiceConfig: &gemini.VoiceConfig{
					PrebuiltVoiceConfig: &gemini.PrebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	blob := resp.InlineData("audio/")
	if blob == nil {
		return nil, ErrNoAudio
	}
	pcm, err := audio.DecodeBase64(blob.Data)
	if err != nil {
		return nil, err
	}
	return &SpeechResult{
		WAV:        audio.PCM16ToWAV(pcm, speechSampleRate, 1, 16),
		SampleRate: speechSampleRate,
	}, nil
}
