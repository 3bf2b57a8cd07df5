package studio

import (
	"context"

	"github.com/oriel-ai/studio/pkg/gemini"
	"github.com/oriel-ai/studio/pkg/live"
)

// LiveService opens bidirectional voice sessions.
type LiveService struct {
	client *Client
}

// LiveRequest configures a live session.
type LiveRequest struct {
	System string
	Voice  string // DefaultVoice when empty
	Model  string // DefaultLiveModel when empty

	// OpenSource acquires the microphone. Required; device implementations
	// live in pkg/device.
	OpenSource func() (live.Source, error)

	// Sink plays returned audio. Required; owned by the session once open.
	Sink live.Sink
}

// Connect acquires the microphone, dials the live endpoint, and returns the
// running session. Microphone failures surface as *live.MicrophoneError and
// nothing is dialed; dial failures release the already-held devices.
func (s *LiveService) Connect(ctx context.Context, req *LiveRequest) (*live.Session, error) {
	model := req.Model
	if model == "" {
		model = DefaultLiveModel
	}
	voice := req.Voice
	if voice == "" {
		voice = DefaultVoice
	}

	setup := &gemini.LiveSetup{
		Model: "models/" + model,
		GenerationConfig: &gemini.GenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &gemini.SpeechConfig{
				VoiceConfig: &gemini.VoiceConfig{
					PrebuiltVoiceConfig: &gemini.PrebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	}
	if req.System != "" {
		setup.SystemInstruction = &gemini.Content{Parts: []gemini.Part{{Text: req.System}}}
	}

	provider := s.client.provider
	return live.Open(ctx, live.Config{
		OpenSource: req.OpenSource,
		Dial: func(ctx context.Context) (live.Conn, error) {
			return provider.DialLive(ctx, setup)
		},
		Sink:   req.Sink,
		Logger: s.client.logger,
	})
}
