// Package audio implements the binary codec shared by the SDK services and
// the live session: base64 framing, 16-bit PCM packing, and the canonical
// WAV container used for speech synthesis results.
package audio

import (
	"encoding/base64"
	"fmt"
)

// DecodeError reports malformed base64 or binary input.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("audio: decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MalformedAudioError reports PCM data whose byte count is not aligned to
// the frame size (channels * 2 bytes per 16-bit sample).
type MalformedAudioError struct {
	Length   int
	Channels int
}

func (e *MalformedAudioError) Error() string {
	return fmt.Sprintf("audio: %d PCM bytes not aligned to %d-channel 16-bit frames", e.Length, e.Channels)
}

// EncodeBase64 encodes raw bytes as standard base64 text.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes standard base64 text. Malformed input yields a
// *DecodeError.
func DecodeBase64(text string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return data, nil
}

// Buffer holds decoded PCM audio as per-channel float frames normalized to
// the range [-1, 1).
type Buffer struct {
	Channels   [][]float32
	SampleRate int
}

// FrameCount returns the number of frames per channel.
func (b *Buffer) FrameCount() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the playback duration in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.FrameCount()) / float64(b.SampleRate)
}

// DecodePCM16 reinterprets data as interleaved 16-bit signed little-endian
// samples and de-interleaves it into per-channel float frames, dividing each
// sample by 32768. Returns a *MalformedAudioError when the byte count is not
// a multiple of channels*2.
func DecodePCM16(data []byte, sampleRate, channels int) (*Buffer, error) {
	if channels <= 0 {
		return nil, &MalformedAudioError{Length: len(data), Channels: channels}
	}
	frameSize := channels * 2
	if len(data)%frameSize != 0 {
		return nil, &MalformedAudioError{Length: len(data), Channels: channels}
	}

	frames := len(data) / frameSize
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			off := (i*channels + ch) * 2
			sample := int16(data[off]) | int16(data[off+1])<<8
			out[ch][i] = float32(sample) / 32768.0
		}
	}
	return &Buffer{Channels: out, SampleRate: sampleRate}, nil
}

// FloatToPCM16 packs normalized float samples into 16-bit signed
// little-endian PCM, clamping out-of-range values.
func FloatToPCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		s := int16(v * 32767.0)
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}
	return out
}
