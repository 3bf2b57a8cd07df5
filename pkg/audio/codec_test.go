package audio

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestBase64RoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{0},
		{0xff, 0x00, 0x7f, 0x80},
		bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 4096),
	}
	for _, in := range cases {
		got, err := DecodeBase64(EncodeBase64(in))
		if err != nil {
			t.Fatalf("DecodeBase64 error = %v, want nil", err)
		}
		if !bytes.Equal(got, in) {
			t.Fatalf("round trip of %d bytes did not preserve data", len(in))
		}
	}
}

func TestDecodeBase64Malformed(t *testing.T) {
	_, err := DecodeBase64("not!!valid@@base64")
	if err == nil {
		t.Fatal("DecodeBase64 error = nil, want *DecodeError")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error type = %T, want *DecodeError", err)
	}
}

func TestDecodePCM16Mono(t *testing.T) {
	// 4 mono samples: 0, 16384, -16384, 32767.
	pcm := []byte{
		0x00, 0x00,
		0x00, 0x40,
		0x00, 0xc0,
		0xff, 0x7f,
	}
	buf, err := DecodePCM16(pcm, 24000, 1)
	if err != nil {
		t.Fatalf("DecodePCM16 error = %v, want nil", err)
	}
	if len(buf.Channels) != 1 {
		t.Fatalf("channels = %d, want 1", len(buf.Channels))
	}
	if buf.FrameCount() != 4 {
		t.Fatalf("frames = %d, want 4", buf.FrameCount())
	}

	want := []float64{0, 0.5, -0.5, 0.99997}
	for i, w := range want {
		got := float64(buf.Channels[0][i])
		if math.Abs(got-w) > 1e-4 {
			t.Fatalf("sample %d = %v, want ~%v", i, got, w)
		}
	}
}

func TestDecodePCM16Stereo(t *testing.T) {
	// Two frames of L/R pairs.
	pcm := []byte{
		0x00, 0x40, 0x00, 0xc0, // frame 0: 16384, -16384
		0xff, 0x7f, 0x00, 0x00, // frame 1: 32767, 0
	}
	buf, err := DecodePCM16(pcm, 48000, 2)
	if err != nil {
		t.Fatalf("DecodePCM16 error = %v, want nil", err)
	}
	if buf.FrameCount() != 2 {
		t.Fatalf("frames = %d, want 2", buf.FrameCount())
	}
	if got := buf.Channels[0][0]; math.Abs(float64(got)-0.5) > 1e-4 {
		t.Fatalf("left[0] = %v, want 0.5", got)
	}
	if got := buf.Channels[1][0]; math.Abs(float64(got)+0.5) > 1e-4 {
		t.Fatalf("right[0] = %v, want -0.5", got)
	}
}

func TestDecodePCM16Misaligned(t *testing.T) {
	_, err := DecodePCM16([]byte{1, 2, 3}, 24000, 1)
	if err == nil {
		t.Fatal("DecodePCM16 error = nil, want *MalformedAudioError")
	}
	var malformed *MalformedAudioError
	if !errors.As(err, &malformed) {
		t.Fatalf("error type = %T, want *MalformedAudioError", err)
	}
}

func TestBufferDuration(t *testing.T) {
	pcm := make([]byte, 24000*2) // one second of 24kHz mono
	buf, err := DecodePCM16(pcm, 24000, 1)
	if err != nil {
		t.Fatalf("DecodePCM16 error = %v", err)
	}
	if d := buf.Duration(); math.Abs(d-1.0) > 1e-9 {
		t.Fatalf("duration = %v, want 1.0", d)
	}
}

func TestFloatToPCM16Clamps(t *testing.T) {
	pcm := FloatToPCM16([]float32{0, 0.5, -0.5, 2.0, -2.0})
	if len(pcm) != 10 {
		t.Fatalf("len = %d, want 10", len(pcm))
	}
	read := func(i int) int16 {
		return int16(pcm[i*2]) | int16(pcm[i*2+1])<<8
	}
	if got := read(0); got != 0 {
		t.Fatalf("sample 0 = %d, want 0", got)
	}
	if got := read(3); got != 32767 {
		t.Fatalf("sample 3 = %d, want clamped 32767", got)
	}
	if got := read(4); got != -32767 {
		t.Fatalf("sample 4 = %d, want clamped -32767", got)
	}
}

func TestRMSEnergy(t *testing.T) {
	if got := RMSEnergy(nil); got != 0 {
		t.Fatalf("RMSEnergy(nil) = %v, want 0", got)
	}
	// Full-scale square wave has RMS ~1.0.
	loud := FloatToPCM16([]float32{1, -1, 1, -1})
	if got := RMSEnergy(loud); got < 0.99 || got > 1.0 {
		t.Fatalf("RMSEnergy(full scale) = %v, want ~1.0", got)
	}
}
