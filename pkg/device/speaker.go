package device

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// speakerBufferBytes is the oto buffer size: 4800 bytes at 24 kHz mono
// 16-bit is roughly 100 ms, small enough to keep interruptions snappy.
const speakerBufferBytes = 4800

// Speaker plays 16-bit signed little-endian PCM on the default output
// device. It implements live.Sink: Play appends to the queue, Stop discards
// everything queued or currently playing.
type Speaker struct {
	ctx *oto.Context

	mu      sync.Mutex
	cond    *sync.Cond
	player  *oto.Player
	buf     []byte
	playing bool
	closed  bool
}

// OpenSpeaker prepares playback at the given rate, mono. oto allows one
// context per process; opening a second Speaker concurrently will fail.
func OpenSpeaker(sampleRate int) (*Speaker, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   speakerBufferBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("device: init speaker: %w", err)
	}
	<-ready

	s := &Speaker{
		ctx: ctx,
		buf: make([]byte, 0, sampleRate*4),
	}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

// Play queues pcm for playback, starting the player on first use.
func (s *Speaker) Play(pcm []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("device: speaker closed")
	}
	s.buf = append(s.buf, pcm...)
	if !s.playing {
		s.playing = true
		s.player = s.ctx.NewPlayer(speakerFeed{s})
		s.player.Play()
	}
	s.cond.Signal()
	return nil
}

// Stop discards all queued audio and tears down the current player so stale
// samples never bleed into the next turn.
func (s *Speaker) Stop() error {
	s.mu.Lock()
	s.buf = s.buf[:0]
	player := s.player
	s.player = nil
	s.playing = false
	s.cond.Broadcast()
	s.mu.Unlock()

	if player != nil {
		player.Pause()
		_ = player.Close()
	}
	return nil
}

// Close stops playback and releases the player. Idempotent.
func (s *Speaker) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	player := s.player
	s.player = nil
	s.cond.Broadcast()
	s.mu.Unlock()

	if player != nil {
		_ = player.Close()
	}
	return nil
}

// speakerFeed is the pull side of the oto player. It hands out queued PCM
// and silence while the queue is empty, so the player never underruns.
type speakerFeed struct {
	s *Speaker
}

func (f speakerFeed) Read(p []byte) (int, error) {
	s := f.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.buf) == 0 && !s.closed && s.playing {
		s.cond.Wait()
	}
	if s.closed || !s.playing {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}
