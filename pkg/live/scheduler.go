package live

import (
	"sync"
	"time"
)

// Sink receives PCM audio for playback. Play appends to the playback queue;
// Stop discards everything queued or currently playing.
type Sink interface {
	Play(pcm []byte) error
	Stop() error
	Close() error
}

// Scheduler lays inbound audio buffers out back-to-back: each buffer starts
// where the previous one ends, clamped to be no earlier than now, so
// consecutive frames play without gaps or overlaps.
type Scheduler struct {
	sink       Sink
	sampleRate int
	channels   int
	clock      func() time.Time

	mu        sync.Mutex
	nextStart time.Time
	queued    int
}

// NewScheduler creates a scheduler feeding sink with PCM at the given rate.
func NewScheduler(sink Sink, sampleRate, channels int) *Scheduler {
	return &Scheduler{
		sink:       sink,
		sampleRate: sampleRate,
		channels:   channels,
		clock:      time.Now,
	}
}

// Schedule queues one PCM buffer for playback and returns its start time:
// max(nextStart, now). The cursor advances by the buffer's duration.
func (s *Scheduler) Schedule(pcm []byte) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.nextStart
	if now := s.clock(); start.Before(now) {
		start = now
	}
	s.nextStart = start.Add(s.duration(len(pcm)))
	s.queued++
	return start, s.sink.Play(pcm)
}

// Flush discards every scheduled and playing buffer and resets the cursor,
// so the next buffer starts immediately. Used on server interruption.
func (s *Scheduler) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queued = 0
	s.nextStart = time.Time{}
	return s.sink.Stop()
}

// Queued reports how many buffers have been scheduled since the last flush.
func (s *Scheduler) Queued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queued
}

func (s *Scheduler) duration(byteLen int) time.Duration {
	bytesPerSecond := s.sampleRate * s.channels * 2
	if bytesPerSecond <= 0 {
		return 0
	}
	return time.Duration(int64(byteLen) * int64(time.Second) / int64(bytesPerSecond))
}
