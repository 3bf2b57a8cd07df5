package live

import (
	"sync"
	"testing"
	"time"
)

// recordingSink records Play/Stop/Close calls.
type recordingSink struct {
	mu     sync.Mutex
	played [][]byte
	stops  int
	closes int
}

func (s *recordingSink) Play(pcm []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(pcm))
	copy(buf, pcm)
	s.played = append(s.played, buf)
	return nil
}

func (s *recordingSink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return nil
}

func (s *recordingSink) snapshot() (played int, stops, closes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.played), s.stops, s.closes
}

func TestSchedulerBackToBack(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, 24000, 1)
	now := time.Unix(100, 0)
	s.clock = func() time.Time { return now }

	// 4800 bytes at 24kHz mono 16-bit is exactly 100ms.
	buf := make([]byte, 4800)

	first, err := s.Schedule(buf)
	if err != nil {
		t.Fatalf("Schedule error = %v", err)
	}
	if !first.Equal(now) {
		t.Fatalf("first start = %v, want now", first)
	}

	second, err := s.Schedule(buf)
	if err != nil {
		t.Fatalf("Schedule error = %v", err)
	}
	if want := now.Add(100 * time.Millisecond); !second.Equal(want) {
		t.Fatalf("second start = %v, want %v (first start + duration)", second, want)
	}

	third, _ := s.Schedule(buf)
	if want := now.Add(200 * time.Millisecond); !third.Equal(want) {
		t.Fatalf("third start = %v, want %v", third, want)
	}
}

func TestSchedulerClampsToNow(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, 24000, 1)
	now := time.Unix(100, 0)
	s.clock = func() time.Time { return now }

	if _, err := s.Schedule(make([]byte, 480)); err != nil { // 10ms
		t.Fatalf("Schedule error = %v", err)
	}

	// The cursor (now+10ms) is already in the past by the next frame.
	now = now.Add(time.Second)
	start, err := s.Schedule(make([]byte, 480))
	if err != nil {
		t.Fatalf("Schedule error = %v", err)
	}
	if !start.Equal(now) {
		t.Fatalf("start = %v, want clamped to now %v", start, now)
	}
}

func TestSchedulerFlushResetsCursor(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, 24000, 1)
	now := time.Unix(100, 0)
	s.clock = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		if _, err := s.Schedule(make([]byte, 4800)); err != nil {
			t.Fatalf("Schedule error = %v", err)
		}
	}
	if s.Queued() != 5 {
		t.Fatalf("queued = %d, want 5", s.Queued())
	}

	if err := s.Flush(); err != nil {
		t.Fatalf("Flush error = %v", err)
	}
	if s.Queued() != 0 {
		t.Fatalf("queued after flush = %d, want 0", s.Queued())
	}
	if _, stops, _ := sink.snapshot(); stops != 1 {
		t.Fatalf("sink stops = %d, want 1", stops)
	}

	// The next buffer starts at now, not after the discarded schedule.
	start, err := s.Schedule(make([]byte, 4800))
	if err != nil {
		t.Fatalf("Schedule error = %v", err)
	}
	if !start.Equal(now) {
		t.Fatalf("start after flush = %v, want now %v", start, now)
	}
}
