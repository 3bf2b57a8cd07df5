package live

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/oriel-ai/studio/pkg/audio"
	"github.com/oriel-ai/studio/pkg/gemini"
)

// Default audio framing: capture at 16 kHz mono in 4096-sample blocks,
// play back at 24 kHz mono.
const (
	DefaultCaptureRate   = 16000
	DefaultPlaybackRate  = 24000
	DefaultCaptureBlock  = 4096
	captureMIMEType      = "audio/pcm;rate=16000"
	defaultEventCapacity = 64
)

// State is the session lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateClosed // terminal, reachable from any state
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// MicrophoneError reports a capture permission or device failure. It fails
// the whole open; a session never reaches the open state without capture.
type MicrophoneError struct {
	Err error
}

func (e *MicrophoneError) Error() string {
	return fmt.Sprintf("live: microphone: %v", e.Err)
}

func (e *MicrophoneError) Unwrap() error { return e.Err }

// Source provides captured microphone PCM (16-bit signed little-endian).
// Read blocks until data is available.
type Source interface {
	io.Reader
	Close() error
}

// Conn is the remote side of a live session.
type Conn interface {
	SendMedia(mimeType string, data []byte) error
	Receive() (*gemini.LiveServerMessage, error)
	Close() error
}

// EventType tags session events.
type EventType int

const (
	// EventMessage is a non-audio server signal (turn complete, go away).
	EventMessage EventType = iota
	// EventError is a capture or remote failure, forwarded verbatim.
	EventError
	// EventClosed is the final event of every session.
	EventClosed
)

// Event is the tagged union delivered on Session.Events. Delivery order
// within a session matches server delivery order.
type Event struct {
	Type    EventType
	Message string
	Err     error
}

// Config assembles a session from its collaborators.
type Config struct {
	// OpenSource acquires the microphone. Failures surface as
	// *MicrophoneError and abort the open.
	OpenSource func() (Source, error)

	// Dial opens the remote session once the microphone is held.
	Dial func(ctx context.Context) (Conn, error)

	// Sink plays returned audio. Owned by the session after Open.
	Sink Sink

	// CaptureBlock is the number of samples forwarded per frame
	// (DefaultCaptureBlock when zero).
	CaptureBlock int

	// PlaybackRate is the inbound PCM rate (DefaultPlaybackRate when zero).
	PlaybackRate int

	Logger *slog.Logger
}

// Session is a handle to an open live conversation. Its only operation is
// Close, which releases every held resource exactly once.
type Session struct {
	conn      Conn
	source    Source
	sink      Sink
	scheduler *Scheduler
	logger    *slog.Logger

	state atomic.Int32

	eventsMu     sync.Mutex
	events       chan Event
	eventsClosed bool

	closeOnce sync.Once
	closing   atomic.Bool
	done      chan struct{}
}

// Open acquires the microphone, dials the remote session, and starts the
// capture and receive loops. On any failure every resource acquired so far
// is released before returning.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.CaptureBlock <= 0 {
		cfg.CaptureBlock = DefaultCaptureBlock
	}
	if cfg.PlaybackRate <= 0 {
		cfg.PlaybackRate = DefaultPlaybackRate
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Session{
		sink:   cfg.Sink,
		logger: cfg.Logger,
		events: make(chan Event, defaultEventCapacity),
		done:   make(chan struct{}),
	}
	s.state.Store(int32(StateConnecting))

	source, err := cfg.OpenSource()
	if err != nil {
		s.state.Store(int32(StateClosed))
		return nil, &MicrophoneError{Err: err}
	}
	s.source = source

	conn, err := cfg.Dial(ctx)
	if err != nil {
		_ = source.Close()
		if cfg.Sink != nil {
			_ = cfg.Sink.Close()
		}
		s.state.Store(int32(StateClosed))
		return nil, err
	}
	s.conn = conn
	s.scheduler = NewScheduler(cfg.Sink, cfg.PlaybackRate, 1)
	s.state.Store(int32(StateOpen))

	go s.captureLoop(cfg.CaptureBlock)
	go s.receiveLoop()
	return s, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Events yields session events in delivery order. The channel is closed
// after the final Closed event.
func (s *Session) Events() <-chan Event {
	return s.events
}

// captureLoop forwards fixed-size microphone blocks to the remote session.
// There is never more than one capture pipeline per session.
func (s *Session) captureLoop(blockSamples int) {
	buf := make([]byte, blockSamples*2)
	for {
		if s.closing.Load() {
			return
		}
		if _, err := io.ReadFull(s.source, buf); err != nil {
			if !s.closing.Load() {
				s.emit(Event{Type: EventError, Err: &MicrophoneError{Err: err}})
			}
			return
		}
		frame := make([]byte, len(buf))
		copy(frame, buf)
		if err := s.conn.SendMedia(captureMIMEType, frame); err != nil {
			if !s.closing.Load() {
				s.emit(Event{Type: EventError, Err: err})
			}
			return
		}
	}
}

// receiveLoop handles inbound frames in delivery order; each frame is fully
// decoded and scheduled before the next is read.
func (s *Session) receiveLoop() {
	defer func() {
		s.emit(Event{Type: EventClosed})
		s.eventsMu.Lock()
		s.eventsClosed = true
		close(s.events)
		s.eventsMu.Unlock()
		close(s.done)
	}()

	for {
		msg, err := s.conn.Receive()
		if err != nil {
			if err == gemini.ErrLiveClosed || s.closing.Load() {
				return
			}
			s.emit(Event{Type: EventError, Err: err})
			return
		}
		if err := s.handle(msg); err != nil {
			s.emit(Event{Type: EventError, Err: err})
			return
		}
	}
}

func (s *Session) handle(msg *gemini.LiveServerMessage) error {
	if msg.GoAway != nil {
		s.emit(Event{Type: EventMessage, Message: "server disconnecting"})
		return nil
	}
	content := msg.ServerContent
	if content == nil {
		return nil
	}

	// An interruption discards every scheduled buffer before any audio from
	// the new turn is handled, so turns never overlap.
	if content.Interrupted {
		if err := s.scheduler.Flush(); err != nil {
			return err
		}
		s.emit(Event{Type: EventMessage, Message: "interrupted"})
	}

	pcm, err := content.AudioData()
	if err != nil {
		return err
	}
	if len(pcm) > 0 {
		start, err := s.scheduler.Schedule(pcm)
		if err != nil {
			return err
		}
		s.logger.Debug("scheduled audio frame",
			"bytes", len(pcm), "rms", audio.RMSEnergy(pcm), "start", start)
	}

	if content.TurnComplete {
		s.emit(Event{Type: EventMessage, Message: "turn complete"})
	}
	return nil
}

func (s *Session) emit(ev Event) {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	if s.eventsClosed {
		return
	}
	select {
	case s.events <- ev:
	default:
		s.logger.Warn("live event dropped", "type", ev.Type)
	}
}

// Close releases the capture pipeline, the playback sink, and the remote
// session. It is idempotent: calling it any number of times, on any exit
// path, releases each resource exactly once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closing.Store(true)
		s.state.Store(int32(StateClosed))
		if s.source != nil {
			_ = s.source.Close()
		}
		if s.conn != nil {
			_ = s.conn.Close()
		}
		if s.sink != nil {
			_ = s.sink.Close()
		}
	})
	return nil
}
