// Package device binds the live session audio interfaces to real hardware:
// microphone capture through malgo and speaker playback through oto.
package device

import (
	"fmt"
	"io"
	"sync"

	"github.com/gen2brain/malgo"
)

// Microphone captures 16-bit signed little-endian PCM from the default
// capture device. Read blocks until samples are available; after Close it
// returns io.EOF. It implements live.Source.
type Microphone struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device

	mu     sync.Mutex
	cond   *sync.Cond
	buf    []byte
	closed bool
}

// OpenMicrophone starts capture at the given rate, mono. The hardware starts
// streaming immediately; samples accumulate until read.
func OpenMicrophone(sampleRate int) (*Microphone, error) {
	ctxConfig := malgo.ContextConfig{}
	ctxConfig.ThreadPriority = malgo.ThreadPriorityRealtime

	ctx, err := malgo.InitContext(nil, ctxConfig, nil)
	if err != nil {
		return nil, fmt.Errorf("device: init audio context: %w", err)
	}

	m := &Microphone{
		ctx: ctx,
		buf: make([]byte, 0, sampleRate*2),
	}
	m.cond = sync.NewCond(&m.mu)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = 1
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.PeriodSizeInMilliseconds = 20

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			m.mu.Lock()
			if !m.closed {
				m.buf = append(m.buf, input...)
			}
			m.mu.Unlock()
			m.cond.Signal()
		},
	})
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("device: init microphone: %w", err)
	}
	m.device = device

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("device: start microphone: %w", err)
	}
	return m, nil
}

// Read copies captured PCM into p, blocking until samples arrive.
func (m *Microphone) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.buf) == 0 && !m.closed {
		m.cond.Wait()
	}
	if m.closed {
		return 0, io.EOF
	}

	n := copy(p, m.buf)
	m.buf = m.buf[n:]
	return n, nil
}

// Close stops the hardware and wakes any blocked Read. Idempotent.
func (m *Microphone) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.cond.Broadcast()
	m.mu.Unlock()

	if m.device != nil {
		_ = m.device.Stop()
		m.device.Uninit()
	}
	if m.ctx != nil {
		_ = m.ctx.Uninit()
		m.ctx.Free()
	}
	return nil
}
