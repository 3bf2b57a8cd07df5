package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// LiveSetup is the first client frame of a bidirectional live session.
type LiveSetup struct {
	Model             string            `json:"model"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
}

// RealtimeInput carries streamed client media frames.
type RealtimeInput struct {
	MediaChunks []Blob `json:"mediaChunks,omitempty"`
}

// liveClientMessage is the envelope for client-to-server live frames.
type liveClientMessage struct {
	Setup         *LiveSetup     `json:"setup,omitempty"`
	RealtimeInput *RealtimeInput `json:"realtimeInput,omitempty"`
}

// LiveServerMessage is the envelope for server-to-client live frames.
type LiveServerMessage struct {
	SetupComplete *struct{}      `json:"setupComplete,omitempty"`
	ServerContent *ServerContent `json:"serverContent,omitempty"`
	GoAway        *GoAway        `json:"goAway,omitempty"`
}

// ServerContent is incremental model output within a live session.
type ServerContent struct {
	ModelTurn    *Content `json:"modelTurn,omitempty"`
	TurnComplete bool     `json:"turnComplete,omitempty"`
	Interrupted  bool     `json:"interrupted,omitempty"`
}

// GoAway announces an imminent server-side disconnect.
type GoAway struct {
	TimeLeft string `json:"timeLeft,omitempty"`
}

// AudioData extracts the concatenated inline audio payload of a server
// content frame, decoding each chunk from base64.
func (c *ServerContent) AudioData() ([]byte, error) {
	if c == nil || c.ModelTurn == nil {
		return nil, nil
	}
	var out []byte
	for _, part := range c.ModelTurn.Parts {
		if part.InlineData == nil {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("decode audio chunk: %w", err)
		}
		out = append(out, data...)
	}
	return out, nil
}

// LiveConn is an open bidirectional live session. Writes are serialized;
// Receive must be called from a single goroutine.
type LiveConn struct {
	conn *websocket.Conn

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// DialLive opens a live session: it dials the WebSocket endpoint, sends the
// setup frame, and waits for the server's setup acknowledgement.
func (p *Provider) DialLive(ctx context.Context, setup *LiveSetup) (*LiveConn, error) {
	url := fmt.Sprintf("%s?key=%s", p.liveURL, p.apiKey)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			return nil, parseError(resp)
		}
		return nil, fmt.Errorf("dial live endpoint: %w", err)
	}

	lc := &LiveConn{conn: conn}
	if err := lc.sendJSON(liveClientMessage{Setup: setup}); err != nil {
		_ = lc.Close()
		return nil, fmt.Errorf("send setup: %w", err)
	}

	ack, err := lc.Receive()
	if err != nil {
		_ = lc.Close()
		return nil, fmt.Errorf("await setup ack: %w", err)
	}
	if ack.SetupComplete == nil {
		_ = lc.Close()
		return nil, fmt.Errorf("live session rejected before setup completed")
	}
	return lc, nil
}

// SendMedia forwards one captured media frame as base64-framed realtime
// input.
func (c *LiveConn) SendMedia(mimeType string, data []byte) error {
	return c.sendJSON(liveClientMessage{
		RealtimeInput: &RealtimeInput{
			MediaChunks: []Blob{{
				MIMEType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(data),
			}},
		},
	})
}

// Receive blocks for the next server frame. A normal remote closure is
// reported as ErrLiveClosed.
func (c *LiveConn) Receive() (*LiveServerMessage, error) {
	var msg LiveServerMessage
	if err := c.conn.ReadJSON(&msg); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, ErrLiveClosed
		}
		return nil, err
	}
	return &msg, nil
}

// ErrLiveClosed reports a normal remote close of a live session.
var ErrLiveClosed = &Error{Type: ErrProvider, Message: "live session closed by server"}

func (c *LiveConn) sendJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// Close shuts the session down. It is idempotent: the close handshake and
// the connection teardown run exactly once.
func (c *LiveConn) Close() error {
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(2*time.Second))
		c.writeMu.Unlock()
		_ = c.conn.Close()
	})
	return nil
}
