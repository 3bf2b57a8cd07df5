package gemini

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// Chunk is one increment of a streamed response: a text fragment plus, on
// the final fragment of a grounded answer, the citation list.
type Chunk struct {
	Text      string
	Citations []Citation
}

// EventStream iterates over a streamed generateContent response. Next
// returns io.EOF when the stream is complete. Abandoning the stream and
// calling Close stops it; a stream is never resumable mid-flight.
type EventStream struct {
	reader    *bufio.Reader
	closer    io.Closer
	err       error
	citations []Citation
	finished  bool
}

func newEventStream(body io.ReadCloser) *EventStream {
	return &EventStream{
		reader: bufio.NewReader(body),
		closer: body,
	}
}

// Next returns the next chunk of the stream.
func (s *EventStream) Next() (*Chunk, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.finished {
		return nil, io.EOF
	}

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return s.finish()
			}
			s.err = err
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "" || data == "[DONE]" {
			return s.finish()
		}

		var resp Response
		if err := json.Unmarshal([]byte(data), &resp); err != nil {
			// Skip unparseable chunks.
			continue
		}

		// Grounding metadata may arrive on any chunk; it is surfaced once,
		// attached to the end of the stream.
		if cites := resp.Citations(); len(cites) > 0 {
			s.citations = append(s.citations, cites...)
		}

		text := resp.Text()
		if text == "" {
			continue
		}
		return &Chunk{Text: text}, nil
	}
}

// finish emits the accumulated citations as a final chunk, then io.EOF.
func (s *EventStream) finish() (*Chunk, error) {
	s.finished = true
	if len(s.citations) > 0 {
		chunk := &Chunk{Citations: s.citations}
		s.citations = nil
		return chunk, nil
	}
	return nil, io.EOF
}

// Close releases the underlying connection.
func (s *EventStream) Close() error {
	return s.closer.Close()
}
