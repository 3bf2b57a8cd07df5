package studio

import (
	"context"
	"time"

	"github.com/oriel-ai/studio/pkg/audio"
	"github.com/oriel-ai/studio/pkg/gemini"
)

// DefaultPollInterval is the fixed delay between operation polls.
const DefaultPollInterval = 10 * time.Second

// VideosService submits asynchronous video generation jobs.
type VideosService struct {
	client *Client

	// PollInterval overrides the fixed poll delay (tests).
	PollInterval time.Duration
}

// VideoRequest configures video generation, seeded by text and optionally a
// still image.
type VideoRequest struct {
	Prompt         string
	Image          *Attachment
	AspectRatio    string
	NegativePrompt string
	Model          string // DefaultVideoModel when empty
}

// Progress is one snapshot of a running video job. The progress value is a
// client-side heuristic, not server telemetry: it starts at 10, grows by 5
// per poll up to 95, and jumps to 100 only on a terminal state.
type Progress struct {
	Progress  int
	Message   string
	ResultURI string
	Err       error
}

// Terminal reports whether this is the job's final snapshot.
func (p Progress) Terminal() bool {
	return p.Progress == 100
}

// VideoJob is a lazy poller over a server-side operation. Each Next call
// performs at most one poll; an abandoned job simply stops polling. There
// is no overall timeout: the job runs until the server finishes or a fetch
// fails.
type VideoJob struct {
	fetch    func(ctx context.Context) (*gemini.Operation, error)
	interval time.Duration

	progress int
	started  bool
	terminal bool
}

// Generate submits the job and returns its poller. No polling happens until
// Next is called.
func (s *VideosService) Generate(ctx context.Context, req *VideoRequest) (*VideoJob, error) {
	model := req.Model
	if model == "" {
		model = DefaultVideoModel
	}

	instance := gemini.VideoInstance{Prompt: req.Prompt}
	if req.Image != nil {
		instance.Image = &gemini.VideoImage{
			BytesBase64Encoded: audio.EncodeBase64(req.Image.Data),
			MIMEType:           req.Image.MIMEType,
		}
	}
	var params *gemini.VideoParameters
	if req.AspectRatio != "" || req.NegativePrompt != "" {
		params = &gemini.VideoParameters{
			AspectRatio:    req.AspectRatio,
			NegativePrompt: req.NegativePrompt,
		}
	}

	op, err := s.client.provider.StartVideoGeneration(ctx, model, instance, params)
	if err != nil {
		return nil, err
	}

	interval := s.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	provider := s.client.provider
	return &VideoJob{
		fetch: func(ctx context.Context) (*gemini.Operation, error) {
			return provider.GetOperation(ctx, op.Name)
		},
		interval: interval,
	}, nil
}

// Next produces the following progress snapshot, sleeping the poll interval
// and fetching the operation once per call. It returns ok=false after the
// terminal snapshot has been delivered. Progress values are monotonically
// non-decreasing and stay at or below 95 until a terminal state.
func (j *VideoJob) Next(ctx context.Context) (Progress, bool) {
	if j.terminal {
		return Progress{}, false
	}

	if !j.started {
		j.started = true
		j.progress = 10
		return Progress{Progress: 10, Message: "started"}, true
	}

	select {
	case <-ctx.Done():
		j.terminal = true
		return Progress{Progress: 100, Err: ctx.Err()}, true
	case <-time.After(j.interval):
	}

	// A fetch error is terminal; the fetch is never retried.
	op, err := j.fetch(ctx)
	if err != nil {
		j.terminal = true
		return Progress{Progress: 100, Err: err}, true
	}

	if !op.Done {
		if j.progress < 95 {
			j.progress += 5
		}
		return Progress{Progress: j.progress, Message: "generating"}, true
	}

	j.terminal = true
	if op.Error != nil {
		return Progress{Progress: 100, Err: op.Error}, true
	}
	uri := op.VideoURI()
	if uri == "" {
		return Progress{Progress: 100, Err: ErrNoResult}, true
	}
	return Progress{Progress: 100, Message: "done", ResultURI: uri}, true
}
