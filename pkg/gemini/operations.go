package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// VideoInstance seeds a video generation request with a prompt and an
// optional still image.
type VideoInstance struct {
	Prompt string      `json:"prompt"`
	Image  *VideoImage `json:"image,omitempty"`
}

// VideoImage is an inline image seed for video generation.
type VideoImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MIMEType           string `json:"mimeType"`
}

// VideoParameters tunes video generation.
type VideoParameters struct {
	AspectRatio    string `json:"aspectRatio,omitempty"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
}

// videoRequest is the predictLongRunning request body.
type videoRequest struct {
	Instances  []VideoInstance  `json:"instances"`
	Parameters *VideoParameters `json:"parameters,omitempty"`
}

// Operation is an opaque handle to a server-side long-running job. It must
// be re-fetched with GetOperation until Done is reported.
type Operation struct {
	Name     string             `json:"name"`
	Done     bool               `json:"done"`
	Error    *OperationError    `json:"error,omitempty"`
	Response *operationResponse `json:"response,omitempty"`
	Metadata map[string]any     `json:"metadata,omitempty"`
}

// OperationError is the terminal failure reported by a long-running job.
type OperationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("gemini: operation failed: %s (code %d)", e.Message, e.Code)
}

type operationResponse struct {
	GenerateVideoResponse *generateVideoResponse `json:"generateVideoResponse,omitempty"`
}

type generateVideoResponse struct {
	GeneratedSamples []generatedSample `json:"generatedSamples,omitempty"`
}

type generatedSample struct {
	Video *videoResource `json:"video,omitempty"`
}

type videoResource struct {
	URI string `json:"uri,omitempty"`
}

// VideoURI returns the result resource URI of a completed video operation,
// or "" when no result was produced.
func (op *Operation) VideoURI() string {
	if op == nil || op.Response == nil || op.Response.GenerateVideoResponse == nil {
		return ""
	}
	for _, sample := range op.Response.GenerateVideoResponse.GeneratedSamples {
		if sample.Video != nil && sample.Video.URI != "" {
			return sample.Video.URI
		}
	}
	return ""
}

// StartVideoGeneration submits an asynchronous video generation job and
// returns its operation handle.
func (p *Provider) StartVideoGeneration(ctx context.Context, model string, instance VideoInstance, params *VideoParameters) (*Operation, error) {
	url := fmt.Sprintf("%s/models/%s:predictLongRunning", p.baseURL, model)
	body, err := p.post(ctx, url, &videoRequest{
		Instances:  []VideoInstance{instance},
		Parameters: params,
	})
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return decodeOperation(body)
}

// GetOperation re-fetches a long-running operation by name.
func (p *Provider) GetOperation(ctx context.Context, name string) (*Operation, error) {
	var op Operation
	if err := p.get(ctx, fmt.Sprintf("%s/%s", p.baseURL, name), &op); err != nil {
		return nil, err
	}
	return &op, nil
}

func decodeOperation(body io.Reader) (*Operation, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var op Operation
	if err := json.Unmarshal(raw, &op); err != nil {
		return nil, fmt.Errorf("decode operation: %w", err)
	}
	return &op, nil
}
