package studio

import (
	"errors"
	"strings"

	"github.com/oriel-ai/studio/pkg/gemini"
)

// Sentinel errors for remote calls that succeed but carry no usable payload.
var (
	// ErrNoImage: an image edit or generation returned no image part.
	ErrNoImage = errors.New("studio: response contains no image payload")

	// ErrNoAudio: a speech synthesis call returned no audio part.
	ErrNoAudio = errors.New("studio: response contains no audio payload")

	// ErrNoResult: a long-running operation completed without a result.
	ErrNoResult = errors.New("studio: no result produced")
)

// IsInvalidCredential reports whether err indicates an invalid or missing
// API credential, so a front-end can prompt for a new key. Besides
// authentication error types this matches the "entity was not found"
// message substring, which the API returns for unknown keys instead of a
// structured code.
func IsInvalidCredential(err error) bool {
	var apiErr *gemini.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Type == gemini.ErrAuthentication {
		return true
	}
	return strings.Contains(apiErr.Message, "entity was not found")
}
