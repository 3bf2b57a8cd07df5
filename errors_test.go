package studio

import (
	"errors"
	"fmt"
	"testing"

	"github.com/oriel-ai/studio/pkg/gemini"
)

func TestIsInvalidCredential(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{
			"authentication type",
			&gemini.Error{Type: gemini.ErrAuthentication, Message: "API key not valid"},
			true,
		},
		{
			"unknown key message",
			&gemini.Error{Type: gemini.ErrNotFound, Message: "Requested entity was not found."},
			true,
		},
		{
			"wrapped",
			fmt.Errorf("chat: %w", &gemini.Error{Type: gemini.ErrAuthentication, Message: "no"}),
			true,
		},
		{
			"ordinary api error",
			&gemini.Error{Type: gemini.ErrAPI, Message: "internal"},
			false,
		},
		{
			"non-api error",
			errors.New("connection refused"),
			false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsInvalidCredential(tc.err); got != tc.want {
				t.Fatalf("IsInvalidCredential = %v, want %v", got, tc.want)
			}
		})
	}
}
