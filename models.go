package studio

import (
	"context"

	"github.com/oriel-ai/studio/pkg/gemini"
)

// Model describes one available model.
type Model = gemini.Model

// ModelsService lists the models available to the credential.
type ModelsService struct {
	client *Client
}

// List returns every available model, walking pagination to the end.
func (s *ModelsService) List(ctx context.Context) ([]Model, error) {
	return s.client.provider.ListModels(ctx)
}
