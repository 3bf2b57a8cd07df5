package gemini

import (
	"context"
	"fmt"
)

// Model describes one available model.
type Model struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName,omitempty"`
	Description                string   `json:"description,omitempty"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods,omitempty"`
}

type modelList struct {
	Models        []Model `json:"models"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}

// ListModels returns every model visible to the credential, following
// pagination to the end.
func (p *Provider) ListModels(ctx context.Context) ([]Model, error) {
	var out []Model
	token := ""
	for {
		url := fmt.Sprintf("%s/models?pageSize=100", p.baseURL)
		if token != "" {
			url += "&pageToken=" + token
		}
		var page modelList
		if err := p.get(ctx, url, &page); err != nil {
			return nil, err
		}
		out = append(out, page.Models...)
		if page.NextPageToken == "" {
			return out, nil
		}
		token = page.NextPageToken
	}
}
