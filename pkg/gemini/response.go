package gemini

import "strings"

// Response is the generateContent response body, shared by the unary and
// streaming surfaces (each SSE chunk carries the same shape).
type Response struct {
	Candidates    []Candidate `json:"candidates"`
	UsageMetadata *Usage      `json:"usageMetadata,omitempty"`
	ModelVersion  string      `json:"modelVersion,omitempty"`
}

// Candidate is a single model answer.
type Candidate struct {
	Content           Content            `json:"content"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// Usage reports token counts.
type Usage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// GroundingMetadata carries the retrieval sources backing a grounded answer.
type GroundingMetadata struct {
	WebSearchQueries []string         `json:"webSearchQueries,omitempty"`
	GroundingChunks  []GroundingChunk `json:"groundingChunks,omitempty"`
}

// GroundingChunk is one retrieval source.
type GroundingChunk struct {
	Web *WebSource `json:"web,omitempty"`
}

// WebSource identifies a web citation.
type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Citation is a UI-facing grounding source. Order matches the relevance
// order returned by the API; it is never re-sorted.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Text concatenates all text parts of the first candidate.
func (r *Response) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// InlineData returns the first inline-data blob of the first candidate whose
// MIME type starts with mimePrefix, or nil when none is present.
func (r *Response) InlineData(mimePrefix string) *Blob {
	if r == nil || len(r.Candidates) == 0 {
		return nil
	}
	for _, part := range r.Candidates[0].Content.Parts {
		if part.InlineData != nil && strings.HasPrefix(part.InlineData.MIMEType, mimePrefix) {
			return part.InlineData
		}
	}
	return nil
}

// Citations flattens the first candidate's grounding chunks into citations,
// preserving API order.
func (r *Response) Citations() []Citation {
	if r == nil || len(r.Candidates) == 0 {
		return nil
	}
	meta := r.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}
	var out []Citation
	for _, chunk := range meta.GroundingChunks {
		if chunk.Web != nil {
			out = append(out, Citation{URI: chunk.Web.URI, Title: chunk.Web.Title})
		}
	}
	return out
}
