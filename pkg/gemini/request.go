package gemini

// Request is the generateContent request body.
// The Gemini REST surface uses camelCase field names.
type Request struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Tools             []Tool            `json:"tools,omitempty"`
	ToolConfig        *ToolConfig       `json:"toolConfig,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Content is an ordered list of parts attributed to a role.
type Content struct {
	Role  string `json:"role,omitempty"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// Part is a single unit of content: text or inline binary data.
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// Blob carries inline binary data as base64 text plus its MIME type.
type Blob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Tool enables a grounding capability on the request.
type Tool struct {
	GoogleSearch *GoogleSearch `json:"googleSearch,omitempty"`
	GoogleMaps   *GoogleMaps   `json:"googleMaps,omitempty"`
}

// GoogleSearch configures web-search grounding.
type GoogleSearch struct{}

// GoogleMaps configures maps grounding.
type GoogleMaps struct{}

// ToolConfig carries per-request tool settings.
type ToolConfig struct {
	RetrievalConfig *RetrievalConfig `json:"retrievalConfig,omitempty"`
}

// RetrievalConfig anchors retrieval-backed tools to a device location.
type RetrievalConfig struct {
	LatLng *LatLng `json:"latLng,omitempty"`
}

// LatLng is a device location in degrees.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GenerationConfig tunes the response.
type GenerationConfig struct {
	Temperature        *float64      `json:"temperature,omitempty"`
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *SpeechConfig `json:"speechConfig,omitempty"`
	ImageConfig        *ImageConfig  `json:"imageConfig,omitempty"`
}

// SpeechConfig selects the synthesis voice.
type SpeechConfig struct {
	VoiceConfig *VoiceConfig `json:"voiceConfig,omitempty"`
}

// VoiceConfig wraps the prebuilt voice selection.
type VoiceConfig struct {
	PrebuiltVoiceConfig *PrebuiltVoiceConfig `json:"prebuiltVoiceConfig,omitempty"`
}

// PrebuiltVoiceConfig names a prebuilt synthesis voice.
type PrebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

// ImageConfig tunes image generation.
type ImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

// UserText builds a single-turn user request from a prompt string.
func UserText(prompt string) []Content {
	return []Content{{Role: "user", Parts: []Part{{Text: prompt}}}}
}

// UserParts builds a single-turn user request from arbitrary parts.
func UserParts(parts ...Part) []Content {
	return []Content{{Role: "user", Parts: parts}}
}

// InlinePart wraps binary data as an inline-data part.
func InlinePart(mimeType string, data string) Part {
	return Part{InlineData: &Blob{MIMEType: mimeType, Data: data}}
}
