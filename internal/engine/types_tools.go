package engine

// --- MCP tool inputs and outputs ---

type VideoSummaryInput struct {
	Video         string `json:"video" jsonschema:"YouTube URL or 11-character video ID (e.g. https://youtu.be/dQw4w9WgXcQ)" validate:"required,max=2048"`
	Language      string `json:"language,omitempty" jsonschema:"Caption language code, exact match (default: en)" validate:"omitempty,max=16"`
	Model         string `json:"model,omitempty" jsonschema:"Model name; when empty the server picks one from the generation service" validate:"omitempty,max=256"`
	Prompt        string `json:"prompt,omitempty" jsonschema:"Custom prompt template; [[concatenated_transcript]] and [language] are substituted"`
	PromptName    string `json:"prompt_name,omitempty" jsonschema:"Named template from the server prompt file (see generation_models)" validate:"omitempty,max=64"`
	GenerationURL string `json:"generation_url,omitempty" jsonschema:"Generation service base URL for this call only (default: server setting)" validate:"omitempty,url"`
}

// VideoSummaryOutput mirrors an Outcome: on failure Error, Stage and Kind are
// set and the success fields are empty.
type VideoSummaryOutput struct {
	VideoID    string `json:"video_id,omitempty"`
	Language   string `json:"language,omitempty"`
	Model      string `json:"model,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Error      string `json:"error,omitempty"`
	Stage      Stage  `json:"stage,omitempty"`
	Kind       Kind   `json:"kind,omitempty"`
	Detail     string `json:"detail,omitempty"`
	RequestID  string `json:"request_id"`
}

type VideoTranscriptInput struct {
	Video    string `json:"video" jsonschema:"YouTube URL or 11-character video ID" validate:"required,max=2048"`
	Language string `json:"language,omitempty" jsonschema:"Caption language code, exact match (default: en)" validate:"omitempty,max=16"`
}

type VideoMetadataInput struct {
	Video string `json:"video" jsonschema:"YouTube URL or 11-character video ID" validate:"required,max=2048"`
}

// VideoMetadataOutput carries VideoInfo fields plus the inline failure fields.
type VideoMetadataOutput struct {
	VideoID      string         `json:"video_id,omitempty"`
	Title        string         `json:"title,omitempty"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty"`
	Languages    []CaptionTrack `json:"languages"`
	Error        string         `json:"error,omitempty"`
	Stage        Stage          `json:"stage,omitempty"`
	Kind         Kind           `json:"kind,omitempty"`
	RequestID    string         `json:"request_id"`
}

type GenerationInput struct {
	GenerationURL string `json:"generation_url,omitempty" jsonschema:"Generation service base URL (default: server setting)" validate:"omitempty,url"`
}

type GenerationModelsOutput struct {
	Backend  string   `json:"backend"`
	Models   []string `json:"models"`
	Default  string   `json:"default,omitempty"`
	Prompts  []string `json:"prompts,omitempty"`
	Error    string   `json:"error,omitempty"`
	Kind     Kind     `json:"kind,omitempty"`
	Location string   `json:"location"`
}

type GenerationHealthOutput struct {
	Healthy  bool   `json:"healthy"`
	Backend  string `json:"backend"`
	Location string `json:"location"`
	Models   int    `json:"models"`
	Error    string `json:"error,omitempty"`
}
