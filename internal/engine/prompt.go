package engine

// LLM prompt templates: data only, no logic.

// Placeholder markers recognized in prompt templates.
const (
	TranscriptMarker = "[[concatenated_transcript]]"
	LanguageMarker   = "[language]"
)

// DefaultPromptTemplate is used when the caller supplies no template.
const DefaultPromptTemplate = `Please provide a summary for the following YouTube video transcript:

[[concatenated_transcript]]

The summary should be structured as follows:
1. A concise 2-sentence summary of the video's main points.
2. A list of the main insights or takeaways presented in the video.
3. An overall sentiment rating of the video's tone towards the main topic, expressed as Positive, Neutral, or Negative.
4. The summary shall be in this language as identified by its short-code: [language].
5. Format your answer in Markdown Syntax.
`

// missingSummaryText replaces a generation reply that carries no text field.
const missingSummaryText = "No summary available"
