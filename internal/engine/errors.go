package engine

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the core can report.
type Kind string

const (
	KindInvalidVideoID        Kind = "InvalidVideoIdentifier"
	KindCaptionsDisabled      Kind = "CaptionsDisabled"
	KindLanguageNotFound      Kind = "LanguageNotFound"
	KindTranscriptUnavailable Kind = "TranscriptUnavailable"
	KindEmptyTranscript       Kind = "EmptyTranscript"
	KindNoModelsAvailable     Kind = "NoModelsAvailable"
	KindGenerationFailed      Kind = "GenerationFailed"
	KindUpstreamUnreachable   Kind = "UpstreamUnreachable"
	KindNoCaptionsAvailable   Kind = "NoCaptionsAvailable"
	KindDirectoryUnavailable  Kind = "DirectoryUnavailable"
)

var kindReasons = map[Kind]string{
	KindInvalidVideoID:        "Invalid YouTube URL or video ID.",
	KindCaptionsDisabled:      "Transcripts are disabled for this video.",
	KindLanguageNotFound:      "Transcript not found for the specified language.",
	KindTranscriptUnavailable: "Could not retrieve transcripts.",
	KindEmptyTranscript:       "no transcript content",
	KindNoModelsAvailable:     "No models are available on the generation service.",
	KindGenerationFailed:      "Error generating summary.",
	KindUpstreamUnreachable:   "Upstream service is unreachable.",
	KindNoCaptionsAvailable:   "No captions are available for this video.",
	KindDirectoryUnavailable:  "Caption directory is unavailable.",
}

// Reason returns the fixed human-readable message for k.
func (k Kind) Reason() string {
	if r, ok := kindReasons[k]; ok {
		return r
	}
	return string(k)
}

// Sentinel conditions reported by a CaptionDirectory implementation.
var (
	ErrCaptionsDisabled = errors.New("captions disabled")
	ErrNoCaptions       = errors.New("no captions found")
	ErrTrackNotFound    = errors.New("caption track not found")
)

// ErrUnreachable marks a network-level fault, as opposed to a well-formed
// error response from an upstream service.
var ErrUnreachable = errors.New("upstream unreachable")

// Error is the typed error returned at every client boundary of the core.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error) *Error {
	e := &Error{Kind: kind, Err: err}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// KindOf returns the Kind carried by err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
