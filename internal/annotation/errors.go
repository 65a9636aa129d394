package annotation

import (
	"fmt"
)

// FormatError reports a malformed input record.
type FormatError struct {
	Line    int    // 1-based line number, 0 if not read from a file
	Field   string // Offending field, empty if the whole record is bad
	Message string
	Err     error // Underlying cause, if any
}

func (e *FormatError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("format error at line %d: %s", e.Line, msg)
	}
	return "format error: " + msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// RangeError reports a transcript coordinate query outside the transcript.
type RangeError struct {
	TranscriptID string
	TStart       int64
	TEnd         int64
	Length       int64
	Message      string // Overrides the default message when set
}

func (e *RangeError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("transcript %s: %s", e.TranscriptID, e.Message)
	}
	return fmt.Sprintf("transcript %s: range (%d, %d] outside 0 < start < end <= %d",
		e.TranscriptID, e.TStart, e.TEnd, e.Length)
}

// LookupError reports an unknown gene symbol or transcript id.
type LookupError struct {
	Kind string // "gene" or "transcript"
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// withLine sets the line number on a FormatError, leaving other errors as is.
func withLine(err error, line int) error {
	if fe, ok := err.(*FormatError); ok && fe.Line == 0 {
		fe.Line = line
	}
	return err
}
