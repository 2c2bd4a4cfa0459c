package scoring

import (
	"errors"
	"strings"
)

var (
	ErrInvalidResponses   = errors.New("invalid responses")
	ErrNoSubmissions      = errors.New("no submissions to score")
	ErrNothingToSummarize = errors.New("no completed team reports to summarize")
	ErrMismatchedInput    = errors.New("personal and warning-sign scores differ in length")
)

// IncompleteResponsesError lists the questions that keep a response set from being scored
type IncompleteResponsesError struct {
	Missing []string `json:"missingQuestions"`
	Invalid []string `json:"invalidQuestions,omitempty"` // answers outside 1-5
	Unknown []string `json:"unknownQuestions,omitempty"` // keys not in the instrument
}

func (e *IncompleteResponsesError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "out of range "+strings.Join(e.Invalid, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown "+strings.Join(e.Unknown, ", "))
	}
	return ErrInvalidResponses.Error() + ": " + strings.Join(parts, "; ")
}

func (e *IncompleteResponsesError) Unwrap() error {
	return ErrInvalidResponses
}
