package round

import (
	"errors"

	"github.com/Zedonkay/rent/internal/store"
)

var (
	// ErrInvalidSubmission is matched by every *SubmissionError.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrDuplicateSubmitter is returned when the name has already submitted.
	ErrDuplicateSubmitter = store.ErrDuplicateSubmitter

	// ErrRoundFull is returned for a submission after the third.
	ErrRoundFull = store.ErrRoundFull

	// ErrRoundIncomplete is returned by Calculate unless exactly three
	// submissions are present.
	ErrRoundIncomplete = errors.New("round needs exactly 3 submissions")
)

// SubmissionError describes a rejected submission. Message is suitable for
// showing to the submitter.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return "invalid submission: " + e.Message
}

// Unwrap lets errors.Is match ErrInvalidSubmission.
func (e *SubmissionError) Unwrap() error {
	return ErrInvalidSubmission
}

func invalid(msg string) error {
	return &SubmissionError{Message: msg}
}
