package quiz

import "errors"

var (
	ErrEmptySet                = errors.New("flashcard set is empty")
	ErrInsufficientDistractors = errors.New("not enough distinct answers to build choices")
	ErrInvalidInput            = errors.New("invalid answer")
	ErrSessionNotInProgress    = errors.New("quiz session is not in progress")
	ErrSessionNotFinished      = errors.New("quiz session is not finished")
	ErrInvalidState            = errors.New("quiz session state is inconsistent")
)

// generationError carries a choice generation failure restored from a
// serialized state.
type generationError struct {
	msg string
}

func (e *generationError) Error() string {
	return e.msg
}

func (e *generationError) Unwrap() error {
	return ErrInsufficientDistractors
}
