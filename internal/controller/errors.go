package controller

import "errors"

var (
	ErrEmptyPrompt = errors.New("please enter a prompt")
	ErrBusy        = errors.New("a generation is already in progress")
)

// ValidationError blocks an operation before it starts. It never leaves a
// trace in the history or the loading state.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
