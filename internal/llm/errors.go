package llm

import "errors"

var (
	// ErrInvalidInput indicates empty or unusable chain input.
	ErrInvalidInput = errors.New("invalid chain input")

	// ErrProcessing indicates the model call or output handling failed.
	ErrProcessing = errors.New("processing failed")
)
