package convert

import "errors"

var (
	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable indicates a model pipeline was not initialized.
	ErrUnavailable = errors.New("processing service unavailable")

	// ErrStorage indicates the PDF could not be uploaded or recorded.
	ErrStorage = errors.New("storage failed")
)
