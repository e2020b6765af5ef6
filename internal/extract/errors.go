package extract

import "errors"

var (
	// ErrTooLarge indicates the upload exceeds the size cap.
	ErrTooLarge = errors.New("file size exceeds limit")

	// ErrEmptyFile indicates the upload carried no content.
	ErrEmptyFile = errors.New("uploaded file is empty")

	// ErrUnsupportedType indicates the declared or detected type is not handled.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrParse indicates the file matched a supported type but could not be read.
	ErrParse = errors.New("could not parse file")
)
