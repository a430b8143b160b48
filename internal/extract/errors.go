package extract

import "errors"

var (
	// ErrUnsupportedType is returned for file types the extractor cannot read
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrEmptyDocument is returned when extraction found no text
	ErrEmptyDocument = errors.New("document contains no extractable text")

	// ErrFileTooLarge is returned when the upload exceeds the size cap
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")
)
