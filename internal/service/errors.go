package service

import "errors"

// Request validation errors surfaced synchronously by the study service.
var (
	// ErrInvalidWordCount is returned when a generation request asks for a
	// non-positive number of words.
	ErrInvalidWordCount = errors.New("word count must be positive")

	// ErrInvalidEssayType is returned when a generation request names an
	// unknown essay type.
	ErrInvalidEssayType = errors.New("unknown essay type")

	// ErrInvalidPagination is returned for non-positive page parameters.
	ErrInvalidPagination = errors.New("page and per_page must be positive")
)
