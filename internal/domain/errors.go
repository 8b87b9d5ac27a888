package domain

import "errors"

var (
	// ErrCourseNotFound signals a missing course.
	ErrCourseNotFound = errors.New("course not found")
	// ErrUploadNotFound signals a missing upload.
	ErrUploadNotFound = errors.New("upload not found")
	// ErrInvalidCourse signals a course failing validation.
	ErrInvalidCourse = errors.New("invalid course")
	// ErrInvalidTaxonomy signals a taxonomy failing validation.
	ErrInvalidTaxonomy = errors.New("invalid taxonomy")
	// ErrEmptyQuery signals a search with no query text.
	ErrEmptyQuery = errors.New("empty query")
	// ErrUnsupportedFile signals an upload with an unsupported content type.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrAIProviderError signals a generative-language provider failure.
	ErrAIProviderError = errors.New("ai provider error")
)
