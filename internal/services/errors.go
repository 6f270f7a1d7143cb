package services

import "fmt"

// MissingInputError reports a required document or text that was not supplied.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input: %s", e.Field)
}

// ExtractionError wraps any parser, rasterizer or OCR failure. No partial
// text accompanies it.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract text: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// InvalidInputError reports text the scorer cannot work with.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}
