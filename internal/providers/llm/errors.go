package llm

import "errors"

// GenerationError marks a failed or timed-out call to the generation
// backend. The upstream message is preserved, not masked; callers decide
// whether to retry.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
