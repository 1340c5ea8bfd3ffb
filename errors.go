package embedify

import "errors"

// Sentinel errors for library operations.
var (
	// ErrInvalidInput indicates the mdBook payload could not be decoded.
	ErrInvalidInput = errors.New("invalid preprocessor input")

	// ErrConfigNotFound indicates a standalone config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidConfig indicates a setting failed to parse or validate.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidTemplateDir indicates template-dir is not a readable directory.
	ErrInvalidTemplateDir = errors.New("invalid template directory")

	// ErrTemplateNotFound is returned by a TemplateLoader for unknown names.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidTemplateName indicates a template name with path characters.
	ErrInvalidTemplateName = errors.New("invalid template name")
)

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and matches
// both the public sentinel and the original chain with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap exposes the public sentinel first, then the original chain.
func (e *wrappedError) Unwrap() []error {
	return []error{e.sentinel, e.original}
}
