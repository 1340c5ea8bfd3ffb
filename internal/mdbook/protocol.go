package mdbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidInput indicates stdin did not hold a [context, book] pair.
var ErrInvalidInput = errors.New("invalid preprocessor input")

// UnsupportedRenderer is the renderer name this preprocessor refuses.
const UnsupportedRenderer = "not-supported"

// Supports reports whether the preprocessor handles renderer.
func Supports(renderer string) bool {
	return renderer != UnsupportedRenderer
}

// ReadInput decodes the [context, book] pair mdBook writes to stdin.
func ReadInput(r io.Reader) (*Context, *Book, error) {
	var pair []json.RawMessage
	if err := json.NewDecoder(r).Decode(&pair); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(pair) != 2 {
		return nil, nil, fmt.Errorf("%w: expected [context, book], got %d elements", ErrInvalidInput, len(pair))
	}

	var ctx Context
	if err := json.Unmarshal(pair[0], &ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: context: %v", ErrInvalidInput, err)
	}

	var book Book
	if err := json.Unmarshal(pair[1], &book); err != nil {
		return nil, nil, fmt.Errorf("%w: book: %v", ErrInvalidInput, err)
	}

	return &ctx, &book, nil
}

// WriteBook encodes book to w as mdBook expects on stdout.
func WriteBook(w io.Writer, book *Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("encoding book: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing book: %w", err)
	}
	return nil
}
