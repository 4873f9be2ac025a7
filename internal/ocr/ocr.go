// Package ocr wraps a text recognition engine behind a small capability
// interface so the receipt pipeline does not depend on any particular OCR
// binding.
package ocr

import (
	"context"
)

// Result is the output of one recognition pass. Confidence is normalized to
// the 0..1 range regardless of what the underlying engine reports.
type Result struct {
	Text       string
	Confidence float64
}

// Recognizer turns an image into text. Implementations must be safe to call
// concurrently; each call acquires and releases its own recognition session.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (Result, error)
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, image []byte) (Result, error)

// Recognize implements Recognizer.
func (f RecognizerFunc) Recognize(ctx context.Context, image []byte) (Result, error) {
	return f(ctx, image)
}
