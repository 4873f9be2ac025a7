package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguages are the dictionaries loaded for receipt recognition:
// Indonesian first, English as the fallback for imported product names.
var DefaultLanguages = []string{"ind", "eng"}

// TesseractRecognizer is a Recognizer backed by a local Tesseract
// installation via gosseract.
//
// A fresh client is created per call and closed unconditionally before
// returning. Tesseract sessions hold native memory and are not safe to share
// across goroutines, so the session never outlives the call.
type TesseractRecognizer struct {
	languages []string
}

// NewTesseractRecognizer creates a recognizer for the given language
// dictionaries, falling back to DefaultLanguages when none are given.
func NewTesseractRecognizer(languages ...string) *TesseractRecognizer {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &TesseractRecognizer{languages: languages}
}

// Recognize implements Recognizer. The returned confidence is the mean word
// confidence reported by Tesseract, scaled to 0..1.
func (r *TesseractRecognizer) Recognize(ctx context.Context, image []byte) (Result, error) {
	if len(image) == 0 {
		return Result{}, fmt.Errorf("ocr: empty image")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.languages...); err != nil {
		return Result{}, fmt.Errorf("ocr: set language: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return Result{}, fmt.Errorf("ocr: set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("ocr: recognize: %w", err)
	}

	return Result{
		Text:       text,
		Confidence: meanWordConfidence(client),
	}, nil
}

// meanWordConfidence averages per-word confidences. When the engine reports
// no words at all the confidence is zero, which downstream treats as an
// unusable read.
func meanWordConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, box := range boxes {
		sum += box.Confidence
	}
	return sum / float64(len(boxes)) / 100.0
}
