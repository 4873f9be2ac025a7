package receipt

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yudhistira-dev/orgintel/internal/domain"
	"github.com/yudhistira-dev/orgintel/internal/imagefetch"
	"github.com/yudhistira-dev/orgintel/internal/imageprep"
	"github.com/yudhistira-dev/orgintel/internal/ocr"
)

const (
	// ProviderHeuristic tags results produced by the local OCR + parser path.
	ProviderHeuristic = "heuristic"

	// MinEngineConfidence is the hard floor under which recognized text is
	// not even handed to the parser. Garbage text produces misleadingly
	// confident false matches, so below 30% engine confidence the result
	// is invalid by definition.
	MinEngineConfidence = 0.30
)

// Extractor is the primary receipt extraction pipeline: preprocess the
// image, recognize text, gate on engine confidence, then run the heuristic
// parser.
//
// Extract never returns an error. Every internal failure, including
// undecodable input, maps to the all-invalid ReceiptData so the caller
// always gets a well-typed result and can route low-confidence reads to
// manual review.
type Extractor struct {
	recognizer ocr.Recognizer
	parser     *Parser
	log        zerolog.Logger
}

// NewExtractor builds the primary pipeline around the given recognizer.
func NewExtractor(recognizer ocr.Recognizer, log zerolog.Logger) *Extractor {
	return &Extractor{
		recognizer: recognizer,
		parser:     NewParser(DefaultLexicon()),
		log:        log,
	}
}

// Name implements Provider.
func (e *Extractor) Name() string { return ProviderHeuristic }

// Extract implements Provider. The error return is always nil; it exists to
// satisfy the Provider contract shared with fallible providers.
func (e *Extractor) Extract(ctx context.Context, image []byte) (domain.ReceiptData, error) {
	return e.run(ctx, image), nil
}

// ExtractBase64 decodes a base64 payload (optionally carrying a data-URL
// prefix) and extracts it. Malformed input degrades to the invalid result.
func (e *Extractor) ExtractBase64(ctx context.Context, encoded string) domain.ReceiptData {
	image, err := imagefetch.FromDataURL(encoded)
	if err != nil {
		e.log.Warn().Err(err).Msg("receipt: undecodable image payload")
		return domain.InvalidReceipt(ProviderHeuristic)
	}
	return e.run(ctx, image)
}

func (e *Extractor) run(ctx context.Context, image []byte) domain.ReceiptData {
	if len(image) == 0 {
		return domain.InvalidReceipt(ProviderHeuristic)
	}

	prepared := imageprep.Prepare(image)

	result, err := e.recognizer.Recognize(ctx, prepared)
	if err != nil {
		e.log.Warn().Err(err).Msg("receipt: recognition failed")
		return domain.InvalidReceipt(ProviderHeuristic)
	}

	if result.Confidence < MinEngineConfidence {
		e.log.Debug().
			Float64("confidence", result.Confidence).
			Msg("receipt: engine confidence below floor, skipping parse")
		return domain.InvalidReceipt(ProviderHeuristic)
	}

	data := e.parser.Parse(result.Text)
	data.Provider = ProviderHeuristic
	return data
}
