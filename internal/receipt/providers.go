package receipt

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yudhistira-dev/orgintel/internal/domain"
)

// ReviewFloor is the confidence under which a result is not auto-accepted:
// the chain keeps trying providers, and if none clears it the final result
// is flagged for manual entry.
const ReviewFloor = 0.4

// Provider is one extraction strategy in the fallback chain.
type Provider interface {
	Name() string
	Extract(ctx context.Context, image []byte) (domain.ReceiptData, error)
}

// Chain runs providers in order and returns the first result whose
// confidence clears the floor. When every provider scores low (or fails),
// the last well-formed result is returned with NeedsReview set so a human
// can take over.
//
// New providers slot in without touching existing ones; order encodes
// preference (cheap local OCR first, paid model second).
type Chain struct {
	providers []Provider
	floor     float64
	log       zerolog.Logger
}

// NewChain builds a provider chain with the given acceptance floor.
func NewChain(floor float64, log zerolog.Logger, providers ...Provider) *Chain {
	if floor <= 0 {
		floor = ReviewFloor
	}
	return &Chain{providers: providers, floor: floor, log: log}
}

// Extract never returns an error: provider failures count as low-confidence
// attempts and the chain moves on.
func (c *Chain) Extract(ctx context.Context, image []byte) domain.ReceiptData {
	last := domain.InvalidReceipt("")

	for _, p := range c.providers {
		data, err := p.Extract(ctx, image)
		if err != nil {
			c.log.Warn().Err(err).Str("provider", p.Name()).Msg("receipt: provider failed")
			continue
		}
		if data.ConfidenceScore >= c.floor {
			return data
		}
		c.log.Debug().
			Str("provider", p.Name()).
			Float64("score", data.ConfidenceScore).
			Msg("receipt: provider below acceptance floor")
		last = data
	}

	last.NeedsReview = true
	return last
}
