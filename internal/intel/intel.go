// Package intel is the organizational intelligence engine: pure aggregation
// over in-memory collections of members, attendance, treasury transactions
// and documents. Every call recomputes the full aggregate from scratch;
// with input volumes in the hundreds of records, freshness beats caching.
package intel

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/yudhistira-dev/orgintel/internal/docrisk"
	"github.com/yudhistira-dev/orgintel/internal/domain"
)

const (
	// DefaultThresholdAmount is the rupiah amount above which a
	// transaction without proof is flagged critical.
	DefaultThresholdAmount int64 = 1_000_000

	// DefaultDuplicateHours is the window within which equal-amount,
	// equal-category transactions look like duplicates.
	DefaultDuplicateHours = 24

	// DefaultMaxPairwiseTransactions caps the duplicate scan to the most
	// recent transactions. The scan is O(n²) by design (simple semantics,
	// small n); the cap keeps a pathological import from blowing it up.
	DefaultMaxPairwiseTransactions = 2000

	// LearningThreshold is the minimum transaction count before
	// pattern-based insights are produced. Below it the engine is still
	// learning and returns empty insights rather than misleading ones.
	LearningThreshold = 5

	// MeetingsPerMonth is the assumed meeting cadence for compliance.
	MeetingsPerMonth = 4
)

// DefaultZone is the reporting time zone for "current month" computations.
const DefaultZone = "Asia/Jakarta"

// Options tunes the engine. The zero value is usable: defaults are filled
// in by New.
type Options struct {
	ThresholdAmount         int64
	DuplicateHours          int
	MaxPairwiseTransactions int

	// Now and Location pin the engine's clock so results are
	// deterministic and testable. They default to time.Now and
	// Asia/Jakarta.
	Now      time.Time
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.ThresholdAmount <= 0 {
		o.ThresholdAmount = DefaultThresholdAmount
	}
	if o.DuplicateHours <= 0 {
		o.DuplicateHours = DefaultDuplicateHours
	}
	if o.MaxPairwiseTransactions <= 0 {
		o.MaxPairwiseTransactions = DefaultMaxPairwiseTransactions
	}
	if o.Location == nil {
		if loc, err := time.LoadLocation(DefaultZone); err == nil {
			o.Location = loc
		} else {
			o.Location = time.UTC
		}
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	o.Now = o.Now.In(o.Location)
	return o
}

// Engine computes the intelligence aggregate. It holds no mutable state and
// is safe to share across goroutines.
type Engine struct {
	opts Options
	log  zerolog.Logger
}

// New creates an engine with defaults applied.
func New(log zerolog.Logger, opts Options) *Engine {
	return &Engine{opts: opts.withDefaults(), log: log}
}

// Analyze runs every sub-analysis over the input collections and returns
// the full aggregate. Inputs are never mutated.
func (e *Engine) Analyze(
	members []domain.Member,
	attendance []domain.AttendanceRecord,
	transactions []domain.Transaction,
	documents []domain.Document,
) *domain.IntelligenceData {
	learning := len(transactions) < LearningThreshold

	efficiency := e.efficiencyScore(transactions)
	anomalies := e.detectAnomalies(transactions)
	compliance := e.complianceMetrics(members, attendance)
	docRisk := docrisk.CalculateOverallRisk(documents)

	data := &domain.IntelligenceData{
		GeneratedAt:        e.opts.Now,
		LearningMode:       learning,
		Efficiency:         efficiency,
		Anomalies:          anomalies,
		Compliance:         compliance,
		MeetingSuggestions: e.meetingSuggestions(attendance, transactions),
		ExpenseForecast:    e.expenseForecast(transactions),
		AttendanceForecast: e.attendanceForecast(attendance),
	}

	if !learning {
		data.HabitInsights = e.habitInsights(members, attendance, transactions)
	} else {
		data.HabitInsights = []domain.HabitInsight{}
	}

	data.Risk = e.riskScore(efficiency, compliance, anomalies, docRisk)
	data.ActionPlan = e.actionPlan(efficiency, compliance, anomalies)

	e.log.Debug().
		Int("transactions", len(transactions)).
		Int("anomalies", len(anomalies)).
		Bool("learning_mode", learning).
		Int("risk_overall", data.Risk.Overall).
		Msg("intel: analysis complete")

	return data
}
