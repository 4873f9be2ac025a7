package domain

import (
	"time"
)

// Severity grades how urgently an anomaly needs human review.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Anomaly is a transaction flagged by a detection rule. Anomalies are derived
// values: they are recomputed on every engine run and never persisted.
type Anomaly struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Severity        Severity  `json:"severity"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	TransactionID   string    `json:"transaction_id"`
	Amount          int64     `json:"amount"`
	Date            time.Time `json:"date"`
	Recommendations []string  `json:"recommendations"`
}

// Efficiency status bands.
const (
	EfficiencyExcellent        = "excellent"
	EfficiencyGood             = "good"
	EfficiencyNeedsImprovement = "needs-improvement"
)

// Trend labels shared by compliance, forecasts and the composite risk score.
const (
	TrendImproving  = "improving"
	TrendStable     = "stable"
	TrendWorsening  = "worsening"
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

// Forecast confidence grades.
const (
	ForecastConfidenceHigh   = "high"
	ForecastConfidenceMedium = "medium"
	ForecastConfidenceLow    = "low"
)

// EfficiencyReport scores how much of the expense budget reaches program
// activity rather than overhead.
type EfficiencyReport struct {
	Score            int    `json:"score"`
	Status           string `json:"status"`
	ProgramSpend     int64  `json:"program_spend"`
	OperationalSpend int64  `json:"operational_spend"`
	TotalExpense     int64  `json:"total_expense"`
}

// ComplianceReport covers meeting attendance for the current calendar month.
type ComplianceReport struct {
	Rate             int    `json:"rate"`
	Trend            string `json:"trend"`
	PresentThisMonth int    `json:"present_this_month"`
	ActiveMembers    int    `json:"active_members"`
	MeetingsPerMonth int    `json:"meetings_per_month"`
}

// HabitInsight is one pattern observation over the historical data. The
// confidence value is a fixed heuristic constant per insight type.
type HabitInsight struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// MeetingSuggestion ranks a weekday as a candidate meeting slot.
type MeetingSuggestion struct {
	Weekday time.Weekday `json:"-"`
	Day     string       `json:"day"`
	Score   float64      `json:"score"`
	Reason  string       `json:"reason"`
}

// ExpenseForecast is a moving-average projection of next month's spend.
type ExpenseForecast struct {
	Prediction          int64  `json:"prediction"`
	Confidence          string `json:"confidence"`
	Trend               string `json:"trend"`
	HasInsufficientData bool   `json:"has_insufficient_data"`
	MonthsObserved      int    `json:"months_observed"`
}

// AttendanceForecast projects the attendance rate from the trailing quarter.
type AttendanceForecast struct {
	PredictedRate       int    `json:"predicted_rate"`
	Confidence          string `json:"confidence"`
	Trend               string `json:"trend"`
	HasInsufficientData bool   `json:"has_insufficient_data"`
	Records             int    `json:"records"`
}

// RiskBreakdown is the composite 0-100 risk score with its four dimensions.
type RiskBreakdown struct {
	Financial   int    `json:"financial"`
	Compliance  int    `json:"compliance"`
	Operational int    `json:"operational"`
	Document    int    `json:"document"`
	Overall     int    `json:"overall"`
	Trend       string `json:"trend"`
}

// IntelligenceData is the full engine output, recomputed fresh on every call
// from the current input collections. Freshness over caching is deliberate:
// input volumes are hundreds of records, not millions.
type IntelligenceData struct {
	GeneratedAt        time.Time           `json:"generated_at"`
	LearningMode       bool                `json:"learning_mode"`
	Efficiency         EfficiencyReport    `json:"efficiency"`
	Anomalies          []Anomaly           `json:"anomalies"`
	Compliance         ComplianceReport    `json:"compliance"`
	HabitInsights      []HabitInsight      `json:"habit_insights"`
	MeetingSuggestions []MeetingSuggestion `json:"meeting_suggestions"`
	ExpenseForecast    ExpenseForecast     `json:"expense_forecast"`
	AttendanceForecast AttendanceForecast  `json:"attendance_forecast"`
	Risk               RiskBreakdown       `json:"risk"`
	ActionPlan         []string            `json:"action_plan"`
}
