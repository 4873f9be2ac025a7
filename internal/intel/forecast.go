package intel

import (
	"math"
	"sort"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

const (
	expenseForecastWindowMonths = 6
	expenseForecastMinMonths    = 3
	expenseForecastMAMonths     = 3

	attendanceForecastWindowMonths = 3
	attendanceForecastMinRecords   = 10
)

// expenseForecast projects next month's spend as a simple moving average of
// the last three observed months inside a trailing six-month window.
// Confidence comes from the coefficient of variation of those months; trend
// compares the head and tail of the observed series. Months with no expenses
// are skipped entirely so sparse history cannot fabricate a trend.
func (e *Engine) expenseForecast(transactions []domain.Transaction) domain.ExpenseForecast {
	now := e.opts.Now
	currentIndex := now.Year()*12 + int(now.Month()) - 1

	totals := make(map[int]int64)
	for _, tx := range transactions {
		if tx.Type != domain.TransactionExpense {
			continue
		}
		local := tx.Date.In(e.opts.Location)
		idx := local.Year()*12 + int(local.Month()) - 1
		if idx > currentIndex || idx < currentIndex-(expenseForecastWindowMonths-1) {
			continue
		}
		totals[idx] += tx.Amount
	}

	// Observed months in chronological order.
	months := make([]int, 0, len(totals))
	for idx := range totals {
		months = append(months, idx)
	}
	sort.Ints(months)

	if len(months) < expenseForecastMinMonths {
		return domain.ExpenseForecast{
			Prediction:          0,
			Confidence:          domain.ForecastConfidenceLow,
			Trend:               domain.TrendStable,
			HasInsufficientData: true,
			MonthsObserved:      len(months),
		}
	}

	series := make([]float64, len(months))
	for i, idx := range months {
		series[i] = float64(totals[idx])
	}

	recent := series[len(series)-expenseForecastMAMonths:]
	mean := meanOf(recent)

	confidence := domain.ForecastConfidenceLow
	if mean > 0 {
		cv := stddevOf(recent, mean) / mean
		switch {
		case cv < 0.15:
			confidence = domain.ForecastConfidenceHigh
		case cv < 0.30:
			confidence = domain.ForecastConfidenceMedium
		}
	}

	firstAvg := meanOf(series[:2])
	lastAvg := meanOf(series[len(series)-2:])
	trend := domain.TrendStable
	switch {
	case lastAvg > firstAvg*1.10:
		trend = domain.TrendIncreasing
	case lastAvg < firstAvg*0.90:
		trend = domain.TrendDecreasing
	}

	return domain.ExpenseForecast{
		Prediction:     int64(math.Round(mean)),
		Confidence:     confidence,
		Trend:          trend,
		MonthsObserved: len(months),
	}
}

// attendanceForecast projects the attendance rate from the trailing three
// months; the trend compares the first and second half of that window.
func (e *Engine) attendanceForecast(attendance []domain.AttendanceRecord) domain.AttendanceForecast {
	cutoff := e.opts.Now.AddDate(0, -attendanceForecastWindowMonths, 0)

	var window []domain.AttendanceRecord
	for _, rec := range attendance {
		if !rec.Date.Before(cutoff) {
			window = append(window, rec)
		}
	}

	if len(window) < attendanceForecastMinRecords {
		return domain.AttendanceForecast{
			Confidence:          domain.ForecastConfidenceLow,
			Trend:               domain.TrendStable,
			HasInsufficientData: true,
			Records:             len(window),
		}
	}

	sort.Slice(window, func(i, j int) bool { return window[i].Date.Before(window[j].Date) })

	rate := func(records []domain.AttendanceRecord) float64 {
		if len(records) == 0 {
			return 0
		}
		present := 0
		for _, rec := range records {
			if rec.Present() {
				present++
			}
		}
		return float64(present) / float64(len(records))
	}

	overall := rate(window)
	half := len(window) / 2
	firstRate := rate(window[:half])
	secondRate := rate(window[half:])

	trend := domain.TrendStable
	switch {
	case secondRate-firstRate > 0.05:
		trend = domain.TrendImproving
	case firstRate-secondRate > 0.05:
		trend = domain.TrendWorsening
	}

	confidence := domain.ForecastConfidenceLow
	switch {
	case len(window) >= 30:
		confidence = domain.ForecastConfidenceHigh
	case len(window) >= 20:
		confidence = domain.ForecastConfidenceMedium
	}

	return domain.AttendanceForecast{
		PredictedRate: int(math.Round(overall * 100)),
		Confidence:    confidence,
		Trend:         trend,
		Records:       len(window),
	}
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddevOf(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(values)))
}
