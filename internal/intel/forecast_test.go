package intel

import (
	"testing"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

func TestExpenseForecast_SteadySpend(t *testing.T) {
	e := newTestEngine(Options{})

	// Two expenses of 200,000 in each of April, May and June 2024.
	var txs []domain.Transaction
	for m := -2; m <= 0; m++ {
		txs = append(txs,
			expense("a", 200000, "Operations", testNow.AddDate(0, m, -5)),
			expense("b", 200000, "Operations", testNow.AddDate(0, m, -10)),
		)
	}

	f := e.expenseForecast(txs)
	if f.HasInsufficientData {
		t.Fatal("three observed months must be enough data")
	}
	if f.Prediction != 400000 {
		t.Errorf("prediction = %d, want 400000", f.Prediction)
	}
	if f.Confidence != domain.ForecastConfidenceHigh {
		t.Errorf("confidence = %q, want high for flat spend", f.Confidence)
	}
	if f.Trend != domain.TrendStable {
		t.Errorf("trend = %q, want stable", f.Trend)
	}
	if f.MonthsObserved != 3 {
		t.Errorf("months = %d, want 3", f.MonthsObserved)
	}
}

func TestExpenseForecast_InsufficientData(t *testing.T) {
	e := newTestEngine(Options{})

	txs := []domain.Transaction{
		expense("a", 200000, "Operations", testNow),
		expense("b", 200000, "Operations", testNow.AddDate(0, -1, 0)),
	}

	f := e.expenseForecast(txs)
	if !f.HasInsufficientData {
		t.Fatal("two observed months must flag insufficient data")
	}
	if f.Prediction != 0 || f.Confidence != domain.ForecastConfidenceLow || f.Trend != domain.TrendStable {
		t.Errorf("insufficient forecast = %+v, want zeroed low/stable", f)
	}
}

func TestExpenseForecast_GrowingSpend(t *testing.T) {
	e := newTestEngine(Options{})

	amounts := []int64{100000, 100000, 300000, 400000}
	var txs []domain.Transaction
	for i, amount := range amounts {
		txs = append(txs, expense("t", amount, "Operations", testNow.AddDate(0, i-3, 0)))
	}

	f := e.expenseForecast(txs)
	if f.Trend != domain.TrendIncreasing {
		t.Errorf("trend = %q, want increasing", f.Trend)
	}
}

func TestExpenseForecast_ShrinkingSpend(t *testing.T) {
	e := newTestEngine(Options{})

	amounts := []int64{400000, 300000, 100000, 100000}
	var txs []domain.Transaction
	for i, amount := range amounts {
		txs = append(txs, expense("t", amount, "Operations", testNow.AddDate(0, i-3, 0)))
	}

	f := e.expenseForecast(txs)
	if f.Trend != domain.TrendDecreasing {
		t.Errorf("trend = %q, want decreasing", f.Trend)
	}
}

func TestExpenseForecast_OldAndFutureMonthsIgnored(t *testing.T) {
	e := newTestEngine(Options{})

	txs := []domain.Transaction{
		expense("old", 900000, "Operations", testNow.AddDate(0, -8, 0)),
		expense("future", 900000, "Operations", testNow.AddDate(0, 2, 0)),
		expense("a", 200000, "Operations", testNow),
		expense("b", 200000, "Operations", testNow.AddDate(0, -1, 0)),
	}

	f := e.expenseForecast(txs)
	if !f.HasInsufficientData {
		t.Error("months outside the window must not count as observations")
	}
}

func TestExpenseForecast_IncomeIgnored(t *testing.T) {
	e := newTestEngine(Options{})

	var txs []domain.Transaction
	for m := -2; m <= 0; m++ {
		txs = append(txs, domain.Transaction{
			ID: "i", Date: testNow.AddDate(0, m, 0), Amount: 500000, Type: domain.TransactionIncome,
		})
	}

	f := e.expenseForecast(txs)
	if !f.HasInsufficientData {
		t.Error("income must not count toward the expense forecast")
	}
}

func TestAttendanceForecast(t *testing.T) {
	e := newTestEngine(Options{})

	// Twelve records in the trailing quarter: 2 of 6 present early, 5 of 6
	// present late.
	var att []domain.AttendanceRecord
	for i := 0; i < 6; i++ {
		status := "absent"
		if i < 2 {
			status = domain.AttendanceStatusPresent
		}
		att = append(att, domain.AttendanceRecord{Date: testNow.AddDate(0, 0, -80+i), Status: status})
	}
	for i := 0; i < 6; i++ {
		status := domain.AttendanceStatusPresent
		if i == 0 {
			status = "absent"
		}
		att = append(att, domain.AttendanceRecord{Date: testNow.AddDate(0, 0, -10+i), Status: status})
	}

	f := e.attendanceForecast(att)
	if f.HasInsufficientData {
		t.Fatal("twelve records must be enough data")
	}
	if f.PredictedRate != 58 {
		t.Errorf("predicted rate = %d, want 58", f.PredictedRate)
	}
	if f.Trend != domain.TrendImproving {
		t.Errorf("trend = %q, want improving", f.Trend)
	}
	if f.Confidence != domain.ForecastConfidenceLow {
		t.Errorf("confidence = %q, want low below 20 records", f.Confidence)
	}
	if f.Records != 12 {
		t.Errorf("records = %d, want 12", f.Records)
	}
}

func TestAttendanceForecast_InsufficientData(t *testing.T) {
	e := newTestEngine(Options{})

	att := presentOn(testNow.AddDate(0, 0, -1), testNow.AddDate(0, 0, -2))
	f := e.attendanceForecast(att)
	if !f.HasInsufficientData {
		t.Fatal("two records must flag insufficient data")
	}
	if f.Trend != domain.TrendStable || f.Confidence != domain.ForecastConfidenceLow {
		t.Errorf("insufficient forecast = %+v, want low/stable", f)
	}
}

func TestAttendanceForecast_OldRecordsExcluded(t *testing.T) {
	e := newTestEngine(Options{})

	var dates []domain.AttendanceRecord
	for i := 0; i < 12; i++ {
		dates = append(dates, domain.AttendanceRecord{
			Date:   testNow.AddDate(0, -6, -i),
			Status: domain.AttendanceStatusPresent,
		})
	}

	f := e.attendanceForecast(dates)
	if !f.HasInsufficientData {
		t.Error("records older than the window must not count")
	}
}

func TestAttendanceForecast_ConfidenceBands(t *testing.T) {
	e := newTestEngine(Options{})

	build := func(n int) []domain.AttendanceRecord {
		var out []domain.AttendanceRecord
		for i := 0; i < n; i++ {
			out = append(out, domain.AttendanceRecord{
				Date:   testNow.AddDate(0, 0, -(i % 60)),
				Status: domain.AttendanceStatusPresent,
			})
		}
		return out
	}

	if f := e.attendanceForecast(build(30)); f.Confidence != domain.ForecastConfidenceHigh {
		t.Errorf("confidence at 30 records = %q, want high", f.Confidence)
	}
	if f := e.attendanceForecast(build(20)); f.Confidence != domain.ForecastConfidenceMedium {
		t.Errorf("confidence at 20 records = %q, want medium", f.Confidence)
	}
	if f := e.attendanceForecast(build(19)); f.Confidence != domain.ForecastConfidenceLow {
		t.Errorf("confidence at 19 records = %q, want low", f.Confidence)
	}
}
