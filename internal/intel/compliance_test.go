package intel

import (
	"testing"
	"time"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

func members(active, inactive int) []domain.Member {
	var out []domain.Member
	for i := 0; i < active; i++ {
		out = append(out, domain.Member{ID: "m", IsActive: true})
	}
	for i := 0; i < inactive; i++ {
		out = append(out, domain.Member{ID: "m", IsActive: false})
	}
	return out
}

func presentOn(dates ...time.Time) []domain.AttendanceRecord {
	var out []domain.AttendanceRecord
	for _, d := range dates {
		out = append(out, domain.AttendanceRecord{Date: d, Status: domain.AttendanceStatusPresent})
	}
	return out
}

func TestComplianceMetrics(t *testing.T) {
	e := newTestEngine(Options{})

	// Two active members, June 2024: expected presence is 2 * 4 = 8.
	att := presentOn(
		testNow.AddDate(0, 0, -1),
		testNow.AddDate(0, 0, -2),
		testNow.AddDate(0, 0, -3),
		testNow.AddDate(0, 0, -4),
		testNow.AddDate(0, 0, -5),
		testNow.AddDate(0, 0, -6),
	)
	// Absences and out-of-month records do not count.
	att = append(att, domain.AttendanceRecord{Date: testNow, Status: "absent"})
	att = append(att, presentOn(testNow.AddDate(0, -1, 0))...)

	report := e.complianceMetrics(members(2, 1), att)

	if report.PresentThisMonth != 6 {
		t.Errorf("present = %d, want 6", report.PresentThisMonth)
	}
	if report.ActiveMembers != 2 {
		t.Errorf("active = %d, want 2", report.ActiveMembers)
	}
	if report.Rate != 75 {
		t.Errorf("rate = %d, want 75", report.Rate)
	}
	if report.Trend != domain.TrendImproving {
		t.Errorf("trend = %q, want improving at 75%%", report.Trend)
	}
}

func TestComplianceMetrics_Bands(t *testing.T) {
	e := newTestEngine(Options{})

	tests := []struct {
		name      string
		present   int
		wantRate  int
		wantTrend string
	}{
		{"improving", 6, 75, domain.TrendImproving},
		{"stable", 4, 50, domain.TrendStable},
		{"worsening", 3, 38, domain.TrendWorsening},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dates []time.Time
			for i := 0; i < tt.present; i++ {
				dates = append(dates, testNow.AddDate(0, 0, -i))
			}
			report := e.complianceMetrics(members(2, 0), presentOn(dates...))
			if report.Rate != tt.wantRate || report.Trend != tt.wantTrend {
				t.Errorf("rate/trend = %d/%q, want %d/%q", report.Rate, report.Trend, tt.wantRate, tt.wantTrend)
			}
		})
	}
}

func TestComplianceMetrics_NoActiveMembers(t *testing.T) {
	e := newTestEngine(Options{})

	report := e.complianceMetrics(nil, presentOn(testNow))
	if report.Rate != 0 {
		t.Errorf("rate = %d, want 0 with no members", report.Rate)
	}
	if report.Trend != domain.TrendWorsening {
		t.Errorf("trend = %q, want worsening", report.Trend)
	}
}
