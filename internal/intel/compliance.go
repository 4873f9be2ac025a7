package intel

import (
	"math"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

// complianceMetrics measures attendance for the current calendar month in
// the engine's fixed time zone against the assumed meeting cadence.
func (e *Engine) complianceMetrics(members []domain.Member, attendance []domain.AttendanceRecord) domain.ComplianceReport {
	now := e.opts.Now
	year, month, _ := now.Date()

	present := 0
	for _, rec := range attendance {
		local := rec.Date.In(e.opts.Location)
		ry, rm, _ := local.Date()
		if ry == year && rm == month && rec.Present() {
			present++
		}
	}

	active := 0
	for _, m := range members {
		if m.IsActive {
			active++
		}
	}

	report := domain.ComplianceReport{
		PresentThisMonth: present,
		ActiveMembers:    active,
		MeetingsPerMonth: MeetingsPerMonth,
	}

	expected := active * MeetingsPerMonth
	if expected > 0 {
		report.Rate = int(math.Round(100 * float64(present) / float64(expected)))
	}

	switch {
	case report.Rate >= 75:
		report.Trend = domain.TrendImproving
	case report.Rate >= 50:
		report.Trend = domain.TrendStable
	default:
		report.Trend = domain.TrendWorsening
	}
	return report
}
