package intel

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

// Fixed insight confidences. These are heuristic constants attached to each
// insight shape, not statistically derived values; they are part of the
// contract and must not be recomputed.
const (
	spendingInsightConfidence   = 0.85
	attendanceInsightConfidence = 0.78
	engagementInsightConfidence = 0.92
)

// habitInsights produces up to three fixed-shape pattern observations. The
// caller gates this behind the learning threshold; each insight additionally
// requires its own minimum data volume.
func (e *Engine) habitInsights(
	members []domain.Member,
	attendance []domain.AttendanceRecord,
	transactions []domain.Transaction,
) []domain.HabitInsight {
	insights := []domain.HabitInsight{}

	var expenseTotal int64
	expenseCount := 0
	for _, tx := range transactions {
		if tx.Type == domain.TransactionExpense {
			expenseTotal += tx.Amount
			expenseCount++
		}
	}
	if expenseCount >= 3 {
		mean := expenseTotal / int64(expenseCount)
		insights = append(insights, domain.HabitInsight{
			Type:        "spending-pattern",
			Title:       "Typical expense size",
			Description: fmt.Sprintf("The organization spends %s per expense on average across %d expenses.", formatRupiah(mean), expenseCount),
			Confidence:  spendingInsightConfidence,
		})
	}

	cutoff := e.opts.Now.AddDate(0, 0, -30)
	recent, present := 0, 0
	for _, rec := range attendance {
		if rec.Date.Before(cutoff) {
			continue
		}
		recent++
		if rec.Present() {
			present++
		}
	}
	if recent >= 2 {
		rate := int(math.Round(100 * float64(present) / float64(recent)))
		recommendation := "attendance is healthy; keep the current meeting rhythm"
		if rate < 70 {
			recommendation = "attendance is slipping; consider moving meetings to a better-scoring day"
		}
		insights = append(insights, domain.HabitInsight{
			Type:        "meeting-attendance",
			Title:       "Meeting attendance over the last 30 days",
			Description: fmt.Sprintf("Attendance rate is %d%% over %d records; %s.", rate, recent, recommendation),
			Confidence:  attendanceInsightConfidence,
		})
	}

	if len(members) >= 5 {
		active := 0
		for _, m := range members {
			if m.IsActive {
				active++
			}
		}
		ratio := int(math.Round(100 * float64(active) / float64(len(members))))
		insights = append(insights, domain.HabitInsight{
			Type:        "member-engagement",
			Title:       "Member engagement ratio",
			Description: fmt.Sprintf("%d of %d members (%d%%) are currently active.", active, len(members), ratio),
			Confidence:  engagementInsightConfidence,
		})
	}

	return insights
}

// meetingSuggestions ranks weekdays as meeting slots: high historical
// attendance is good, heavy operational spending load on that day is bad.
func (e *Engine) meetingSuggestions(
	attendance []domain.AttendanceRecord,
	transactions []domain.Transaction,
) []domain.MeetingSuggestion {
	var attTotal, attPresent [7]int
	for _, rec := range attendance {
		wd := rec.Date.In(e.opts.Location).Weekday()
		attTotal[wd]++
		if rec.Present() {
			attPresent[wd]++
		}
	}

	var load [7]int64
	var maxLoad int64
	for _, tx := range transactions {
		if tx.Type != domain.TransactionExpense || isProgramCategory(tx.Category) {
			continue
		}
		wd := tx.Date.In(e.opts.Location).Weekday()
		load[wd] += tx.Amount
		if load[wd] > maxLoad {
			maxLoad = load[wd]
		}
	}

	suggestions := make([]domain.MeetingSuggestion, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		rate := 0.0
		if attTotal[wd] > 0 {
			rate = float64(attPresent[wd]) / float64(attTotal[wd])
		}
		normLoad := 0.0
		if maxLoad > 0 {
			normLoad = float64(load[wd]) / float64(maxLoad)
		}
		score := 0.7*rate + 0.3*(1-normLoad)

		var reason string
		switch {
		case score >= 0.7:
			reason = fmt.Sprintf("strong turnout on %s and a light operational day", wd)
		case score >= 0.4:
			reason = fmt.Sprintf("moderate turnout on %s; workable slot", wd)
		default:
			reason = fmt.Sprintf("weak turnout on %s; schedule here only as a fallback", wd)
		}

		suggestions = append(suggestions, domain.MeetingSuggestion{
			Weekday: wd,
			Day:     wd.String(),
			Score:   math.Round(score*100) / 100,
			Reason:  reason,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions[:3]
}
