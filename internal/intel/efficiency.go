package intel

import (
	"math"
	"strings"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

// programCategoryMarkers classify an expense as program/activity spend by
// category substring; anything that does not match counts as
// operational/admin overhead.
var programCategoryMarkers = []string{"program", "kegiatan", "acara", "event"}

func isProgramCategory(category string) bool {
	lower := strings.ToLower(category)
	for _, marker := range programCategoryMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// efficiencyScore measures how much of total expense spend reaches program
// activity. No expenses at all scores zero.
func (e *Engine) efficiencyScore(transactions []domain.Transaction) domain.EfficiencyReport {
	var programSpend, operationalSpend int64
	for _, tx := range transactions {
		if tx.Type != domain.TransactionExpense {
			continue
		}
		if isProgramCategory(tx.Category) {
			programSpend += tx.Amount
		} else {
			operationalSpend += tx.Amount
		}
	}

	total := programSpend + operationalSpend
	report := domain.EfficiencyReport{
		ProgramSpend:     programSpend,
		OperationalSpend: operationalSpend,
		TotalExpense:     total,
	}

	if total > 0 {
		report.Score = int(math.Round(100 * float64(programSpend) / float64(total)))
	}

	switch {
	case report.Score >= 70:
		report.Status = domain.EfficiencyExcellent
	case report.Score >= 50:
		report.Status = domain.EfficiencyGood
	default:
		report.Status = domain.EfficiencyNeedsImprovement
	}
	return report
}
