package intel

import (
	"fmt"
	"math"

	"github.com/yudhistira-dev/orgintel/internal/docrisk"
	"github.com/yudhistira-dev/orgintel/internal/domain"
)

// riskScore composes the four risk dimensions into one 0-100 number. Each
// dimension maps its source metric onto a fixed tier value; the overall
// score is the unweighted rounded mean.
func (e *Engine) riskScore(
	efficiency domain.EfficiencyReport,
	compliance domain.ComplianceReport,
	anomalies []domain.Anomaly,
	docRisk docrisk.Overall,
) domain.RiskBreakdown {
	var financial int
	switch efficiency.Status {
	case domain.EfficiencyExcellent:
		financial = 20
	case domain.EfficiencyGood:
		financial = 50
	default:
		financial = 75
	}

	var complianceRisk int
	switch {
	case compliance.Rate >= 80:
		complianceRisk = 15
	case compliance.Rate >= 60:
		complianceRisk = 40
	default:
		complianceRisk = 70
	}

	var operational int
	switch {
	case len(anomalies) == 0:
		operational = 10
	case len(anomalies) <= 2:
		operational = 35
	default:
		operational = 65
	}

	overall := int(math.Round(float64(financial+complianceRisk+operational+docRisk.Score) / 4))

	trend := domain.TrendWorsening
	switch {
	case overall < 30:
		trend = domain.TrendImproving
	case overall < 60:
		trend = domain.TrendStable
	}

	return domain.RiskBreakdown{
		Financial:   financial,
		Compliance:  complianceRisk,
		Operational: operational,
		Document:    docRisk.Score,
		Overall:     overall,
		Trend:       trend,
	}
}

// actionPlan emits ordered, templated next steps. The list is never empty:
// when no branch fires the organization is stable and the plan says so.
func (e *Engine) actionPlan(
	efficiency domain.EfficiencyReport,
	compliance domain.ComplianceReport,
	anomalies []domain.Anomaly,
) []string {
	var plan []string

	if efficiency.Status == domain.EfficiencyNeedsImprovement {
		plan = append(plan, "Shift spending toward program activity: operational overhead is eating the budget.")
	}

	criticalCount := 0
	for _, a := range anomalies {
		if a.Severity == domain.SeverityCritical {
			criticalCount++
		}
	}
	if criticalCount > 0 {
		plan = append(plan, fmt.Sprintf("Resolve %d critical anomalies: collect missing proof before the next audit.", criticalCount))
	}

	switch {
	case compliance.Rate < 50:
		plan = append(plan, "Run an attendance drive: compliance is below half of the expected meeting presence.")
	case compliance.Rate < 75:
		plan = append(plan, "Nudge inactive members: attendance is holding but has room to grow.")
	}

	if len(plan) == 0 {
		plan = append(plan, "Organization is stable; focus on growth initiatives.")
	}
	return plan
}
