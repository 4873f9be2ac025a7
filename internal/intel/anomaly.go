package intel

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

// Anomaly type tags.
const (
	AnomalyMissingProof      = "missing-proof"
	AnomalyPossibleDuplicate = "possible-duplicate"
)

// detectAnomalies applies the two fixed rules:
//
// Rule A: any transaction above the threshold amount with no proof image is
// critical. Large spend must be documented.
//
// Rule B: two transactions with identical amount and category within the
// duplicate window look like a double entry. The scan is pairwise over
// date-sorted transactions; quadratic cost is a documented tradeoff kept for
// its simple semantics, bounded by MaxPairwiseTransactions.
func (e *Engine) detectAnomalies(transactions []domain.Transaction) []domain.Anomaly {
	anomalies := []domain.Anomaly{}

	for _, tx := range transactions {
		if tx.Amount > e.opts.ThresholdAmount && !tx.HasProof() {
			anomalies = append(anomalies, domain.Anomaly{
				ID:            uuid.NewString(),
				Type:          AnomalyMissingProof,
				Severity:      domain.SeverityCritical,
				Title:         "Large transaction without proof",
				Description:   fmt.Sprintf("Transaction %s of %s exceeds the proof threshold but has no receipt attached.", tx.ID, formatRupiah(tx.Amount)),
				TransactionID: tx.ID,
				Amount:        tx.Amount,
				Date:          tx.Date,
				Recommendations: []string{
					"attach the receipt or invoice for this transaction",
					"require proof upfront for payments above the threshold",
				},
			})
		}
	}

	anomalies = append(anomalies, e.detectDuplicates(transactions)...)
	return anomalies
}

func (e *Engine) detectDuplicates(transactions []domain.Transaction) []domain.Anomaly {
	sorted := make([]domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	// Keep only the most recent transactions inside the pairwise cap.
	if len(sorted) > e.opts.MaxPairwiseTransactions {
		sorted = sorted[len(sorted)-e.opts.MaxPairwiseTransactions:]
	}

	window := time.Duration(e.opts.DuplicateHours) * time.Hour
	var anomalies []domain.Anomaly

	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			diff := sorted[j].Date.Sub(sorted[i].Date)
			if diff > window {
				// Sorted by date: every later j is further away.
				break
			}
			if sorted[i].Amount != sorted[j].Amount || sorted[i].Category != sorted[j].Category {
				continue
			}
			anomalies = append(anomalies, domain.Anomaly{
				ID:            uuid.NewString(),
				Type:          AnomalyPossibleDuplicate,
				Severity:      domain.SeverityHigh,
				Title:         "Possible duplicate transaction",
				Description:   fmt.Sprintf("Transactions %s and %s have the same amount (%s) and category %q within %d hours.", sorted[i].ID, sorted[j].ID, formatRupiah(sorted[j].Amount), sorted[j].Category, e.opts.DuplicateHours),
				TransactionID: sorted[j].ID,
				Amount:        sorted[j].Amount,
				Date:          sorted[j].Date,
				Recommendations: []string{
					"compare both entries and remove the duplicate if confirmed",
					"check whether two treasurers recorded the same payment",
				},
			})
		}
	}
	return anomalies
}

// formatRupiah renders an amount with Indonesian thousands separators.
func formatRupiah(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	n := len(s)
	if n <= 3 {
		return "Rp " + s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	return "Rp " + string(out)
}
