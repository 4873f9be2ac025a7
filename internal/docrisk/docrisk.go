// Package docrisk grades organizational documents by urgency and financial
// exposure using fixed keyword tiers. It backs the document dimension of the
// composite risk score and is usable standalone for per-document triage.
package docrisk

import (
	"math"
	"regexp"
	"strings"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

// RiskLevel is the per-document risk tier.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Analysis is the risk read for a single document.
type Analysis struct {
	DocumentID             string    `json:"document_id"`
	RiskLevel              RiskLevel `json:"risk_level"`
	UrgencyScore           int       `json:"urgency_score"`
	HasFinancialCommitment bool      `json:"has_financial_commitment"`
	FinancialAmounts       []string  `json:"financial_amounts"`
	RiskKeywords           []string  `json:"risk_keywords"`
	Recommendations        []string  `json:"recommendations"`
}

// Overall aggregates per-document analyses into one 0-100 score.
type Overall struct {
	Score                    int    `json:"score"`
	DocumentCount            int    `json:"document_count"`
	HighRiskCount            int    `json:"high_risk_count"`
	FinancialCommitmentCount int    `json:"financial_commitment_count"`
	Message                  string `json:"message,omitempty"`
}

// Keyword tiers. The highest tier with any hit sets the risk level;
// financial keywords alone count as medium.
var (
	highUrgencyKeywords = []string{
		"segera", "urgent", "mendesak", "darurat", "hari ini", "secepatnya", "asap",
	}
	deadlineKeywords = []string{
		"deadline", "batas waktu", "tenggat", "jatuh tempo", "paling lambat", "reminder", "pengingat",
	}
	financialKeywords = []string{
		"pembayaran", "tagihan", "invoice", "dana", "anggaran", "biaya", "transfer", "pelunasan",
	}
)

// Currency-looking substrings: symbol+digits, code+digits, digits+unit-word.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)rp\.?\s*[0-9][0-9.,]*`),
	regexp.MustCompile(`(?i)\bidr\s*[0-9][0-9.,]*`),
	regexp.MustCompile(`(?i)\b[0-9][0-9.,]*\s*(?:rupiah|ribu|juta|miliar)\b`),
}

// Urgency score composition.
const (
	baseHigh         = 60
	baseMedium       = 30
	baseLow          = 10
	perKeywordBonus  = 5
	keywordBonusCap  = 20
	financialBonus   = 20
	urgencyScoreCap  = 100
	overallScoreCap  = 100
)

// Analyze grades one document's free text.
func Analyze(doc domain.Document) Analysis {
	content := strings.ToLower(doc.Content)

	highHits := matchKeywords(content, highUrgencyKeywords)
	deadlineHits := matchKeywords(content, deadlineKeywords)
	financialHits := matchKeywords(content, financialKeywords)

	amounts := extractAmounts(doc.Content)
	hasFinancial := len(financialHits) > 0 || len(amounts) > 0

	level := RiskLow
	base := baseLow
	switch {
	case len(highHits) > 0:
		level = RiskHigh
		base = baseHigh
	case len(deadlineHits) > 0 || hasFinancial:
		level = RiskMedium
		base = baseMedium
	}

	keywords := append(append(highHits, deadlineHits...), financialHits...)

	score := base + min(len(keywords)*perKeywordBonus, keywordBonusCap)
	if hasFinancial {
		score += financialBonus
	}
	if score > urgencyScoreCap {
		score = urgencyScoreCap
	}

	return Analysis{
		DocumentID:             doc.ID,
		RiskLevel:              level,
		UrgencyScore:           score,
		HasFinancialCommitment: hasFinancial,
		FinancialAmounts:       amounts,
		RiskKeywords:           keywords,
		Recommendations:        recommendations(level, hasFinancial, len(deadlineHits) > 0),
	}
}

// CalculateOverallRisk scores a document set as a whole. An empty set is a
// valid state, not an error: score 0 with an explanatory message.
func CalculateOverallRisk(docs []domain.Document) Overall {
	if len(docs) == 0 {
		return Overall{Score: 0, Message: "no documents to assess; document risk is neutral"}
	}

	var urgencySum, highCount, financialCount int
	for _, doc := range docs {
		analysis := Analyze(doc)
		urgencySum += analysis.UrgencyScore
		if analysis.RiskLevel == RiskHigh {
			highCount++
		}
		if analysis.HasFinancialCommitment {
			financialCount++
		}
	}

	total := float64(len(docs))
	score := int(math.Round(
		0.5*(float64(urgencySum)/total) +
			0.3*(float64(highCount)/total*100) +
			0.2*(float64(financialCount)/total*100)))
	if score > overallScoreCap {
		score = overallScoreCap
	}

	return Overall{
		Score:                    score,
		DocumentCount:            len(docs),
		HighRiskCount:            highCount,
		FinancialCommitmentCount: financialCount,
	}
}

func matchKeywords(content string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

// extractAmounts collects deduplicated currency-looking substrings in their
// original casing.
func extractAmounts(content string) []string {
	seen := make(map[string]bool)
	var amounts []string
	for _, re := range amountPatterns {
		for _, m := range re.FindAllString(content, -1) {
			m = strings.TrimSpace(m)
			key := strings.ToLower(m)
			if !seen[key] {
				seen[key] = true
				amounts = append(amounts, m)
			}
		}
	}
	return amounts
}

// recommendations picks templated follow-ups; at least one is always
// returned.
func recommendations(level RiskLevel, hasFinancial, hasDeadline bool) []string {
	var recs []string
	switch level {
	case RiskHigh:
		recs = append(recs, "escalate to the board today; this document signals immediate action")
	case RiskMedium:
		recs = append(recs, "schedule a review this week before the referenced dates pass")
	}
	if hasFinancial {
		recs = append(recs, "verify the committed amounts against the treasury balance before approving")
	}
	if hasDeadline {
		recs = append(recs, "add the stated deadline to the organization calendar")
	}
	if len(recs) == 0 {
		recs = append(recs, "no urgent signals found; can proceed at normal priority")
	}
	return recs
}
