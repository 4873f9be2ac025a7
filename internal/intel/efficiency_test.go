package intel

import (
	"testing"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

func TestEfficiencyScore(t *testing.T) {
	e := newTestEngine(Options{})

	tests := []struct {
		name       string
		txs        []domain.Transaction
		wantScore  int
		wantStatus string
	}{
		{
			name:       "no expenses",
			txs:        nil,
			wantScore:  0,
			wantStatus: domain.EfficiencyNeedsImprovement,
		},
		{
			name: "all program spend",
			txs: []domain.Transaction{
				expense("a", 500000, "Program", testNow),
				expense("b", 300000, "Kegiatan Sosial", testNow),
			},
			wantScore:  100,
			wantStatus: domain.EfficiencyExcellent,
		},
		{
			name: "all operational spend",
			txs: []domain.Transaction{
				expense("a", 500000, "Operations", testNow),
			},
			wantScore:  0,
			wantStatus: domain.EfficiencyNeedsImprovement,
		},
		{
			name: "mixed spend lands in good band",
			txs: []domain.Transaction{
				expense("a", 600000, "Program", testNow),
				expense("b", 400000, "Operations", testNow),
			},
			wantScore:  60,
			wantStatus: domain.EfficiencyGood,
		},
		{
			name: "income is ignored",
			txs: []domain.Transaction{
				expense("a", 700000, "Program", testNow),
				{ID: "b", Date: testNow, Amount: 9000000, Type: domain.TransactionIncome, Category: "Operations"},
				expense("c", 300000, "Operations", testNow),
			},
			wantScore:  70,
			wantStatus: domain.EfficiencyExcellent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := e.efficiencyScore(tt.txs)
			if report.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", report.Score, tt.wantScore)
			}
			if report.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", report.Status, tt.wantStatus)
			}
		})
	}
}

func TestEfficiencyScore_Totals(t *testing.T) {
	e := newTestEngine(Options{})

	report := e.efficiencyScore([]domain.Transaction{
		expense("a", 600000, "Program", testNow),
		expense("b", 400000, "Operations", testNow),
	})
	if report.ProgramSpend != 600000 || report.OperationalSpend != 400000 || report.TotalExpense != 1000000 {
		t.Errorf("totals = %d/%d/%d", report.ProgramSpend, report.OperationalSpend, report.TotalExpense)
	}
}

func TestIsProgramCategory(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"Program", true},
		{"Kegiatan Sosial", true},
		{"Acara Tahunan", true},
		{"Event", true},
		{"Operations", false},
		{"Consumables", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isProgramCategory(tt.category); got != tt.want {
			t.Errorf("isProgramCategory(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}
