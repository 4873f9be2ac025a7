package receipt

import (
	"testing"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "raw json untouched",
			raw:  `{"amount": 25000}`,
			want: `{"amount": 25000}`,
		},
		{
			name: "json fence",
			raw:  "```json\n{\"amount\": 25000}\n```",
			want: `{"amount": 25000}`,
		},
		{
			name: "bare fence",
			raw:  "```\n{\"amount\": 25000}\n```",
			want: `{"amount": 25000}`,
		},
		{
			name: "chatty preamble",
			raw:  "Here is the result:\n{\"amount\": 25000}\nHope that helps!",
			want: `{"amount": 25000}`,
		},
		{
			name: "whitespace padding",
			raw:  "\n\n  {\"amount\": 25000}  \n",
			want: `{"amount": 25000}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelJSON(tt.raw); got != tt.want {
				t.Errorf("cleanModelJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestReceiptFromModelOutput(t *testing.T) {
	obj := map[string]interface{}{
		"amount":        float64(150000),
		"merchant_name": " Toko Sinar Abadi ",
		"date":          "2024-06-12",
		"category":      "Consumables",
		"confidence":    0.91,
	}

	data, err := receiptFromModelOutput(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Amount != 150000 {
		t.Errorf("amount = %d, want 150000", data.Amount)
	}
	if data.MerchantName != "Toko Sinar Abadi" {
		t.Errorf("merchant = %q, want trimmed name", data.MerchantName)
	}
	if data.Confidence != domain.ConfidenceHigh {
		t.Errorf("confidence = %v, want High at score 0.91", data.Confidence)
	}
	if data.Provider != ProviderGemini {
		t.Errorf("provider = %q, want %q", data.Provider, ProviderGemini)
	}
	if data.IsInvalid {
		t.Error("non-zero amount must be valid")
	}
}

func TestReceiptFromModelOutput_Defaults(t *testing.T) {
	// Nulls and missing fields map to sentinels, never errors.
	data, err := receiptFromModelOutput(map[string]interface{}{
		"amount": float64(0),
		"date":   nil,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.MerchantName != domain.UnknownMerchant {
		t.Errorf("merchant = %q, want sentinel", data.MerchantName)
	}
	if data.Category != domain.CategoryOther {
		t.Errorf("category = %q, want %q", data.Category, domain.CategoryOther)
	}
	if !data.IsInvalid {
		t.Error("zero amount must be invalid")
	}
	if data.Confidence != domain.ConfidenceLow {
		t.Errorf("confidence = %v, want Low", data.Confidence)
	}
}

func TestReceiptFromModelOutput_WrongTypes(t *testing.T) {
	tests := []struct {
		name string
		obj  map[string]interface{}
	}{
		{"amount as string", map[string]interface{}{"amount": "25000"}},
		{"merchant as number", map[string]interface{}{"merchant_name": float64(5)}},
		{"confidence as string", map[string]interface{}{"confidence": "high"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := receiptFromModelOutput(tt.obj); err == nil {
				t.Error("expected type error")
			}
		})
	}
}

func TestReceiptFromModelOutput_ClampsConfidence(t *testing.T) {
	data, err := receiptFromModelOutput(map[string]interface{}{
		"amount":     float64(5000),
		"confidence": 1.7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.ConfidenceScore != 1 {
		t.Errorf("score = %v, want clamped to 1", data.ConfidenceScore)
	}
}
