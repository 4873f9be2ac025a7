package domain

// ConfidenceLevel is the coarse trust grade attached to an extraction.
type ConfidenceLevel string

const (
	ConfidenceHigh ConfidenceLevel = "High"
	ConfidenceLow  ConfidenceLevel = "Low"
)

// Procurement categories assigned by the receipt parser. The engine matches
// on these by substring, so renaming one means touching both packages.
const (
	CategoryLogistics   = "Logistics"
	CategoryProgram     = "Program"
	CategoryOperations  = "Operations"
	CategoryConsumables = "Consumables"
	CategoryTransport   = "Transport"
	CategoryOther       = "Other"
)

// UnknownMerchant is the sentinel merchant name used when no line in the
// receipt header qualifies as a merchant.
const UnknownMerchant = "Unknown Merchant"

// ReceiptData is the structured result of one receipt extraction. It is
// created fresh per image and never mutated after construction.
type ReceiptData struct {
	Amount          int64           `json:"amount"`
	MerchantName    string          `json:"merchant_name"`
	Date            string          `json:"date,omitempty"` // ISO YYYY-MM-DD, empty when not detected
	Category        string          `json:"category"`
	Confidence      ConfidenceLevel `json:"confidence"`
	ConfidenceScore float64         `json:"confidence_score"`
	IsInvalid       bool            `json:"is_invalid"`
	Provider        string          `json:"provider,omitempty"`
	NeedsReview     bool            `json:"needs_review,omitempty"`
}

// InvalidReceipt returns the all-default extraction result used whenever the
// pipeline cannot produce a trustworthy read. It is a valid output state, not
// an error.
func InvalidReceipt(provider string) ReceiptData {
	return ReceiptData{
		Amount:          0,
		MerchantName:    UnknownMerchant,
		Category:        CategoryOther,
		Confidence:      ConfidenceLow,
		ConfidenceScore: 0,
		IsInvalid:       true,
		Provider:        provider,
	}
}
