package domain

import (
	"time"
)

// TransactionType distinguishes money coming into the treasury from money
// leaving it.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is one treasury record as loaded by the caller. The engine
// treats it as an immutable snapshot; amounts are in the smallest currency
// unit and are always positive regardless of type.
type Transaction struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"date"`
	Amount   int64           `json:"amount"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	ProofURI string          `json:"proof_uri,omitempty"` // receipt photo reference, empty when missing
	Status   string          `json:"status,omitempty"`
}

// HasProof reports whether the transaction carries a receipt image reference.
func (t Transaction) HasProof() bool {
	return t.ProofURI != ""
}

// AttendanceStatusPresent is the status value counted as attendance.
const AttendanceStatusPresent = "present"

// AttendanceRecord is one meeting attendance entry.
type AttendanceRecord struct {
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
}

// Present reports whether the record counts toward attendance rates.
func (r AttendanceRecord) Present() bool {
	return r.Status == AttendanceStatusPresent
}

// Member is an organization member snapshot.
type Member struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

// Document is a free-text organizational document (letter, proposal,
// circular) fed to the document risk analyzer.
type Document struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}
