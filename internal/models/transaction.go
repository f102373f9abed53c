package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExtractedTransaction is the structured record produced from one free-text message.
// Records are values: once built they are never modified.
type ExtractedTransaction struct {
	Amount         decimal.Decimal `json:"amount" yaml:"amount"`
	AmountDetected bool            `json:"amountDetected" yaml:"amount_detected"`
	Currency       string          `json:"currency,omitempty" yaml:"currency,omitempty"`
	Merchant       string          `json:"merchant" yaml:"merchant"`
	Category       string          `json:"category" yaml:"category"`
	Type           TransactionType `json:"type" yaml:"type"`
	Date           string          `json:"date" yaml:"date"`
	Reference      string          `json:"reference,omitempty" yaml:"reference,omitempty"`
	RawText        string          `json:"rawText" yaml:"raw_text"`
}

// IsCredit reports whether the transaction brought money in.
func (t ExtractedTransaction) IsCredit() bool {
	return t.Type == TransactionTypeCredit
}

// IsDebit reports whether the transaction took money out.
func (t ExtractedTransaction) IsDebit() bool {
	return t.Type != TransactionTypeCredit
}

// Money returns the amount together with the detected currency.
func (t ExtractedTransaction) Money() Money {
	return NewMoney(t.Amount, t.Currency)
}

// Month returns the YYYY-MM part of Date, or "" when Date is malformed.
func (t ExtractedTransaction) Month() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// WithCategory returns a copy of the transaction with another category.
// The receiver is left untouched.
func (t ExtractedTransaction) WithCategory(category string) ExtractedTransaction {
	t.Category = category
	return t
}

// Validate checks the invariants every record must satisfy.
func (t ExtractedTransaction) Validate() error {
	if t.Amount.IsNegative() {
		return fmt.Errorf("amount must not be negative, got %s", t.Amount.String())
	}
	if t.Type != TransactionTypeDebit && t.Type != TransactionTypeCredit {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if t.Merchant == "" {
		return fmt.Errorf("merchant must not be empty")
	}
	if t.Category == "" {
		return fmt.Errorf("category must not be empty")
	}
	return nil
}

// String returns a one-line human readable rendering.
func (t ExtractedTransaction) String() string {
	return fmt.Sprintf("%s %s %s %s [%s] %s", t.Date, t.Type, t.Amount.StringFixed(2), t.Currency, t.Category, t.Merchant)
}
