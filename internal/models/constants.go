package models

// TransactionType tells whether money left the account (debit) or entered it (credit).
type TransactionType string

// Transaction types
const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

// Categories of the built-in taxonomy
const (
	CategoryGeneral        = "General"
	CategoryFood           = "Food & Dining"
	CategoryGroceries      = "Groceries"
	CategoryTransportation = "Transportation"
	CategoryBills          = "Bills & Utilities"
	CategoryShopping       = "Shopping"
	CategoryEntertainment  = "Entertainment"
	CategoryHealthcare     = "Healthcare"
	CategoryTravel         = "Travel"
	CategoryEducation      = "Education"
	CategoryFamilySupport  = "Family Support"
	CategoryCelebration    = "Celebration"
	CategoryIncome         = "Salary/Income"
	CategoryInvestment     = "Investment"
	CategoryRent           = "Rent"
)

// UnknownMerchant is the merchant name used when nothing better can be found.
const UnknownMerchant = "Unknown Merchant"

// DateFormat is the layout of ExtractedTransaction.Date.
const DateFormat = "2006-01-02"

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
