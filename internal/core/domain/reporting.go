package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the aggregate position of one account as of a date,
// computed from posted entry history only.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	AsOf        time.Time       `json:"asOf"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	NetBalance  decimal.Decimal `json:"netBalance"` // debitTotal - creditTotal
	BalanceSide NormalBalance   `json:"balanceSide"`
}

// TrialBalanceRow is one account's line in a trial balance report. An
// account carrying a balance opposite its normal side reports zero on
// its normal column and the magnitude on the other.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Category      string          `json:"category"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalanceFilter narrows a trial balance to accounts of a given
// type and/or category. Zero values mean no filtering.
type TrialBalanceFilter struct {
	AccountType AccountType
	Category    string
}

// AccountActivity is the raw per-account debit/credit aggregation a
// repository returns before the report splits it into columns.
type AccountActivity struct {
	AccountID     string
	AccountNumber string
	AccountName   string
	AccountType   AccountType
	Category      string
	NormalBalance NormalBalance
	DebitTotal    decimal.Decimal
	CreditTotal   decimal.Decimal
}
