package dto

import (
	"time"

	"github.com/praxio/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceResponse is the API representation of one account's
// aggregate position as of a date.
type AccountBalanceResponse struct {
	AccountID   string          `json:"accountID"`
	AsOf        string          `json:"asOf"`
	FundID      string          `json:"fundID,omitempty"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	NetBalance  decimal.Decimal `json:"netBalance"`
	BalanceSide string          `json:"balanceSide"`
}

// ToAccountBalanceResponse converts a domain balance to its API form.
func ToAccountBalanceResponse(b *domain.AccountBalance, fundID string) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID:   b.AccountID,
		AsOf:        b.AsOf.Format("2006-01-02"),
		FundID:      fundID,
		DebitTotal:  b.DebitTotal,
		CreditTotal: b.CreditTotal,
		NetBalance:  b.NetBalance,
		BalanceSide: string(b.BalanceSide),
	}
}

// TrialBalanceRowResponse represents a row in the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	Category      string          `json:"category,omitempty"`
	NormalBalance string          `json:"normalBalance"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalanceResponse represents the trial balance report response.
// Totals.Debit always equals Totals.Credit because every posted entry
// individually balances.
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	FundID string                    `json:"fundID,omitempty"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts domain trial balance rows to the API
// response, accumulating column totals.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow, asOf time.Time, fundID string) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf:   asOf.Format("2006-01-02"),
		FundID: fundID,
		Rows:   make([]TrialBalanceRowResponse, len(rows)),
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for i, row := range rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:     row.AccountID,
			AccountNumber: row.AccountNumber,
			AccountName:   row.AccountName,
			AccountType:   string(row.AccountType),
			Category:      row.Category,
			NormalBalance: string(row.NormalBalance),
			DebitBalance:  row.DebitBalance,
			CreditBalance: row.CreditBalance,
		}

		totalDebit = totalDebit.Add(row.DebitBalance)
		totalCredit = totalCredit.Add(row.CreditBalance)
	}

	response.Totals.Debit = totalDebit
	response.Totals.Credit = totalCredit

	return response
}
