package accounting

import (
	"fmt"

	"github.com/praxio/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NormalBalanceFor derives the normal balance side from an account type.
// ASSET/EXPENSE accounts carry debit balances; LIABILITY/EQUITY/REVENUE
// accounts carry credit balances. This is computed once at account
// creation and never independently mutated.
func NormalBalanceFor(accountType domain.AccountType) (domain.NormalBalance, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return domain.DebitBalance, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return domain.CreditBalance, nil
	default:
		return "", fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// ValidateLineSides checks the single-sided invariant for a line item:
// exactly one of debit/credit is strictly positive, the other exactly
// zero. Never both, never neither.
func ValidateLineSides(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("line amounts must not be negative: debit %s, credit %s", debit.String(), credit.String())
	}
	if debit.IsPositive() && credit.IsPositive() {
		return fmt.Errorf("line cannot carry both a debit (%s) and a credit (%s)", debit.String(), credit.String())
	}
	if debit.IsZero() && credit.IsZero() {
		return fmt.Errorf("line must carry a debit or a credit amount")
	}
	return nil
}

// SumLineTotals returns the debit and credit totals across line items.
func SumLineTotals(lines []domain.JournalEntryLineItem) (decimal.Decimal, decimal.Decimal) {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}
	return debits, credits
}

// SplitBalanceColumns splits a net position (debits minus credits) into
// trial balance columns. A positive net lands in the debit column, a
// negative net in the credit column; contra balances therefore surface
// on the side opposite the account's normal balance instead of erroring.
func SplitBalanceColumns(debitTotal, creditTotal decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	net := debitTotal.Sub(creditTotal)
	if net.IsNegative() {
		return decimal.Zero, net.Neg()
	}
	return net, decimal.Zero
}
