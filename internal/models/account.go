package models

// AccountType defines the fundamental accounting type of a GL account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// GLAccount is the gl_accounts row.
// Note: ParentAccountID uses string for the nullable self-referencing FK;
// the repository maps NULL to the empty string.
type GLAccount struct {
	AccountID           string      `db:"account_id"`
	AccountNumber       string      `db:"account_number"`
	Name                string      `db:"name"`
	AccountType         AccountType `db:"account_type"`
	Category            string      `db:"category"`
	ParentAccountID     string      `db:"parent_account_id"` // Nullable
	NormalBalance       string      `db:"normal_balance"`
	Description         string      `db:"description"`
	IsActive            bool        `db:"is_active"`
	AllowsDirectPosting bool        `db:"allows_direct_posting"`
	RequiresSubAccount  bool        `db:"requires_sub_account"`
	AuditFields
}
