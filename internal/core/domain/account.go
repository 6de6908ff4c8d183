package domain

// AccountType defines the fundamental accounting type of a GL account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account ordinarily carries a
// positive balance. It is derived from the account type at creation and
// never mutated independently.
type NormalBalance string

const (
	DebitBalance  NormalBalance = "DEBIT"
	CreditBalance NormalBalance = "CREDIT"
)

// GLAccount represents a node in the chart of accounts.
type GLAccount struct {
	AccountID           string        `json:"accountID"`     // Primary Key (UUID)
	AccountNumber       string        `json:"accountNumber"` // Unique, user-visible
	Name                string        `json:"name"`
	AccountType         AccountType   `json:"accountType"`
	Category            string        `json:"category"`        // Finer classification, free-form
	ParentAccountID     string        `json:"parentAccountID"` // Nullable, self-referencing
	NormalBalance       NormalBalance `json:"normalBalance"`
	Description         string        `json:"description"`
	IsActive            bool          `json:"isActive"`
	AllowsDirectPosting bool          `json:"allowsDirectPosting"`
	RequiresSubAccount  bool          `json:"requiresSubAccount"`
	AuditFields
}

// CanPostDirectly reports whether the account may receive journal lines.
func (a GLAccount) CanPostDirectly() bool {
	return a.IsActive && a.AllowsDirectPosting && !a.RequiresSubAccount
}
