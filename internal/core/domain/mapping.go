package domain

// ConditionOperator enumerates the comparison operators supported by
// mapping conditions. Evaluation fails closed on anything else.
type ConditionOperator string

const (
	OpEquals      ConditionOperator = "equals"
	OpNotEquals   ConditionOperator = "not_equals"
	OpGreaterThan ConditionOperator = "greater_than"
	OpLessThan    ConditionOperator = "less_than"
	OpIn          ConditionOperator = "in"
	OpNotIn       ConditionOperator = "not_in"
	OpContains    ConditionOperator = "contains"
)

// Condition is a small expression tree stored as JSONB on a mapping.
// A node is either a leaf comparison (Field/Operator/Value) or a group
// (All = AND, Any = OR). Exactly one form should be populated.
type Condition struct {
	Field    string            `json:"field,omitempty"`
	Operator ConditionOperator `json:"operator,omitempty"`
	Value    any               `json:"value,omitempty"`
	All      []Condition       `json:"and,omitempty"`
	Any      []Condition       `json:"or,omitempty"`
}

// IsLeaf reports whether the condition is a single comparison rather
// than an AND/OR group.
func (c Condition) IsLeaf() bool {
	return len(c.All) == 0 && len(c.Any) == 0
}

// IsZero reports whether the condition is empty (no predicate at all).
func (c Condition) IsZero() bool {
	return c.Field == "" && c.Operator == "" && c.Value == nil &&
		len(c.All) == 0 && len(c.Any) == 0
}

// GLAccountMapping is a rule translating a business event into ledger
// postings. Either GLAccountID or the Debit/Credit pair must reference a
// postable account.
type GLAccountMapping struct {
	MappingID       string     `json:"mappingID"` // Primary Key (UUID)
	SourceSystem    string     `json:"sourceSystem"`
	SourceType      string     `json:"sourceType"`
	SourceSubType   string     `json:"sourceSubType"` // Empty = matches any sub type
	FundID          string     `json:"fundID"`        // Empty = global scope
	Priority        int        `json:"priority"`      // Ascending = evaluated first
	IsActive        bool       `json:"isActive"`
	GLAccountID     string     `json:"glAccountID"`     // Single-account form
	DebitAccountID  string     `json:"debitAccountID"`  // Pair form
	CreditAccountID string     `json:"creditAccountID"` // Pair form
	AmountField     string     `json:"amountField"`     // Source data key holding the amount; defaults to "amount"
	Conditions      *Condition `json:"conditions,omitempty"`
	Description     string     `json:"description"`
	AuditFields
}

// HasAccountPair reports whether the mapping names an explicit
// debit/credit account pair.
func (m GLAccountMapping) HasAccountPair() bool {
	return m.DebitAccountID != "" && m.CreditAccountID != ""
}
