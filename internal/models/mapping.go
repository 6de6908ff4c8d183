package models

// GLAccountMapping is the gl_account_mappings row. Conditions is the raw
// JSONB payload; decoding into the domain condition tree happens in the
// converter.
type GLAccountMapping struct {
	MappingID       string `db:"mapping_id"`
	SourceSystem    string `db:"source_system"`
	SourceType      string `db:"source_type"`
	SourceSubType   string `db:"source_sub_type"` // Nullable
	FundID          string `db:"fund_id"`         // Nullable, NULL = global
	Priority        int    `db:"priority"`
	IsActive        bool   `db:"is_active"`
	GLAccountID     string `db:"gl_account_id"`     // Nullable
	DebitAccountID  string `db:"debit_account_id"`  // Nullable
	CreditAccountID string `db:"credit_account_id"` // Nullable
	AmountField     string `db:"amount_field"`
	Conditions      []byte `db:"conditions"` // JSONB, nullable
	Description     string `db:"description"`
	AuditFields
}
