// Package rules evaluates the structured condition predicates stored on
// GL account mappings against source event data.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/praxio/fundledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedOperator indicates a condition uses an operator the
// evaluator does not know. Resolution fails closed rather than treating
// the condition as a pass.
var ErrUnsupportedOperator = errors.New("unsupported condition operator")

// Evaluate reports whether the condition matches the given source data.
// A nil or empty condition matches everything. Group nodes (AND/OR)
// recurse; leaf nodes compare sourceData[field] against the configured
// value.
func Evaluate(cond *domain.Condition, sourceData map[string]any) (bool, error) {
	if cond == nil || cond.IsZero() {
		return true, nil
	}
	return evaluate(*cond, sourceData)
}

// Validate walks the whole condition tree and rejects any operator the
// evaluator does not know. Evaluate short-circuits AND/OR groups, so a
// bad operator behind an already-decided sibling would otherwise go
// unnoticed until resolution time.
func Validate(cond *domain.Condition) error {
	if cond == nil || cond.IsZero() {
		return nil
	}
	return validateNode(*cond)
}

func validateNode(cond domain.Condition) error {
	if !cond.IsLeaf() {
		for _, child := range cond.All {
			if err := validateNode(child); err != nil {
				return err
			}
		}
		for _, child := range cond.Any {
			if err := validateNode(child); err != nil {
				return err
			}
		}
		return nil
	}
	switch cond.Operator {
	case domain.OpEquals, domain.OpNotEquals, domain.OpGreaterThan,
		domain.OpLessThan, domain.OpIn, domain.OpNotIn, domain.OpContains:
		return nil
	default:
		return fmt.Errorf("%w: '%s'", ErrUnsupportedOperator, cond.Operator)
	}
}

func evaluate(cond domain.Condition, sourceData map[string]any) (bool, error) {
	if len(cond.All) > 0 {
		for _, child := range cond.All {
			ok, err := evaluate(child, sourceData)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
	if len(cond.Any) > 0 {
		for _, child := range cond.Any {
			ok, err := evaluate(child, sourceData)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	return evaluateLeaf(cond, sourceData)
}

func evaluateLeaf(cond domain.Condition, sourceData map[string]any) (bool, error) {
	actual, present := sourceData[cond.Field]

	switch cond.Operator {
	case domain.OpEquals:
		return present && valuesEqual(actual, cond.Value), nil
	case domain.OpNotEquals:
		return !present || !valuesEqual(actual, cond.Value), nil
	case domain.OpGreaterThan:
		if !present {
			return false, nil
		}
		cmp, err := compareNumeric(actual, cond.Value)
		if err != nil {
			return false, err
		}
		return cmp > 0, nil
	case domain.OpLessThan:
		if !present {
			return false, nil
		}
		cmp, err := compareNumeric(actual, cond.Value)
		if err != nil {
			return false, err
		}
		return cmp < 0, nil
	case domain.OpIn:
		return present && valueInList(actual, cond.Value), nil
	case domain.OpNotIn:
		return !present || !valueInList(actual, cond.Value), nil
	case domain.OpContains:
		if !present {
			return false, nil
		}
		return strings.Contains(stringify(actual), stringify(cond.Value)), nil
	default:
		return false, fmt.Errorf("%w: '%s'", ErrUnsupportedOperator, cond.Operator)
	}
}

// valuesEqual compares numerically when both sides parse as numbers,
// falling back to string comparison otherwise. JSON round-trips turn
// ints into float64 and large decimals into strings, so a purely typed
// comparison would reject equal amounts.
func valuesEqual(a, b any) bool {
	da, okA := toDecimal(a)
	db, okB := toDecimal(b)
	if okA && okB {
		return da.Equal(db)
	}
	return stringify(a) == stringify(b)
}

func valueInList(actual, list any) bool {
	items, ok := list.([]any)
	if !ok {
		return false
	}
	for _, item := range items {
		if valuesEqual(actual, item) {
			return true
		}
	}
	return false
}

func compareNumeric(a, b any) (int, error) {
	da, okA := toDecimal(a)
	db, okB := toDecimal(b)
	if !okA || !okB {
		return 0, fmt.Errorf("non-numeric operands for ordered comparison: %v, %v", a, b)
	}
	return da.Cmp(db), nil
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
