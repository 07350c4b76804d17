package filter

import (
	"strconv"
	"strings"

	"github.com/MCB-SMART-BOY/gridbase/internal/table"
)

// Operator enumerates the comparison semantics a column filter can apply.
type Operator int

const (
	// Text operators.
	OpContains Operator = iota
	OpNotContains
	OpEquals
	OpNotEquals
	OpStartsWith
	OpEndsWith

	// Ordered comparisons. Both operands are parsed as numbers first;
	// when either side fails to parse the comparison falls back to
	// lexicographic order so the filter stays predictable on
	// non-numeric columns.
	OpGreaterThan
	OpGreaterOrEqual
	OpLessThan
	OpLessOrEqual
	OpBetween
	OpNotBetween

	// Set membership over a comma-split candidate list.
	OpIn
	OpNotIn

	// NULL / empty checks against the sentinel.
	OpIsNull
	OpIsNotNull
	OpIsEmpty
	OpIsNotEmpty

	// Regular expression, guarded by the engine's size limits.
	OpRegex
)

var operatorNames = map[Operator]string{
	OpContains:       "contains",
	OpNotContains:    "not contains",
	OpEquals:         "equals",
	OpNotEquals:      "not equals",
	OpStartsWith:     "starts with",
	OpEndsWith:       "ends with",
	OpGreaterThan:    "greater than",
	OpGreaterOrEqual: "greater or equal",
	OpLessThan:       "less than",
	OpLessOrEqual:    "less or equal",
	OpBetween:        "between",
	OpNotBetween:     "not between",
	OpIn:             "in",
	OpNotIn:          "not in",
	OpIsNull:         "is null",
	OpIsNotNull:      "is not null",
	OpIsEmpty:        "is empty",
	OpIsNotEmpty:     "is not empty",
	OpRegex:          "regex",
}

var operatorSymbols = map[Operator]string{
	OpContains:       "~",
	OpNotContains:    "!~",
	OpEquals:         "=",
	OpNotEquals:      "!=",
	OpStartsWith:     "^",
	OpEndsWith:       "$",
	OpGreaterThan:    ">",
	OpGreaterOrEqual: ">=",
	OpLessThan:       "<",
	OpLessOrEqual:    "<=",
	OpBetween:        "[]",
	OpNotBetween:     "![]",
	OpIn:             "IN",
	OpNotIn:          "!IN",
	OpIsNull:         "NULL",
	OpIsNotNull:      "!NULL",
	OpIsEmpty:        "''",
	OpIsNotEmpty:     "!''",
	OpRegex:          "/.*/",
}

func (op Operator) String() string {
	if s, ok := operatorNames[op]; ok {
		return s
	}
	return "unknown"
}

// Symbol returns the compact form used by the quick-filter syntax and the
// filter bar.
func (op Operator) Symbol() string {
	if s, ok := operatorSymbols[op]; ok {
		return s
	}
	return "?"
}

// NeedsValue reports whether the operator requires a comparison value.
func (op Operator) NeedsValue() bool {
	switch op {
	case OpIsNull, OpIsNotNull, OpIsEmpty, OpIsNotEmpty:
		return false
	}
	return true
}

// NeedsSecondValue reports whether the operator requires a range upper bound.
func (op Operator) NeedsSecondValue() bool {
	return op == OpBetween || op == OpNotBetween
}

// SupportsCaseSensitivity reports whether case folding changes the result.
func (op Operator) SupportsCaseSensitivity() bool {
	switch op {
	case OpContains, OpNotContains, OpEquals, OpNotEquals,
		OpStartsWith, OpEndsWith, OpIn, OpNotIn:
		return true
	}
	return false
}

// Match evaluates one filter condition against a single cell value using
// the given regex engine for OpRegex. A pattern over the length or size
// limits, or one that does not compile, evaluates to no-match.
func Match(cell string, op Operator, value, value2 string, caseSensitive bool, re RegexEngine) bool {
	cellCmp, valueCmp, value2Cmp := cell, value, value2
	if !caseSensitive {
		cellCmp = strings.ToLower(cell)
		valueCmp = strings.ToLower(value)
		value2Cmp = strings.ToLower(value2)
	}

	switch op {
	case OpContains:
		return strings.Contains(cellCmp, valueCmp)
	case OpNotContains:
		return !strings.Contains(cellCmp, valueCmp)
	case OpEquals:
		return cellCmp == valueCmp
	case OpNotEquals:
		return cellCmp != valueCmp
	case OpStartsWith:
		return strings.HasPrefix(cellCmp, valueCmp)
	case OpEndsWith:
		return strings.HasSuffix(cellCmp, valueCmp)

	case OpGreaterThan:
		return compareValues(cell, value) > 0
	case OpGreaterOrEqual:
		return compareValues(cell, value) >= 0
	case OpLessThan:
		return compareValues(cell, value) < 0
	case OpLessOrEqual:
		return compareValues(cell, value) <= 0
	case OpBetween:
		return compareValues(cell, value) >= 0 && compareValues(cell, value2Cmp) <= 0
	case OpNotBetween:
		return !(compareValues(cell, value) >= 0 && compareValues(cell, value2Cmp) <= 0)

	case OpIn:
		return inList(cellCmp, value, caseSensitive)
	case OpNotIn:
		return !inList(cellCmp, value, caseSensitive)

	case OpIsNull:
		return table.IsNull(cell)
	case OpIsNotNull:
		return !table.IsNull(cell)
	case OpIsEmpty:
		return cell == "" || table.IsNull(cell)
	case OpIsNotEmpty:
		return cell != "" && !table.IsNull(cell)

	case OpRegex:
		m, err := re.Compile(value)
		if err != nil {
			return false
		}
		return m.MatchString(cell)
	}
	return false
}

// compareValues orders two cell values numerically when both parse as
// floats, lexicographically otherwise. Returns <0, 0, >0.
func compareValues(cell, value string) int {
	a, errA := strconv.ParseFloat(cell, 64)
	b, errB := strconv.ParseFloat(value, 64)
	if errA == nil && errB == nil {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	return strings.Compare(cell, value)
}

// inList checks membership of cell in a comma-split candidate list. The
// cell is pre-folded by the caller when case-insensitive.
func inList(cell, list string, caseSensitive bool) bool {
	for _, raw := range strings.Split(list, ",") {
		candidate := strings.TrimSpace(raw)
		if !caseSensitive {
			candidate = strings.ToLower(candidate)
		}
		if candidate == cell {
			return true
		}
	}
	return false
}
