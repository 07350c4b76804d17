package filter

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ParseQuick parses the one-line quick-filter syntax:
//
//	column op value [value2]
//
// e.g. "name ~ john", "age > 18", "price [] 10 99", "status IN a,b".
// Column matching is case-insensitive exact first, then prefix; when
// nothing matches, the error suggests the nearest column by edit
// distance.
func ParseQuick(input string, columns []string) (ColumnFilter, error) {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return ColumnFilter{}, fmt.Errorf("empty filter expression")
	}

	column, err := matchColumn(parts[0], columns)
	if err != nil {
		return ColumnFilter{}, err
	}

	if len(parts) < 2 {
		return ColumnFilter{}, fmt.Errorf("missing operator after column %q", column)
	}
	op, err := parseOperatorToken(parts[1])
	if err != nil {
		return ColumnFilter{}, err
	}

	f := ColumnFilter{Column: column, Operator: op, Enabled: true}
	if !op.NeedsValue() {
		return f, nil
	}

	if len(parts) < 3 {
		return ColumnFilter{}, fmt.Errorf("operator %s needs a value", op.Symbol())
	}
	if op == OpIn || op == OpNotIn {
		// IN lists may contain spaces after commas; rejoin the tail.
		f.Value = strings.Join(parts[2:], " ")
		return f, nil
	}
	f.Value = parts[2]

	if op.NeedsSecondValue() {
		if len(parts) < 4 {
			return ColumnFilter{}, fmt.Errorf("operator %s needs two values", op.Symbol())
		}
		f.Value2 = parts[3]
	}
	return f, nil
}

func matchColumn(input string, columns []string) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("no columns available")
	}
	lower := strings.ToLower(input)
	for _, c := range columns {
		if strings.ToLower(c) == lower {
			return c, nil
		}
	}
	for _, c := range columns {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			return c, nil
		}
	}
	if s := nearestColumn(lower, columns); s != "" {
		return "", fmt.Errorf("unknown column %q (did you mean %q?)", input, s)
	}
	return "", fmt.Errorf("unknown column %q", input)
}

// nearestColumn returns the column with the smallest edit distance from
// input, or "" when nothing is plausibly close.
func nearestColumn(lower string, columns []string) string {
	best, bestDist := "", -1
	for _, c := range columns {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if bestDist == -1 || d < bestDist {
			best, bestDist = c, d
		}
	}
	// A distance larger than the input itself is noise, not a typo.
	if bestDist < 0 || bestDist > len(lower) {
		return ""
	}
	return best
}

func parseOperatorToken(tok string) (Operator, error) {
	switch strings.ToUpper(tok) {
	case "~":
		return OpContains, nil
	case "!~":
		return OpNotContains, nil
	case "=", "==":
		return OpEquals, nil
	case "!=", "<>":
		return OpNotEquals, nil
	case "^":
		return OpStartsWith, nil
	case "$":
		return OpEndsWith, nil
	case ">":
		return OpGreaterThan, nil
	case ">=":
		return OpGreaterOrEqual, nil
	case "<":
		return OpLessThan, nil
	case "<=":
		return OpLessOrEqual, nil
	case "[]", "BETWEEN":
		return OpBetween, nil
	case "![]", "!BETWEEN":
		return OpNotBetween, nil
	case "IN":
		return OpIn, nil
	case "!IN", "NOTIN":
		return OpNotIn, nil
	case "NULL", "ISNULL":
		return OpIsNull, nil
	case "!NULL", "NOTNULL":
		return OpIsNotNull, nil
	case "EMPTY", "''":
		return OpIsEmpty, nil
	case "!EMPTY", "!''":
		return OpIsNotEmpty, nil
	case "REGEX", "/./":
		return OpRegex, nil
	}
	return 0, fmt.Errorf("unknown operator %q", tok)
}
