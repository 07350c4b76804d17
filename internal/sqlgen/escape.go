// Package sqlgen compiles a grid edit diff into a minimal sequence of
// escaped SQL statements. It never executes anything; execution belongs
// to the caller's database layer.
package sqlgen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/MCB-SMART-BOY/gridbase/internal/table"
)

// maxIdentifierLen is the smaller of the PostgreSQL (63) and MySQL (64)
// identifier limits.
const maxIdentifierLen = 63

// ValidateIdentifier checks a table or column name against the allow-list:
// non-empty, first rune alphabetic or underscore, remainder alphanumeric
// or underscore. Anything else is rejected, which keeps quoting trivial
// and closes off injection through identifiers entirely.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier is empty")
	}
	if len(name) > maxIdentifierLen {
		return fmt.Errorf("identifier %q too long (max %d bytes)", name, maxIdentifierLen)
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return fmt.Errorf("identifier %q contains invalid character %q", name, r)
	}
	return nil
}

// QuoteIdentifier validates name and wraps it in ANSI double quotes.
func QuoteIdentifier(name string) (string, error) {
	if err := ValidateIdentifier(name); err != nil {
		return "", err
	}
	// The allow-list excludes double quotes, so no doubling is needed.
	return `"` + name + `"`, nil
}

// QuoteValue wraps a cell value in single quotes with internal quotes
// doubled. The NULL sentinel (case-insensitive) is emitted unquoted.
func QuoteValue(value string) string {
	if strings.EqualFold(value, table.NullSentinel) {
		return table.NullSentinel
	}
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// quoteEditedValue is QuoteValue plus the edited-cell rule: an empty
// string also collapses to NULL.
func quoteEditedValue(value string) string {
	if value == "" {
		return table.NullSentinel
	}
	return QuoteValue(value)
}
