package filter

// Logic is the boolean connector between one filter and the NEXT enabled
// filter in the list. It is stored per-filter but semantically describes
// the join to what follows, so the last filter's Logic is never read.
type Logic int

const (
	LogicAnd Logic = iota
	LogicOr
)

func (l Logic) String() string {
	if l == LogicOr {
		return "OR"
	}
	return "AND"
}

// Toggle flips between AND and OR.
func (l Logic) Toggle() Logic {
	if l == LogicAnd {
		return LogicOr
	}
	return LogicAnd
}

// ColumnFilter is one filter condition on a named column. Value2 is
// meaningful only for the Between/NotBetween operators.
type ColumnFilter struct {
	Column        string
	Operator      Operator
	Value         string
	Value2        string
	Enabled       bool
	CaseSensitive bool
	Logic         Logic
}

// NewColumnFilter returns an enabled Contains filter on column.
func NewColumnFilter(column string) ColumnFilter {
	return ColumnFilter{Column: column, Operator: OpContains, Enabled: true}
}

// Valid reports whether the condition is complete enough to apply.
func (f ColumnFilter) Valid() bool {
	if f.Column == "" {
		return false
	}
	if f.Operator.NeedsValue() && f.Value == "" {
		return false
	}
	if f.Operator.NeedsSecondValue() && f.Value2 == "" {
		return false
	}
	return true
}
