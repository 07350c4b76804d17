package filter

import (
	"hash/fnv"
	"strings"

	"github.com/MCB-SMART-BOY/gridbase/internal/table"
)

// Cache memoizes the visible-row index list for one (filters, search,
// row count) snapshot. Invalidation is implicit and total: any mismatch
// between the stored snapshot and the current request triggers a full
// rescan. There is no incremental update; result sets are capped in size
// by the executor, so correctness wins over cleverness here.
type Cache struct {
	valid            bool
	lastSearchText   string
	lastSearchColumn string
	lastFilterHash   uint64
	lastRowCount     int
	indices          []int

	recomputes int
}

// Invalidate drops the cached snapshot.
func (c *Cache) Invalidate() { c.valid = false }

// Valid reports whether a snapshot is stored. It does not check the
// snapshot against any particular inputs.
func (c *Cache) Valid() bool { return c.valid }

// FilteredCount returns the cached visible-row count when a snapshot is
// stored.
func (c *Cache) FilteredCount() (int, bool) {
	if !c.valid {
		return 0, false
	}
	return len(c.indices), true
}

// Recomputes returns how many full rescans this cache has performed.
func (c *Cache) Recomputes() int { return c.recomputes }

// Hash fingerprints the filter list: column, value, value2, enabled,
// case-sensitive, operator kind and logic kind of every filter, in order.
func Hash(filters []ColumnFilter) uint64 {
	h := fnv.New64a()
	for _, f := range filters {
		h.Write([]byte(f.Column))
		h.Write([]byte{0})
		h.Write([]byte(f.Value))
		h.Write([]byte{0})
		h.Write([]byte(f.Value2))
		h.Write([]byte{0, boolByte(f.Enabled), boolByte(f.CaseSensitive), byte(f.Operator), byte(f.Logic)})
	}
	return h.Sum64()
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// VisibleRows returns the indices of rows passing the search text and the
// enabled filters, reusing the cached index list when the stored snapshot
// matches the current inputs. searchColumn "" searches every column.
func VisibleRows(res *table.Result, searchText, searchColumn string, filters []ColumnFilter, re RegexEngine, c *Cache) []int {
	filterHash := Hash(filters)

	if c != nil && c.valid &&
		c.lastSearchText == searchText &&
		c.lastSearchColumn == searchColumn &&
		c.lastFilterHash == filterHash &&
		c.lastRowCount == len(res.Rows) {
		return c.indices
	}

	indices := scanRows(res, searchText, searchColumn, filters, re)

	if c != nil {
		c.indices = indices
		c.lastSearchText = searchText
		c.lastSearchColumn = searchColumn
		c.lastFilterHash = filterHash
		c.lastRowCount = len(res.Rows)
		c.valid = true
		c.recomputes++
	}
	return indices
}

// scanRows is the uncached single-pass scan, O(rows x filters).
func scanRows(res *table.Result, searchText, searchColumn string, filters []ColumnFilter, re RegexEngine) []int {
	searchLower := strings.ToLower(searchText)
	searchColIdx := -1
	if searchColumn != "" {
		searchColIdx = res.ColumnIndex(searchColumn)
	}

	var active []ColumnFilter
	for _, f := range filters {
		if f.Enabled {
			active = append(active, f)
		}
	}
	// Column positions resolved once per scan, not per row. A filter on a
	// nonexistent column keeps index -1 and matches nothing.
	colIdx := make([]int, len(active))
	for i, f := range active {
		colIdx[i] = res.ColumnIndex(f.Column)
	}

	indices := make([]int, 0, len(res.Rows))
	for rowIdx, row := range res.Rows {
		if !matchesSearch(row, searchLower, searchColIdx, searchColumn != "") {
			continue
		}
		if matchesFilters(row, active, colIdx, re) {
			indices = append(indices, rowIdx)
		}
	}
	return indices
}

func matchesSearch(row []string, searchLower string, searchColIdx int, colChosen bool) bool {
	if searchLower == "" {
		return true
	}
	if colChosen {
		if searchColIdx < 0 || searchColIdx >= len(row) {
			return false
		}
		return strings.Contains(strings.ToLower(row[searchColIdx]), searchLower)
	}
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), searchLower) {
			return true
		}
	}
	return false
}

// matchesFilters folds the enabled filters left to right. The accumulator
// starts as the first filter's result; each later filter is joined by the
// PREVIOUS filter's Logic. An empty filter set is vacuously true.
func matchesFilters(row []string, active []ColumnFilter, colIdx []int, re RegexEngine) bool {
	if len(active) == 0 {
		return true
	}

	acc := false
	pending := LogicAnd
	for i, f := range active {
		match := false
		if idx := colIdx[i]; idx >= 0 && idx < len(row) {
			match = Match(row[idx], f.Operator, f.Value, f.Value2, f.CaseSensitive, re)
		}
		if i == 0 {
			acc = match
		} else if pending == LogicAnd {
			acc = acc && match
		} else {
			acc = acc || match
		}
		pending = f.Logic
	}
	return acc
}

// CountSearchMatches returns (matched, total) for the free-text search
// alone, ignoring filters. Used for the status bar.
func CountSearchMatches(res *table.Result, searchText, searchColumn string) (int, int) {
	total := len(res.Rows)
	if searchText == "" {
		return total, total
	}
	searchLower := strings.ToLower(searchText)
	searchColIdx := -1
	if searchColumn != "" {
		searchColIdx = res.ColumnIndex(searchColumn)
	}
	matched := 0
	for _, row := range res.Rows {
		if matchesSearch(row, searchLower, searchColIdx, searchColumn != "") {
			matched++
		}
	}
	return matched, total
}
