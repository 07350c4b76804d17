package filter

import (
	"fmt"
	"regexp"
	"regexp/syntax"
)

// Guard limits for user-supplied regex patterns. Patterns over either
// limit are rejected before any matching happens, which bounds worst-case
// evaluation cost.
const (
	MaxRegexPatternLen = 100
	MaxRegexSize       = 10 * 1024
)

// Matcher is a compiled pattern.
type Matcher interface {
	MatchString(s string) bool
}

// RegexEngine compiles user-supplied patterns. The size/length guards are
// enforced at this boundary regardless of the underlying library, so a
// different engine can be injected without weakening the limits.
type RegexEngine interface {
	Compile(pattern string) (Matcher, error)
}

// StdRegexEngine compiles with the standard library's RE2 engine and
// memoizes compiled patterns. RE2 has no catastrophic backtracking, but
// the pattern-length and program-size caps are still applied so swapping
// in a backtracking engine keeps the same contract.
type StdRegexEngine struct {
	cache map[string]*regexp.Regexp
}

func NewStdRegexEngine() *StdRegexEngine {
	return &StdRegexEngine{cache: make(map[string]*regexp.Regexp)}
}

func (e *StdRegexEngine) Compile(pattern string) (Matcher, error) {
	if len(pattern) > MaxRegexPatternLen {
		return nil, fmt.Errorf("regex pattern too long: %d chars (max %d)", len(pattern), MaxRegexPatternLen)
	}
	if re, ok := e.cache[pattern]; ok {
		return re, nil
	}
	if err := checkProgramSize(pattern); err != nil {
		return nil, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile regex: %w", err)
	}
	e.cache[pattern] = re
	return re, nil
}

// checkProgramSize compiles pattern to its RE2 program and measures it,
// so a short pattern that expands through counted repetition or large
// unicode classes still hits the size cap.
func checkProgramSize(pattern string) error {
	parsed, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return fmt.Errorf("compile regex: %w", err)
	}
	prog, err := syntax.Compile(parsed.Simplify())
	if err != nil {
		return fmt.Errorf("compile regex: %w", err)
	}
	size := 0
	for _, inst := range prog.Inst {
		size += 16 + 4*len(inst.Rune)
	}
	if size > MaxRegexSize {
		return fmt.Errorf("regex program too large: %d bytes (max %d)", size, MaxRegexSize)
	}
	return nil
}
