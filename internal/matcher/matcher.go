// Package matcher matches category names against operator-supplied
// patterns.
//
// A pattern is one of:
//
//	Leergut      exact name, compared like article names (case and whitespace insensitive)
//	Pfand*       shell-style glob, case insensitive
//	re:^Bio.*$   regular expression, case insensitive
package matcher

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/agentstation/foodsync/pkg/dedupe"
	"github.com/agentstation/foodsync/pkg/errors"
)

// RegexPrefix marks a pattern as a regular expression.
const RegexPrefix = "re:"

// PatternType represents the kind of a pattern.
type PatternType int

const (
	// Exact compares normalized names.
	Exact PatternType = iota
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob
	// Regex uses regular expressions.
	Regex
)

// String returns the name of the pattern type.
func (t PatternType) String() string {
	switch t {
	case Exact:
		return "exact"
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Matcher matches names against one pattern.
type Matcher interface {
	// Match reports whether name matches the pattern.
	Match(name string) bool
	// Pattern returns the original pattern string.
	Pattern() string
	// Type returns the detected pattern type.
	Type() PatternType
}

type matcher struct {
	pattern     string
	patternType PatternType
	key         string
	glob        string
	compiled    *regexp.Regexp
	fold        cases.Caser
}

// New compiles a pattern.
func New(pattern string) (Matcher, error) {
	m := &matcher{pattern: pattern, fold: cases.Fold()}

	switch {
	case strings.HasPrefix(pattern, RegexPrefix):
		m.patternType = Regex
		compiled, err := regexp.Compile("(?i)" + strings.TrimPrefix(pattern, RegexPrefix))
		if err != nil {
			return nil, errors.NewValidationError("pattern", pattern, "invalid regular expression: "+err.Error())
		}
		m.compiled = compiled
	case strings.ContainsAny(pattern, "*?["):
		m.patternType = Glob
		m.glob = m.fold.String(strings.TrimSpace(pattern))
		if _, err := path.Match(m.glob, ""); err != nil {
			return nil, errors.NewValidationError("pattern", pattern, "invalid glob: "+err.Error())
		}
	default:
		m.patternType = Exact
		m.key = dedupe.Key(pattern)
	}
	return m, nil
}

// MustNew compiles a pattern and panics on error.
func MustNew(pattern string) Matcher {
	m, err := New(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *matcher) Match(name string) bool {
	switch m.patternType {
	case Regex:
		return m.compiled.MatchString(name)
	case Glob:
		ok, _ := path.Match(m.glob, m.fold.String(strings.TrimSpace(name)))
		return ok
	default:
		return dedupe.Key(name) == m.key
	}
}

func (m *matcher) Pattern() string {
	return m.pattern
}

func (m *matcher) Type() PatternType {
	return m.patternType
}

// Set matches a name against several patterns.
type Set []Matcher

// NewSet compiles every pattern. Empty patterns are skipped.
func NewSet(patterns ...string) (Set, error) {
	set := make(Set, 0, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		m, err := New(p)
		if err != nil {
			return nil, err
		}
		set = append(set, m)
	}
	return set, nil
}

// Match reports whether name matches any pattern of the set.
func (s Set) Match(name string) bool {
	for _, m := range s {
		if m.Match(name) {
			return true
		}
	}
	return false
}
