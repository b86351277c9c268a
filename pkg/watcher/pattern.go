package watcher

import (
	"regexp"
	"strings"
)

// PlainFilenameChars is the set of characters a string pattern may contain
// and still be used as a literal
const PlainFilenameChars = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	`.-/\_`

// LooksLikeRegexp reports whether a string pattern should be treated as a
// serialized regular expression: it starts with ^, ends with $, or contains a
// character outside PlainFilenameChars.
func LooksLikeRegexp(s string) bool {
	if strings.HasPrefix(s, "^") || strings.HasSuffix(s, "$") {
		return true
	}
	for _, r := range s {
		if !strings.ContainsRune(PlainFilenameChars, r) {
			return true
		}
	}
	return false
}

// Pattern is an immutable literal or regular expression matcher
type Pattern struct {
	literal string
	re      *regexp.Regexp
}

// LiteralPattern returns a pattern matching paths equal to s
func LiteralPattern(s string) Pattern {
	return Pattern{literal: s}
}

// RegexpPattern returns a pattern matching paths re matches
func RegexpPattern(re *regexp.Regexp) Pattern {
	return Pattern{re: re}
}

// IsRegexp reports whether the pattern is a regular expression
func (p Pattern) IsRegexp() bool {
	return p.re != nil
}

// Regexp returns the regular expression, or nil for literal patterns
func (p Pattern) Regexp() *regexp.Regexp {
	return p.re
}

// Literal returns the literal string, or "" for regexp patterns
func (p Pattern) Literal() string {
	return p.literal
}

// String returns the literal or the regexp source
func (p Pattern) String() string {
	if p.re != nil {
		return p.re.String()
	}
	return p.literal
}

// Match tests path against the pattern. Literal matches carry the path as
// their only group.
func (p Pattern) Match(path string) (Match, bool) {
	if p.re == nil {
		if path != p.literal {
			return Match{}, false
		}
		return Match{path: path, groups: []string{path}}, true
	}

	groups := p.re.FindStringSubmatch(path)
	if groups == nil {
		return Match{}, false
	}
	return Match{path: path, groups: groups, names: p.re.SubexpNames()}, true
}

// Match is the result of a successful pattern match. Group 0 is the matched
// text, groups 1..n are the capture groups.
type Match struct {
	path   string
	groups []string
	names  []string
}

// Path returns the changed path that matched
func (m Match) Path() string {
	return m.path
}

// Len returns the number of groups including group 0
func (m Match) Len() int {
	return len(m.groups)
}

// Group returns group i, or "" when it does not exist
func (m Match) Group(i int) string {
	s, _ := m.Lookup(i)
	return s
}

// Lookup returns group i and whether the pattern has such a group
func (m Match) Lookup(i int) (string, bool) {
	if i < 0 || i >= len(m.groups) {
		return "", false
	}
	return m.groups[i], true
}

// Named returns the group captured by (?P<name>...)
func (m Match) Named(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for i, n := range m.names {
		if n == name && i < len(m.groups) {
			return m.groups[i], true
		}
	}
	return "", false
}

// Groups returns a copy of all groups
func (m Match) Groups() []string {
	out := make([]string, len(m.groups))
	copy(out, m.groups)
	return out
}
