// Package pathmatch matches paths against shell patterns with find -path semantics.
//
// Unlike filepath.Match, wildcards cross directory separators:
//   - * matches any run of characters, including /
//   - ? matches exactly one character, including /
//   - [...] matches one character from the set, [!...] negates it
//   - \ escapes the next character
package pathmatch

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Pattern is a compiled pattern.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// String returns the pattern as written.
func (p *Pattern) String() string {
	return p.source
}

// Match reports whether path matches the whole pattern.
func (p *Pattern) Match(path string) bool {
	return p.re.MatchString(path)
}

var compiled sync.Map //nolint:gochecknoglobals // compiled patterns are immutable and shared

// Compile parses a pattern. Results are cached.
func Compile(pattern string) (*Pattern, error) {
	if v, ok := compiled.Load(pattern); ok {
		p, _ := v.(*Pattern) //nolint:errcheck // only *Pattern is stored

		return p, nil
	}

	expr, err := translate(pattern)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	p := &Pattern{source: pattern, re: re}
	compiled.Store(pattern, p)

	return p, nil
}

// Match reports whether path matches pattern.
func Match(pattern, path string) (bool, error) {
	p, err := Compile(pattern)
	if err != nil {
		return false, err
	}

	return p.Match(path), nil
}

// Set is a list of compiled patterns.
type Set []*Pattern

// NewSet compiles all patterns, failing on the first invalid one.
func NewSet(patterns []string) (Set, error) {
	set := make(Set, 0, len(patterns))

	for _, pattern := range patterns {
		p, err := Compile(pattern)
		if err != nil {
			return nil, err
		}

		set = append(set, p)
	}

	return set, nil
}

// Match returns the first pattern matching path.
func (s Set) Match(path string) (*Pattern, bool) {
	for _, p := range s {
		if p.Match(path) {
			return p, true
		}
	}

	return nil, false
}

// translate turns a pattern into an anchored regular expression.
func translate(pattern string) (string, error) {
	var out strings.Builder

	out.WriteByte('^')

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			out.WriteString(".*")
		case '?':
			out.WriteByte('.')
		case '\\':
			if i+1 == len(pattern) {
				return "", fmt.Errorf("pattern %q: trailing backslash", pattern)
			}

			i++
			out.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		case '[':
			end := classEnd(pattern, i)
			if end < 0 {
				return "", fmt.Errorf("pattern %q: unclosed character class", pattern)
			}

			class := pattern[i+1 : end]
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			}

			out.WriteString("[" + class + "]")

			i = end
		default:
			out.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		}
	}

	out.WriteByte('$')

	return out.String(), nil
}

// classEnd returns the index of the ] closing the class opened at start, or -1.
// A ] directly after [ or [! is a literal member.
func classEnd(pattern string, start int) int {
	i := start + 1

	if i < len(pattern) && pattern[i] == '!' {
		i++
	}

	if i < len(pattern) && pattern[i] == ']' {
		i++
	}

	if idx := strings.IndexByte(pattern[i:], ']'); idx >= 0 {
		return i + idx
	}

	return -1
}
