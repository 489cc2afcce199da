package main

import (
	"path/filepath"
	"regexp"
	"strings"
)

// pathMatcher matches normalized relative paths against shell-style glob
// patterns. Unlike filepath.Match, '*' also crosses '/' so a pattern is
// applied to the whole path string rather than to a single segment.
type pathMatcher struct {
	compiled map[string]*regexp.Regexp
}

func newPathMatcher() *pathMatcher {
	return &pathMatcher{compiled: make(map[string]*regexp.Regexp)}
}

// match reports whether pattern describes the entire path.
func (m *pathMatcher) match(path, pattern string) bool {
	re, ok := m.compiled[pattern]
	if !ok {
		var err error
		re, err = regexp.Compile(translateGlob(pattern))
		if err != nil {
			// Bracket ranges such as [z-a] do not compile; treat the pattern as a literal.
			re = regexp.MustCompile("^" + regexp.QuoteMeta(pattern) + "$")
		}
		m.compiled[pattern] = re
	}
	return re.MatchString(path)
}

// matchesAny reports whether path matches at least one pattern.
// An empty pattern list never matches.
func (m *pathMatcher) matchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if m.match(path, pattern) {
			return true
		}
	}
	return false
}

// translateGlob converts a glob pattern into an anchored regular expression.
// Supported: '*', '?', and bracket classes with '!' negation. An unterminated
// '[' is matched literally.
func translateGlob(pattern string) string {
	var b strings.Builder
	b.WriteString("^(?s:")

	runes := []rune(pattern)
	n := len(runes)
	for i := 0; i < n; {
		c := runes[i]
		i++
		switch c {
		case '*':
			for i < n && runes[i] == '*' {
				i++
			}
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			j := i
			if j < n && runes[j] == '!' {
				j++
			}
			if j < n && runes[j] == ']' {
				j++
			}
			for j < n && runes[j] != ']' {
				j++
			}
			if j >= n {
				b.WriteString(`\[`)
				continue
			}
			class := runes[i:j]
			i = j + 1
			b.WriteString("[")
			if class[0] == '!' {
				b.WriteString("^")
				class = class[1:]
			}
			for _, r := range class {
				if r == '-' {
					b.WriteRune(r)
					continue
				}
				b.WriteString(regexp.QuoteMeta(string(r)))
			}
			b.WriteString("]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString(")$")
	return b.String()
}

// normalizePath converts the OS separator to '/' and strips a leading "./".
// Other characters, including '\' on POSIX, are part of the name.
func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return path
}

// normalizePattern is normalizePath for user patterns, which may also be
// written with '\' separators.
func normalizePattern(pattern string) string {
	return normalizePath(strings.ReplaceAll(pattern, `\`, "/"))
}

// normalizeExcludes normalizes exclude patterns. A trailing '/' marks a
// directory pattern, which expands to the directory itself and everything
// beneath it.
func normalizeExcludes(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		p = normalizePattern(p)
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, "/") {
			dir := strings.TrimRight(p, "/")
			out = append(out, dir, dir+"/*")
			continue
		}
		out = append(out, p)
	}
	return out
}

// normalizeIncludes normalizes include patterns; "src/" means everything inside src.
func normalizeIncludes(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		p = normalizePattern(p)
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, "/") {
			p += "*"
		}
		out = append(out, p)
	}
	return out
}
