package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathMatcherMatch(t *testing.T) {
	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"main.py", "*.py", true},
		{"src/utils.py", "*.py", true},
		{"README.md", "*.py", false},
		{"MAIN.PY", "*.py", false},
		{"src/main.py", "main.py", false},
		{"main.py", "main", false},
		{"a.c", "?.c", true},
		{"ab.c", "?.c", false},
		{"b.txt", "[abc].txt", true},
		{"d.txt", "[abc].txt", false},
		{"d.txt", "[!abc].txt", true},
		{"a.txt", "[!abc].txt", false},
		{"f3.go", "f[0-9].go", true},
		{"[abc", "[abc", true},
		{"a+b.txt", "a+b.txt", true},
		{"aab.txt", "a+b.txt", false},
		{"[z-a]", "[z-a]", true},
		{".git/config", ".git/*", true},
		{"temp/file.txt", "temp/*", true},
		{"build/anything/deep/file.py", "build/*", true},
		{"line\nbreak.txt", "*.txt", true},
	}

	m := newPathMatcher()
	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.match(tt.path, tt.pattern))
		})
	}
}

func TestPathMatcherMatchesAnyEmpty(t *testing.T) {
	m := newPathMatcher()
	assert.False(t, m.matchesAny("main.py", nil))
	assert.False(t, m.matchesAny("main.py", []string{}))
	assert.True(t, m.matchesAny("main.py", []string{"*.md", "*.py"}))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "src/main.py", normalizePath("./src/main.py"))
	assert.Equal(t, "src/main.py", normalizePath(filepath.Join("src", "main.py")))
	assert.Equal(t, "main.py", normalizePath("main.py"))
	if filepath.Separator == '/' {
		assert.Equal(t, `a\b.py`, normalizePath(`a\b.py`), "backslash is a name character on POSIX")
	}
}

func TestNormalizePattern(t *testing.T) {
	assert.Equal(t, "src/main.py", normalizePattern(`src\main.py`))
	assert.Equal(t, "src/*.py", normalizePattern("./src/*.py"))
	assert.Equal(t, []string{"build", "build/*"}, normalizeExcludes([]string{`build\`}))
}

func TestNormalizeExcludes(t *testing.T) {
	got := normalizeExcludes([]string{"build/", "./docs/", "*.md", ""})
	assert.Equal(t, []string{"build", "build/*", "docs", "docs/*", "*.md"}, got)
}

func TestNormalizeIncludes(t *testing.T) {
	got := normalizeIncludes([]string{"src/", "./*.py"})
	assert.Equal(t, []string{"src/*", "*.py"}, got)
}
