package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreResolverGitIgnore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore": "*.log\nbuild/\n",
	})

	console, _, _ := newTestConsole()

	t.Run("rules apply", func(t *testing.T) {
		r := newIgnoreResolver(root, resolverOptions{}, console)
		assert.Equal(t, skipIgnored, r.shouldSkipFile("debug.log"))
		assert.Equal(t, skipIgnored, r.shouldSkipFile("logs/debug.log"))
		assert.Equal(t, keepFile, r.shouldSkipFile("main.py"))
		assert.True(t, r.shouldPruneDirectory("build"))
		assert.False(t, r.shouldPruneDirectory("src"))
	})

	t.Run("ignore-gitignore disables rules", func(t *testing.T) {
		r := newIgnoreResolver(root, resolverOptions{IgnoreGitignore: true}, console)
		assert.Equal(t, keepFile, r.shouldSkipFile("debug.log"))
		assert.False(t, r.shouldPruneDirectory("build"))
	})
}

func TestIgnoreResolverCustomPatterns(t *testing.T) {
	root := t.TempDir()
	console, _, _ := newTestConsole()

	r := newIgnoreResolver(root, resolverOptions{
		Includes:          []string{"*.py"},
		Excludes:          []string{"skip.py", "build/"},
		DefaultExclusions: []string{".git/*"},
	}, console)

	assert.Equal(t, keepFile, r.shouldSkipFile("main.py"))
	assert.Equal(t, skipNotIncluded, r.shouldSkipFile("README.md"))
	assert.Equal(t, skipExcluded, r.shouldSkipFile("skip.py"))
	assert.Equal(t, skipExcluded, r.shouldSkipFile("build/anything/deep/file.py"))
	assert.Equal(t, skipNotIncluded, r.shouldSkipFile(".git/config"))

	assert.True(t, r.shouldPruneDirectory("build"))
	assert.False(t, r.shouldPruneDirectory("src"))
	assert.False(t, r.shouldPruneDirectory(".git"))
	assert.True(t, r.shouldPruneDirectory(".git/objects"))
}

func TestIgnoreResolverUnusableGitIgnore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".gitignore"), 0755))

	console, _, errOut := newTestConsole()
	r := newIgnoreResolver(root, resolverOptions{Excludes: []string{"*.tmp"}}, console)

	assert.Contains(t, errOut.String(), "Warning: could not parse")
	assert.Equal(t, keepFile, r.shouldSkipFile("debug.log"))
	assert.Equal(t, skipExcluded, r.shouldSkipFile("scratch.tmp"))
}

func TestIgnoreResolverMissingGitIgnore(t *testing.T) {
	root := t.TempDir()
	console, _, errOut := newTestConsole()

	r := newIgnoreResolver(root, resolverOptions{}, console)

	assert.Nil(t, r.gitIgnore)
	assert.Empty(t, errOut.String())
}
