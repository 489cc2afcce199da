package main

import (
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
)

const gitIgnoreFileName = ".gitignore"

// skipReason explains why a file was left out of the output.
type skipReason int

const (
	keepFile skipReason = iota
	skipNotIncluded
	skipExcluded
	skipIgnored
)

// resolverOptions carries the pattern sources combined by an ignoreResolver.
type resolverOptions struct {
	Includes          []string
	Excludes          []string
	DefaultExclusions []string
	IgnoreGitignore   bool
}

// ignoreResolver decides per path whether a directory is pruned from the
// walk and whether a file is skipped. Either rule source excluding a path
// is enough to exclude it.
type ignoreResolver struct {
	root      string
	includes  []string
	excludes  []string
	matcher   *pathMatcher
	gitIgnore gitignore.IgnoreMatcher
}

// newIgnoreResolver builds a resolver for the absolute directory root.
// A root .gitignore that cannot be used is reported and treated as absent.
func newIgnoreResolver(root string, opts resolverOptions, console *Console) *ignoreResolver {
	excludes := make([]string, 0, len(opts.Excludes)+len(opts.DefaultExclusions))
	excludes = append(excludes, opts.Excludes...)
	excludes = append(excludes, opts.DefaultExclusions...)

	r := &ignoreResolver{
		root:     root,
		includes: normalizeIncludes(opts.Includes),
		excludes: normalizeExcludes(excludes),
		matcher:  newPathMatcher(),
	}

	if !opts.IgnoreGitignore {
		r.gitIgnore = loadGitIgnore(root, console)
	}
	return r
}

func loadGitIgnore(root string, console *Console) gitignore.IgnoreMatcher {
	gitIgnorePath := filepath.Join(root, gitIgnoreFileName)
	info, err := os.Stat(gitIgnorePath)
	if err != nil {
		if !os.IsNotExist(err) {
			console.Warn("could not read %s: %v", gitIgnorePath, err)
		}
		return nil
	}
	if !info.Mode().IsRegular() {
		console.Warn("could not parse %s: not a regular file", gitIgnorePath)
		return nil
	}

	matcher, err := gitignore.NewGitIgnore(gitIgnorePath, root)
	if err != nil {
		console.Warn("could not parse %s: %v", gitIgnorePath, err)
		return nil
	}
	console.Progress("Using .gitignore from %s", gitIgnorePath)
	return matcher
}

// shouldPruneDirectory reports whether the directory at relDir (normalized,
// relative to root) must not be descended into.
func (r *ignoreResolver) shouldPruneDirectory(relDir string) bool {
	if r.matcher.matchesAny(relDir, r.excludes) {
		return true
	}
	return r.ignoredByGitIgnore(relDir, true)
}

// shouldSkipFile reports why the file at relFile is skipped, or keepFile.
func (r *ignoreResolver) shouldSkipFile(relFile string) skipReason {
	if len(r.includes) > 0 && !r.matcher.matchesAny(relFile, r.includes) {
		return skipNotIncluded
	}
	if r.matcher.matchesAny(relFile, r.excludes) {
		return skipExcluded
	}
	if r.ignoredByGitIgnore(relFile, false) {
		return skipIgnored
	}
	return keepFile
}

func (r *ignoreResolver) ignoredByGitIgnore(rel string, isDir bool) bool {
	if r.gitIgnore == nil {
		return false
	}
	// The matcher resolves paths against root itself, so it is given the absolute path.
	return r.gitIgnore.Match(filepath.Join(r.root, filepath.FromSlash(rel)), isDir)
}
