package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

var ErrNotDirectory = errors.New("not a directory")

// walkOptions configures what a walk collects.
type walkOptions struct {
	Config *Config
	// Transforms maps a file extension (exact case) to the transform applied to its content.
	Transforms map[string]contentTransform
	Tokenizer  Tokenizer
	// OutputPath is the absolute output file; it is never collected.
	OutputPath string
}

type walker struct {
	root     string
	resolver *ignoreResolver
	opts     walkOptions
	console  *Console
	result   *walkResult
}

// resolveRoot returns the absolute, symlink-free form of a directory path.
func resolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("error resolving path %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("error accessing path %s: %w", path, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}
	return resolved, nil
}

// walkRepository walks root depth-first and returns the selected files in
// traversal order along with their token total. Only a failure to walk root
// itself is returned as an error; problems with single entries are reported
// and skipped.
func walkRepository(root string, resolver *ignoreResolver, opts walkOptions, console *Console) (*walkResult, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("%w: no config given", ErrInvalidConfig)
	}
	if opts.Tokenizer == nil {
		opts.Tokenizer = estimateTokenizer{multiplier: opts.Config.TokenMultiplier}
	}

	w := &walker{
		root:     root,
		resolver: resolver,
		opts:     opts,
		console:  console,
		result:   &walkResult{},
	}

	err := filepath.WalkDir(root, w.visit)
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}
	return w.result, nil
}

func (w *walker) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		if path == w.root {
			return err
		}
		w.console.Warn("error accessing path %s: %v", path, err)
		return nil
	}

	relPath, ok := w.relative(path)
	if !ok {
		if d.IsDir() {
			return fs.SkipDir
		}
		return nil
	}

	if d.IsDir() {
		if path == w.root {
			w.console.Progress("Processing directory: .")
			return nil
		}
		if w.resolver.shouldPruneDirectory(relPath) {
			return fs.SkipDir
		}
		w.console.Progress("Processing directory: %s", relPath)
		return nil
	}

	w.visitFile(path, relPath, d)
	return nil
}

// relative returns the normalized path of path relative to root, or false
// when path does not lie under root.
func (w *walker) relative(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || !isLocalPath(rel) {
		return "", false
	}
	return normalizePath(rel), true
}

func isLocalPath(rel string) bool {
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func (w *walker) visitFile(path, relPath string, d fs.DirEntry) {
	if !w.isRegularInRoot(path, d) {
		return
	}
	if w.opts.OutputPath != "" && path == w.opts.OutputPath {
		return
	}

	switch w.resolver.shouldSkipFile(relPath) {
	case skipExcluded:
		w.console.Progress("Skipping file (matches exclude patterns): %s", relPath)
		return
	case skipNotIncluded, skipIgnored:
		return
	}

	ext := fileExtension(relPath)
	if !w.opts.Config.IsTextExtension(ext) {
		return
	}

	content, err := readTextFile(path)
	if err != nil {
		w.console.Warn("Skipping file due to error: %s (%v)", relPath, err)
		return
	}

	if t, ok := w.opts.Transforms[ext]; ok && t != nil {
		content = t.Apply(content)
	}

	if strings.TrimSpace(content) == "" {
		w.console.Progress("Skipping empty file after processing: %s", relPath)
		return
	}

	w.console.Included(relPath)
	w.result.Files = append(w.result.Files, newFileRecord(relPath, content))
	w.result.TotalTokens += w.opts.Tokenizer.CountTokens(content)
}

// fileExtension returns the final ".ext" of path's base name. A name whose
// only dot is the leading one, such as ".md", has no extension.
func fileExtension(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// isRegularInRoot reports whether the entry is a regular file, or a symlink
// to a regular file that stays inside root. Escaping links are skipped silently.
func (w *walker) isRegularInRoot(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(w.root, target)
	if err != nil || !isLocalPath(rel) {
		return false
	}
	info, err := os.Stat(target)
	return err == nil && info.Mode().IsRegular()
}

// readTextFile reads path fully and returns it as UTF-8 text with universal
// newlines. Content that is not valid UTF-8 is rejected.
func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if _, _, err := transform.Bytes(encoding.UTF8Validator, data); err != nil {
		return "", fmt.Errorf("cannot decode as UTF-8: %w", err)
	}
	return normalizeNewlines(string(data)), nil
}
