package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL reports whether input looks like a remote repository rather than
// a local directory: a .git suffix or the scp-like git@ form.
func isGitURL(input string) bool {
	if _, err := os.Stat(input); err == nil {
		return false
	}
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@")
}

// cloneGitRepo shallow-clones url's default branch into a new temporary
// directory and returns its path. The caller removes the directory.
func cloneGitRepo(url string, console *Console) (string, error) {
	tempDir, err := os.MkdirTemp("", "git2one-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	console.Progress("Cloning Git repository '%s' into '%s'...", url, tempDir)

	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		Progress:      console.ProgressWriter(),
		Depth:         1,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository '%s': %w", url, err)
	}

	console.Progress("Finished cloning '%s'.", url)
	return tempDir, nil
}
