package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountAtoms(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   \n\t", 0},
		{"Hello world! This is a test.", 8},
		{`print("hi")`, 6},
		{"snake_case_name = 42", 3},
		{"héllo wörld", 2},
		{"a+=b", 4},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, countAtoms(tt.text))
		})
	}
}

func TestEstimateTokenizer(t *testing.T) {
	content := "Hello world! This is a test."

	plain := estimateTokenizer{multiplier: 1.0}.CountTokens(content)
	scaled := estimateTokenizer{multiplier: 1.5}.CountTokens(content)

	assert.Equal(t, 8, plain)
	assert.Equal(t, 12, scaled)
	assert.Greater(t, scaled, plain)
	assert.Equal(t, 0, estimateTokenizer{multiplier: 0}.CountTokens(content))
}

func TestNewTokenizer(t *testing.T) {
	console, _, _ := newTestConsole()

	tk, err := newTokenizer(tokenizerOptions{}, 2.0, console)
	require.NoError(t, err)
	assert.Equal(t, estimateTokenizer{multiplier: 2.0}, tk)

	tk, err = newTokenizer(tokenizerOptions{Type: "Estimate"}, 1.0, console)
	require.NoError(t, err)
	assert.Equal(t, 2, tk.CountTokens("a b"))

	_, err = newTokenizer(tokenizerOptions{Type: "wordpiece"}, 1.0, console)
	assert.Error(t, err)
}

func TestLoadHuggingFaceFromFileErrors(t *testing.T) {
	console, out, _ := newTestConsole()
	dir := t.TempDir()

	_, err := newTokenizer(tokenizerOptions{Type: "huggingface", File: filepath.Join(dir, "missing.json")}, 1.0, console)
	assert.ErrorContains(t, err, "failed to load tokenizer from file")
	assert.Contains(t, out.String(), "Loading HuggingFace tokenizer from file:")

	bad := filepath.Join(dir, "tokenizer.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = newTokenizer(tokenizerOptions{Type: "HuggingFace", File: bad}, 1.0, console)
	assert.Error(t, err)
}

func TestCLITokenizerFailureFallsBackToEstimate(t *testing.T) {
	repo := createTestRepo(t)
	configPath := writeDefaultConfig(t)
	outPath := filepath.Join(t.TempDir(), "out.txt")

	stdout, stderr, err := executeCLI(t, repo, "-c", configPath, "-o", outPath, "-q",
		"--tokenizer", "huggingface", "--tokenizer-file", filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Contains(t, stderr, "Warning: error initializing tokenizer")
	assert.Contains(t, stdout, "Estimated token count: 14")
}
