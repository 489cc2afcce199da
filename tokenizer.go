package main

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer counts model input tokens for a piece of text.
type Tokenizer interface {
	CountTokens(text string) int
	Close()
}

// tokenizerOptions selects and configures a Tokenizer.
type tokenizerOptions struct {
	Type  string // estimate, tiktoken or huggingface
	Model string
	File  string
}

// --- Heuristic estimator ---

// tokenAtomPattern matches a run of word characters or one symbol.
// regexp2 is used because its \w is Unicode-aware.
var tokenAtomPattern = regexp2.MustCompile(`\w+|[^\w\s]`, regexp2.None)

// estimateTokenizer multiplies the number of word/symbol atoms by a fixed factor.
type estimateTokenizer struct {
	multiplier float64
}

func (e estimateTokenizer) CountTokens(text string) int {
	return int(float64(countAtoms(text)) * e.multiplier)
}

func (e estimateTokenizer) Close() {}

func countAtoms(text string) int {
	n := 0
	m, err := tokenAtomPattern.FindStringMatch(text)
	for err == nil && m != nil {
		n++
		m, err = tokenAtomPattern.FindNextMatch(m)
	}
	return n
}

// --- Tiktoken Wrapper ---

type TiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *TiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	return len(w.ttk.EncodeOrdinary(text))
}

func (w *TiktokenWrapper) Close() {}

// --- HuggingFace (sugarme) Wrapper ---

type HFTokenizerWrapper struct {
	htk     *hf.Tokenizer
	console *Console
}

func (w *HFTokenizerWrapper) CountTokens(text string) int {
	if w.htk == nil {
		return 0
	}
	en, err := w.htk.EncodeSingle(text)
	if err != nil {
		w.console.Warn("HF tokenizer failed to encode text: %v", err)
		return 0
	}
	return len(en.Tokens)
}

func (w *HFTokenizerWrapper) Close() {}

// --- Tokenizer Loading Logic ---

const defaultTiktokenModel = "gpt-4o"
const defaultHFModel = "gpt2"

// newTokenizer returns the tokenizer chosen by opts. The heuristic estimator
// uses multiplier; the exact tokenizers ignore it.
func newTokenizer(opts tokenizerOptions, multiplier float64, console *Console) (Tokenizer, error) {
	switch strings.ToLower(opts.Type) {
	case "", "estimate":
		return estimateTokenizer{multiplier: multiplier}, nil
	case "tiktoken":
		return loadTiktoken(opts, console)
	case "huggingface":
		return loadHuggingFace(opts, console)
	default:
		return nil, fmt.Errorf("unsupported tokenizer type: %s. Use 'estimate', 'tiktoken' or 'huggingface'", opts.Type)
	}
}

func loadTiktoken(opts tokenizerOptions, console *Console) (Tokenizer, error) {
	model := opts.Model
	if model == "" {
		model = defaultTiktokenModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		console.Warn("Tiktoken model '%s' not found, falling back to default '%s': %v", model, defaultTiktokenModel, err)
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", defaultTiktokenModel, err)
		}
	}
	return &TiktokenWrapper{ttk: tke}, nil
}

func loadHuggingFace(opts tokenizerOptions, console *Console) (Tokenizer, error) {
	if opts.File != "" {
		console.Progress("Loading HuggingFace tokenizer from file: %s", opts.File)
		ttk, err := pretrained.FromFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", opts.File, err)
		}
		return &HFTokenizerWrapper{htk: ttk, console: console}, nil
	}

	model := opts.Model
	if model == "" {
		model = defaultHFModel
	}
	console.Progress("Loading HuggingFace tokenizer for model: %s (this may download files)", model)

	configFilePath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
	}
	ttk, err := pretrained.FromFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, configFilePath, err)
	}
	return &HFTokenizerWrapper{htk: ttk, console: console}, nil
}
