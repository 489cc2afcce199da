package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// version is the application version, set via ldflags.
var version string = "dev"

// runOptions holds the flag values for one invocation.
type runOptions struct {
	ConfigPath      string
	OutputPath      string
	Includes        []string
	Excludes        []string
	IgnoreGitignore bool
	StripComments   bool
	StripMode       string
	Format          string
	Tokenizer       tokenizerOptions
	Clipboard       bool
	Quiet           bool
}

func newRootCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "git2one <repo_path>",
		Short: "Concatenate a Git repository into a single file.",
		Long: `git2one walks a repository, selects its text files using include,
exclude and .gitignore rules, and writes them into one text, JSON, XML or
Markdown file. A git URL may be given instead of a local path.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			console := NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Quiet)
			return run(args[0], opts, console)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.OutputPath, "output", "o", "", "Output file name (default: default_output from config)")
	flags.StringVarP(&opts.ConfigPath, "config", "c", defaultConfigFile, "Path to config file")
	flags.StringArrayVarP(&opts.Includes, "include", "i", nil, "Include only files/directories matching this pattern (repeatable)")
	flags.StringArrayVarP(&opts.Excludes, "exclude", "e", nil, "Exclude files/directories matching this pattern (repeatable)")
	flags.BoolVar(&opts.IgnoreGitignore, "ignore-gitignore", false, "Ignore .gitignore file")
	flags.BoolVar(&opts.StripComments, "strip-comments", false, "Strip Python-style comments and docstrings from .py files")
	flags.StringVar(&opts.StripMode, "strip-mode", "regex", "Comment stripping method: regex or lexer")
	flags.StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, xml or markdown (default: inferred from output extension)")
	flags.StringVar(&opts.Tokenizer.Type, "tokenizer", "estimate", "Token counter: estimate, tiktoken or huggingface")
	flags.StringVar(&opts.Tokenizer.Model, "model", "", "Model name for tokenizer (e.g., gpt-4o, gpt2)")
	flags.StringVar(&opts.Tokenizer.File, "tokenizer-file", "", "Path to local tokenizer file")
	flags.BoolVar(&opts.Clipboard, "clipboard", false, "Also copy the output to the clipboard")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "Only print warnings and the final summary")

	return cmd
}

// run performs one scan of repoPath and writes the output file.
func run(repoPath string, opts *runOptions, console *Console) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	var format outputFormat
	formatGiven := opts.Format != ""
	if formatGiven {
		if format, err = parseFormat(opts.Format); err != nil {
			return err
		}
	}

	outputFile := opts.OutputPath
	if outputFile == "" {
		outputFile = cfg.DefaultOutput
	}
	outputPath, err := resolveOutputPath(outputFile)
	if err != nil {
		return err
	}
	if !formatGiven {
		format = formatForPath(outputFile)
	}

	transforms := map[string]contentTransform{}
	if opts.StripComments {
		stripper, err := newCommentStripper(opts.StripMode)
		if err != nil {
			return err
		}
		transforms[pythonExtension] = stripper
	}

	langData, err := loadLanguageData()
	if err != nil {
		return err
	}

	if isGitURL(repoPath) {
		tempDir, err := cloneGitRepo(repoPath, console)
		if err != nil {
			return err
		}
		defer func() {
			console.Progress("Cleaning up temporary directory: %s", tempDir)
			_ = os.RemoveAll(tempDir)
		}()
		repoPath = tempDir
	}

	root, err := resolveRoot(repoPath)
	if err != nil {
		return err
	}

	tokenizer, err := newTokenizer(opts.Tokenizer, cfg.TokenMultiplier, console)
	if err != nil {
		console.Warn("error initializing tokenizer: %v; using the estimate instead", err)
		tokenizer = estimateTokenizer{multiplier: cfg.TokenMultiplier}
	}
	defer tokenizer.Close()

	resolver := newIgnoreResolver(root, resolverOptions{
		Includes:          opts.Includes,
		Excludes:          opts.Excludes,
		DefaultExclusions: cfg.DefaultExclusions,
		IgnoreGitignore:   opts.IgnoreGitignore,
	}, console)

	result, err := walkRepository(root, resolver, walkOptions{
		Config:     cfg,
		Transforms: transforms,
		Tokenizer:  tokenizer,
		OutputPath: outputPath,
	}, console)
	if err != nil {
		return err
	}

	payload, err := render(format, result.Files, langData)
	if err != nil {
		return err
	}
	if err := writeOutput(outputPath, payload); err != nil {
		return err
	}

	if opts.Clipboard {
		if err := clipboard.WriteAll(string(payload)); err != nil {
			console.Warn("error writing to clipboard: %v", err)
		} else {
			console.Progress("Output copied to clipboard.")
		}
	}

	console.Summary("\nConcatenated %d files into %s (%s format)", len(result.Files), outputFile, format)
	console.Summary("Estimated token count: %d (approximate for GPT/Claude/Gemini)", result.TotalTokens)
	return nil
}

// resolveOutputPath makes path absolute and resolves symlinks in its parent
// directory, so it compares equal to the same file met during the walk.
func resolveOutputPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("error resolving output path %s: %w", path, err)
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	return abs, nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
