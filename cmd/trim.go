package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwhaley/trimdiff/internal/diff"
	"github.com/mwhaley/trimdiff/internal/gitdiff"
	"github.com/mwhaley/trimdiff/internal/preprocess"
	"github.com/mwhaley/trimdiff/internal/tokenizer"
)

var trimCmd = &cobra.Command{
	Use:   "trim [flags] [file]",
	Short: "Preprocess a diff to fit a token budget",
	Long: `Trim a unified diff down to a token budget while keeping the most
important changes.

The diff is read from the given file, from stdin when the file is "-" or
omitted, or directly from git with --staged / --unstaged.

Examples:
  git diff | trimdiff trim
  trimdiff trim --staged --token-limit 4000
  trimdiff trim --model gpt-4o changes.diff
  trimdiff trim --no-filter --stats changes.diff`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrim,
}

func init() {
	trimCmd.Flags().Int("token-limit", 0, "token budget for the output (default from config)")
	trimCmd.Flags().String("model", "", "model used for token counting (default from config)")
	trimCmd.Flags().Bool("staged", false, "read the staged diff from git")
	trimCmd.Flags().Bool("unstaged", false, "read the unstaged diff from git")
	trimCmd.Flags().String("range", "", "read the diff between two revisions (<from>..<to>)")
	trimCmd.Flags().Bool("no-filter", false, "keep noise sections (binary, minified, lockfiles)")
	trimCmd.Flags().Bool("stats", false, "print a processing summary to stderr")

	_ = viper.BindPFlag("token_limit", trimCmd.Flags().Lookup("token-limit"))
	_ = viper.BindPFlag("model", trimCmd.Flags().Lookup("model"))

	rootCmd.AddCommand(trimCmd)
}

func runTrim(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := newLogger(cfg.Verbose)

	noFilter, _ := cmd.Flags().GetBool("no-filter")
	showStats, _ := cmd.Flags().GetBool("stats")

	diffText, err := loadDiff(cmd, args)
	if err != nil {
		return err
	}

	counter := tokenizer.New()
	logger.Debug("preprocessing diff",
		"bytes", len(diffText),
		"token_limit", cfg.TokenLimit,
		"model", cfg.Model,
	)

	p := preprocess.New(
		preprocess.WithTokenLimit(cfg.TokenLimit),
		preprocess.WithModel(cfg.Model),
		preprocess.WithCounter(counter),
		preprocess.WithFiltering(cfg.Filter.Enabled && !noFilter),
	)
	result := p.Process(diffText)

	if showStats {
		inTokens := counter.Count(diffText, cfg.Model)
		outTokens := counter.Count(result, cfg.Model)
		fmt.Fprintf(os.Stderr, "%d sections in, %d tokens -> %d tokens (budget %d)\n",
			len(diff.Split(diffText)), inTokens, outTokens, cfg.TokenLimit)
	}

	fmt.Print(result)
	return nil
}

// loadDiff resolves the diff source: git flags win, then a positional file,
// then stdin.
func loadDiff(cmd *cobra.Command, args []string) (string, error) {
	staged, _ := cmd.Flags().GetBool("staged")
	unstaged, _ := cmd.Flags().GetBool("unstaged")

	if staged && unstaged {
		return "", fmt.Errorf("--staged and --unstaged are mutually exclusive")
	}
	if staged {
		return gitdiff.Staged(cmd.Context())
	}
	if unstaged {
		return gitdiff.Unstaged(cmd.Context())
	}

	if revRange, _ := cmd.Flags().GetString("range"); revRange != "" {
		from, to, ok := strings.Cut(revRange, "..")
		if !ok || from == "" || to == "" {
			return "", fmt.Errorf("invalid --range %q, expected <from>..<to>", revRange)
		}
		return gitdiff.Range(cmd.Context(), from, to)
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	return gitdiff.Read(path)
}
