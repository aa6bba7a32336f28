package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mwhaley/trimdiff/internal/output"
	"github.com/mwhaley/trimdiff/internal/preprocess"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] [file]",
	Short: "Display a diff with noise filtered out",
	Long: `Display a unified diff with optional filtering, truncation, and
ANSI coloring. Color is stripped when output is not a terminal or when
--color never is set.

Examples:
  git diff | trimdiff show
  trimdiff show --color always changes.diff
  trimdiff show --token-limit 2000 --staged`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().Int("token-limit", 0, "truncate to this token budget (0 = no truncation)")
	showCmd.Flags().Bool("staged", false, "read the staged diff from git")
	showCmd.Flags().Bool("unstaged", false, "read the unstaged diff from git")
	showCmd.Flags().Bool("no-filter", false, "keep noise sections")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	noFilter, _ := cmd.Flags().GetBool("no-filter")
	limit, _ := cmd.Flags().GetInt("token-limit")

	diffText, err := loadDiff(cmd, args)
	if err != nil {
		return err
	}

	opts := []preprocess.Option{
		preprocess.WithModel(cfg.Model),
		preprocess.WithFiltering(cfg.Filter.Enabled && !noFilter),
	}
	if limit > 0 {
		opts = append(opts, preprocess.WithTokenLimit(limit))
	} else {
		// No truncation requested: a huge budget keeps everything that
		// survives filtering.
		opts = append(opts, preprocess.WithTokenLimit(1<<30))
	}
	result := preprocess.New(opts...).Process(diffText)

	wr := output.New(os.Stdout, output.ParseFormat(cfg.Format))
	return wr.WriteDiff(result, output.ParseColorMode(cfg.Color))
}
