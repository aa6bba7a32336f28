package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mwhaley/trimdiff/internal/diff"
	"github.com/mwhaley/trimdiff/internal/output"
	"github.com/mwhaley/trimdiff/internal/preprocess"
	"github.com/mwhaley/trimdiff/internal/tokenizer"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] [file]",
	Short: "Show per-file diff statistics",
	Long: `Display a per-file breakdown of a diff: change kind, line counts,
importance score, token count, and whether the section would be filtered.

Examples:
  git diff | trimdiff stats
  trimdiff stats --format json changes.diff
  trimdiff stats --staged`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().Bool("staged", false, "read the staged diff from git")
	statsCmd.Flags().Bool("unstaged", false, "read the unstaged diff from git")

	rootCmd.AddCommand(statsCmd)
}

// sectionStats is one row of the stats report.
type sectionStats struct {
	Path      string  `json:"path"`
	Kind      string  `json:"kind"`
	Additions int     `json:"additions"`
	Deletions int     `json:"deletions"`
	Score     float64 `json:"score"`
	Tokens    int     `json:"tokens"`
	Excluded  bool    `json:"excluded"`
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	diffText, err := loadDiff(cmd, args)
	if err != nil {
		return err
	}

	rows := collectStats(diffText, tokenizer.New(), cfg.Model)

	wr := output.New(os.Stdout, output.ParseFormat(cfg.Format))
	if wr.Format() == output.FormatJSON {
		return wr.WriteJSON(rows)
	}
	return writeStatsTable(rows)
}

// collectStats builds one row per diff section.
func collectStats(diffText string, counter tokenizer.Counter, model string) []sectionStats {
	var rows []sectionStats
	for _, sec := range diff.Split(diffText) {
		parsed := diff.ParseSection(sec)
		path := parsed.FilePath
		if path == "" {
			path = "(unknown)"
		}
		rows = append(rows, sectionStats{
			Path:      path,
			Kind:      parsed.Kind.String(),
			Additions: parsed.Additions,
			Deletions: parsed.Deletions,
			Score:     preprocess.Score(sec),
			Tokens:    counter.Count(sec, model),
			Excluded:  preprocess.ShouldExclude(sec),
		})
	}
	return rows
}

func writeStatsTable(rows []sectionStats) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tKIND\t+\t-\tSCORE\tTOKENS\tEXCLUDED")
	fmt.Fprintln(tw, "----\t----\t-\t-\t-----\t------\t--------")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.2f\t%d\t%v\n",
			r.Path, r.Kind, r.Additions, r.Deletions, r.Score, r.Tokens, r.Excluded)
	}
	return tw.Flush()
}
