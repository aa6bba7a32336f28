package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwhaley/trimdiff/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "trimdiff",
	Short: "Trim git diffs to a token budget for LLM prompts",
	Long: `Trimdiff preprocesses unified git diffs for LLM consumption.

It splits a diff into per-file sections, drops noise (binary, minified,
generated, and lockfile content), ranks what remains by importance, and
packs the result into a token budget without ever emitting an unparsable
partial diff.

Examples:
  git diff --cached | trimdiff trim --token-limit 4000
  trimdiff trim --staged
  trimdiff show --color always changes.diff
  trimdiff stats changes.diff`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.trimdiff.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, table)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto, always, never)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".trimdiff")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TRIMDIFF")
	viper.AutomaticEnv()

	// Set defaults
	defaults := config.Default()
	viper.SetDefault("token_limit", defaults.TokenLimit)
	viper.SetDefault("model", defaults.Model)
	viper.SetDefault("format", defaults.Format)
	viper.SetDefault("color", defaults.Color)
	viper.SetDefault("filter.enabled", defaults.Filter.Enabled)

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig materializes the effective configuration from viper.
func loadConfig() config.Config {
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: invalid configuration:", err)
		return config.Default()
	}
	return cfg
}

// newLogger builds the slog logger used by commands, honoring --verbose.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
