package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/commentguard/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "commentguard",
	Short: "Classify user comments for offensive content",
	Long: "CommentGuard classifies a batch of user comments as offensive or not,\n" +
		"using a lexical pre-filter and an LLM classifier with retry handling,\n" +
		"and reports ranked statistics over the results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite run history database (overrides COMMENTGUARD_DB)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the run history database path using the --db flag
// (highest priority), then COMMENTGUARD_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
