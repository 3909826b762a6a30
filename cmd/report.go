package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/commentguard/internal/config"
	"github.com/abhisek/commentguard/internal/moderate"
	"github.com/abhisek/commentguard/internal/render"
	"github.com/abhisek/commentguard/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report [annotated-file]",
	Short: "Summarize a previously analyzed comment collection",
	Long: "Recomputes the summary report from an annotated JSON file without\n" +
		"re-classifying anything. Defaults to the configured output path.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		path := cfg.Output
		if len(args) == 1 {
			path = args[0]
		}

		annotated, err := store.LoadAnnotated(path)
		if err != nil {
			return err
		}

		render.Report(os.Stdout, moderate.Summarize(annotated))
		return nil
	},
}
