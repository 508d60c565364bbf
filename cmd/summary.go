package cmd

import (
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/vayuview/vayuview/internal/pipeline"
	"github.com/vayuview/vayuview/internal/report"
)

var sumDataDir string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the headline statistics without rendering the dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = sumDataDir
		}
		p := pipeline.New(cfg, clockwork.NewRealClock(), logger)
		res, err := p.Analyze()
		if err != nil {
			return err
		}
		report.PrintSummary(os.Stdout, "", res.Aggregates.Headline)
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVar(&sumDataDir, "data-dir", "", "directory holding the CSV sources (overrides config)")
	rootCmd.AddCommand(summaryCmd)
}
