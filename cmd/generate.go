package cmd

import (
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/vayuview/vayuview/internal/pipeline"
	"github.com/vayuview/vayuview/internal/report"
)

var (
	genDataDir string
	genOutput  string
	genCity    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the HTML dashboard from the CSV sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyGenerateFlags(cmd)

		p := pipeline.New(cfg, clockwork.NewRealClock(), logger)
		res, err := p.Run()
		if err != nil {
			return err
		}

		b := report.NewBuilder(nil, logger)
		if err := b.WriteFile(cfg.OutputPath, res.HTML); err != nil {
			return err
		}
		report.PrintSummary(os.Stdout, cfg.OutputPath, res.Aggregates.Headline)
		return nil
	},
}

func applyGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("data-dir") {
		cfg.DataDir = genDataDir
	}
	if f.Changed("out") {
		cfg.OutputPath = genOutput
	}
	if f.Changed("city") {
		cfg.FocusCity = genCity
	}
}

func init() {
	generateCmd.Flags().StringVar(&genDataDir, "data-dir", "", "directory holding the CSV sources (overrides config)")
	generateCmd.Flags().StringVar(&genOutput, "out", "", "output path for the dashboard HTML (overrides config)")
	generateCmd.Flags().StringVar(&genCity, "city", "", "focus city for hourly and station views (overrides config)")
	rootCmd.AddCommand(generateCmd)
}
