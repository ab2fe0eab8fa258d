package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bibstats/internal/config"
	"bibstats/internal/pipeline"
)

var (
	runConfig   string
	runInput    string
	runOut      string
	runDatabase string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Parse a dblp dump and write every report",
	Long: `Parse a dblp dump once and write the facet reports, the statistics
summary, the anomaly log and a JSON summary to the output directory.

Example:
  bibstats run --input dblp.xml.gz --out out
  bibstats run --config ~/bibstats/configs/config.yaml --db runs.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runConfig)
		if err != nil {
			return err
		}
		if runInput != "" {
			cfg.Input = runInput
		}
		if runOut != "" {
			cfg.OutputDir = runOut
		}
		if runDatabase != "" {
			cfg.Database = runDatabase
		}

		logger := newLogger(os.Stderr, cfg.LogFormat, cfg.Level())
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		res, err := pipeline.Run(ctx, cfg, logger)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("\n%s Parsed %s records\n\n", green("✓"), humanize.Comma(res.Records))
		fmt.Printf("  Run:     %s\n", cyan(res.RunID))
		fmt.Printf("  Output:  %s\n", cyan(cfg.OutputDir))
		if cfg.Database != "" {
			fmt.Printf("  Database: %s\n", cyan(cfg.Database))
		}
		for _, l := range res.Logs.All() {
			if l.Len() > 0 {
				fmt.Printf("  %s %s\n", yellow(fmt.Sprintf("%5d", l.Len())), l.Title())
			}
		}
		fmt.Printf("\nApplication runtime = %s\n", res.Elapsed.Round(time.Millisecond))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfig, "config", "", "YAML configuration file")
	runCmd.Flags().StringVar(&runInput, "input", "", "dblp XML dump (.xml or .xml.gz)")
	runCmd.Flags().StringVar(&runOut, "out", "", "output directory")
	runCmd.Flags().StringVar(&runDatabase, "db", "", "SQLite database receiving the run")
	rootCmd.AddCommand(runCmd)
}
