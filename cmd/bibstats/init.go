package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bibstats/internal/workspace"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a workspace with a default configuration",
	Long: `Create a workspace directory holding configs/config.yaml, out/ and db/.

If no directory is given, ~/bibstats is used. An existing config is kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			layout workspace.Layout
			err    error
		)
		if len(args) > 0 {
			layout, err = workspace.EnsureAt(args[0])
		} else {
			layout, err = workspace.EnsureDefault()
		}
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s Workspace ready at %s\n\n", green("✓"), cyan(filepath.Clean(layout.Root)))
		fmt.Printf("  Config: %s\n", cyan(layout.ConfigPath))
		fmt.Printf("  Output: %s\n", cyan(layout.OutputDir))
		fmt.Printf("\n%s\n", gray("Edit input in the config, then: bibstats run --config "+layout.ConfigPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
