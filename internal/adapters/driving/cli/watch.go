package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driving"
)

var watchCmd = &cobra.Command{
	Use:   "watch <input-dir>",
	Short: "Watch a directory and parse SPL files as they arrive",
	Long: `Watches a directory and parses each XML file as it is created or
modified, writing the same per-file outputs as the batch command. Runs
until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("output", "o", "out", "output directory")
	watchCmd.Flags().Bool("pretty", false, "indent JSON output")
	watchCmd.Flags().Bool("no-graph", false, "skip knowledge-graph outputs")
	watchCmd.Flags().Bool("catalog", false, "store parsed labels in the catalog")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if dirWatcher == nil {
		return errors.New("watch service not configured")
	}

	outputDir, _ := cmd.Flags().GetString("output")
	pretty, _ := cmd.Flags().GetBool("pretty")
	noGraph, _ := cmd.Flags().GetBool("no-graph")
	catalog, _ := cmd.Flags().GetBool("catalog")

	opts := driving.BatchOptions{
		InputDir:  args[0],
		OutputDir: outputDir,
		Pretty:    pretty || appConfig.Output.Pretty,
		Graph:     !noGraph && appConfig.Output.Graph,
		Catalog:   catalog,
	}

	cmd.Printf("Watching %s (press Ctrl+C to stop)\n", opts.InputDir)

	if err := dirWatcher.Watch(cmd.Context(), opts.InputDir, opts); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
