package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driving"
)

var batchCmd = &cobra.Command{
	Use:   "batch <input-dir>",
	Short: "Parse every SPL XML file in a directory",
	Long: `Parses all *.xml files in a directory with a pool of workers.

Each file produces <name>.json (and <name>.graph.json with --graph) in
the output directory. The combined listing all_labels_combined.json and
optional all_labels.jsonl aggregate every successfully parsed label.
Files that fail to parse are reported and skipped; they never abort the
run.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringP("output", "o", "out", "output directory")
	batchCmd.Flags().IntP("workers", "w", 0, "parse workers (0 = one per CPU)")
	batchCmd.Flags().Bool("pretty", false, "indent JSON output")
	batchCmd.Flags().Bool("jsonl", false, "also write all_labels.jsonl")
	batchCmd.Flags().Bool("no-graph", false, "skip knowledge-graph outputs")
	batchCmd.Flags().Bool("no-combined", false, "skip the combined listing")
	batchCmd.Flags().Bool("catalog", false, "store parsed labels in the catalog")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchRunner == nil {
		return errors.New("batch service not configured")
	}

	outputDir, _ := cmd.Flags().GetString("output")
	workers, _ := cmd.Flags().GetInt("workers")
	pretty, _ := cmd.Flags().GetBool("pretty")
	jsonl, _ := cmd.Flags().GetBool("jsonl")
	noGraph, _ := cmd.Flags().GetBool("no-graph")
	noCombined, _ := cmd.Flags().GetBool("no-combined")
	catalog, _ := cmd.Flags().GetBool("catalog")

	if workers == 0 {
		workers = appConfig.Workers
	}

	opts := driving.BatchOptions{
		InputDir:  args[0],
		OutputDir: outputDir,
		Workers:   workers,
		Pretty:    pretty || appConfig.Output.Pretty,
		JSONL:     jsonl || appConfig.Output.JSONL,
		Graph:     !noGraph && appConfig.Output.Graph,
		Combined:  !noCombined && appConfig.Output.Combined,
		Catalog:   catalog,
	}

	cmd.Printf("Processing %s...\n", opts.InputDir)

	run, err := batchWithProgress(cmd.Context(), cmd, opts)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	printRun(cmd, run)
	return nil
}

// batchWithProgress runs the batch while displaying progress updates.
func batchWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	opts driving.BatchOptions,
) (*domain.BatchRun, error) {
	type outcome struct {
		run *domain.BatchRun
		err error
	}

	// Start batch in goroutine
	outCh := make(chan outcome, 1)
	go func() {
		run, err := batchRunner.Run(ctx, opts)
		outCh <- outcome{run, err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case out := <-outCh:
			return out.run, out.err
		case <-ticker.C:
			// Check progress (ignore status error - best effort)
			status, statusErr := batchRunner.Status(ctx)
			if statusErr == nil && status != nil && status.Processed+status.Failed > lastCount {
				lastCount = status.Processed + status.Failed
				cmd.Printf("\rProcessing... %d/%d files", lastCount, status.Total)
			}
		}
	}
}

func printRun(cmd *cobra.Command, run *domain.BatchRun) {
	cmd.Printf("\rProcessed %d of %d files (%d failed) in %s\n",
		run.Processed, run.Total, run.Failed,
		run.EndedAt.Sub(run.StartedAt).Round(time.Millisecond))

	for _, failure := range run.Failures {
		cmd.Printf("  failed: %s: %s\n", failure.Path, failure.Error)
	}
}
