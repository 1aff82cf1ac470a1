// Package cli implements the splgraph command-line interface using cobra.
// Commands call driving ports; services are injected from main via
// Configure before Execute runs.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driven"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driving"
	"github.com/custodia-labs/splgraph-cli/internal/logger"
)

var (
	version = "dev"

	// Injected services. Commands check for nil and fail with a clear
	// message when a service was not wired.
	parserService driving.LabelParser
	batchRunner   driving.BatchRunner
	dirWatcher    driving.DirectoryWatcher
	labelStore    driven.LabelStore
	outputWriter  driven.OutputWriter
	appConfig     domain.Config
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "splgraph",
	Short: "Convert FDA SPL drug labels to JSON records and knowledge-graph fragments",
	Long: `splgraph parses FDA DailyMed SPL (Structured Product Labeling) XML
documents into normalized JSON records and derived knowledge-graph
fragments.

Parse a single label, batch-process a directory, watch a directory for
new labels, browse the local label catalog, or serve labels to AI
assistants over MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"verbose logging to stderr")
}

// Dependencies carries the wired services the commands call.
type Dependencies struct {
	Parser  driving.LabelParser
	Batch   driving.BatchRunner
	Watcher driving.DirectoryWatcher

	// Labels may be nil; catalog features are then disabled.
	Labels driven.LabelStore
	Writer driven.OutputWriter
	Config domain.Config
}

// Configure installs the services the commands use. Must be called
// before Execute.
func Configure(deps Dependencies) {
	parserService = deps.Parser
	batchRunner = deps.Batch
	dirWatcher = deps.Watcher
	labelStore = deps.Labels
	outputWriter = deps.Writer
	appConfig = deps.Config
}

// Execute runs the root command with the given build version.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under ctx so long-running
// commands (watch, mcp serve) stop on interrupt.
func ExecuteContext(ctx context.Context, v string) error {
	version = v
	return rootCmd.ExecuteContext(ctx)
}
