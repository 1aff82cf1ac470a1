package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the local label catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all catalogued labels",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <set-id>",
	Short: "Show a catalogued label as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func init() {
	catalogShowCmd.Flags().Bool("graph", false, "show the knowledge graph instead of the document")
	catalogShowCmd.Flags().Bool("pretty", false, "indent JSON output")
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	if labelStore == nil {
		return errors.New("catalog not configured")
	}

	entries, err := labelStore.ListLabels(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list labels: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("Catalog is empty.")
		return nil
	}

	for _, entry := range entries {
		title := "(untitled)"
		if entry.Title != nil {
			title = *entry.Title
		}
		version := "-"
		if entry.Version != nil {
			version = fmt.Sprintf("%d", *entry.Version)
		}
		cmd.Printf("%s  v%s  %s  (%d products, %d sections)\n",
			entry.SetID, version, title, entry.ProductCount, entry.SectionCount)
	}
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	if labelStore == nil {
		return errors.New("catalog not configured")
	}

	graph, _ := cmd.Flags().GetBool("graph")
	pretty, _ := cmd.Flags().GetBool("pretty")

	pretty = pretty || appConfig.Output.Pretty

	setID := args[0]
	if graph {
		kg, err := labelStore.GetGraph(cmd.Context(), setID)
		if err != nil {
			return fmt.Errorf("failed to get graph for %s: %w", setID, err)
		}
		data, err := encodeJSON(kg, pretty)
		if err != nil {
			return err
		}
		cmd.Print(string(data))
		return nil
	}

	doc, err := labelStore.GetLabel(cmd.Context(), setID)
	if err != nil {
		return fmt.Errorf("failed to get label %s: %w", setID, err)
	}
	data, err := encodeJSON(doc, pretty)
	if err != nil {
		return err
	}
	cmd.Print(string(data))
	return nil
}
