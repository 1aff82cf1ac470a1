package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.xml>",
	Short: "Parse a single SPL XML file",
	Long: `Parses one SPL XML document into normalized JSON records.

By default the document is printed to stdout. Use --output to write it
to a file, --graph to also write the knowledge-graph fragment, and
--catalog to store the result in the local label catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringP("output", "o", "", "write the document to this file instead of stdout")
	parseCmd.Flags().String("graph", "", "also write the knowledge-graph fragment to this file")
	parseCmd.Flags().Bool("pretty", false, "indent JSON output")
	parseCmd.Flags().Bool("catalog", false, "store the parsed label in the catalog")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if parserService == nil {
		return errors.New("parser service not configured")
	}

	outputPath, _ := cmd.Flags().GetString("output")
	graphPath, _ := cmd.Flags().GetString("graph")
	pretty, _ := cmd.Flags().GetBool("pretty")
	catalog, _ := cmd.Flags().GetBool("catalog")
	pretty = pretty || appConfig.Output.Pretty

	result, err := parserService.Parse(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if outputPath != "" {
		if err := outputWriter.WriteJSON(outputPath, result.Document, pretty); err != nil {
			return err
		}
	} else {
		data, err := encodeJSON(result.Document, pretty)
		if err != nil {
			return err
		}
		cmd.Print(string(data))
	}

	if graphPath != "" {
		if err := outputWriter.WriteJSON(graphPath, result.Graph, pretty); err != nil {
			return err
		}
	}

	if catalog {
		if labelStore == nil {
			return errors.New("catalog not configured")
		}
		if err := labelStore.SaveLabel(cmd.Context(), &result.Document, &result.Graph); err != nil {
			return fmt.Errorf("catalog failed: %w", err)
		}
	}

	return nil
}

// encodeJSON marshals for stdout with HTML escaping off, matching the
// file writer's output byte for byte.
func encodeJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding output: %w", err)
	}
	return buf.Bytes(), nil
}
