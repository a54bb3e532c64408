package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/nepali-holidays/nepcal/internal/logger"
	"github.com/nepali-holidays/nepcal/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	*pipeline.Report
	Metrics *logger.Snapshot `json:"metrics,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	fmt.Fprintf(w, "✅ %s created successfully.\n", result.OutputPath)

	if !verbose {
		return nil
	}

	fmt.Fprintf(w, "\nSource: %s\n", result.SourceURL)
	fmt.Fprintf(w, "Rows: %d, events: %d, skipped: %d\n", result.Rows, result.Events, len(result.Skipped))

	if len(result.SkipCounts) > 0 {
		reasons := make([]string, 0, len(result.SkipCounts))
		for reason := range result.SkipCounts {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)

		fmt.Fprintln(w, "\nSkipped rows:")
		for _, reason := range reasons {
			fmt.Fprintf(w, "  %s: %d\n", reason, result.SkipCounts[reason])
		}
		for _, row := range result.Skipped {
			if row.Raw != "" {
				fmt.Fprintf(w, "  row %d (%s): %s\n", row.Row, row.Reason, row.Raw)
			} else {
				fmt.Fprintf(w, "  row %d (%s)\n", row.Row, row.Reason)
			}
		}
	}

	fmt.Fprintf(w, "\nTook %s\n", result.Duration)
	return nil
}
