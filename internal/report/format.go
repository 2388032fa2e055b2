package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format represents the output format of a report
type Format string

const (
	// FormatTable is the default human-readable table
	FormatTable Format = "table"

	// FormatJSON is an indented JSON document
	FormatJSON Format = "json"

	// FormatYAML is a YAML document
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format string into a Format value.
// Accepts: "table", "json", "yaml" (case-insensitive)
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %q (expected table, json, or yaml)", s)
	}
}

// Write renders the report in the requested format
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)

	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(r); err != nil {
			return err
		}
		return encoder.Close()

	case FormatTable, "":
		return writeTable(w, r)

	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Prints one row per output in enumeration order
func writeTable(w io.Writer, r *Report) error {
	table := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "ADAPTER\tOUTPUT\tDEVICE\tWIDTH\tHEIGHT\tPRIMARY")
	for _, output := range r.Outputs {
		fmt.Fprintf(
			table,
			"%d\t%d\t%s\t%d\t%d\t%t\n",
			output.AdapterIndex,
			output.OutputIndex,
			output.DeviceName,
			output.Width,
			output.Height,
			output.Primary,
		)
	}

	return table.Flush()
}
