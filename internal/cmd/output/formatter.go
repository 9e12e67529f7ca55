// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/foodsync/internal/cmd/table"
	"github.com/agentstation/foodsync/pkg/errors"
)

// Format is an output format of the CLI.
type Format string

// Output formats.
const (
	FormatTable Format = "table"
	FormatWide  Format = "wide" // table plus per-article changes
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Structured reports whether f encodes whole results rather than tables.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// ParseFormat validates s. An empty string selects tables on a terminal
// and JSON when stdout is piped.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatWide, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return detect(os.Stdout), nil
	}
	return "", errors.NewValidationError("format", s, "must be one of table, wide, json, yaml")
}

func detect(f *os.File) Format {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// Encode writes v as indented JSON, or as YAML when f is FormatYAML.
func Encode(w io.Writer, f Format, v any) error {
	if f == FormatYAML {
		data, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Table renders data with its column alignment.
func Table(w io.Writer, data table.Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			align[i] = twAlign(a)
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	t := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		t.Header(headers...)
	}
	for _, row := range data.Rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := t.Append(cells...); err != nil {
			return err
		}
	}
	return t.Render()
}

func twAlign(a table.Align) tw.Align {
	switch a {
	case table.AlignLeft:
		return tw.AlignLeft
	case table.AlignCenter:
		return tw.AlignCenter
	case table.AlignRight:
		return tw.AlignRight
	default:
		return tw.Skip
	}
}
