// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/procurelab/matchbook/pkg/documents"
	"github.com/procurelab/matchbook/pkg/reconcile"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter renders reports and documents for terminals.
type TableFormatter struct{}

// Format outputs data in table format.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case *reconcile.Report:
		return f.formatReport(w, v)
	case reconcile.Report:
		return f.formatReport(w, &v)
	case documents.Document:
		return f.formatDocument(w, v)
	case *documents.Document:
		return f.formatDocument(w, *v)
	case Data:
		return f.renderTable(w, v)
	default:
		// Fall back to JSON for non-table data
		jsonFormatter := &JSONFormatter{Indent: "  "}
		return jsonFormatter.Format(w, data)
	}
}

// formatReport renders the findings list followed by a side-by-side view of
// the two documents.
func (f *TableFormatter) formatReport(w io.Writer, report *reconcile.Report) error {
	for _, finding := range report.Findings {
		if _, err := fmt.Fprintln(w, finding); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	return f.renderTable(w, Data{
		Headers: []string{"DOCUMENT", "ID", "VENDOR", "TOTAL", "ITEMS"},
		Rows: [][]string{
			documentRow("Invoice", report.Invoice),
			documentRow("PO", report.PO),
		},
		Alignment: []tw.Align{tw.AlignLeft, tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignRight},
	})
}

func documentRow(label string, doc documents.Document) []string {
	return []string{
		label,
		doc.ID,
		doc.Vendor,
		money(doc.Total),
		fmt.Sprintf("%d", len(doc.Items)),
	}
}

// formatDocument renders a single extracted document with its line items.
func (f *TableFormatter) formatDocument(w io.Writer, doc documents.Document) error {
	err := f.renderTable(w, Data{
		Headers: []string{"ID", "VENDOR", "TOTAL"},
		Rows:    [][]string{{doc.ID, doc.Vendor, money(doc.Total)}},
		Alignment: []tw.Align{
			tw.AlignLeft, tw.AlignLeft, tw.AlignRight,
		},
	})
	if err != nil {
		return err
	}

	if len(doc.Items) == 0 {
		_, err = fmt.Fprintln(w, "(no line items)")
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	rows := make([][]string, 0, len(doc.Items))
	for _, item := range doc.Items {
		rows = append(rows, []string{
			item.Description,
			fmt.Sprintf("%d", item.Quantity),
			money(item.UnitPrice),
			money(item.LineTotal),
		})
	}

	return f.renderTable(w, Data{
		Headers:   []string{"DESCRIPTION", "QTY", "UNIT PRICE", "LINE TOTAL"},
		Rows:      rows,
		Alignment: []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignRight},
	})
}

func money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// Data represents data formatted for table output.
type Data struct {
	Headers   []string
	Rows      [][]string
	Alignment []tw.Align // Optional: per-column alignment
}

// renderTable draws one table with tablewriter.
func (f *TableFormatter) renderTable(w io.Writer, data Data) error {
	opts := []tablewriter.Option{}

	config := tablewriter.Config{}
	if len(data.Alignment) > 0 {
		config.Header.Alignment = tw.CellAlignment{PerColumn: data.Alignment}
		config.Row.Alignment = tw.CellAlignment{PerColumn: data.Alignment}
	}
	opts = append(opts, tablewriter.WithConfig(config))

	table := tablewriter.NewTable(w, opts...)

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}

	for _, row := range data.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	// Use explicit format if provided
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	// Check if output is a terminal
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}

	// Default to JSON for pipes/redirects
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml", s)
	}
}
