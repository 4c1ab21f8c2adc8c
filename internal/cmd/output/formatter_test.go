package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelab/matchbook/pkg/documents"
	"github.com/procurelab/matchbook/pkg/reconcile"
)

func sampleReport(t *testing.T) *reconcile.Report {
	t.Helper()

	invoice := documents.Document{
		ID:     "INV-2025-001",
		Vendor: "Acme Corp",
		Total:  1050.00,
		Items: []documents.LineItem{
			{Description: "Widget", Quantity: 10, UnitPrice: 100.00, LineTotal: 1000.00},
			{Description: "Shipping", Quantity: 1, UnitPrice: 50.00, LineTotal: 50.00},
		},
	}
	po := invoice
	po.ID = "PO-2025-001"

	r, err := reconcile.New()
	require.NoError(t, err)
	return r.Reconcile(invoice, po)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewFormatter(FormatJSON)

	require.NoError(t, formatter.Format(&buf, sampleReport(t)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "APPROVED", decoded["status"])
	assert.Len(t, decoded["findings"], 5)
	assert.Contains(t, decoded, "invoice")
	assert.Contains(t, decoded, "po")
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewFormatter(FormatYAML)

	require.NoError(t, formatter.Format(&buf, sampleReport(t)))

	out := buf.String()
	assert.Contains(t, out, "status: APPROVED")
	assert.Contains(t, out, "findings:")
	assert.Contains(t, out, "INV-2025-001")
}

func TestTableFormatterReport(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewFormatter(FormatTable)

	require.NoError(t, formatter.Format(&buf, sampleReport(t)))

	out := buf.String()
	assert.Contains(t, out, "✅ Perfect Match! Status: APPROVED - No issues found.")
	assert.Contains(t, out, "✅ Vendor matches: Acme Corp")
	assert.Contains(t, out, "INV-2025-001")
	assert.Contains(t, out, "PO-2025-001")
	assert.Contains(t, out, "$1050.00")
}

func TestTableFormatterDocument(t *testing.T) {
	var buf bytes.Buffer
	formatter := &TableFormatter{}

	doc := documents.Document{
		ID:     "INV-7",
		Vendor: "Acme Corp",
		Total:  25.50,
		Items: []documents.LineItem{
			{Description: "Bolt", Quantity: 100, UnitPrice: 0.25, LineTotal: 25.00},
			{Description: "Handling", Quantity: 1, UnitPrice: 0.50, LineTotal: 0.50},
		},
	}

	require.NoError(t, formatter.Format(&buf, doc))

	out := buf.String()
	assert.Contains(t, out, "INV-7")
	assert.Contains(t, out, "$25.50")
	assert.Contains(t, out, "Bolt")
	assert.Contains(t, out, "$0.25")
}

func TestTableFormatterNoLineItems(t *testing.T) {
	var buf bytes.Buffer
	formatter := &TableFormatter{}

	doc := documents.Document{ID: "INV-8", Vendor: "Acme", Items: []documents.LineItem{}}
	require.NoError(t, formatter.Format(&buf, doc))

	assert.Contains(t, buf.String(), "(no line items)")
}

func TestTableFormatterDeterministic(t *testing.T) {
	report := sampleReport(t)
	formatter := NewFormatter(FormatTable)

	var first, second bytes.Buffer
	require.NoError(t, formatter.Format(&first, report))
	require.NoError(t, formatter.Format(&second, report))

	assert.Equal(t, first.String(), second.String())
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	formatter := &TableFormatter{}

	require.NoError(t, formatter.Format(&buf, map[string]string{"key": "value"}))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "{"))
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("yaml"))
	assert.Equal(t, FormatJSON, DetectFormat("JSON"))

	// With no explicit format the result depends on whether stdout is a
	// terminal; either way it must be a valid format.
	detected := DetectFormat("")
	assert.Contains(t, []Format{FormatTable, FormatJSON}, detected)
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "json", "yaml", "YAML", ""} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, "format %q", valid)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
