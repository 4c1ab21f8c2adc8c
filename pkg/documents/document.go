// Package documents defines the normalized invoice and purchase order model
// shared by the whole matchbook system, along with the normalizer that turns
// raw extracted mappings into that model.
//
// Normalization is the schema boundary: everything past it works with
// well-typed Documents, and every malformed field is reported as a
// SchemaError naming the field. Absent optional fields are not errors; they
// take their documented defaults.
package documents

// Document is a normalized financial record, either an invoice or a
// purchase order. The two sides of a match share one shape.
type Document struct {
	ID     string     `json:"id" yaml:"id"`         // Document number; empty is valid but weak
	Vendor string     `json:"vendor" yaml:"vendor"` // Vendor or supplier name as written on the document
	Total  float64    `json:"total" yaml:"total"`   // Grand total; defaults to 0 when absent
	Items  []LineItem `json:"items" yaml:"items"`   // Line items in document order
}

// LineItem is a single billed line on a document.
type LineItem struct {
	Description string  `json:"description" yaml:"description"` // Free text; never compared
	Quantity    int     `json:"quantity" yaml:"quantity"`       // Whole units, never negative
	UnitPrice   float64 `json:"unit_price" yaml:"unit_price"`   // Price per unit; may be negative for discounts
	LineTotal   float64 `json:"line_total" yaml:"line_total"`   // Extended amount for the line
}

// LineSum returns the sum of all line totals. Matching compares this
// aggregate; individual lines are never paired up.
func (d Document) LineSum() float64 {
	var sum float64
	for _, item := range d.Items {
		sum += item.LineTotal
	}
	return sum
}
