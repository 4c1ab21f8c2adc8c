package reconcile

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"

	"github.com/procurelab/matchbook/pkg/documents"
)

// checkVendor compares vendor names after trimming surrounding whitespace
// and folding case. No fuzzy matching: "Acme Corp" and "Acme Corporation"
// are different vendors. Two empty vendors match; absence cannot prove a
// mismatch. Failure findings report both names exactly as written.
func (r *reconciler) checkVendor(invoice, po documents.Document) (string, bool) {
	if canonicalVendor(invoice.Vendor) == canonicalVendor(po.Vendor) {
		return fmt.Sprintf("✅ Vendor matches: %s", invoice.Vendor), true
	}
	return fmt.Sprintf("⚠️ VENDOR MISMATCH: Invoice Vendor '%s' does not match PO Vendor '%s'",
		invoice.Vendor, po.Vendor), false
}

// checkIdentifiers reports on the document identifier pair. In the default
// mode the check is informational and always passes: invoice and PO numbers
// come from different numbering systems, so inequality proves nothing. In
// strict mode identifiers are compared for real after canonicalization.
func (r *reconciler) checkIdentifiers(invoice, po documents.Document) (string, bool) {
	if r.strictIDs && canonicalID(invoice.ID) != canonicalID(po.ID) {
		return fmt.Sprintf("⚠️ ID MISMATCH: Invoice ID '%s' does not match PO ID '%s'",
			invoice.ID, po.ID), false
	}
	return fmt.Sprintf("✅ Invoice ID (%s) matched against PO ID (%s)", invoice.ID, po.ID), true
}

// floatGuard absorbs binary float noise in tolerance comparisons. Decimal
// amounts like 1049.99 are not exactly representable, so a true difference
// of 0.01 can compute as 0.00999999999999; without the guard it would
// slip under a strict less-than and a real mismatch would pass.
const floatGuard = 1e-9

// withinTolerance reports whether two amounts differ by strictly less
// than the configured tolerance, measured in decimal terms. The guard is
// capped at half the tolerance so the threshold stays positive and equal
// amounts pass at any accepted tolerance.
func (r *reconciler) withinTolerance(a, b float64) bool {
	guard := min(floatGuard, r.tolerance/2)
	return math.Abs(a-b) < r.tolerance-guard
}

// checkTotals compares grand totals within the configured tolerance.
func (r *reconciler) checkTotals(invoice, po documents.Document) (string, bool) {
	if r.withinTolerance(invoice.Total, po.Total) {
		return fmt.Sprintf("✅ Total amount matches: $%.2f", invoice.Total), true
	}
	diff := math.Abs(invoice.Total - po.Total)
	return fmt.Sprintf("⚠️ TOTAL MISMATCH: Invoice Total ($%.2f) differs from PO Total ($%.2f). Difference: $%.2f",
		invoice.Total, po.Total, diff), false
}

// checkLineItems matches line items in aggregate. A count mismatch fails
// the check immediately and reports both counts; sums are not computed in
// that case. With equal counts, the sums of line totals are compared with
// the same tolerance as grand totals.
func (r *reconciler) checkLineItems(invoice, po documents.Document) (string, bool) {
	if len(invoice.Items) != len(po.Items) {
		return fmt.Sprintf("⚠️ LINE ITEM COUNT MISMATCH: Invoice has %d items, PO has %d items.",
			len(invoice.Items), len(po.Items)), false
	}

	invoiceSum := invoice.LineSum()
	poSum := po.LineSum()
	if r.withinTolerance(invoiceSum, poSum) {
		return fmt.Sprintf("✅ All line items and line totals appear correct (Line Sum: $%.2f)", invoiceSum), true
	}
	return fmt.Sprintf("⚠️ LINE ITEM TOTAL MISMATCH: Sum of line items differs by $%.2f. Check quantity/price of individual items.",
		math.Abs(invoiceSum-poSum)), false
}

// canonicalVendor trims surrounding whitespace and folds case for
// comparison. The raw name is preserved for findings.
func canonicalVendor(vendor string) string {
	return cases.Fold().String(strings.TrimSpace(vendor))
}

// idPrefixes are document-type prefixes ignored by strict identifier
// comparison. Longer prefixes come first so "invoice" is not cut as "inv".
var idPrefixes = []string{"invoice", "inv", "p.o.", "po"}

// canonicalID folds case and trims the identifier, then strips a
// document-type prefix when it is followed by a separator or a digit, so
// "INV-2025-001" and "PO 2025-001" both canonicalize to "2025-001".
func canonicalID(id string) string {
	s := cases.Fold().String(strings.TrimSpace(id))
	for _, prefix := range idPrefixes {
		rest, ok := strings.CutPrefix(s, prefix)
		if !ok {
			continue
		}
		trimmed := strings.TrimLeft(rest, " -_#:.")
		if trimmed != rest || startsWithDigit(trimmed) {
			return trimmed
		}
	}
	return s
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
