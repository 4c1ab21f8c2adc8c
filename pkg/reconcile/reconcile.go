// Package reconcile implements the three-way match between an invoice and
// a purchase order: header fields, grand total, and line items. Four checks
// run in a fixed order (vendor, identifiers, total, line items); every
// check always runs and contributes exactly one finding, and the verdict is
// the logical AND of the check outcomes.
//
// The engine is deliberately pure. It performs no I/O, keeps no state
// between calls, and never logs; the same pair of documents always yields
// a byte-identical report. Failures to produce documents in the first
// place (schema violations, extraction errors) are surfaced as errors by
// the layers above and never appear here as verdicts.
//
// Line items are matched in aggregate only: the engine compares counts and
// the sum of line totals, and never pairs individual lines. Compensating
// errors inside the line items of one document can therefore cancel out.
package reconcile

import (
	"math"

	"github.com/procurelab/matchbook/pkg/documents"
	"github.com/procurelab/matchbook/pkg/errors"
)

// Tolerance is the default absolute difference below which two monetary
// amounts are considered equal. A difference of exactly Tolerance or more
// is a mismatch.
const Tolerance = 0.01

// checkCount is the fixed number of checks every match runs.
const checkCount = 4

// Reconciler runs the fixed sequence of match checks over an invoice and
// a purchase order.
type Reconciler interface {
	// Reconcile compares a normalized invoice against a normalized
	// purchase order and returns the full report: verdict, one summary
	// finding, and one finding per check.
	Reconcile(invoice, po documents.Document) *Report
}

// reconciler is the default implementation of Reconciler
type reconciler struct {
	tolerance float64
	strictIDs bool
}

// Option configures a Reconciler
type Option func(*reconciler) error

// New creates a new Reconciler with options
func New(opts ...Option) (Reconciler, error) {
	r := &reconciler{
		tolerance: Tolerance,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Reconcile compares the invoice against the purchase order. All four
// checks run regardless of earlier outcomes, so the report always carries
// the complete picture.
func (r *reconciler) Reconcile(invoice, po documents.Document) *Report {
	vendorFinding, vendorOK := r.checkVendor(invoice, po)
	idFinding, idOK := r.checkIdentifiers(invoice, po)
	totalFinding, totalOK := r.checkTotals(invoice, po)
	itemsFinding, itemsOK := r.checkLineItems(invoice, po)

	return NewReportBuilder(invoice, po).
		WithFinding(vendorFinding, vendorOK).
		WithFinding(idFinding, idOK).
		WithFinding(totalFinding, totalOK).
		WithFinding(itemsFinding, itemsOK).
		Build()
}

// Option Functions
// ================

// WithTolerance sets the absolute tolerance for monetary comparisons.
func WithTolerance(tolerance float64) Option {
	return func(r *reconciler) error {
		if math.IsNaN(tolerance) || tolerance <= 0 {
			return &errors.ValidationError{
				Field:   "tolerance",
				Value:   tolerance,
				Message: "must be greater than zero",
			}
		}
		r.tolerance = tolerance
		return nil
	}
}

// WithStrictIdentifiers switches the identifier check from its default
// informational mode to a real equality check. Strict comparison ignores
// case, surrounding whitespace, and document-type prefixes such as INV-
// and PO-, so INV-2025-001 still matches PO-2025-001.
func WithStrictIdentifiers(strict bool) Option {
	return func(r *reconciler) error {
		r.strictIDs = strict
		return nil
	}
}
