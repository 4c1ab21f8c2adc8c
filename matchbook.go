// Package matchbook provides the main entry point for the matchbook
// invoice reconciliation system. It wires document extraction, schema
// normalization, and the three-way match engine into a single high-level
// Matcher.
//
// Example usage:
//
//	// Create a matcher with default settings
//	m, err := matchbook.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Match two structured records
//	report, err := m.MatchFiles(ctx, "invoice.json", "po.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, finding := range report.Findings {
//	    fmt.Println(finding)
//	}
//
//	// Match raw document text through an extractor
//	extractor, err := extract.NewGeminiExtractor("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err = matchbook.New(
//	    matchbook.WithExtractor(extractor),
//	    matchbook.WithStrictIdentifiers(true),
//	)
package matchbook

import (
	"context"
	"fmt"

	"github.com/procurelab/matchbook/pkg/documents"
	"github.com/procurelab/matchbook/pkg/errors"
	"github.com/procurelab/matchbook/pkg/extract"
	"github.com/procurelab/matchbook/pkg/logging"
	"github.com/procurelab/matchbook/pkg/reconcile"
)

// Compile-time interface check to ensure proper implementation.
var _ Matcher = (*matcher)(nil)

// Matcher runs the full match pipeline: extraction when starting from text,
// normalization, then the reconciliation engine. Failures before the engine
// surface as errors; a mismatch between documents is a verdict on the report,
// never an error.
type Matcher interface {
	// Match normalizes two raw field mappings and reconciles them.
	Match(ctx context.Context, invoice, po documents.Raw) (*reconcile.Report, error)

	// MatchFiles loads two structured record files (.json/.yaml/.yml),
	// normalizes them, and reconciles them.
	MatchFiles(ctx context.Context, invoicePath, poPath string) (*reconcile.Report, error)

	// MatchText extracts structured records from raw document text using the
	// configured extractor, then matches them. Requires WithExtractor.
	MatchText(ctx context.Context, invoiceText, poText string) (*reconcile.Report, error)
}

// matcher is the internal implementation of the Matcher interface.
type matcher struct {
	engine    reconcile.Reconciler
	extractor extract.Extractor
}

// New creates a new Matcher instance with the given options.
func New(opts ...Option) (Matcher, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	engine, err := reconcile.New(options.engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	return &matcher{
		engine:    engine,
		extractor: options.extractor,
	}, nil
}

// Match normalizes both raw mappings and runs the engine.
func (m *matcher) Match(ctx context.Context, invoice, po documents.Raw) (*reconcile.Report, error) {
	log := logging.FromContext(ctx)

	invoiceDoc, err := documents.Normalize(invoice)
	if err != nil {
		return nil, fmt.Errorf("invoice: %w", err)
	}
	poDoc, err := documents.Normalize(po)
	if err != nil {
		return nil, fmt.Errorf("purchase order: %w", err)
	}

	log.Debug().
		Str("invoice_id", invoiceDoc.ID).
		Str("po_id", poDoc.ID).
		Msg("Documents normalized, running three-way match")

	report := m.engine.Reconcile(invoiceDoc, poDoc)

	log.Debug().
		Str("status", report.Status.String()).
		Msg("Match complete")

	return report, nil
}

// MatchFiles loads both record files and matches them.
func (m *matcher) MatchFiles(ctx context.Context, invoicePath, poPath string) (*reconcile.Report, error) {
	log := logging.FromContext(ctx)

	log.Debug().
		Str("invoice", invoicePath).
		Str("po", poPath).
		Msg("Loading record files")

	invoice, err := documents.LoadRaw(invoicePath)
	if err != nil {
		return nil, err
	}
	po, err := documents.LoadRaw(poPath)
	if err != nil {
		return nil, err
	}

	return m.Match(ctx, invoice, po)
}

// MatchText extracts both documents from text, then matches them. Extraction
// failures propagate unchanged so callers can tell them apart from schema
// violations and verdicts.
func (m *matcher) MatchText(ctx context.Context, invoiceText, poText string) (*reconcile.Report, error) {
	if m.extractor == nil {
		return nil, &errors.ConfigError{
			Component: "matcher",
			Message:   "no extractor configured - use WithExtractor",
		}
	}

	log := logging.FromContext(ctx)

	log.Debug().Str("kind", extract.KindInvoice.String()).Msg("Extracting document")
	invoice, err := m.extractor.Extract(ctx, invoiceText, extract.KindInvoice)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("kind", extract.KindPurchaseOrder.String()).Msg("Extracting document")
	po, err := m.extractor.Extract(ctx, poText, extract.KindPurchaseOrder)
	if err != nil {
		return nil, err
	}

	return m.Match(ctx, invoice, po)
}
