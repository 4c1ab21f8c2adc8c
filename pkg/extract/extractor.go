// Package extract turns unstructured document text into raw field mappings
// ready for schema normalization. The package defines the Extractor port;
// GeminiExtractor is the production implementation backed by the Gemini API
// with a response schema pinned to the document shape.
package extract

import (
	"context"

	"github.com/procurelab/matchbook/pkg/documents"
	"github.com/procurelab/matchbook/pkg/errors"
)

// Kind identifies which side of the match a document belongs to. The kind
// steers the extraction prompt; it never changes the document schema.
type Kind string

// Document kinds.
const (
	KindInvoice       Kind = "invoice"
	KindPurchaseOrder Kind = "purchase_order"
)

// String returns the kind as a string.
func (k Kind) String() string {
	return string(k)
}

// Label returns the document-type label used in extraction prompts.
func (k Kind) Label() string {
	switch k {
	case KindInvoice:
		return "INVOICE"
	case KindPurchaseOrder:
		return "PURCHASE ORDER"
	default:
		return "DOCUMENT"
	}
}

// Validate checks that the kind is one of the known document kinds.
func (k Kind) Validate() error {
	switch k {
	case KindInvoice, KindPurchaseOrder:
		return nil
	default:
		return &errors.ValidationError{
			Field:   "kind",
			Value:   string(k),
			Message: "must be invoice or purchase_order",
		}
	}
}

// ParseKind converts a user-supplied string into a Kind. It accepts the
// canonical names plus the short and hyphenated spellings used on the
// command line.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "invoice", "inv":
		return KindInvoice, nil
	case "purchase_order", "purchase-order", "po":
		return KindPurchaseOrder, nil
	default:
		return "", &errors.ValidationError{
			Field:   "kind",
			Value:   s,
			Message: "must be invoice or purchase_order",
		}
	}
}

// Extractor extracts a raw field mapping from document text. Implementations
// return the mapping unnormalized; callers pass it through documents.Normalize
// so schema enforcement stays in one place.
//
//go:generate mockgen -destination=mocks/mock_extractor.go -source=extractor.go Extractor
type Extractor interface {
	Extract(ctx context.Context, text string, kind Kind) (documents.Raw, error)
}
