package reconcile

import (
	"github.com/procurelab/matchbook/pkg/documents"
)

// Verdict is the overall outcome of a match.
type Verdict string

// The two possible verdicts. There is no error verdict: a pair of
// documents that cannot be compared never produces a report at all.
const (
	// VerdictApproved means every check passed.
	VerdictApproved Verdict = "APPROVED"

	// VerdictNeedsReview means at least one check failed and the pair is
	// flagged for finance review.
	VerdictNeedsReview Verdict = "NEEDS_REVIEW"
)

// String returns the string representation of a verdict.
func (v Verdict) String() string {
	return string(v)
}

// Fixed summary findings. The summary is computed from the verdict after
// all checks have run and is always the first entry in Findings.
const (
	summaryApproved    = "✅ Perfect Match! Status: APPROVED - No issues found."
	summaryNeedsReview = "⚠️ Mismatch Found. Status: NEEDS_REVIEW - Flagged for Finance Review."
)

// Report is the complete outcome of one reconciliation run. Findings has a
// fixed shape: the summary line first, then one finding per check in check
// order (vendor, identifiers, totals, line items). Both normalized
// documents are echoed so reviewers see exactly what was compared.
type Report struct {
	Status   Verdict            `json:"status" yaml:"status"`     // APPROVED or NEEDS_REVIEW
	Findings []string           `json:"findings" yaml:"findings"` // Summary plus one finding per check
	Invoice  documents.Document `json:"invoice" yaml:"invoice"`   // Normalized invoice as compared
	PO       documents.Document `json:"po" yaml:"po"`             // Normalized purchase order as compared
}

// IsApproved returns true if every check passed.
func (r *Report) IsApproved() bool {
	return r.Status == VerdictApproved
}

// Summary returns the headline finding.
func (r *Report) Summary() string {
	if len(r.Findings) == 0 {
		return ""
	}
	return r.Findings[0]
}

// Details returns the per-check findings without the summary line.
func (r *Report) Details() []string {
	if len(r.Findings) == 0 {
		return nil
	}
	return r.Findings[1:]
}

// ReportBuilder assembles a Report from check outcomes. The summary line
// is computed once all findings are in and prepended by Build, so no
// finding is ever rewritten in place.
type ReportBuilder struct {
	invoice  documents.Document
	po       documents.Document
	findings []string
	passed   bool
}

// NewReportBuilder creates a builder for one invoice and purchase order pair.
func NewReportBuilder(invoice, po documents.Document) *ReportBuilder {
	return &ReportBuilder{
		invoice:  invoice,
		po:       po,
		findings: make([]string, 0, checkCount),
		passed:   true,
	}
}

// WithFinding records one check's finding and outcome.
func (b *ReportBuilder) WithFinding(finding string, ok bool) *ReportBuilder {
	b.findings = append(b.findings, finding)
	if !ok {
		b.passed = false
	}
	return b
}

// Build computes the verdict and prepends the matching summary line
// to the findings.
func (b *ReportBuilder) Build() *Report {
	status := VerdictNeedsReview
	summary := summaryNeedsReview
	if b.passed {
		status = VerdictApproved
		summary = summaryApproved
	}

	findings := make([]string, 0, len(b.findings)+1)
	findings = append(findings, summary)
	findings = append(findings, b.findings...)

	return &Report{
		Status:   status,
		Findings: findings,
		Invoice:  b.invoice,
		PO:       b.po,
	}
}
