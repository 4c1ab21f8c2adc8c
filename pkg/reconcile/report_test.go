package reconcile_test

import (
	"strings"
	"testing"

	"github.com/procurelab/matchbook/pkg/documents"
	"github.com/procurelab/matchbook/pkg/reconcile"
)

func TestReportBuilder(t *testing.T) {
	invoice := documents.Document{ID: "INV-7", Vendor: "Acme", Items: []documents.LineItem{}}
	po := documents.Document{ID: "PO-7", Vendor: "Acme", Items: []documents.LineItem{}}

	t.Run("all checks passing", func(t *testing.T) {
		report := reconcile.NewReportBuilder(invoice, po).
			WithFinding("✅ first", true).
			WithFinding("✅ second", true).
			Build()

		if report.Status != reconcile.VerdictApproved {
			t.Errorf("status = %s, want APPROVED", report.Status)
		}
		if len(report.Findings) != 3 {
			t.Fatalf("got %d findings, want 3", len(report.Findings))
		}
		if report.Findings[1] != "✅ first" || report.Findings[2] != "✅ second" {
			t.Errorf("check findings out of order: %v", report.Findings)
		}
	})

	t.Run("summary comes first", func(t *testing.T) {
		report := reconcile.NewReportBuilder(invoice, po).
			WithFinding("✅ fine", true).
			WithFinding("⚠️ not fine", false).
			Build()

		if report.Status != reconcile.VerdictNeedsReview {
			t.Errorf("status = %s, want NEEDS_REVIEW", report.Status)
		}
		if !strings.HasPrefix(report.Findings[0], "⚠️ Mismatch Found") {
			t.Errorf("findings[0] = %q, want the summary line", report.Findings[0])
		}
		if report.Findings[1] != "✅ fine" {
			t.Errorf("findings[1] = %q, check order not preserved", report.Findings[1])
		}
	})

	t.Run("single failure flips the verdict", func(t *testing.T) {
		report := reconcile.NewReportBuilder(invoice, po).
			WithFinding("✅ a", true).
			WithFinding("✅ b", true).
			WithFinding("✅ c", true).
			WithFinding("⚠️ d", false).
			Build()

		if report.Status != reconcile.VerdictNeedsReview {
			t.Errorf("status = %s, want NEEDS_REVIEW", report.Status)
		}
	})

	t.Run("no checks still yields a summary", func(t *testing.T) {
		report := reconcile.NewReportBuilder(invoice, po).Build()

		if report.Status != reconcile.VerdictApproved {
			t.Errorf("status = %s, want APPROVED", report.Status)
		}
		if len(report.Findings) != 1 {
			t.Fatalf("got %d findings, want just the summary", len(report.Findings))
		}
	})

	t.Run("documents echoed", func(t *testing.T) {
		report := reconcile.NewReportBuilder(invoice, po).Build()

		if report.Invoice.ID != "INV-7" || report.PO.ID != "PO-7" {
			t.Errorf("echoed documents wrong: %q / %q", report.Invoice.ID, report.PO.ID)
		}
	})
}

func TestReportAccessors(t *testing.T) {
	invoice := documents.Document{Vendor: "Acme", Items: []documents.LineItem{}}
	po := documents.Document{Vendor: "Acme", Items: []documents.LineItem{}}

	approved := reconcile.NewReportBuilder(invoice, po).
		WithFinding("✅ ok", true).
		Build()
	flagged := reconcile.NewReportBuilder(invoice, po).
		WithFinding("⚠️ bad", false).
		Build()

	if !approved.IsApproved() {
		t.Error("IsApproved() = false for a clean report")
	}
	if flagged.IsApproved() {
		t.Error("IsApproved() = true for a flagged report")
	}

	if approved.Summary() != "✅ Perfect Match! Status: APPROVED - No issues found." {
		t.Errorf("Summary() = %q", approved.Summary())
	}

	details := flagged.Details()
	if len(details) != 1 || details[0] != "⚠️ bad" {
		t.Errorf("Details() = %v, want the check findings without the summary", details)
	}
}

func TestVerdictString(t *testing.T) {
	if got := reconcile.VerdictApproved.String(); got != "APPROVED" {
		t.Errorf("VerdictApproved.String() = %q", got)
	}
	if got := reconcile.VerdictNeedsReview.String(); got != "NEEDS_REVIEW" {
		t.Errorf("VerdictNeedsReview.String() = %q", got)
	}
}
