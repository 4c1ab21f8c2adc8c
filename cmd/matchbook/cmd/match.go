package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/procurelab/matchbook"
	"github.com/procurelab/matchbook/internal/cmd/output"
	"github.com/procurelab/matchbook/pkg/logging"
	"github.com/procurelab/matchbook/pkg/reconcile"
)

var (
	matchInvoice      string
	matchPO           string
	matchStrictIDs    bool
	matchTolerance    float64
	matchFailOnReview bool
)

// matchCmd represents the match command.
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Reconcile an invoice against a purchase order",
	Long: `Match loads two structured records (JSON or YAML), normalizes them,
and runs the three-way match: vendor, total amount, and line items.

The report carries one finding per check plus a summary line. A mismatch
is a NEEDS_REVIEW verdict, not an error; use --fail-on-review to turn
that verdict into a non-zero exit code for CI pipelines.`,
	Example: `  matchbook match --invoice invoice.json --po po.json
  matchbook match -i invoice.json -p po.yaml --output json
  matchbook match -i invoice.json -p po.yaml --strict-ids --fail-on-review`,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVarP(&matchInvoice, "invoice", "i", "", "Invoice record file (.json, .yaml, .yml)")
	matchCmd.Flags().StringVarP(&matchPO, "po", "p", "", "Purchase order record file (.json, .yaml, .yml)")
	matchCmd.Flags().BoolVar(&matchStrictIDs, "strict-ids", false, "Compare document numbers instead of always passing the ID check")
	matchCmd.Flags().Float64Var(&matchTolerance, "tolerance", reconcile.Tolerance, "Amount comparison tolerance in currency units")
	matchCmd.Flags().BoolVar(&matchFailOnReview, "fail-on-review", false, "Exit non-zero when the verdict is NEEDS_REVIEW")

	_ = matchCmd.MarkFlagRequired("invoice")
	_ = matchCmd.MarkFlagRequired("po")

	if err := viper.BindPFlag("strict_ids", matchCmd.Flags().Lookup("strict-ids")); err != nil {
		panic(fmt.Sprintf("Failed to bind strict-ids flag: %v", err))
	}
	if err := viper.BindPFlag("tolerance", matchCmd.Flags().Lookup("tolerance")); err != nil {
		panic(fmt.Sprintf("Failed to bind tolerance flag: %v", err))
	}
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	m, err := matchbook.New(
		matchbook.WithStrictIdentifiers(viper.GetBool("strict_ids")),
		matchbook.WithTolerance(viper.GetFloat64("tolerance")),
	)
	if err != nil {
		return err
	}

	log.Debug().
		Str("invoice", matchInvoice).
		Str("po", matchPO).
		Msg("Matching records")

	// Flags are valid from here on; failures are runtime failures
	cmd.SilenceUsage = true

	report, err := m.MatchFiles(ctx, matchInvoice, matchPO)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	formatter := output.NewFormatter(output.Format(outputFormat))
	if err := formatter.Format(os.Stdout, report); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if matchFailOnReview && !report.IsApproved() {
		return fmt.Errorf("match flagged for review")
	}

	return nil
}
