package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/procurelab/matchbook/internal/cmd/output"
	"github.com/procurelab/matchbook/pkg/documents"
	"github.com/procurelab/matchbook/pkg/errors"
	"github.com/procurelab/matchbook/pkg/extract"
	"github.com/procurelab/matchbook/pkg/logging"
)

var (
	extractKind  string
	extractModel string
)

// extractCmd represents the extract command.
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract a structured record from document text",
	Long: `Extract reads raw document text (already converted from its source
format) and uses the Gemini API to produce a structured record with the
document schema: id, vendor, total, and line items.

Requires GEMINI_API_KEY to be set in the environment, a .env file, or
the config file.`,
	Example: `  matchbook extract --kind invoice invoice.txt
  matchbook extract -k po po.txt --output yaml
  matchbook extract -k invoice scan.txt > invoice.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractKind, "kind", "k", "invoice", "Document kind: invoice or purchase_order (also: inv, po)")
	extractCmd.Flags().StringVar(&extractModel, "model", "", "Gemini model to use (default: "+extract.DefaultModel+")")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	kind, err := extract.ParseKind(extractKind)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return errors.WrapIO("read", args[0], err)
	}

	apiKey := viper.GetString("gemini_api_key")
	if apiKey == "" {
		apiKey = viper.GetString("google_api_key")
	}

	model := extractModel
	if model == "" {
		model = viper.GetString("gemini_model")
	}

	extractor, err := extract.NewGeminiExtractor(
		apiKey,
		extract.WithModel(model),
	)
	if err != nil {
		return err
	}
	defer func() { _ = extractor.Close() }()

	log.Debug().
		Str("file", args[0]).
		Str("kind", kind.String()).
		Str("model", extractor.Model()).
		Msg("Extracting record from document text")

	// Flags are valid from here on; failures are runtime failures
	cmd.SilenceUsage = true

	raw, err := extractor.Extract(ctx, string(data), kind)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	doc, err := documents.Normalize(raw)
	if err != nil {
		return fmt.Errorf("extracted record is invalid: %w", err)
	}

	formatter := output.NewFormatter(output.Format(outputFormat))
	return formatter.Format(os.Stdout, doc)
}
