package extract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/procurelab/matchbook/pkg/errors"
	"github.com/procurelab/matchbook/pkg/extract"
)

func TestNewGeminiExtractor(t *testing.T) {
	t.Run("explicit API key", func(t *testing.T) {
		g, err := extract.NewGeminiExtractor("test-key")
		require.NoError(t, err)
		assert.Equal(t, extract.DefaultModel, g.Model())
	})

	t.Run("falls back to environment", func(t *testing.T) {
		t.Setenv(extract.APIKeyEnvVar, "env-key")

		_, err := extract.NewGeminiExtractor("")
		assert.NoError(t, err)
	})

	t.Run("no key anywhere", func(t *testing.T) {
		t.Setenv(extract.APIKeyEnvVar, "")

		_, err := extract.NewGeminiExtractor("")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsAPIKeyError(err))

		var configErr *pkgerrors.ConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, "gemini", configErr.Component)
	})

	t.Run("custom model", func(t *testing.T) {
		g, err := extract.NewGeminiExtractor("test-key", extract.WithModel("gemini-2.5-pro"))
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-pro", g.Model())
	})

	t.Run("empty model option keeps default", func(t *testing.T) {
		g, err := extract.NewGeminiExtractor("test-key", extract.WithModel(""))
		require.NoError(t, err)
		assert.Equal(t, extract.DefaultModel, g.Model())
	})
}

func TestGeminiExtractPreconditions(t *testing.T) {
	// Precondition failures return before any client is created, so these
	// cases never touch the network.
	g, err := extract.NewGeminiExtractor("test-key")
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("unknown kind", func(t *testing.T) {
		_, err := g.Extract(ctx, "some document text", extract.Kind("receipt"))
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := g.Extract(ctx, "", extract.KindInvoice)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsExtractionError(err))
	})

	t.Run("whitespace only text", func(t *testing.T) {
		_, err := g.Extract(ctx, "   \n\t  ", extract.KindPurchaseOrder)
		require.Error(t, err)
		assert.True(t, pkgerrors.IsExtractionError(err))

		var extractionErr *pkgerrors.ExtractionError
		require.ErrorAs(t, err, &extractionErr)
		assert.Equal(t, "purchase_order", extractionErr.Doc)
	})
}

func TestGeminiClose(t *testing.T) {
	g, err := extract.NewGeminiExtractor("test-key")
	require.NoError(t, err)

	assert.NoError(t, g.Close())
	assert.NoError(t, g.Close())
}
