package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/procurelab/matchbook/pkg/errors"
	"github.com/procurelab/matchbook/pkg/extract"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    extract.Kind
		wantErr bool
	}{
		{input: "invoice", want: extract.KindInvoice},
		{input: "inv", want: extract.KindInvoice},
		{input: "purchase_order", want: extract.KindPurchaseOrder},
		{input: "purchase-order", want: extract.KindPurchaseOrder},
		{input: "po", want: extract.KindPurchaseOrder},
		{input: "receipt", wantErr: true},
		{input: "", wantErr: true},
		{input: "INVOICE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := extract.ParseKind(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pkgerrors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindValidate(t *testing.T) {
	assert.NoError(t, extract.KindInvoice.Validate())
	assert.NoError(t, extract.KindPurchaseOrder.Validate())

	err := extract.Kind("receipt").Validate()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "INVOICE", extract.KindInvoice.Label())
	assert.Equal(t, "PURCHASE ORDER", extract.KindPurchaseOrder.Label())
	assert.Equal(t, "DOCUMENT", extract.Kind("other").Label())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "invoice", extract.KindInvoice.String())
	assert.Equal(t, "purchase_order", extract.KindPurchaseOrder.String())
}
