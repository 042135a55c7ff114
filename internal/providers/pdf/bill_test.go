package pdf

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBillProducesPDF(t *testing.T) {
	provider := New()

	reader, err := provider.GenerateBill(context.Background(), BillData{
		ShopName:      "Corner Store",
		ShopAddress:   "12 MG Road, Pune",
		ShopGSTIN:     "27ABCDE1234F1Z5",
		BillNumber:    "INV-01000",
		BillDate:      "2024-03-09 10:00:00",
		PaymentMethod: "cash",
		CustomerName:  "Asha",
		Items: []BillLine{{
			Item:      "Widget",
			HSN:       "8471",
			Quantity:  3,
			Rate:      "100.00",
			Amount:    "300.00",
			GSTRate:   "18",
			GSTAmount: "54.00",
			Total:     "354.00",
		}},
		Subtotal:  "300.00",
		CGST:      "27.00",
		SGST:      "27.00",
		Total:     "354.00",
		QRContent: `{"bill_no":"INV-01000"}`,
	})
	require.NoError(t, err)

	raw, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.True(t, len(raw) > 4)
	assert.Equal(t, "%PDF", string(raw[:4]))
}
