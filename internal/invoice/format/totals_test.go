package format

import (
	"testing"

	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
)

func TestSumItems(t *testing.T) {
	a := invoicedomain.BlankLineItem()
	a.Quantity = invoicedomain.Number(2)
	a.ValueSalesExcludingST = invoicedomain.Number(0.1)
	a.SalesTaxApplicable = invoicedomain.Number(18)

	b := invoicedomain.BlankLineItem()
	b.Quantity = invoicedomain.Empty()
	b.ValueSalesExcludingST = invoicedomain.Number(0.2)
	b.SalesTaxApplicable = invoicedomain.Number(1.5)

	got := SumItems([]invoicedomain.LineItem{a, b})

	assert.Equal(t, "2.00", Amount(got.Quantity))
	assert.Equal(t, "0.30", Amount(got.ValueSalesExcludingST))
	assert.Equal(t, "19.50", Amount(got.SalesTaxApplicable))
	assert.True(t, got.Discount.IsZero())
}

func TestSumItemsEmpty(t *testing.T) {
	got := SumItems(nil)
	assert.Equal(t, "0.00", Amount(got.TotalValues))
}
