package format

import (
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
)

// Totals is the per-invoice sum of the line item amounts.
type Totals struct {
	Quantity              decimal.Decimal
	ValueSalesExcludingST decimal.Decimal
	SalesTaxApplicable    decimal.Decimal
	SalesTaxWithheld      decimal.Decimal
	FurtherTax            decimal.Decimal
	FedPayable            decimal.Decimal
	Discount              decimal.Decimal
	TotalValues           decimal.Decimal
}

// SumItems adds up the numeric columns of every line item. Empty inputs
// count as zero.
func SumItems(items []invoicedomain.LineItem) Totals {
	var t Totals
	for _, item := range items {
		t.Quantity = t.Quantity.Add(Dec(item.Quantity))
		t.ValueSalesExcludingST = t.ValueSalesExcludingST.Add(Dec(item.ValueSalesExcludingST))
		t.SalesTaxApplicable = t.SalesTaxApplicable.Add(Dec(item.SalesTaxApplicable))
		t.SalesTaxWithheld = t.SalesTaxWithheld.Add(Dec(item.SalesTaxWithheldAtSource))
		t.FurtherTax = t.FurtherTax.Add(Dec(item.FurtherTax))
		t.FedPayable = t.FedPayable.Add(Dec(item.FedPayable))
		t.Discount = t.Discount.Add(Dec(item.Discount))
		t.TotalValues = t.TotalValues.Add(Dec(item.TotalValues))
	}
	return t
}

func Dec(n invoicedomain.Numeric) decimal.Decimal {
	return decimal.NewFromFloat(n.OrZero())
}

// Amount renders a money value with two decimals.
func Amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
