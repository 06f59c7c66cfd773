package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
)

const (
	defaultSellerName     = "Main Traders (Pvt) Ltd"
	defaultSellerNTN      = "0786909"
	defaultSellerProvince = "Sindh"
	defaultSellerAddress  = "Karachi"
)

// SampleInvoice returns a filled sale invoice for demos and smoke tests. n
// makes the reference number and amounts distinct.
func SampleInvoice(n int, issuedAt time.Time) invoicedomain.Record {
	rec := invoicedomain.BlankRecord()
	rec.InvoiceType = "Sale Invoice"
	rec.InvoiceDate = issuedAt.Format("2006-01-02")
	rec.SellerNTNCNIC = defaultSellerNTN
	rec.SellerBusinessName = defaultSellerName
	rec.SellerProvince = defaultSellerProvince
	rec.SellerAddress = defaultSellerAddress
	rec.BuyerNTNCNIC = fmt.Sprintf("1000%03d", n)
	rec.BuyerBusinessName = fmt.Sprintf("Buyer %d", n)
	rec.BuyerProvince = "Punjab"
	rec.BuyerAddress = "Lahore"
	rec.BuyerRegistrationType = "Registered"
	rec.InvoiceRefNo = fmt.Sprintf("SEED-%s-%03d", issuedAt.Format("20060102"), n)
	rec.ScenarioID = "SN001"

	value := float64(1000 * n)
	item := &rec.Items[0]
	item.HSCode = "0101.2100"
	item.ProductDescription = "Sample goods"
	item.Rate = "18%"
	item.UoM = "Numbers, pieces, units"
	item.Quantity = invoicedomain.Number(float64(n))
	item.ValueSalesExcludingST = invoicedomain.Number(value)
	item.SalesTaxApplicable = invoicedomain.Number(value * 0.18)
	item.TotalValues = invoicedomain.Number(value * 1.18)
	item.SaleType = "Goods at standard rate (default)"
	return rec
}

// Invoices stores count sample invoices through the service and returns
// their ids in creation order.
func Invoices(ctx context.Context, svc invoicedomain.Service, count int, issuedAt time.Time) ([]string, error) {
	if svc == nil {
		return nil, errors.New("seed invoice service is required")
	}
	ids := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		rec, err := svc.Create(ctx, SampleInvoice(i, issuedAt))
		if err != nil {
			return ids, fmt.Errorf("seed invoice %d: %w", i, err)
		}
		ids = append(ids, rec.ID)
	}
	return ids, nil
}
