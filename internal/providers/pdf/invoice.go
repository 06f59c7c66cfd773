package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/smallbiznis/fbrinvoice/internal/invoice/format"
	"go.uber.org/zap"
)

type PDFProvider struct {
	log *zap.Logger
}

func New(log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &PDFProvider{log: log.Named("pdf.provider")}
}

var (
	headerText = props.Text{Style: fontstyle.Bold, Size: 8}
	cellText   = props.Text{Size: 8}
	amountText = props.Text{Size: 8, Align: align.Right}
)

func (p *PDFProvider) GenerateInvoice(ctx context.Context, rec invoicedomain.Record) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	title := "Sales Tax Invoice"
	if rec.InvoiceType != "" {
		title = rec.InvoiceType
	}
	m.AddRow(12,
		text.NewCol(8, title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		col.New(4).Add(
			text.New("Reference: "+rec.InvoiceRefNo, props.Text{Align: align.Right, Size: 9}),
			text.New("Date: "+invoicedomain.NormalizeDate(rec.InvoiceDate), props.Text{Align: align.Right, Size: 9, Top: 4}),
			text.New("Scenario: "+rec.ScenarioID, props.Text{Align: align.Right, Size: 9, Top: 8}),
		),
	)

	m.AddRow(30,
		party("Seller", rec.SellerBusinessName, rec.SellerNTNCNIC, rec.SellerProvince, rec.SellerAddress, ""),
		party("Buyer", rec.BuyerBusinessName, rec.BuyerNTNCNIC, rec.BuyerProvince, rec.BuyerAddress, rec.BuyerRegistrationType),
	)

	m.AddRow(8,
		text.NewCol(1, "HS Code", headerText),
		text.NewCol(3, "Description", headerText),
		text.NewCol(1, "Qty / UoM", headerText),
		text.NewCol(1, "Rate", headerText),
		text.NewCol(1, "Value excl. ST", withAlign(headerText)),
		text.NewCol(1, "Sales Tax", withAlign(headerText)),
		text.NewCol(1, "Further Tax", withAlign(headerText)),
		text.NewCol(1, "FED", withAlign(headerText)),
		text.NewCol(1, "Discount", withAlign(headerText)),
		text.NewCol(1, "Total", withAlign(headerText)),
	)

	for _, item := range rec.Items {
		m.AddRow(10,
			text.NewCol(1, item.HSCode, cellText),
			text.NewCol(3, item.ProductDescription, cellText),
			text.NewCol(1, fmt.Sprintf("%s %s", item.Quantity, item.UoM), cellText),
			text.NewCol(1, item.Rate, cellText),
			amountCol(format.Dec(item.ValueSalesExcludingST)),
			amountCol(format.Dec(item.SalesTaxApplicable)),
			amountCol(format.Dec(item.FurtherTax)),
			amountCol(format.Dec(item.FedPayable)),
			amountCol(format.Dec(item.Discount)),
			amountCol(format.Dec(item.TotalValues)),
		)
	}

	totals := format.SumItems(rec.Items)
	m.AddRow(10,
		text.NewCol(6, "Totals", headerText),
		amountCol(totals.ValueSalesExcludingST),
		amountCol(totals.SalesTaxApplicable),
		amountCol(totals.FurtherTax),
		amountCol(totals.FedPayable),
		amountCol(totals.Discount),
		amountCol(totals.TotalValues),
	)
	if !totals.SalesTaxWithheld.IsZero() {
		m.AddRow(8,
			col.New(8),
			text.NewCol(3, "Sales tax withheld at source", cellText),
			amountCol(totals.SalesTaxWithheld),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		p.log.Error("failed to render invoice pdf", zap.String("invoice_id", rec.ID), zap.Error(err))
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func party(label, name, ntn, province, address, registration string) core.Col {
	c := col.New(6).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 10}),
		text.New(name, props.Text{Top: 5, Size: 9}),
		text.New("NTN/CNIC: "+ntn, props.Text{Top: 10, Size: 9}),
		text.New(province, props.Text{Top: 15, Size: 9}),
		text.New(address, props.Text{Top: 20, Size: 9}),
	)
	if registration != "" {
		c.Add(text.New(registration, props.Text{Top: 25, Size: 9}))
	}
	return c
}

func amountCol(d decimal.Decimal) core.Col {
	return text.NewCol(1, format.Amount(d), amountText)
}

func withAlign(p props.Text) props.Text {
	p.Align = align.Right
	return p
}
