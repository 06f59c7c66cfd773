// Package domain contains the invoice record model and its normalization rules.
package domain

// Record is a single invoice document. ID is issued by the document store on
// first insert and is never part of the persisted body.
type Record struct {
	ID                    string     `json:"id,omitempty"`
	InvoiceType           string     `json:"invoiceType" validate:"required"`
	InvoiceDate           string     `json:"invoiceDate" validate:"required"`
	SellerNTNCNIC         string     `json:"sellerNTNCNIC" validate:"required"`
	SellerBusinessName    string     `json:"sellerBusinessName" validate:"required"`
	SellerProvince        string     `json:"sellerProvince" validate:"required"`
	SellerAddress         string     `json:"sellerAddress" validate:"required"`
	BuyerNTNCNIC          string     `json:"buyerNTNCNIC" validate:"required"`
	BuyerBusinessName     string     `json:"buyerBusinessName" validate:"required"`
	BuyerProvince         string     `json:"buyerProvince" validate:"required"`
	BuyerAddress          string     `json:"buyerAddress" validate:"required"`
	BuyerRegistrationType string     `json:"buyerRegistrationType" validate:"required"`
	InvoiceRefNo          string     `json:"invoiceRefNo" validate:"required"`
	ScenarioID            string     `json:"scenarioId" validate:"required"`
	Items                 []LineItem `json:"items" validate:"min=1,dive"`
}

// LineItem is one taxable good or service on an invoice. Position in
// Record.Items is its only identity.
type LineItem struct {
	HSCode                          string  `json:"hsCode" validate:"required"`
	ProductDescription              string  `json:"productDescription" validate:"required"`
	Rate                            string  `json:"rate"`
	UoM                             string  `json:"uoM"`
	Quantity                        Numeric `json:"quantity"`
	TotalValues                     Numeric `json:"totalValues"`
	ValueSalesExcludingST           Numeric `json:"valueSalesExcludingST"`
	FixedNotifiedValueOrRetailPrice Numeric `json:"fixedNotifiedValueOrRetailPrice"`
	SalesTaxApplicable              Numeric `json:"salesTaxApplicable"`
	SalesTaxWithheldAtSource        Numeric `json:"salesTaxWithheldAtSource"`
	ExtraTax                        string  `json:"extraTax"`
	FurtherTax                      Numeric `json:"furtherTax"`
	SroScheduleNo                   string  `json:"sroScheduleNo"`
	FedPayable                      Numeric `json:"fedPayable"`
	Discount                        Numeric `json:"discount"`
	SaleType                        string  `json:"saleType"`
	SroItemSerialNo                 string  `json:"sroItemSerialNo"`
}

// BlankLineItem returns a line item with empty text and zero amounts.
func BlankLineItem() LineItem {
	return LineItem{
		Quantity:                        Number(0),
		TotalValues:                     Number(0),
		ValueSalesExcludingST:           Number(0),
		FixedNotifiedValueOrRetailPrice: Number(0),
		SalesTaxApplicable:              Number(0),
		SalesTaxWithheldAtSource:        Number(0),
		FurtherTax:                      Number(0),
		FedPayable:                      Number(0),
		Discount:                        Number(0),
	}
}

// BlankRecord returns a new, unsaved invoice with exactly one blank line item.
func BlankRecord() Record {
	return Record{Items: []LineItem{BlankLineItem()}}
}

// AddItem appends a blank line item to the edit buffer.
func (r *Record) AddItem() {
	r.Items = append(r.Items, BlankLineItem())
}

// IsNew reports whether the record has not been persisted yet.
func (r Record) IsNew() bool {
	return r.ID == ""
}
