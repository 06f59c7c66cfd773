package domain

// Field describes one editable field of a record or line item.
type Field struct {
	Key      string
	Label    string
	Numeric  bool
	Required bool
}

var headerFields = []Field{
	{Key: "invoiceType", Label: "Invoice Type", Required: true},
	{Key: "invoiceDate", Label: "Invoice Date", Required: true},
	{Key: "sellerNTNCNIC", Label: "Seller NTN / CNIC", Required: true},
	{Key: "sellerBusinessName", Label: "Seller Business Name", Required: true},
	{Key: "sellerProvince", Label: "Seller Province", Required: true},
	{Key: "sellerAddress", Label: "Seller Address", Required: true},
	{Key: "buyerNTNCNIC", Label: "Buyer NTN / CNIC", Required: true},
	{Key: "buyerBusinessName", Label: "Buyer Business Name", Required: true},
	{Key: "buyerProvince", Label: "Buyer Province", Required: true},
	{Key: "buyerAddress", Label: "Buyer Address", Required: true},
	{Key: "buyerRegistrationType", Label: "Buyer Registration Type", Required: true},
	{Key: "invoiceRefNo", Label: "Invoice Reference Number", Required: true},
	{Key: "scenarioId", Label: "Scenario ID", Required: true},
}

var lineItemFields = []Field{
	{Key: "hsCode", Label: "HS Code", Required: true},
	{Key: "productDescription", Label: "Product Description", Required: true},
	{Key: "rate", Label: "Rate (%)"},
	{Key: "uoM", Label: "Unit of Measure (UoM)"},
	{Key: "quantity", Label: "Quantity", Numeric: true},
	{Key: "totalValues", Label: "Total Values", Numeric: true},
	{Key: "valueSalesExcludingST", Label: "Value Sales Excluding Sales Tax", Numeric: true},
	{Key: "fixedNotifiedValueOrRetailPrice", Label: "Fixed Notified Value or Retail Price", Numeric: true},
	{Key: "salesTaxApplicable", Label: "Sales Tax Applicable", Numeric: true},
	{Key: "salesTaxWithheldAtSource", Label: "Sales Tax Withheld At Source", Numeric: true},
	{Key: "extraTax", Label: "Extra Tax"},
	{Key: "furtherTax", Label: "Further Tax", Numeric: true},
	{Key: "sroScheduleNo", Label: "SRO Schedule No"},
	{Key: "fedPayable", Label: "FED Payable", Numeric: true},
	{Key: "discount", Label: "Discount", Numeric: true},
	{Key: "saleType", Label: "Sale Type"},
	{Key: "sroItemSerialNo", Label: "SRO Item Serial No"},
}

// HeaderFields lists the invoice-level fields in form order.
func HeaderFields() []Field {
	out := make([]Field, len(headerFields))
	copy(out, headerFields)
	return out
}

// LineItemFields lists the line item fields in form order.
func LineItemFields() []Field {
	out := make([]Field, len(lineItemFields))
	copy(out, lineItemFields)
	return out
}

func (r *Record) text(key string) *string {
	switch key {
	case "invoiceType":
		return &r.InvoiceType
	case "invoiceDate":
		return &r.InvoiceDate
	case "sellerNTNCNIC":
		return &r.SellerNTNCNIC
	case "sellerBusinessName":
		return &r.SellerBusinessName
	case "sellerProvince":
		return &r.SellerProvince
	case "sellerAddress":
		return &r.SellerAddress
	case "buyerNTNCNIC":
		return &r.BuyerNTNCNIC
	case "buyerBusinessName":
		return &r.BuyerBusinessName
	case "buyerProvince":
		return &r.BuyerProvince
	case "buyerAddress":
		return &r.BuyerAddress
	case "buyerRegistrationType":
		return &r.BuyerRegistrationType
	case "invoiceRefNo":
		return &r.InvoiceRefNo
	case "scenarioId":
		return &r.ScenarioID
	}
	return nil
}

// FieldValue returns the header field named key.
func (r Record) FieldValue(key string) string {
	if p := r.text(key); p != nil {
		return *p
	}
	return ""
}

// SetField replaces a header field. It reports false for unknown keys.
func (r *Record) SetField(key, value string) bool {
	p := r.text(key)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (li *LineItem) text(key string) *string {
	switch key {
	case "hsCode":
		return &li.HSCode
	case "productDescription":
		return &li.ProductDescription
	case "rate":
		return &li.Rate
	case "uoM":
		return &li.UoM
	case "extraTax":
		return &li.ExtraTax
	case "sroScheduleNo":
		return &li.SroScheduleNo
	case "saleType":
		return &li.SaleType
	case "sroItemSerialNo":
		return &li.SroItemSerialNo
	}
	return nil
}

func (li *LineItem) numeric(key string) *Numeric {
	switch key {
	case "quantity":
		return &li.Quantity
	case "totalValues":
		return &li.TotalValues
	case "valueSalesExcludingST":
		return &li.ValueSalesExcludingST
	case "fixedNotifiedValueOrRetailPrice":
		return &li.FixedNotifiedValueOrRetailPrice
	case "salesTaxApplicable":
		return &li.SalesTaxApplicable
	case "salesTaxWithheldAtSource":
		return &li.SalesTaxWithheldAtSource
	case "furtherTax":
		return &li.FurtherTax
	case "fedPayable":
		return &li.FedPayable
	case "discount":
		return &li.Discount
	}
	return nil
}

// numerics returns pointers to every numeric field in catalogue order.
func (li *LineItem) numerics() []*Numeric {
	out := make([]*Numeric, 0, 9)
	for _, f := range lineItemFields {
		if f.Numeric {
			out = append(out, li.numeric(f.Key))
		}
	}
	return out
}

// FieldValue returns the display text of the line item field named key.
func (li LineItem) FieldValue(key string) string {
	if p := li.text(key); p != nil {
		return *p
	}
	if p := li.numeric(key); p != nil {
		return p.String()
	}
	return ""
}

// SetField replaces a line item field from raw input; numeric fields are
// coerced. It reports false for unknown keys.
func (li *LineItem) SetField(key, raw string) bool {
	if p := li.text(key); p != nil {
		*p = raw
		return true
	}
	if p := li.numeric(key); p != nil {
		*p = CoerceNumeric(raw)
		return true
	}
	return false
}

// NumericValue returns the number held by the numeric field named key. ok is
// false for unknown keys, text fields and empty inputs.
func (li LineItem) NumericValue(key string) (v float64, ok bool) {
	p := li.numeric(key)
	if p == nil {
		return 0, false
	}
	return p.Float64()
}
