package export

import (
	"fmt"
	"io"

	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/smallbiznis/fbrinvoice/internal/invoice/format"
	"github.com/xuri/excelize/v2"
)

const (
	InvoicesSheet = "Invoices"
	ItemsSheet    = "Items"
)

// WriteXLSX writes a workbook with one row per invoice and one row per line
// item. Rows keep the order of records.
func WriteXLSX(w io.Writer, records []invoicedomain.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", InvoicesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(ItemsSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := []any{"ID"}
	for _, field := range invoicedomain.HeaderFields() {
		header = append(header, field.Label)
	}
	header = append(header, "Items", "Value excl. ST", "Sales Tax", "Total")
	if err := writeHeader(f, InvoicesSheet, header, bold); err != nil {
		return err
	}

	itemHeader := []any{"Invoice ID", "Line"}
	for _, field := range invoicedomain.LineItemFields() {
		itemHeader = append(itemHeader, field.Label)
	}
	if err := writeHeader(f, ItemsSheet, itemHeader, bold); err != nil {
		return err
	}

	itemRow := 2
	for i, rec := range records {
		totals := format.SumItems(rec.Items)
		row := []any{rec.ID}
		for _, field := range invoicedomain.HeaderFields() {
			row = append(row, rec.FieldValue(field.Key))
		}
		row = append(row,
			len(rec.Items),
			totals.ValueSalesExcludingST.InexactFloat64(),
			totals.SalesTaxApplicable.InexactFloat64(),
			totals.TotalValues.InexactFloat64(),
		)
		if err := setRow(f, InvoicesSheet, i+2, row); err != nil {
			return err
		}

		for n, item := range rec.Items {
			line := []any{rec.ID, n + 1}
			for _, field := range invoicedomain.LineItemFields() {
				line = append(line, cellValue(item, field))
			}
			if err := setRow(f, ItemsSheet, itemRow, line); err != nil {
				return err
			}
			itemRow++
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func writeHeader(f *excelize.File, sheet string, header []any, style int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// cellValue keeps numeric columns numeric and leaves empty inputs blank.
func cellValue(item invoicedomain.LineItem, field invoicedomain.Field) any {
	if !field.Numeric {
		return item.FieldValue(field.Key)
	}
	n, ok := item.NumericValue(field.Key)
	if !ok {
		return ""
	}
	return n
}
