package export

import (
	"bytes"
	"testing"

	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	first := invoicedomain.BlankRecord()
	first.ID = "a"
	first.InvoiceRefNo = "INV-1"
	first.Items[0].HSCode = "0101.2100"
	first.Items[0].ValueSalesExcludingST = invoicedomain.Number(100)
	first.Items[0].Discount = invoicedomain.Empty()
	first.AddItem()

	second := invoicedomain.BlankRecord()
	second.ID = "b"
	second.InvoiceRefNo = "INV-2"

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, []invoicedomain.Record{first, second}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(InvoicesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "a", rows[1][0])
	assert.Equal(t, "b", rows[2][0])
	assert.Contains(t, rows[1], "INV-1")

	items, err := f.GetRows(ItemsSheet)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, []string{"a", "1", "0101.2100"}, items[1][:3])
	assert.Equal(t, "2", items[2][1])
	assert.Equal(t, "b", items[3][0])
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(InvoicesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
