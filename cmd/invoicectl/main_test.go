package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlankCommand(t *testing.T) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out

	require.NoError(t, app.Run([]string{"invoicectl", "blank"}))

	var rec invoicedomain.Record
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Empty(t, rec.ID)
	assert.Len(t, rec.Items, 1)
}

func TestReadRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"ignored","invoiceRefNo":"INV-1","items":[{"quantity":"3"}]}`), 0o600))

	rec, err := readRecord(path, nil)
	require.NoError(t, err)
	assert.Empty(t, rec.ID)
	assert.Equal(t, "INV-1", rec.InvoiceRefNo)
	v, ok := rec.Items[0].Quantity.Float64()
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	rec, err = readRecord("-", strings.NewReader(`{"invoiceRefNo":"INV-2"}`))
	require.NoError(t, err)
	assert.Equal(t, "INV-2", rec.InvoiceRefNo)

	_, err = readRecord("", nil)
	assert.Error(t, err)
}

func TestWriteTable(t *testing.T) {
	rec := invoicedomain.BlankRecord()
	rec.ID = "abc"
	rec.InvoiceRefNo = "INV-1"
	rec.InvoiceDate = "3/5/2024"

	var out bytes.Buffer
	require.NoError(t, writeTable(&out, []invoicedomain.Record{rec}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "2024-03-05")
	assert.Contains(t, lines[1], "INV-1")
}
