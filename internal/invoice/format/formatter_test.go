package format

import (
	"testing"
	"time"

	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDocumentName(t *testing.T) {
	rec := invoicedomain.BlankRecord()
	rec.InvoiceRefNo = "INV/2024 01"
	rec.InvoiceDate = "3/5/2024"

	got, err := FormatDocumentName(DefaultDocumentNameTemplate, rec, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "invoice-inv-2024-01-20240305", got)
}

func TestFormatDocumentNameFallsBack(t *testing.T) {
	rec := invoicedomain.BlankRecord()
	at := time.Date(2025, time.January, 9, 0, 0, 0, 0, time.UTC)

	got, err := FormatDocumentName("{ID}-{REF}-{YY}{MM}{DD}", rec, at)
	require.NoError(t, err)
	assert.Equal(t, "new-draft-250109", got)
}

func TestFormatDocumentNameRejectsUnknownTokens(t *testing.T) {
	_, err := FormatDocumentName("invoice-{SEQ}", invoicedomain.BlankRecord(), time.Now())
	assert.Error(t, err)

	_, err = FormatDocumentName("", invoicedomain.BlankRecord(), time.Now())
	assert.Error(t, err)
}
