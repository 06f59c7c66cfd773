package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
)

const DefaultDocumentNameTemplate = "invoice-{REF}-{YYYY}{MM}{DD}"

// FormatDocumentName builds the download file name (without extension) for a
// rendered invoice. Date tokens come from the invoice date, or from fallback
// when the record has no usable date. Free-text tokens are slugified.
func FormatDocumentName(
	template string,
	rec invoicedomain.Record,
	fallback time.Time,
) (string, error) {

	if template == "" {
		return "", fmt.Errorf("document name template is empty")
	}

	issuedAt := fallback
	if d := invoicedomain.NormalizeDate(rec.InvoiceDate); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			issuedAt = t
		}
	}

	out := template

	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	out = strings.ReplaceAll(out, "{REF}", token(rec.InvoiceRefNo, "draft"))
	out = strings.ReplaceAll(out, "{ID}", token(rec.ID, "new"))
	out = strings.ReplaceAll(out, "{BUYER}", token(rec.BuyerBusinessName, "buyer"))

	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in document name: %s", out)
	}

	return out, nil
}

func token(value, fallback string) string {
	if s := slug.Make(value); s != "" {
		return s
	}
	return fallback
}
