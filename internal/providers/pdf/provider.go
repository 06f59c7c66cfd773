package pdf

import (
	"context"
	"io"

	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
)

type Provider interface {
	GenerateInvoice(ctx context.Context, rec invoicedomain.Record) (io.Reader, error)
}
