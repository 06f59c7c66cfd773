package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/smallbiznis/fbrinvoice/internal/config"
	"github.com/smallbiznis/fbrinvoice/internal/docstore"
	"github.com/smallbiznis/fbrinvoice/internal/docstore/mocks"
	"github.com/smallbiznis/fbrinvoice/internal/invoice/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issued = time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

func TestSampleInvoice(t *testing.T) {
	rec := SampleInvoice(2, issued)

	assert.Equal(t, "SEED-20240305-002", rec.InvoiceRefNo)
	assert.Equal(t, "2024-03-05", rec.InvoiceDate)
	require.Len(t, rec.Items, 1)
	v, _ := rec.Items[0].ValueSalesExcludingST.Float64()
	assert.Equal(t, 2000.0, v)
}

func TestInvoices(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	svc := service.NewService(service.ServiceParam{Gateway: gw, Config: config.Config{}})

	gomock.InOrder(
		gw.EXPECT().Insert(gomock.Any(), config.DefaultCollection, gomock.Any()).Return("a", nil),
		gw.EXPECT().Insert(gomock.Any(), config.DefaultCollection, gomock.Any()).Return("", docstore.Unavailable("insert", errors.New("down"))),
	)

	ids, err := Invoices(context.Background(), svc, 3, issued)
	assert.Error(t, err)
	assert.Equal(t, []string{"a"}, ids)
}
