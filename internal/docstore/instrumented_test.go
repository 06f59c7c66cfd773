package docstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/smallbiznis/fbrinvoice/internal/docstore"
	"github.com/smallbiznis/fbrinvoice/internal/docstore/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type observation struct {
	backend, operation, outcome string
}

type fakeRecorder struct {
	seen []observation
}

func (f *fakeRecorder) RecordDocstoreOperation(_ context.Context, backend, operation, outcome string, _ time.Duration) {
	f.seen = append(f.seen, observation{backend, operation, outcome})
}

func TestInstrumentRecordsOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGateway(ctrl)
	rec := &fakeRecorder{}
	core, logs := observer.New(zap.WarnLevel)

	gw := docstore.Instrument(next, docstore.BackendSQL, rec, zap.New(core))
	ctx := context.Background()

	next.EXPECT().Insert(gomock.Any(), "invoices", gomock.Any()).Return("abc", nil)
	id, err := gw.Insert(ctx, "invoices", docstore.Document{"invoiceRefNo": "INV-1"})
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	next.EXPECT().GetByID(gomock.Any(), "invoices", "gone").Return(nil, docstore.NotFound("invoices", "gone"))
	_, err = gw.GetByID(ctx, "invoices", "gone")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	next.EXPECT().DeleteByID(gomock.Any(), "invoices", "abc").Return(docstore.Unavailable("delete", errors.New("conn reset")))
	err = gw.DeleteByID(ctx, "invoices", "abc")
	assert.ErrorIs(t, err, docstore.ErrUnavailable)

	assert.Equal(t, []observation{
		{docstore.BackendSQL, "insert", docstore.OutcomeOK},
		{docstore.BackendSQL, "get", docstore.OutcomeNotFound},
		{docstore.BackendSQL, "delete", docstore.OutcomeUnavailable},
	}, rec.seen)

	failures := logs.FilterMessage("docstore call failed").All()
	if assert.Len(t, failures, 1) {
		assert.Equal(t, "abc", failures[0].ContextMap()["invoice_id"])
	}
}

func TestInstrumentWithoutRecorder(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGateway(ctrl)
	gw := docstore.Instrument(next, docstore.BackendRedis, nil, nil)

	next.EXPECT().GetAll(gomock.Any(), "invoices").Return([]docstore.Snapshot{{ID: "a"}}, nil)
	snaps, err := gw.GetAll(context.Background(), "invoices")
	require.NoError(t, err)
	assert.Len(t, snaps, 1)

	next.EXPECT().Close().Return(nil)
	assert.NoError(t, gw.Close())
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, docstore.OutcomeOK, docstore.Outcome(nil))
	assert.Equal(t, docstore.OutcomeNotFound, docstore.Outcome(docstore.NotFound("c", "x")))
	assert.Equal(t, docstore.OutcomeUnavailable, docstore.Outcome(errors.New("x")))
}
