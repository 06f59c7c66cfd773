package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/fbrinvoice/internal/clock"
	"github.com/smallbiznis/fbrinvoice/internal/config"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/stretchr/testify/require"
)

// fakeInvoiceService keeps records in memory in insertion order.
type fakeInvoiceService struct {
	records map[string]invoicedomain.Record
	order   []string
	nextID  int
	err     error
}

func newFakeInvoiceService() *fakeInvoiceService {
	return &fakeInvoiceService{records: map[string]invoicedomain.Record{}}
}

func (f *fakeInvoiceService) Blank() invoicedomain.Record {
	return invoicedomain.BlankRecord()
}

func (f *fakeInvoiceService) Get(ctx context.Context, id string) (invoicedomain.Record, error) {
	if f.err != nil {
		return invoicedomain.Record{}, f.err
	}
	if strings.TrimSpace(id) == "" {
		return invoicedomain.Record{}, invoicedomain.ErrInvalidID
	}
	rec, ok := f.records[id]
	if !ok {
		return invoicedomain.Record{}, invoicedomain.ErrNotFound
	}
	return rec, nil
}

func (f *fakeInvoiceService) List(ctx context.Context) ([]invoicedomain.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]invoicedomain.Record, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.records[id])
	}
	return out, nil
}

func (f *fakeInvoiceService) Create(ctx context.Context, rec invoicedomain.Record) (invoicedomain.Record, error) {
	if f.err != nil {
		return invoicedomain.Record{}, f.err
	}
	f.nextID++
	out := invoicedomain.FinalizeForPersistence(rec)
	out.ID = fmt.Sprintf("id-%d", f.nextID)
	f.records[out.ID] = out
	f.order = append(f.order, out.ID)
	return out, nil
}

func (f *fakeInvoiceService) Update(ctx context.Context, id string, rec invoicedomain.Record) (invoicedomain.Record, error) {
	if f.err != nil {
		return invoicedomain.Record{}, f.err
	}
	if _, ok := f.records[id]; !ok {
		return invoicedomain.Record{}, invoicedomain.ErrNotFound
	}
	out := invoicedomain.FinalizeForPersistence(rec)
	out.ID = id
	f.records[id] = out
	return out, nil
}

func (f *fakeInvoiceService) Save(ctx context.Context, id string, rec invoicedomain.Record) (invoicedomain.Record, error) {
	if id == "" {
		return f.Create(ctx, rec)
	}
	return f.Update(ctx, id, rec)
}

func (f *fakeInvoiceService) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.records[id]; !ok {
		return invoicedomain.ErrNotFound
	}
	delete(f.records, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakePDF struct{}

func (fakePDF) GenerateInvoice(ctx context.Context, rec invoicedomain.Record) (io.Reader, error) {
	return strings.NewReader("%PDF-1.3 " + rec.ID), nil
}

func newTestServer(t *testing.T, svc *fakeInvoiceService) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:        engine,
		Cfg:        config.Config{},
		InvoiceSvc: svc,
		PDF:        fakePDF{},
		Clock:      clock.NewFakeClock(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)),
	})
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func doForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func seed(t *testing.T, svc *fakeInvoiceService, ref string) invoicedomain.Record {
	t.Helper()
	rec := invoicedomain.BlankRecord()
	rec.InvoiceRefNo = ref
	rec.InvoiceType = "Sale Invoice"
	rec.InvoiceDate = "2024-03-05"
	out, err := svc.Create(context.Background(), rec)
	require.NoError(t, err)
	return out
}
