package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smallbiznis/fbrinvoice/internal/config"
	"github.com/smallbiznis/fbrinvoice/internal/docstore"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	obslogger "github.com/smallbiznis/fbrinvoice/internal/observability/logger"
	"github.com/smallbiznis/fbrinvoice/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Gateway docstore.Gateway
	Log     *zap.Logger
	Config  config.Config
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	gateway    docstore.Gateway
	log        *zap.Logger
	metrics    *metrics.Metrics
	collection string
}

func NewService(p ServiceParam) invoicedomain.Service {
	collection := strings.TrimSpace(p.Config.DocStore.Collection)
	if collection == "" {
		collection = config.DefaultCollection
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		gateway:    p.Gateway,
		log:        log.Named("invoice.service"),
		metrics:    p.Metrics,
		collection: collection,
	}
}

func (s *Service) Blank() invoicedomain.Record {
	return invoicedomain.BlankRecord()
}

func (s *Service) Get(ctx context.Context, id string) (invoicedomain.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		s.record(ctx, "get", invoicedomain.ErrInvalidID)
		return invoicedomain.Record{}, invoicedomain.ErrInvalidID
	}

	raw, err := s.gateway.GetByID(ctx, s.collection, id)
	if err != nil {
		err = s.fail(ctx, "get", id, err)
		return invoicedomain.Record{}, err
	}

	rec := invoicedomain.FromStored(raw)
	rec.ID = id
	s.record(ctx, "get", nil)
	return rec, nil
}

func (s *Service) List(ctx context.Context) ([]invoicedomain.Record, error) {
	snaps, err := s.gateway.GetAll(ctx, s.collection)
	if err != nil {
		return nil, s.fail(ctx, "list", "", err)
	}

	out := make([]invoicedomain.Record, 0, len(snaps))
	for _, snap := range snaps {
		rec := invoicedomain.FromStored(snap.Data)
		rec.ID = snap.ID
		out = append(out, rec)
	}
	s.record(ctx, "list", nil)
	return out, nil
}

func (s *Service) Create(ctx context.Context, rec invoicedomain.Record) (invoicedomain.Record, error) {
	payload := invoicedomain.FinalizeForPersistence(rec)

	id, err := s.gateway.Insert(ctx, s.collection, payload.ToDocument())
	if err != nil {
		return invoicedomain.Record{}, s.fail(ctx, "create", "", err)
	}

	payload.ID = id
	obslogger.WithInvoice(obslogger.WithContext(ctx, s.log), id).Info("invoice created",
		zap.Int("items", len(payload.Items)),
	)
	s.record(ctx, "create", nil)
	return payload, nil
}

func (s *Service) Update(ctx context.Context, id string, rec invoicedomain.Record) (invoicedomain.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		s.record(ctx, "update", invoicedomain.ErrInvalidID)
		return invoicedomain.Record{}, invoicedomain.ErrInvalidID
	}

	payload := invoicedomain.FinalizeForPersistence(rec)
	if err := s.gateway.Update(ctx, s.collection, id, payload.ToDocument()); err != nil {
		return invoicedomain.Record{}, s.fail(ctx, "update", id, err)
	}

	payload.ID = id
	obslogger.WithInvoice(obslogger.WithContext(ctx, s.log), id).Info("invoice updated",
		zap.Int("items", len(payload.Items)),
	)
	s.record(ctx, "update", nil)
	return payload, nil
}

func (s *Service) Save(ctx context.Context, id string, rec invoicedomain.Record) (invoicedomain.Record, error) {
	if strings.TrimSpace(id) == "" {
		return s.Create(ctx, rec)
	}
	return s.Update(ctx, id, rec)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		s.record(ctx, "delete", invoicedomain.ErrInvalidID)
		return invoicedomain.ErrInvalidID
	}

	if err := s.gateway.DeleteByID(ctx, s.collection, id); err != nil {
		return s.fail(ctx, "delete", id, err)
	}

	obslogger.WithInvoice(obslogger.WithContext(ctx, s.log), id).Info("invoice deleted")
	s.record(ctx, "delete", nil)
	return nil
}

// fail translates a gateway error into the domain taxonomy. Anything that is
// not a missing document counts as the store being unavailable.
func (s *Service) fail(ctx context.Context, op, id string, err error) error {
	var out error
	if errors.Is(err, docstore.ErrNotFound) {
		out = fmt.Errorf("%w: %w", invoicedomain.ErrNotFound, err)
	} else {
		out = fmt.Errorf("%w: %w", invoicedomain.ErrStoreUnavailable, err)
	}

	log := obslogger.WithContext(ctx, s.log)
	if id != "" {
		log = obslogger.WithInvoice(log, id)
	}
	if errors.Is(out, invoicedomain.ErrNotFound) {
		log.Info("invoice not found", zap.String("operation", op))
	} else {
		log.Error("invoice store call failed", zap.String("operation", op), zap.Error(err))
	}

	s.record(ctx, op, out)
	return out
}

func (s *Service) record(ctx context.Context, op string, err error) {
	s.metrics.RecordInvoiceOperation(ctx, op, outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, invoicedomain.ErrNotFound):
		return "not_found"
	case errors.Is(err, invoicedomain.ErrInvalidID):
		return "invalid_id"
	default:
		return "unavailable"
	}
}
