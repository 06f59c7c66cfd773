package docstore

import (
	"context"
	"errors"
	"time"

	obslogger "github.com/smallbiznis/fbrinvoice/internal/observability/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Recorder receives one observation per gateway call.
type Recorder interface {
	RecordDocstoreOperation(ctx context.Context, backend, operation, outcome string, elapsed time.Duration)
}

const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
)

type instrumented struct {
	next    Gateway
	backend string
	rec     Recorder
	log     *zap.Logger
	tracer  trace.Tracer
}

// Instrument wraps next with a span, a metric observation and a log line
// per call. rec and log may be nil.
func Instrument(next Gateway, backend string, rec Recorder, log *zap.Logger) Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &instrumented{
		next:    next,
		backend: backend,
		rec:     rec,
		log:     log.Named("docstore").With(zap.String("backend", backend)),
		tracer:  otel.Tracer("fbrinvoice/docstore"),
	}
}

// Outcome classifies a gateway error for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeUnavailable
	}
}

func (g *instrumented) observe(ctx context.Context, operation, collection, id string, call func(context.Context) error) error {
	ctx, span := g.tracer.Start(ctx, "docstore."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("docstore.backend", g.backend),
			attribute.String("docstore.collection", collection),
			attribute.String("docstore.operation", operation),
		),
	)
	defer span.End()

	start := time.Now()
	err := call(ctx)
	elapsed := time.Since(start)
	outcome := Outcome(err)

	if g.rec != nil {
		g.rec.RecordDocstoreOperation(ctx, g.backend, operation, outcome, elapsed)
	}

	log := obslogger.WithContext(ctx, g.log).With(
		zap.String("operation", operation),
		zap.String("collection", collection),
		zap.String("outcome", outcome),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	)
	if id != "" {
		log = obslogger.WithInvoice(log, id)
	}
	switch outcome {
	case OutcomeUnavailable:
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		log.Warn("docstore call failed", zap.Error(err))
	case OutcomeNotFound:
		log.Debug("docstore document not found")
	default:
		log.Debug("docstore call")
	}
	return err
}

func (g *instrumented) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	var id string
	err := g.observe(ctx, "insert", collection, "", func(ctx context.Context) error {
		var err error
		id, err = g.next.Insert(ctx, collection, doc)
		return err
	})
	return id, err
}

func (g *instrumented) GetByID(ctx context.Context, collection, id string) (Document, error) {
	var doc Document
	err := g.observe(ctx, "get", collection, id, func(ctx context.Context) error {
		var err error
		doc, err = g.next.GetByID(ctx, collection, id)
		return err
	})
	return doc, err
}

func (g *instrumented) GetAll(ctx context.Context, collection string) ([]Snapshot, error) {
	var snaps []Snapshot
	err := g.observe(ctx, "list", collection, "", func(ctx context.Context) error {
		var err error
		snaps, err = g.next.GetAll(ctx, collection)
		return err
	})
	return snaps, err
}

func (g *instrumented) Update(ctx context.Context, collection, id string, doc Document) error {
	return g.observe(ctx, "update", collection, id, func(ctx context.Context) error {
		return g.next.Update(ctx, collection, id, doc)
	})
}

func (g *instrumented) DeleteByID(ctx context.Context, collection, id string) error {
	return g.observe(ctx, "delete", collection, id, func(ctx context.Context) error {
		return g.next.DeleteByID(ctx, collection, id)
	})
}

func (g *instrumented) Close() error {
	return g.next.Close()
}
