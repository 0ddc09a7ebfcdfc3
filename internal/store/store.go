// Package store is the domain access layer: thin per-entity reads and
// writes over gorm. Every write is a single statement in gorm's implicit
// transaction.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("store: record not found")

const instrumentationName = "github.com/diewo77/go-records/internal/store"

var (
	tracer  = otel.Tracer(instrumentationName)
	metrics = newMetrics(otel.Meter(instrumentationName))
)

type storeMetrics struct {
	ops      metric.Int64Counter
	duration metric.Float64Histogram
}

func newMetrics(meter metric.Meter) storeMetrics {
	ops, _ := meter.Int64Counter("store.operations",
		metric.WithDescription("Store operations by name and outcome"),
		metric.WithUnit("{operation}"),
	)
	duration, _ := meter.Float64Histogram("store.operation.duration",
		metric.WithDescription("Store operation duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000),
	)
	return storeMetrics{ops: ops, duration: duration}
}

// Stores bundles every store over one connection.
type Stores struct {
	Categories *CategoryStore
	People     *PersonStore
	Accounts   *AccountStore
	Sessions   *SessionStore
}

// New builds all stores over db.
func New(db *gorm.DB) *Stores {
	return &Stores{
		Categories: NewCategoryStore(db),
		People:     NewPersonStore(db),
		Accounts:   NewAccountStore(db),
		Sessions:   NewSessionStore(db),
	}
}

// operation is one traced and metered store call.
type operation struct {
	ctx   context.Context
	name  string
	start time.Time
	span  trace.Span
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *operation) {
	ctx, span := tracer.Start(ctx, "store."+name, trace.WithAttributes(attrs...))
	return ctx, &operation{ctx: ctx, name: name, start: time.Now(), span: span}
}

// finish records err on the span and metrics, maps gorm's not-found error
// and ends the span.
func finish(op *operation, err error) error {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		outcome = "not_found"
		op.span.SetStatus(codes.Error, "not found")
		err = ErrNotFound
	default:
		outcome = "error"
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
	}
	op.span.End()

	attrs := metric.WithAttributes(attribute.String("operation", op.name), attribute.String("outcome", outcome))
	metrics.ops.Add(op.ctx, 1, attrs)
	metrics.duration.Record(op.ctx, float64(time.Since(op.start).Microseconds())/1000, attrs)
	return err
}

// likePattern builds a case-insensitive LIKE pattern for a substring search,
// escaping LIKE wildcards in term. Used with ESCAPE '\'.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(term)) + "%"
}
