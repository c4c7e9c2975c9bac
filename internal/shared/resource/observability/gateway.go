package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

const tracerName = "github.com/Apurer/coffee-admin/internal/shared/resource/observability"

// Gateway decorates a resource gateway with tracing, logging, and metrics.
type Gateway[T resource.Item, P any] struct {
	inner    resource.Gateway[T, P]
	resource string
	tracer   trace.Tracer
	logger   *slog.Logger
	metrics  gatewayMetrics
}

type config struct {
	tracer trace.Tracer
	logger *slog.Logger
	meter  metric.Meter
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(c *config) {
		c.meter = m
	}
}

// New wraps a gateway for the named resource.
func New[T resource.Item, P any](inner resource.Gateway[T, P], name string, opts ...Option) *Gateway[T, P] {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.tracer == nil {
		cfg.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return &Gateway[T, P]{
		inner:    inner,
		resource: name,
		tracer:   cfg.tracer,
		logger:   cfg.logger,
		metrics:  newGatewayMetrics(cfg.meter),
	}
}

func (g *Gateway[T, P]) List(ctx context.Context) ([]T, error) {
	ctx, span := g.tracer.Start(ctx, g.spanName("List"), trace.WithAttributes(g.resourceAttr()))
	defer span.End()

	g.logInfo(ctx, "listing items")
	items, err := g.inner.List(ctx)
	if err != nil {
		g.metrics.record(ctx, g.resource, "list", false)
		return nil, g.handleError(ctx, span, err, "failed to list items")
	}
	g.metrics.record(ctx, g.resource, "list", true)
	span.SetAttributes(attribute.Int("resource.count", len(items)))
	g.logInfo(ctx, "items listed", slog.Int("count", len(items)))
	return items, nil
}

func (g *Gateway[T, P]) Create(ctx context.Context, payload P) (T, error) {
	ctx, span := g.tracer.Start(ctx, g.spanName("Create"), trace.WithAttributes(g.resourceAttr()))
	defer span.End()

	g.logInfo(ctx, "creating item")
	created, err := g.inner.Create(ctx, payload)
	if err != nil {
		g.metrics.record(ctx, g.resource, "create", false)
		var zero T
		return zero, g.handleError(ctx, span, err, "failed to create item")
	}
	g.metrics.record(ctx, g.resource, "create", true)
	span.SetAttributes(attribute.Int64("resource.id", created.Key()))
	g.logInfo(ctx, "item created", slog.Int64("id", created.Key()))
	return created, nil
}

func (g *Gateway[T, P]) Update(ctx context.Context, id int64, payload P) (T, error) {
	ctx, span := g.tracer.Start(ctx, g.spanName("Update"),
		trace.WithAttributes(g.resourceAttr(), attribute.Int64("resource.id", id)))
	defer span.End()

	g.logInfo(ctx, "updating item", slog.Int64("id", id))
	updated, err := g.inner.Update(ctx, id, payload)
	if err != nil {
		g.metrics.record(ctx, g.resource, "update", false)
		var zero T
		return zero, g.handleError(ctx, span, err, "failed to update item", slog.Int64("id", id))
	}
	g.metrics.record(ctx, g.resource, "update", true)
	g.logInfo(ctx, "item updated", slog.Int64("id", id))
	return updated, nil
}

func (g *Gateway[T, P]) Delete(ctx context.Context, id int64) error {
	ctx, span := g.tracer.Start(ctx, g.spanName("Delete"),
		trace.WithAttributes(g.resourceAttr(), attribute.Int64("resource.id", id)))
	defer span.End()

	g.logInfo(ctx, "deleting item", slog.Int64("id", id))
	if err := g.inner.Delete(ctx, id); err != nil {
		g.metrics.record(ctx, g.resource, "delete", false)
		return g.handleError(ctx, span, err, "failed to delete item", slog.Int64("id", id))
	}
	g.metrics.record(ctx, g.resource, "delete", true)
	g.logInfo(ctx, "item deleted", slog.Int64("id", id))
	return nil
}

// Trace runs an operation outside the CRUD surface (for example an order
// status change) under the same span, log and metric conventions.
func (g *Gateway[T, P]) Trace(ctx context.Context, op string, id int64, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := g.tracer.Start(ctx, g.spanName(op),
		trace.WithAttributes(g.resourceAttr(), attribute.Int64("resource.id", id)))
	defer span.End()

	result, err := fn(ctx)
	if err != nil {
		g.metrics.record(ctx, g.resource, op, false)
		var zero T
		return zero, g.handleError(ctx, span, err, "operation failed", slog.String("op", op), slog.Int64("id", id))
	}
	g.metrics.record(ctx, g.resource, op, true)
	g.logInfo(ctx, "operation completed", slog.String("op", op), slog.Int64("id", id))
	return result, nil
}

func (g *Gateway[T, P]) spanName(op string) string {
	return g.resource + "Gateway." + op
}

func (g *Gateway[T, P]) resourceAttr() attribute.KeyValue {
	return attribute.String("resource.name", g.resource)
}

func (g *Gateway[T, P]) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if g.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("resource", g.resource))
	g.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (g *Gateway[T, P]) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if g.logger == nil {
		return
	}
	attrs = append(attrs, slog.String("resource", g.resource))
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	g.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (g *Gateway[T, P]) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	g.logError(ctx, msg, err, attrs...)
	return err
}

type gatewayMetrics struct {
	requests metric.Int64Counter
	failures metric.Int64Counter
}

func newGatewayMetrics(m metric.Meter) gatewayMetrics {
	if m == nil {
		return gatewayMetrics{}
	}
	requests, _ := m.Int64Counter("coffee_admin.gateway.requests", metric.WithDescription("Number of resource requests issued"))
	failures, _ := m.Int64Counter("coffee_admin.gateway.failures", metric.WithDescription("Number of resource requests that failed"))
	return gatewayMetrics{requests: requests, failures: failures}
}

func (m gatewayMetrics) record(ctx context.Context, resourceName, op string, ok bool) {
	attrs := metric.WithAttributes(attribute.String("resource.name", resourceName), attribute.String("op", op))
	if m.requests != nil {
		m.requests.Add(ctx, 1, attrs)
	}
	if !ok && m.failures != nil {
		m.failures.Add(ctx, 1, attrs)
	}
}

var _ resource.Gateway[resource.Item, any] = (*Gateway[resource.Item, any])(nil)
