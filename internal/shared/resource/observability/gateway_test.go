package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type roast struct{ ID int64 }

func (r roast) Key() int64 { return r.ID }

type stubGateway struct{ err error }

func (s stubGateway) List(context.Context) ([]roast, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []roast{{ID: 1}, {ID: 2}}, nil
}

func (s stubGateway) Create(context.Context, string) (roast, error) { return roast{ID: 3}, s.err }

func (s stubGateway) Update(_ context.Context, id int64, _ string) (roast, error) {
	return roast{ID: id}, s.err
}

func (s stubGateway) Delete(context.Context, int64) error { return s.err }

func TestGateway_RecordsSpansAndMetrics(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	gw := New[roast, string](stubGateway{}, "product",
		WithTracer(tp.Tracer("test")),
		WithMeter(mp.Meter("test")),
	)

	items, err := gw.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	_, err = gw.Create(context.Background(), "x")
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "productGateway.List", spans[0].Name())
	require.Equal(t, "productGateway.Create", spans[1].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics)
	var total int64
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name != "coffee_admin.gateway.requests" {
			continue
		}
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		for _, dp := range sum.DataPoints {
			total += dp.Value
		}
	}
	require.Equal(t, int64(2), total)
}

func TestGateway_MarksSpanOnError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	boom := errors.New("boom")

	gw := New[roast, string](stubGateway{err: boom}, "member", WithTracer(tp.Tracer("test")))
	require.ErrorIs(t, gw.Delete(context.Background(), 9), boom)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
}
