package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInit_LogsToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	inst, shutdown, err := Init(context.Background(), Config{
		ServiceName: "coffee-admin-test",
		LogLevel:    "debug",
		LogOutput:   &buf,
		Exporter:    ExporterNone,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	inst.Logger.Debug("hello", slog.String("resource", "product"))
	require.Contains(t, buf.String(), `"msg":"hello"`)
	require.Contains(t, buf.String(), `"resource":"product"`)

	require.NotNil(t, inst.Tracer("t"))
	require.NotNil(t, inst.Meter("m"))
	require.NotNil(t, inst.Reader)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNilInstrumentsFallBack(t *testing.T) {
	var inst *Instruments
	require.NotNil(t, inst.Tracer("x"))
	require.NotNil(t, inst.Meter("x"))
}
