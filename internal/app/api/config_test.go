package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "UPLOADS_DIR", "UPLOADS_S3_BUCKET", "SEED", "LOG_LEVEL", "OTEL_TRACES_EXPORTER"} {
		t.Setenv(key, "")
	}
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.True(t, cfg.Seed)
	require.Equal(t, "none", cfg.Exporter)
	require.Empty(t, cfg.UploadsDir)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SEED", "no")
	t.Setenv("UPLOADS_DIR", "/tmp/uploads")
	t.Setenv("UPLOADS_S3_PATH_STYLE", "yes")
	t.Setenv("OTEL_TRACES_EXPORTER", "stdout")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.False(t, cfg.Seed)
	require.Equal(t, "/tmp/uploads", cfg.UploadsDir)
	require.True(t, cfg.S3PathStyle)
	require.Equal(t, "stdout", cfg.Exporter)
}

func TestLoadConfig_Rejects(t *testing.T) {
	t.Setenv("PORT", ":80")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("PORT", "80")
	t.Setenv("OTEL_TRACES_EXPORTER", "zipkin")
	_, err = LoadConfig()
	require.Error(t, err)
}
