package localtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnmarshal_AcceptsBackendLayouts(t *testing.T) {
	var payload struct {
		A Time `json:"a"`
		B Time `json:"b"`
		C Time `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a":"2024-06-12T10:00:00Z","b":"2024-06-12T10:00:00.123456","c":null}`), &payload)
	require.NoError(t, err)

	require.Equal(t, time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC), payload.A.Time)
	require.Equal(t, 123456000, payload.B.Nanosecond())
	require.True(t, payload.C.IsZero())
	require.Equal(t, "-", payload.C.Format("2006-01-02"))
}

func TestUnmarshal_RejectsGarbage(t *testing.T) {
	var ts Time
	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	require.Error(t, json.Unmarshal([]byte(`12`), &ts))
}
