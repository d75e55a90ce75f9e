package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshal(t *testing.T) {
	var s struct {
		Interval Duration `json:"interval"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"interval":"30s"}`), &s))
	require.Equal(t, 30*time.Second, s.Interval.Duration)

	require.NoError(t, json.Unmarshal([]byte(`{"interval":5000000000}`), &s))
	require.Equal(t, 5*time.Second, s.Interval.Duration)

	require.Error(t, json.Unmarshal([]byte(`{"interval":"not-a-duration"}`), &s))
	require.Error(t, json.Unmarshal([]byte(`{"interval":true}`), &s))
}

func TestDurationMarshal(t *testing.T) {
	b, err := json.Marshal(Duration{90 * time.Second})
	require.NoError(t, err)
	require.JSONEq(t, `"1m30s"`, string(b))
}
