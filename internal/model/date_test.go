package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var payload struct {
		When Date `json:"when"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"when":"2025-09-30"}`), &payload))
	assert.Equal(t, 2025, payload.When.Year())
	assert.Equal(t, time.September, payload.When.Month())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"2025-09-30"}`, string(out))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-01-02"))
	assert.Equal(t, "2024-01-02", d.String())

	require.NoError(t, d.Scan(time.Date(2024, 5, 6, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-06", d.String())

	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("not-a-date"))
}
