package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const metricsTable = "test-metrics"

func setupMetrics(t *testing.T) *MetricService {
	t.Helper()
	tt := newTestTables(t, metricsTable)
	tt.seed(t, metricsTable,
		map[string]any{"id": 1, "name": "Drawing Parsing Accuracy", "current": 99.1, "target": 80, "unit": "%", "notes": "symbol pipeline"},
		map[string]any{"id": 2, "name": "Time-Reduction", "current": 12, "target": 25, "unit": "%"},
		map[string]any{"id": 3, "current": 1},
	)
	return NewMetricService(tt.adapter(metricsTable))
}

func TestMetricKey(t *testing.T) {
	testCases := []struct {
		name string
		id   int64
		want string
	}{
		{"Drawing Parsing Accuracy", 1, "drawingParsingAccuracy"},
		{"Time-Reduction", 2, "timeReduction"},
		{"estimator satisfaction", 3, "estimatorsatisfaction"},
		{"", 7, "7"},
		{" - ", 8, "8"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, MetricKey(tc.name, tc.id))
		})
	}
}

func TestMetricService_Summaries(t *testing.T) {
	svc := setupMetrics(t)

	summaries, err := svc.Summaries(context.Background())

	require.NoError(t, err)
	require.Len(t, summaries, 3)

	accuracy := summaries["drawingParsingAccuracy"]
	assert.Equal(t, int64(1), accuracy.ID)
	assert.Equal(t, 99.1, accuracy.Current)
	assert.Equal(t, float64(80), accuracy.Target)
	assert.Equal(t, "%", accuracy.Unit)
	assert.Equal(t, "symbol pipeline", accuracy.Description)
	assert.Nil(t, accuracy.UpdatedAt)

	assert.Equal(t, float64(12), summaries["timeReduction"].Current)
	assert.Contains(t, summaries, "3")
}

func TestMetricService_RecordValue(t *testing.T) {
	svc := setupMetrics(t)
	ctx := context.Background()

	updated, err := svc.RecordValue(ctx, 1, 99.4, "")
	require.NoError(t, err)
	assert.Equal(t, 99.4, updated["current"])
	assert.Equal(t, "symbol pipeline", updated["notes"])

	updated, err = svc.RecordValue(ctx, 1, 100, "perfect run")
	require.NoError(t, err)
	assert.Equal(t, int64(100), updated["current"])
	assert.Equal(t, "perfect run", updated["notes"])

	summaries, err := svc.Summaries(ctx)
	require.NoError(t, err)
	require.NotNil(t, summaries["drawingParsingAccuracy"].UpdatedAt)
}

func TestMetricService_RecordValue_NotFound(t *testing.T) {
	svc := setupMetrics(t)

	_, err := svc.RecordValue(context.Background(), 42, 1, "")

	assert.ErrorIs(t, err, ErrNotFound)
}
