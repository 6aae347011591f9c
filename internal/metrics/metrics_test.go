package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPrediction(t *testing.T) {
	m := New()
	m.RecordPrediction(1, 14)
	m.RecordPrediction(1, 3)
	m.RecordPrediction(0, -2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.predictions.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.predictions.WithLabelValues("0")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.heartAgeGap))
}

func TestRecordErrorAndChat(t *testing.T) {
	m := New()
	m.RecordError("/predict", "INPUT_001")
	m.RecordChat("medical")
	m.RecordChat("medical")
	m.RecordReport()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestErrors.WithLabelValues("/predict", "INPUT_001")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.chatReplies.WithLabelValues("medical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reports))
}

func TestModelLoadedGauge(t *testing.T) {
	m := New()
	m.SetModelLoaded(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.modelLoaded))
	m.SetModelLoaded(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.modelLoaded))
}

func TestRegistryGathers(t *testing.T) {
	m := New()
	m.RecordReport()
	families, err := m.Registry().Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}
