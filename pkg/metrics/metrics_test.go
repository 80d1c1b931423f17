package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpers_NoopBeforeInit(t *testing.T) {
	// 未注册的指标变量为nil，便捷函数不能panic
	var counter prometheus.Counter
	var vec *prometheus.CounterVec

	assert.NotPanics(t, func() {
		IncCounter(counter)
		IncCounterVec(vec, map[string]string{"result": "hit"})
		ObserveHistogram(nil, 1)
	})
}

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	// 重复调用不会重复注册（promauto重复注册会panic）
	assert.NotPanics(t, InitMetrics)

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, BooksCreatedTotal)
	assert.NotNil(t, OrdersPlacedTotal)
	assert.NotNil(t, CircuitBreakerState)
	assert.NotNil(t, MessagesPublishedTotal)
}

func TestCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, OrdersCancelledTotal)
	IncCounter(OrdersCancelledTotal)
	IncCounter(OrdersCancelledTotal)

	assert.Equal(t, before+2, getCounterValue(t, OrdersCancelledTotal))
}

func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "GET", "path": "/api/v1/books", "status": "200"}
	before := getCounterVecValue(t, HTTPRequestsTotal, labels)

	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, map[string]string{"method": "POST", "path": "/api/v1/books", "status": "201"})

	assert.Equal(t, before+2, getCounterVecValue(t, HTTPRequestsTotal, labels))
}

func TestGauge(t *testing.T) {
	InitMetrics()

	before := getGaugeValue(t, HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)

	assert.Equal(t, before+1, getGaugeValue(t, HTTPRequestsInProgress))
}

func TestSetBreakerState(t *testing.T) {
	InitMetrics()

	SetBreakerState("book-cache", 1)
	assert.Equal(t, float64(1), getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "book-cache"}))

	SetBreakerState("book-cache", 0)
	assert.Equal(t, float64(0), getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "book-cache"}))
}

func TestHistogram(t *testing.T) {
	InitMetrics()

	before := getHistogramCount(t, OrderPlacementDuration)
	ObserveHistogram(OrderPlacementDuration, 0.02)
	ObserveHistogram(OrderPlacementDuration, 0.2)

	assert.Equal(t, before+2, getHistogramCount(t, OrderPlacementDuration))
}

// =========================================
// 辅助函数
// =========================================

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	return metric.GetCounter().GetValue()
}

func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	require.NoError(t, counterVec.With(labels).Write(&metric))
	return metric.GetCounter().GetValue()
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	require.NoError(t, gauge.Write(&metric))
	return metric.GetGauge().GetValue()
}

func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	var metric dto.Metric
	require.NoError(t, gaugeVec.With(labels).Write(&metric))
	return metric.GetGauge().GetValue()
}

func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	require.NoError(t, histogram.Write(&metric))
	return metric.GetHistogram().GetSampleCount()
}
