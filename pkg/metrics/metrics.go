package metrics

import (
	"sync/atomic"

	"github.com/penglongli/gin-metrics/ginmetrics"
	"go.uber.org/zap"
)

const (
	authRejectionsMetric = "whereisit_auth_rejections_total"
	recoveriesMetric     = "whereisit_recoveries_total"
)

var enabled atomic.Bool

func GetMonitor(path string) *ginmetrics.Monitor {
	m := ginmetrics.GetMonitor()
	// +optional set path
	m.SetMetricPath(path)
	// +optional set slow time
	m.SetSlowTime(1)

	// used to p95, p99
	m.SetDuration([]float64{0.05, 0.1, 0.2, 0.3, 0.5, 1, 2, 5})

	custom := []*ginmetrics.Metric{
		{
			Type:        ginmetrics.Counter,
			Name:        authRejectionsMetric,
			Description: "requests rejected by the session gate",
			Labels:      []string{"reason"},
		},
		{
			Type:        ginmetrics.Counter,
			Name:        recoveriesMetric,
			Description: "recovery operations by outcome",
			Labels:      []string{"outcome"},
		},
	}
	for _, metric := range custom {
		if err := m.AddMetric(metric); err != nil {
			zap.L().Debug("Metric already registered", zap.String("metric", metric.Name), zap.Error(err))
		}
	}
	enabled.Store(true)

	return m
}

// AuthRejected counts a request turned away by the session gate.
func AuthRejected(reason string) {
	inc(authRejectionsMetric, reason)
}

// RecoveryRecorded counts a recovery operation with its outcome.
func RecoveryRecorded(outcome string) {
	inc(recoveriesMetric, outcome)
}

func inc(name, label string) {
	if !enabled.Load() {
		return
	}
	if err := ginmetrics.GetMonitor().GetMetric(name).Inc([]string{label}); err != nil {
		zap.L().Debug("Metric increment failed", zap.String("metric", name), zap.Error(err))
	}
}
