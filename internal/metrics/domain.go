package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cvbuilder"

var (
	photoUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "photo",
			Name:      "uploads_total",
			Help:      "头像上传处理次数，按结果区分。",
		},
		[]string{"outcome"},
	)

	photoCropsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "photo",
			Name:      "crops_total",
			Help:      "裁剪区域计算次数，按策略区分（face / center）。",
		},
		[]string{"strategy"},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "exports_total",
			Help:      "PDF 导出次数，按模式与结果区分。",
		},
		[]string{"mode", "outcome"},
	)

	exportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "PDF 导出耗时分布（秒）。",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 90},
		},
		[]string{"mode"},
	)
)

// ObservePhotoUpload 记录一次上传的结果（accepted / rejected / superseded / failed）。
func ObservePhotoUpload(outcome string) {
	photoUploadsTotal.WithLabelValues(outcome).Inc()
}

// ObserveCrop 记录裁剪策略。
func ObserveCrop(strategy string) {
	photoCropsTotal.WithLabelValues(strategy).Inc()
}

// ObserveExport 记录一次导出（mode: sync / async）。
func ObserveExport(mode, outcome string, seconds float64) {
	exportsTotal.WithLabelValues(mode, outcome).Inc()
	exportDuration.WithLabelValues(mode).Observe(seconds)
}
