package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedRoute 聚合所有未命中路由的请求，防止扫描器把 path 标签撑爆。
const unmatchedRoute = "unmatched"

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP 请求耗时分布（秒），按路由模板统计。",
			// 同步导出会在请求内跑完整个 Chromium 流程
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 90},
		},
		[]string{"method", "route", "code"},
	)

	requestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "当前正在处理的 HTTP 请求数量。",
		},
	)

	uploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_body_bytes",
			Help:      "带请求体的请求大小分布（字节）。",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		},
	)
)

// GinMiddleware 采集路由级 HTTP 指标。
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		if n := c.Request.ContentLength; n > 0 {
			uploadBytes.Observe(float64(n))
		}

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		requestDuration.
			WithLabelValues(c.Request.Method, route, statusClass(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// statusClass 把状态码折叠成 2xx/4xx/5xx，429 和 409 单独保留以便告警。
func statusClass(status int) string {
	switch status {
	case 409, 429:
		return strconv.Itoa(status)
	}
	return strconv.Itoa(status/100) + "xx"
}
