// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// サービス層のカウンタとHTTPレイヤの計測の両方を担う。
type Collector struct {
	tasksCreated         prometheus.Counter
	notificationsCreated prometheus.Counter
	httpStatus           *prometheus.CounterVec
	requestLatency       prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		tasksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deadlinebuddy_tasks_created_total",
			Help: "作成されたタスクの合計数",
		}),
		notificationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deadlinebuddy_notifications_created_total",
			Help: "作成された通知の合計数（自動生成を含む）",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deadlinebuddy_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "deadlinebuddy_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.tasksCreated,
		c.notificationsCreated,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordTaskCreated はタスク作成を記録する。
func (c *Collector) RecordTaskCreated() {
	c.tasksCreated.Inc()
}

// RecordNotificationCreated は通知作成を記録する。
func (c *Collector) RecordNotificationCreated() {
	c.notificationsCreated.Inc()
}

// RecordHTTPStatus はレスポンスのステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// NewHandler はPrometheusメトリクス公開用のHTTPハンドラーを返す。
// GET /metrics
func NewHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
