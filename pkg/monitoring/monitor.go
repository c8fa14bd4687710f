package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// StatsComputed 统计计算次数，kind 为 dashboard 或 progress，source 为 database 或 fixture
	StatsComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_stats_computed_total",
			Help: "Number of dashboard/progress statistics computations",
		},
		[]string{"kind", "source"},
	)

	// DatastoreUp 定时探测结果，1 为可用
	DatastoreUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "datastore_up",
			Help: "Whether the backing data store answered the last liveness probe",
		},
		[]string{"store"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(StatsComputed)
		prometheus.MustRegister(DatastoreUp)
	})
}

func ObserveStats(kind string, configured bool) {
	source := "fixture"
	if configured {
		source = "database"
	}
	StatsComputed.WithLabelValues(kind, source).Inc()
}

func SetDatastoreUp(store string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	DatastoreUp.WithLabelValues(store).Set(v)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			// 未匹配路由统一归类
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
