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
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// 进度写入，result: ok / conflict / error
	ProgressWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingua_progress_writes_total",
			Help: "Progress write attempts by operation and result",
		},
		[]string{"operation", "result"},
	)

	ExamSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingua_exam_submissions_total",
			Help: "Exam submissions by result",
		},
		[]string{"result"},
	)

	StatusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingua_status_transitions_total",
			Help: "Progress status transitions",
		},
		[]string{"from", "to"},
	)

	// 记录是通过哪一级匹配找到的，legacy 级别应随时间趋近于 0
	ResolverMatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingua_resolver_matches_total",
			Help: "Progress lookups by matching tier",
		},
		[]string{"tier"},
	)

	CourseCacheResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingua_course_cache_total",
			Help: "Course directory cache lookups",
		},
		[]string{"result"},
	)

	RecordsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lingua_progress_records",
			Help: "Progress records by status",
		},
		[]string{"status"},
	)

	OverviewGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lingua_overview",
			Help: "Dashboard overview figures, refreshed periodically",
		},
		[]string{"metric"},
	)

	OrphanRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lingua_orphan_progress_records",
			Help: "Progress records whose course no longer exists",
		},
	)
)

var initOnce sync.Once

// Init 可重复调用，测试里多次构建 App 不会重复注册
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			ProgressWrites,
			ExamSubmissions,
			StatusTransitions,
			ResolverMatches,
			CourseCacheResults,
			RecordsByStatus,
			OverviewGauge,
			OrphanRecords,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
