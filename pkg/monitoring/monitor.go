package monitoring

import (
	"strconv"
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

	AssessmentsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_started_total",
			Help: "Assessments moved to InProgress, by entry point",
		},
		[]string{"source"},
	)

	AnswersRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_answers_recorded_total",
			Help: "Answers upserted, by question type and verdict",
		},
		[]string{"type", "verdict"},
	)

	AssessmentsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessments_submitted_total",
			Help: "Assessments completed, by timeliness and trigger",
		},
		[]string{"timeliness", "trigger"},
	)

	ScorePercentage = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_score_percentage",
			Help:    "Final percentage of completed assessments",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	SweepSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_deadline_sweep_total",
			Help: "Expired assessments handled by the deadline sweep, by outcome",
		},
		[]string{"outcome"},
	)
)

func Init() {
	prometheus.MustRegister(
		RequestCounter,
		RequestDuration,
		AssessmentsStarted,
		AnswersRecorded,
		AssessmentsSubmitted,
		ScorePercentage,
		SweepSubmitted,
	)
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
