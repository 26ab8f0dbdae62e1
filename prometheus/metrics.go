package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lifehub_auth_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Registration counters
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lifehub_auth_register_total",
			Help: "Total number of user registrations",
		},
	)

	// Auth operation counter
	AuthOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifehub_auth_operations_total",
			Help: "Total number of authentication operations",
		},
		[]string{"operation"}, // operation can be "refresh", "profile_access", "password_change", etc.
	)

	// OAuth operation counter by provider
	OAuthOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifehub_oauth_operations_total",
			Help: "Total number of OAuth operations by provider",
		},
		[]string{"provider", "operation"}, // operation can be "redirect", "callback", "exchange_failed", etc.
	)

	// Document view operation counter by module
	ViewOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifehub_view_operations_total",
			Help: "Total number of document view operations by module",
		},
		[]string{"module", "operation"}, // operation can be "resolve", "create_view", "delete_view", etc.
	)

	// Property operation counter by module
	PropertyOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifehub_property_operations_total",
			Help: "Total number of property operations by module",
		},
		[]string{"module", "operation"}, // operation can be "add", "update", "delete"
	)

	// Record operation counter by module
	RecordOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifehub_record_operations_total",
			Help: "Total number of record operations by module",
		},
		[]string{"module", "operation"}, // operation can be "list", "create", "update", "delete"
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifehub_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifehub_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "login_failure", "invalid_token", "db_error" etc.
	)

	// Module-specific error counter
	ModuleErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifehub_module_errors_total",
			Help: "Total number of module errors",
		},
		[]string{"module", "error_type"}, // Track errors by module
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lifehub_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lifehub_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)

	// Stats report duration
	StatsReportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lifehub_stats_report_duration_seconds",
			Help:    "Duration of stats report computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"}, // report can be "dashboard", "habit_streaks", "mood_trend", "content_pipeline"
	)
)

// Gauge metrics
var (
	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lifehub_info",
			Help: "Information about the lifehub service",
		},
		[]string{"service", "version"},
	)

	// Registered modules
	RegisteredModulesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lifehub_registered_modules",
			Help: "Number of registered module configurations",
		},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(AuthOperationCounter)
	prometheus.MustRegister(OAuthOperationCounter)
	prometheus.MustRegister(ViewOperationCounter)
	prometheus.MustRegister(PropertyOperationCounter)
	prometheus.MustRegister(RecordOperationCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(ModuleErrorCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)
	prometheus.MustRegister(StatsReportDuration)

	// Register gauges
	prometheus.MustRegister(InfoGauge)
	prometheus.MustRegister(RegisteredModulesGauge)
}

// SetServiceInfo sets the service info gauge
func SetServiceInfo(service, version string) {
	InfoGauge.With(prometheus.Labels{"service": service, "version": version}).Set(1)
}

// SetRegisteredModules records how many module configurations are registered
func SetRegisteredModules(count int) {
	RegisteredModulesGauge.Set(float64(count))
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// TrackStatsReport measures stats report durations
func TrackStatsReport(report string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		StatsReportDuration.With(prometheus.Labels{
			"report": report,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			// Record metrics
			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordModuleError records a module-scoped error
func RecordModuleError(module, errorType string) {
	ModuleErrorCounter.With(prometheus.Labels{
		"module":     module,
		"error_type": errorType,
	}).Inc()
}

// RecordAuthOperation records an authentication operation
func RecordAuthOperation(operation string) {
	AuthOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordOAuthOperation records an OAuth operation for a provider
func RecordOAuthOperation(provider, operation string) {
	OAuthOperationCounter.With(prometheus.Labels{
		"provider":  provider,
		"operation": operation,
	}).Inc()
}

// RecordViewOperation records a document view operation for a module
func RecordViewOperation(module, operation string) {
	ViewOperationCounter.With(prometheus.Labels{
		"module":    module,
		"operation": operation,
	}).Inc()
}

// RecordPropertyOperation records a property operation for a module
func RecordPropertyOperation(module, operation string) {
	PropertyOperationCounter.With(prometheus.Labels{
		"module":    module,
		"operation": operation,
	}).Inc()
}

// RecordRecordOperation records a data record operation for a module
func RecordRecordOperation(module, operation string) {
	RecordOperationCounter.With(prometheus.Labels{
		"module":    module,
		"operation": operation,
	}).Inc()
}
