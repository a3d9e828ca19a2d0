package obs

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outbound HTTP client metrics.
var (
	clientInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "uniportal_client_in_flight_requests",
		Help: "In-flight outbound HTTP requests.",
	})

	clientRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniportal_client_requests_total",
			Help: "Total number of outbound HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	clientRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "uniportal_client_request_duration_seconds",
			Help:    "Outbound HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	tokenRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniportal_client_token_refresh_total",
			Help: "Token refresh attempts by result.",
		},
		[]string{"result"},
	)
)

var initOnce sync.Once

// Init registers client metrics in the default registry.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(clientInFlight, clientRequestsTotal, clientRequestDuration, tokenRefreshTotal)
	})
}

// ObserveRequest records one completed outbound request. A status of 0 means
// the request never produced a response (network or timeout failure).
func ObserveRequest(method, path string, status int, started time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	canonical := CanonicalPath(path)
	clientRequestDuration.WithLabelValues(method, canonical, label).Observe(time.Since(started).Seconds())
	clientRequestsTotal.WithLabelValues(method, canonical, label).Inc()
}

// IncInFlight and DecInFlight track requests currently on the wire.
func IncInFlight() { clientInFlight.Inc() }

func DecInFlight() { clientInFlight.Dec() }

// ObserveRefresh records the outcome of a token refresh attempt.
func ObserveRefresh(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	tokenRefreshTotal.WithLabelValues(result).Inc()
}

// CanonicalPath collapses resource identifiers so metric label cardinality
// stays bounded. Only known collection routes are rewritten; everything else
// passes through minus the query string.
func CanonicalPath(path string) string {
	if path == "" {
		return "/"
	}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i := 0; i < len(parts)-1; i++ {
		if isCollection(parts[i]) && parts[i+1] != "" && !isStatic(parts[i+1]) {
			parts[i+1] = ":id"
			break
		}
	}
	return "/" + strings.Join(parts, "/")
}

func isCollection(segment string) bool {
	switch segment {
	case "news", "faculties", "startups", "programs", "projects", "events", "file", "page":
		return true
	}
	return false
}

// isStatic lists fixed sub-routes that follow a collection segment and must
// not be mistaken for identifiers.
func isStatic(segment string) bool {
	switch segment {
	case "latest", "featured", "categories", "departments", "stats", "files", "faculties", "upload-image":
		return true
	}
	return false
}
