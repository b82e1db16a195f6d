// Package metrics instruments outbound API calls with Prometheus.
package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "neutronpay_api_requests_total",
			Help: "Outbound NeutronPay API requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "neutronpay_api_request_duration_seconds",
			Help:    "Outbound NeutronPay API request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(apiRequests, apiDuration)
}

// idSegment matches path segments that look like identifiers, collapsed to
// keep label cardinality bounded.
var idSegment = regexp.MustCompile(`/[0-9a-fA-F-]{8,}`)

// ObserveRequest records one outbound API call. It matches the client's
// RequestObserver signature. A zero status means the request never produced
// a response.
func ObserveRequest(method, path string, status int, duration time.Duration) {
	// Strip the query and collapse IDs so each endpoint is one series.
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = idSegment.ReplaceAllString(path, "/:id")

	apiRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	apiDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler exposes the default Prometheus registry for the HTTP mode.
func Handler() http.Handler {
	return promhttp.Handler()
}
