package httpserver

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const _meterName = "posbridge-server"

var (
	// identifiers in paths are collapsed so the endpoint label stays bounded
	uuidRegex = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

	instruments   *httpInstruments
	instrumentsMu sync.Mutex
)

type httpInstruments struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
	active   metric.Int64UpDownCounter
}

// ResetMetricsForTesting drops the registered instruments so the next
// middleware picks up the current meter provider.
func ResetMetricsForTesting() {
	instrumentsMu.Lock()
	defer instrumentsMu.Unlock()
	instruments = nil
}

func IsMetricsInitialized() bool {
	instrumentsMu.Lock()
	defer instrumentsMu.Unlock()
	return instruments != nil
}

func loadInstruments() *httpInstruments {
	instrumentsMu.Lock()
	defer instrumentsMu.Unlock()

	if instruments != nil {
		return instruments
	}

	meter := otel.GetMeterProvider().Meter(_meterName)

	duration, err := meter.Float64Histogram(
		"posbridge_server.http.request.duration.seconds",
		metric.WithDescription("Duration of HTTP requests"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20),
	)
	if err != nil {
		panic(err)
	}

	total, err := meter.Int64Counter(
		"posbridge_server.http.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		panic(err)
	}

	active, err := meter.Int64UpDownCounter(
		"posbridge_server.http.requests.active",
		metric.WithDescription("Number of HTTP requests currently being processed"),
	)
	if err != nil {
		panic(err)
	}

	instruments = &httpInstruments{
		duration: duration,
		total:    total,
		active:   active,
	}
	return instruments
}

// MetricsMiddleware records request count, latency and in-flight requests.
// Bridge calls can hold a request for the whole device timeout, hence the 20s bucket.
func MetricsMiddleware() func(http.Handler) http.Handler {
	m := loadInstruments()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			base := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.endpoint", normalizeEndpoint(r.URL.Path)),
			}

			m.active.Add(r.Context(), 1, metric.WithAttributes(base...))

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			attrs := append(base,
				attribute.Int("http.status_code", wrapped.statusCode),
				attribute.String("http.status_class", statusClass(wrapped.statusCode)),
			)
			m.duration.Record(r.Context(), time.Since(start).Seconds(), metric.WithAttributes(attrs...))
			m.total.Add(r.Context(), 1, metric.WithAttributes(attrs...))
			m.active.Add(r.Context(), -1, metric.WithAttributes(base...))
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	return rw.ResponseWriter.Write(b)
}

// Hijack keeps the websocket upgrade working behind the middleware chain.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not support hijacking")
}

func normalizeEndpoint(path string) string {
	if path == "" || path == "/" {
		return "root"
	}
	return uuidRegex.ReplaceAllLiteralString(path, "_id")
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}
