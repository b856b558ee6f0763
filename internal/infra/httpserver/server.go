package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"posbridge-server/internal/infra/node"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	OrganizationHeader = "X-Organization-ID"
	UserHeader         = "X-User-ID"

	_readHeaderTimeout = 10 * time.Second
	_shutdownTimeout   = 15 * time.Second
	_readinessTimeout  = 2 * time.Second
)

type Server interface {
	Run()
	Shutdown()
}

var _ Server = &StandardServer{}

type StandardServer struct {
	server *http.Server
}

type ServerOptions struct {
	Port           int
	AllowedOrigins []string
	// ReadinessChecks back GET /readyz, keyed by dependency name.
	ReadinessChecks map[string]ReadinessCheck
}

func (s *StandardServer) Run() {
	slog.Info("http server listening", slog.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		panic(err)
	}
}

func (s *StandardServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), _shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("http server shutdown", slog.String("error", err.Error()))
	}
}

// Handler exposes the fully decorated handler chain, mainly for httptest.
func (s *StandardServer) Handler() http.Handler {
	return s.server.Handler
}

func NewServer(opts ServerOptions, controllers ...Controller) *StandardServer {
	router := http.NewServeMux()

	if opts.Port == 0 {
		opts.Port = 3000
	}

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
			OrganizationHeader,
			UserHeader,
		},
		ExposedHeaders: []string{
			"Link",
		},
		AllowCredentials: false,
		MaxAge:           300,
	})

	tracingMiddleware := createTracingMiddleware()
	callerHeaderMiddleware := createCallerHeaderMiddleware()
	metricsMiddleware := MetricsMiddleware()

	server := &StandardServer{
		&http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			ReadHeaderTimeout: _readHeaderTimeout,
			Handler: c.Handler(
				metricsMiddleware(
					tracingMiddleware(
						callerHeaderMiddleware(router),
					),
				),
			),
		},
	}

	router.Handle("GET /healthz", getHealthz())
	router.Handle("GET /readyz", getReadyz(opts.ReadinessChecks))
	router.Handle("GET /metrics", promhttp.Handler())

	for _, controller := range controllers {
		controller.AddRoutes(router)
	}

	return server
}

func createCallerHeaderMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			span := GetSpanFromContext(r)

			if organizationID := r.Header.Get(OrganizationHeader); organizationID != "" {
				span.SetAttributes(attribute.String("organization.id", organizationID))
			}
			if userID := r.Header.Get(UserHeader); userID != "" {
				span.SetAttributes(attribute.String("user.id", userID))
			}

			next.ServeHTTP(w, r)
		})
	}
}

func createTracingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			propagator := b3.New()
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			tracer := otel.Tracer("posbridge-server")
			ctx, span := tracer.Start(ctx, "http.request",
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
					attribute.String("http.user_agent", r.UserAgent()),
					attribute.String("http.remote_addr", r.RemoteAddr),
					attribute.String("span.kind", "server"),
					attribute.String("component", "http-server"),
				),
			)
			defer span.End()

			r = r.WithContext(ctx)
			propagator.Inject(ctx, propagation.HeaderCarrier(w.Header()))

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			span.SetAttributes(attribute.Int("http.status_code", wrapped.statusCode))
		})
	}
}

func GetSpanFromContext(r *http.Request) trace.Span {
	return trace.SpanFromContext(r.Context())
}

func getHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		span := GetSpanFromContext(r)
		span.SetAttributes(attribute.String("endpoint", "healthz"))

		info := node.GetNodeInfo()
		output := map[string]any{
			"status":     "success",
			"node_id":    info.ID,
			"version":    info.Version,
			"commit":     info.CommitHash,
			"uptime_sec": int64(info.Uptime().Seconds()),
		}
		ReplyJSONResponse(w, http.StatusOK, output)
	}
}

// getReadyz answers 503 as soon as one dependency fails its check, listing
// every dependency with its state.
func getReadyz(checks map[string]ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), _readinessTimeout)
		defer cancel()

		status := http.StatusOK
		dependencies := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				slog.Warn("readiness check failed", slog.String("dependency", name), slog.String("error", err.Error()))
				dependencies[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			dependencies[name] = "ok"
		}

		ReplyJSONResponse(w, status, map[string]any{
			"ready":        status == http.StatusOK,
			"dependencies": dependencies,
		})
	}
}
