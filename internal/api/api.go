package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/bugsnag/bugsnag-go/v2"
	"github.com/gofrs/uuid"
	"github.com/gorilla/mux"
	"github.com/valyala/fastjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/christianselig/contact-relay/internal/config"
	"github.com/christianselig/contact-relay/internal/mail"
)

const requestIDHeader = "X-Request-Id"

type api struct {
	logger *zap.Logger
	statsd statsd.ClientInterface
	sender mail.Sender
	pool   *fastjson.ParserPool

	operator string
	provider string
	origins  config.OriginAllowlist
}

func NewAPI(cfg config.Config, logger *zap.Logger, statsd statsd.ClientInterface, sender mail.Sender) *api {
	return &api{
		logger: logger,
		statsd: statsd,
		sender: sender,
		pool:   &fastjson.ParserPool{},

		operator: cfg.Mail.Operator,
		provider: cfg.Mail.Provider,
		origins:  cfg.Origins,
	}
}

func (a *api) Server(port int) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           bugsnag.Handler(otelhttp.NewHandler(a.Handler(), "contact-relay")),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Handler is the full middleware chain. The origin check sits in front of the
// router so it also covers preflights and unmatched paths.
func (a *api) Handler() http.Handler {
	return a.requestIDMiddleware(a.loggingMiddleware(a.corsMiddleware(a.Routes())))
}

func (a *api) Routes() *mux.Router {
	r := mux.NewRouter()

	r.NotFoundHandler = http.HandlerFunc(a.notFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(a.methodNotAllowedHandler)

	// Frontends deployed against the original service still call /api/*.
	for _, prefix := range []string{"", "/api"} {
		r.HandleFunc(prefix+"/health", a.healthCheckHandler).Methods("GET", "HEAD")
		r.HandleFunc(prefix+"/contact", a.contactHandler).Methods("POST")
	}

	return r
}

type requestIDKey struct{}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (a *api) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The Heroku router already assigns one.
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.Must(uuid.NewV4()).String()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type LoggingResponseWriter struct {
	w          http.ResponseWriter
	statusCode int
	bytes      int
}

func (lrw *LoggingResponseWriter) Header() http.Header {
	return lrw.w.Header()
}

func (lrw *LoggingResponseWriter) Write(bb []byte) (int, error) {
	if lrw.statusCode == 0 {
		lrw.statusCode = http.StatusOK
	}
	wb, err := lrw.w.Write(bb)
	lrw.bytes += wb
	return wb, err
}

func (lrw *LoggingResponseWriter) WriteHeader(statusCode int) {
	lrw.w.WriteHeader(statusCode)
	lrw.statusCode = statusCode
}

func (a *api) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip logging health checks
		if strings.HasSuffix(r.URL.Path, "/health") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		lrw := &LoggingResponseWriter{w: w}
		next.ServeHTTP(lrw, r)

		remoteAddr := r.Header.Get("X-Forwarded-For")
		if remoteAddr == "" {
			if ip, _, err := net.SplitHostPort(r.RemoteAddr); err != nil {
				remoteAddr = "unknown"
			} else {
				remoteAddr = ip
			}
		}

		fields := []zap.Field{
			zap.Int64("duration", time.Since(start).Milliseconds()),
			zap.String("method", r.Method),
			zap.String("remote#addr", remoteAddr),
			zap.Int("response#bytes", lrw.bytes),
			zap.Int("status", lrw.statusCode),
			zap.String("uri", r.RequestURI),
			zap.String("request#id", requestID(r.Context())),
		}

		if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
			fields = append(fields, zap.String("trace#id", sc.TraceID().String()))
		}

		switch {
		case lrw.statusCode < 400:
			a.logger.Info("request", fields...)
		case lrw.statusCode < 500:
			a.logger.Warn(lrw.Header().Get(errorHeader), fields...)
		default:
			a.logger.Error(lrw.Header().Get(errorHeader), fields...)
		}
	})
}
