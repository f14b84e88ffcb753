package metric

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/felixge/httpsnoop"
	"go.opentelemetry.io/otel/trace"
)

// MetricsHandler observes one route: request counts into the monitor,
// response time into the log and the OTel histogram.
type MetricsHandler struct {
	Logger  lager.Logger
	Route   string
	Handler http.Handler
	Monitor *Monitor
}

func WrapHandler(
	logger lager.Logger,
	monitor *Monitor,
	route string,
	handler http.Handler,
) http.Handler {
	return MetricsHandler{
		Logger:  logger,
		Monitor: monitor,
		Route:   route,
		Handler: handler,
	}
}

func (handler MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	metrics := httpsnoop.CaptureMetrics(handler.Handler, w, r)

	var traceID string
	if sc := trace.SpanFromContext(r.Context()).SpanContext(); sc.HasTraceID() {
		traceID = sc.TraceID().String()
	}

	HTTPResponseTime{
		Route:      handler.Route,
		Path:       r.URL.Path,
		Method:     r.Method,
		StatusCode: metrics.Code,
		Duration:   metrics.Duration,
		TraceID:    traceID,
	}.Emit(r.Context(), handler.Logger, handler.Monitor)
}

// HTTPResponseTime is one handled request observation.
type HTTPResponseTime struct {
	Route      string
	Path       string
	Method     string
	StatusCode int
	Duration   time.Duration
	TraceID    string
}

const slowResponseThreshold = time.Second

// Emit records the observation on the monitor and the OTel histogram, and
// logs it (slow responses at a higher level).
func (e HTTPResponseTime) Emit(ctx context.Context, logger lager.Logger, monitor *Monitor) {
	monitor.HTTPRequests.WithLabelValues(e.Route, strconv.Itoa(e.StatusCode)).Inc()
	RecordHTTPResponseTime(ctx, e.Duration, e.Method, e.Route, e.StatusCode)

	data := lager.Data{
		"route":    e.Route,
		"path":     e.Path,
		"method":   e.Method,
		"status":   e.StatusCode,
		"duration": e.Duration.String(),
	}
	if e.TraceID != "" {
		data["trace-id"] = e.TraceID
	}

	session := logger.Session("http-response-time")
	if e.Duration > slowResponseThreshold {
		session.Info("slow", data)
	} else {
		session.Debug("ok", data)
	}
}
