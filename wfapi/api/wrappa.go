package api

import (
	"net/http"

	"code.cloudfoundry.org/lager/v3"
	"github.com/tedsuo/rata"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gx4ki/middlelayer/wfapi/metric"
)

// Wrappa modifies a full set of route handlers before they reach the router.
type Wrappa interface {
	Wrap(rata.Handlers) rata.Handlers
}

// MetricsWrappa observes every route: request counts per route and status
// code, response times into the log and the duration histogram.
type MetricsWrappa struct {
	Logger  lager.Logger
	Monitor *metric.Monitor
}

func NewMetricsWrappa(logger lager.Logger, monitor *metric.Monitor) Wrappa {
	return MetricsWrappa{
		Logger:  logger,
		Monitor: monitor,
	}
}

func (w MetricsWrappa) Wrap(handlers rata.Handlers) rata.Handlers {
	wrapped := rata.Handlers{}

	for name, handler := range handlers {
		wrapped[name] = metric.WrapHandler(w.Logger, w.Monitor, name, handler)
	}

	return wrapped
}

// OTelHTTPWrappa traces every route, naming the span after the route.
type OTelHTTPWrappa struct{}

func NewOTelHTTPWrappa() Wrappa {
	return OTelHTTPWrappa{}
}

func (w OTelHTTPWrappa) Wrap(handlers rata.Handlers) rata.Handlers {
	wrapped := rata.Handlers{}

	for name, handler := range handlers {
		wrapped[name] = otelhttp.NewHandler(handler, name)
	}

	return wrapped
}

// AuthWrappa guards every route with the deployment's access token. The
// health and metrics endpoints stay open.
type AuthWrappa struct {
	AccessToken string
}

func NewAuthWrappa(accessToken string) Wrappa {
	return AuthWrappa{AccessToken: accessToken}
}

func (w AuthWrappa) Wrap(handlers rata.Handlers) rata.Handlers {
	wrapped := rata.Handlers{}

	for name, handler := range handlers {
		switch name {
		case Health, Metrics:
			wrapped[name] = handler
		default:
			wrapped[name] = accessTokenHandler{
				accessToken: w.AccessToken,
				handler:     handler,
			}
		}
	}

	return wrapped
}

type accessTokenHandler struct {
	accessToken string
	handler     http.Handler
}

func (h accessTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("access-token") != h.accessToken {
		writeError(w, http.StatusForbidden, "Could not validate API KEY")
		return
	}

	h.handler.ServeHTTP(w, r)
}
