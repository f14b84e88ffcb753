// Package api is the HTTP surface of the workflow service: service listing
// and inspection, input staging, workflow execution and supervision, and
// result retrieval. It binds the catalog, the object store and the workflow
// engine together behind an access-token wall.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/tedsuo/rata"

	"github.com/gx4ki/middlelayer/wfapi/metric"
)

// Server holds the handlers for every route.
type Server struct {
	logger lager.Logger

	catalog ServiceCatalog
	store   ObjectStore
	engine  WorkflowEngine
	metrics *metric.Monitor

	clock clock.Clock

	// instantRemoval false delays cleanup after a finished workflow by
	// gracePeriod, leaving the pod around for inspection.
	instantRemoval bool
	gracePeriod    time.Duration
}

func NewServer(
	logger lager.Logger,
	catalog ServiceCatalog,
	store ObjectStore,
	engine WorkflowEngine,
	metrics *metric.Monitor,
	clk clock.Clock,
	instantRemoval bool,
	gracePeriod time.Duration,
) *Server {
	return &Server{
		logger:         logger,
		catalog:        catalog,
		store:          store,
		engine:         engine,
		metrics:        metrics,
		clock:          clk,
		instantRemoval: instantRemoval,
		gracePeriod:    gracePeriod,
	}
}

// NewHandler routes every declared route to its handler, wrapped with
// authentication and per-route metrics.
func NewHandler(
	logger lager.Logger,
	server *Server,
	monitor *metric.Monitor,
	accessToken string,
) (http.Handler, error) {
	handlers := rata.Handlers{
		ListServices:    http.HandlerFunc(server.ListServices),
		GetServiceInfo:  http.HandlerFunc(server.GetServiceInfo),
		UploadInput:     http.HandlerFunc(server.UploadInput),
		GetOutput:       http.HandlerFunc(server.GetOutput),
		ListWorkflows:   http.HandlerFunc(server.ListWorkflows),
		ExecuteWorkflow: http.HandlerFunc(server.ExecuteWorkflow),
		StopWorkflow:    http.HandlerFunc(server.StopWorkflow),
		WorkflowStatus:  http.HandlerFunc(server.WorkflowStatus),
		WorkflowResults: http.HandlerFunc(server.WorkflowResults),
		FollowLogs:      http.HandlerFunc(server.FollowLogs),
		Health:          http.HandlerFunc(server.Health),
		Metrics:         monitor.Handler(),
	}

	// auth inside metrics, so rejected requests are counted too
	handlers = NewAuthWrappa(accessToken).Wrap(handlers)
	handlers = NewMetricsWrappa(logger, monitor).Wrap(handlers)
	handlers = NewOTelHTTPWrappa().Wrap(handlers)

	return rata.NewRouter(Routes, handlers)
}

// Health reports liveness; it carries no authentication so orchestrators
// can probe it.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
