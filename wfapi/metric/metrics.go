package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor bundles the service's counters. One Monitor exists per process;
// tests build their own against a private registry.
type Monitor struct {
	registry *prometheus.Registry

	// WorkflowsSubmitted counts committed workflows (pods created).
	WorkflowsSubmitted prometheus.Counter

	// WorkflowsFinished counts workflows that reached FINISHED.
	WorkflowsFinished prometheus.Counter

	// WorkflowsCanceled counts workflows that reached CANCELED.
	WorkflowsCanceled prometheus.Counter

	// ImagePullFailures counts worker containers stuck on image pulls.
	ImagePullFailures prometheus.Counter

	// StoreRejections counts side-car POSTs answered with a 4xx/5xx status.
	StoreRejections prometheus.Counter

	// InputUploads counts accepted input-file uploads.
	InputUploads prometheus.Counter

	// HTTPRequests counts handled requests by route and status code.
	HTTPRequests *prometheus.CounterVec
}

// NewMonitor creates a Monitor with all counters registered on a fresh
// registry.
func NewMonitor() *Monitor {
	registry := prometheus.NewRegistry()

	m := &Monitor{
		registry: registry,
		WorkflowsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "middlelayer_workflows_submitted_total",
			Help: "Workflows committed to the cluster.",
		}),
		WorkflowsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "middlelayer_workflows_finished_total",
			Help: "Workflows that reached the FINISHED phase.",
		}),
		WorkflowsCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "middlelayer_workflows_canceled_total",
			Help: "Workflows that reached the CANCELED phase.",
		}),
		ImagePullFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "middlelayer_image_pull_failures_total",
			Help: "Worker containers stuck in a terminal image-pull state.",
		}),
		StoreRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "middlelayer_store_rejections_total",
			Help: "Side-car store instructions answered with an error status.",
		}),
		InputUploads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "middlelayer_input_uploads_total",
			Help: "Accepted input-file uploads.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "middlelayer_http_requests_total",
			Help: "Handled HTTP requests.",
		}, []string{"route", "code"}),
	}

	registry.MustRegister(
		m.WorkflowsSubmitted,
		m.WorkflowsFinished,
		m.WorkflowsCanceled,
		m.ImagePullFailures,
		m.StoreRejections,
		m.InputUploads,
		m.HTTPRequests,
	)

	return m
}

// Handler serves the monitor's registry in the Prometheus text format.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
