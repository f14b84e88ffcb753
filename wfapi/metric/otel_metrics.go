package metric

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

var (
	workflowDurationHistogram  otelmetric.Float64Histogram
	httpResponseTimeHistogram  otelmetric.Float64Histogram
	podStartupHistogram        otelmetric.Float64Histogram
	podsCreatedCounter         otelmetric.Float64Counter
	volumeClaimsCreatedCounter otelmetric.Float64Counter
)

// InitOTelMetrics creates OTel instruments for core middlelayer metrics.
func InitOTelMetrics() {
	meter := otel.Meter("middlelayer")

	h, err := meter.Float64Histogram(
		"middlelayer.workflow.duration",
		otelmetric.WithDescription("Duration of workflow pod execution in seconds"),
		otelmetric.WithUnit("s"),
	)
	if err == nil {
		workflowDurationHistogram = h
	}

	h, err = meter.Float64Histogram(
		"middlelayer.http.response_time",
		otelmetric.WithDescription("HTTP response time in seconds"),
		otelmetric.WithUnit("s"),
	)
	if err == nil {
		httpResponseTimeHistogram = h
	}

	h, err = meter.Float64Histogram(
		"middlelayer.k8s.pod_startup_duration",
		otelmetric.WithDescription("K8s pod startup duration in seconds"),
		otelmetric.WithUnit("s"),
	)
	if err == nil {
		podStartupHistogram = h
	}

	c, err := meter.Float64Counter(
		"middlelayer.pods.created",
		otelmetric.WithDescription("Number of worker pods created"),
	)
	if err == nil {
		podsCreatedCounter = c
	}

	c, err = meter.Float64Counter(
		"middlelayer.volume_claims.created",
		otelmetric.WithDescription("Number of job volume claims created"),
	)
	if err == nil {
		volumeClaimsCreatedCounter = c
	}
}

// RecordWorkflowDuration records a workflow pod execution duration as an OTel histogram observation.
func RecordWorkflowDuration(ctx context.Context, duration time.Duration, service, outcome string) {
	if workflowDurationHistogram == nil {
		return
	}
	workflowDurationHistogram.Record(ctx, duration.Seconds(),
		otelmetric.WithAttributes(
			attribute.String("workflow.service", service),
			attribute.String("workflow.outcome", outcome),
		),
	)
}

// RecordHTTPResponseTime records an HTTP response time as an OTel histogram observation.
func RecordHTTPResponseTime(ctx context.Context, duration time.Duration, method, route string, statusCode int) {
	if httpResponseTimeHistogram == nil {
		return
	}
	httpResponseTimeHistogram.Record(ctx, duration.Seconds(),
		otelmetric.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", statusCode),
		),
	)
}

// RecordPodStartupDuration records the time from pod creation to a running
// worker container as an OTel histogram observation.
func RecordPodStartupDuration(ctx context.Context, duration time.Duration) {
	if podStartupHistogram == nil {
		return
	}
	podStartupHistogram.Record(ctx, duration.Seconds())
}

// RecordPodsCreated records the number of worker pods created as an OTel counter.
func RecordPodsCreated(ctx context.Context, count float64) {
	if podsCreatedCounter == nil {
		return
	}
	podsCreatedCounter.Add(ctx, count)
}

// RecordVolumeClaimsCreated records the number of job volume claims created as an OTel counter.
func RecordVolumeClaimsCreated(ctx context.Context, count float64) {
	if volumeClaimsCreatedCounter == nil {
		return
	}
	volumeClaimsCreatedCounter.Add(ctx, count)
}
