package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials"
)

// Configured indicates whether a global tracer provider has been set up.
var Configured bool

var tracerProvider *sdktrace.TracerProvider

// Config holds configuration for OTel trace export.
type Config struct {
	ServiceName string            `long:"service-name" description:"service name to attach to emitted traces" default:"middlelayer"`
	OTLPAddress string            `long:"otlp-address" description:"OTLP gRPC endpoint for trace export"`
	OTLPHeaders map[string]string `long:"otlp-header"  description:"headers to attach to OTLP trace requests"`
	OTLPUseTLS  bool              `long:"otlp-use-tls" description:"use TLS for the OTLP trace connection"`
	Attributes  map[string]string `long:"attribute"    description:"resource attributes to attach to emitted traces"`

	Sampling SamplingConfig `group:"Trace Sampling"`
}

// Enabled reports whether trace export is configured at all.
func (c Config) Enabled() bool {
	return c.OTLPAddress != ""
}

// Prepare configures the global OTel tracer provider from the Config. It is
// a no-op when no export address is set; spans then cost nothing.
func (c Config) Prepare(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(c.OTLPAddress),
		otlptracegrpc.WithHeaders(c.OTLPHeaders),
	}
	if c.OTLPUseTLS {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
	} else {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	if err != nil {
		return err
	}

	attrs := []attribute.KeyValue{attribute.String("service.name", c.ServiceName)}
	for k, v := range c.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithSampler(c.Sampler()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(sdkresource.NewSchemaless(attrs...)),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	Configured = true
	return nil
}

// Shutdown flushes and stops the tracer provider, if one was configured.
func Shutdown(ctx context.Context) error {
	if tracerProvider == nil {
		return nil
	}
	return tracerProvider.Shutdown(ctx)
}

// Attrs is a set of attributes to attach to a span.
type Attrs map[string]string

// StartSpan creates a span under the given component name, recording the
// attributes on it. The returned context carries the span.
func StartSpan(ctx context.Context, component string, attrs Attrs) (context.Context, trace.Span) {
	if !Configured {
		return noop.NewTracerProvider().Tracer("").Start(ctx, component)
	}

	ctx, span := otel.Tracer("middlelayer").Start(ctx, component)
	if len(attrs) != 0 {
		kv := make([]attribute.KeyValue, 0, len(attrs))
		for k, v := range attrs {
			kv = append(kv, attribute.String(k, v))
		}
		span.SetAttributes(kv...)
	}
	return ctx, span
}

// End finishes the span, recording the error on it when one occurred.
func End(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	span.End()
}
