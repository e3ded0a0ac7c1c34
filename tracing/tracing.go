package tracing

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/viant/taskflow"

var (
	mu       sync.Mutex
	provider *sdktrace.TracerProvider
	output   *os.File
)

// Init configures OpenTelemetry with the stdout exporter writing to
// outputFile, or os.Stdout when outputFile is empty. Init is a no-op while a
// provider is installed; call Shutdown to allow another initialisation.
func Init(serviceName, serviceVersion, outputFile string) error {
	mu.Lock()
	defer mu.Unlock()
	if provider != nil {
		return nil
	}
	var w io.Writer = os.Stdout
	var f *os.File
	if outputFile != "" {
		var err error
		if f, err = os.Create(outputFile); err != nil {
			return err
		}
		w = f
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err == nil {
		err = install(serviceName, serviceVersion, exporter)
	}
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return err
	}
	output = f
	return nil
}

// initWithExporter installs a provider around a caller supplied exporter.
func initWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	mu.Lock()
	defer mu.Unlock()
	if provider != nil || exporter == nil {
		return nil
	}
	return install(serviceName, serviceVersion, exporter)
}

// install must be called with mu held.
func install(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return err
	}
	provider = sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return nil
}

// Shutdown flushes and stops the installed provider and closes its output
// file. Spans started afterwards are no-ops until the next Init.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	otel.SetTracerProvider(noop.NewTracerProvider())
	provider = nil
	if output != nil {
		if cErr := output.Close(); cErr != nil && err == nil {
			err = cErr
		}
		output = nil
	}
	return err
}

// Span wraps an OpenTelemetry span.
type Span struct {
	span trace.Span
}

// WithAttributes attaches string attributes to the span.
func (s *Span) WithAttributes(attrs map[string]string) *Span {
	if s == nil || len(attrs) == 0 {
		return s
	}
	otelAttrs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		otelAttrs = append(otelAttrs, attribute.String(k, v))
	}
	s.span.SetAttributes(otelAttrs...)
	return s
}

// AddEvent records a named point in time on the span.
func (s *Span) AddEvent(name string, attrs map[string]string) {
	if s == nil {
		return
	}
	otelAttrs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		otelAttrs = append(otelAttrs, attribute.String(k, v))
	}
	s.span.AddEvent(name, trace.WithAttributes(otelAttrs...))
}

// StartSpan starts an internal span named name as a child of any span in ctx.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// EndSpan records err (or OK) and ends the span.
func EndSpan(s *Span, err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
