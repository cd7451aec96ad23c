package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
)

const instrumentationName = "github.com/jc-juarez/lazarus-statusgen"

var propagator = propagation.TraceContext{}

// Tracer returns the statusgen tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Start opens a span named "statusgen.<name>".
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "statusgen."+name, trace.WithAttributes(attrs...))
}

// End records err on span (if any) and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	span.End()
}

// CodeAttributes describes a status code.
func CodeAttributes(sc codes.StatusCode) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("status_code.name", sc.Name),
		attribute.String("status_code.internal", sc.Hex()),
		attribute.Int("status_code.http", sc.HTTP),
	}
}

// InjectMap serializes the span context of ctx into a string map.
func InjectMap(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	propagator.Inject(ctx, carrier)
	if len(carrier) == 0 {
		return nil
	}
	return carrier
}

// ExtractMap restores a span context produced by InjectMap.
func ExtractMap(ctx context.Context, m map[string]string) context.Context {
	if len(m) == 0 {
		return ctx
	}
	return propagator.Extract(ctx, propagation.MapCarrier(m))
}
