// Package telemetry traces encounters as OpenTelemetry spans.
//
// A game run produces one game.run span. Inside it each encounter emits
// encounter.start, one battle.turn per resolved attack, and encounter.end.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "skirmish"
	serviceVersion = "0.1.0"
)

// Span names emitted by the battle session and the game.
const (
	SpanGameRun        = "game.run"
	SpanEncounterStart = "encounter.start"
	SpanTurn           = "battle.turn"
	SpanEncounterEnd   = "encounter.end"
)

// Enabled reports whether an OTLP endpoint has been configured, either
// directly or through SKIRMISH_HONEYCOMB_API_KEY in main.
func Enabled() bool {
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" ||
		os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") != ""
}

// Setup registers a tracer provider that batches encounter spans to the
// OTLP HTTP endpoint named by the standard OTEL_EXPORTER_OTLP_* variables.
//
// With no endpoint configured nothing is registered, spans go to the global
// no-op provider, and the returned shutdown does nothing. Otherwise shutdown
// flushes the last encounter's spans and should be deferred by the caller.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	noopShutdown := func(context.Context) error { return nil }
	if !Enabled() {
		return noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return noopShutdown, err
	}

	// Built without resource.Default() so schema URLs cannot conflict.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return noopShutdown, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns the tracer for a component ("battle", "game"). It follows
// whatever provider is registered, so it is safe to call before Setup.
func Tracer(component string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + component)
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
