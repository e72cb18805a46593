package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	otelmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

type Telemetry struct {
	Tracer oteltrace.Tracer

	service  string
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	upstream *prometheus.CounterVec
	tp       *trace.TracerProvider
	mp       *otelmetric.MeterProvider
}

// Setup installs global tracer and meter providers for serviceName. Spans are
// exported over OTLP/HTTP when otlpEndpoint is set and dropped otherwise.
func Setup(ctx context.Context, serviceName, otlpEndpoint string) (*Telemetry, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	t := &Telemetry{
		service:  serviceName,
		registry: reg,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total requests by service, endpoint, method, and status.",
			},
			[]string{"service", "endpoint", "method", "status"},
		),
		upstream: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_upstream_requests_total",
				Help: "Forwarded weather lookups by outcome.",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(t.requests, t.upstream)

	promExporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	t.mp = otelmetric.NewMeterProvider(otelmetric.WithReader(promExporter))
	otel.SetMeterProvider(t.mp)

	res, err := resource.New(ctx, resource.WithAttributes(attribute.String("service.name", serviceName)))
	if err != nil {
		return nil, fmt.Errorf("failed to create otel resource: %w", err)
	}

	if otlpEndpoint != "" {
		exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(otlpEndpoint))
		if err != nil {
			return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
		}
		t.tp = trace.NewTracerProvider(trace.WithBatcher(exp), trace.WithResource(res))
		slog.Info("exporting traces", "endpoint", otlpEndpoint)
	} else {
		t.tp = trace.NewTracerProvider(trace.WithResource(res))
	}
	otel.SetTracerProvider(t.tp)

	t.Tracer = t.tp.Tracer(serviceName)
	return t, nil
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(t.tp.Shutdown(ctx), t.mp.Shutdown(ctx))
}

// Handler serves the Prometheus scrape endpoint.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{Registry: t.registry})
}

// ObserveUpstream counts one forwarded lookup. outcome is a short word such as
// "ok", "error" or "unconfigured".
func (t *Telemetry) ObserveUpstream(outcome string) {
	t.upstream.WithLabelValues(outcome).Inc()
}

// Middleware traces each request and counts it by route pattern.
func (t *Telemetry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := t.Tracer.Start(ctx, r.Method+" "+r.URL.Path)
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.target", r.URL.Path),
		)
		if rid := middleware.GetReqID(ctx); rid != "" {
			span.SetAttributes(attribute.String("http.request_id", rid))
		}
		w.Header().Set("Trace-ID", span.SpanContext().TraceID().String())

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
		t.requests.WithLabelValues(t.service, endpoint(r), r.Method, strconv.Itoa(status)).Inc()
	})
}

// endpoint prefers the matched chi pattern so the label set stays bounded.
func endpoint(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
