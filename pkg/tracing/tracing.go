package tracing

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/Etiti27/saas-platform-sub000/config"
)

// InitTracing configures sampling, exporters and views.
// It is a no-op when tracing is disabled.
// codecov:ignore:start
func InitTracing(cfg *config.TracingConfig) error {
	if !cfg.Enabled {
		return nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if err := initTraceExporter(cfg); err != nil {
		return err
	}

	if err := initMetricsExporters(cfg); err != nil {
		return err
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}

	return nil
}

func initTraceExporter(cfg *config.TracingConfig) error {
	switch cfg.TraceExporter {
	case "jaeger":
		if cfg.JaegerEndpoint == "" {
			return fmt.Errorf("jaeger endpoint is required for jaeger exporter")
		}
		je, err := jaeger.NewExporter(jaeger.Options{
			CollectorEndpoint: cfg.JaegerEndpoint,
			ServiceName:       cfg.ServiceName,
			Process: jaeger.Process{
				ServiceName: cfg.ServiceName,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create jaeger exporter: %w", err)
		}
		trace.RegisterExporter(je)
	case "zipkin":
		if cfg.ZipkinEndpoint == "" {
			return fmt.Errorf("zipkin endpoint is required for zipkin exporter")
		}
		reporter := zipkinhttp.NewReporter(cfg.ZipkinEndpoint)
		trace.RegisterExporter(zipkin.NewExporter(reporter, nil))
	case "datadog":
		exporter, err := newDatadogExporter(cfg)
		if err != nil {
			return err
		}
		trace.RegisterExporter(exporter)
	case "xray":
		if cfg.XRayRegion == "" {
			return fmt.Errorf("AWS region is required for X-Ray exporter")
		}
		exporter, err := aws.NewExporter(
			aws.WithRegion(cfg.XRayRegion),
			aws.WithVersion("latest"),
		)
		if err != nil {
			return fmt.Errorf("failed to create X-Ray exporter: %w", err)
		}
		trace.RegisterExporter(exporter)
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	log.Printf("Trace exporter %s initialized", cfg.TraceExporter)
	return nil
}

func initMetricsExporters(cfg *config.TracingConfig) error {
	if cfg.MetricsExporter == "none" || cfg.MetricsExporter == "" {
		return nil
	}

	for _, exporter := range strings.Split(cfg.MetricsExporter, ",") {
		exporter = strings.TrimSpace(exporter)
		switch exporter {
		case "":
			continue
		case "prometheus":
			if err := initPrometheusExporter(cfg); err != nil {
				return err
			}
		case "datadog":
			dd, err := newDatadogExporter(cfg)
			if err != nil {
				return err
			}
			view.RegisterExporter(dd)
		default:
			return fmt.Errorf("unsupported metrics exporter: %s", exporter)
		}
	}

	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}
	if err := view.Register(DefaultViews...); err != nil {
		return fmt.Errorf("failed to register tenancy views: %w", err)
	}

	return nil
}

func newDatadogExporter(cfg *config.TracingConfig) (*datadog.Exporter, error) {
	if cfg.DatadogAgentAddress == "" {
		return nil, fmt.Errorf("datadog agent address is required for datadog exporter")
	}

	exporter, err := datadog.NewExporter(datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: cfg.DatadogAgentAddress,
		StatsAddr: cfg.DatadogAgentAddress,
		OnError: func(err error) {
			log.Printf("Datadog exporter error: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create datadog exporter: %w", err)
	}
	return exporter, nil
}

func initPrometheusExporter(cfg *config.TracingConfig) error {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			log.Printf("Prometheus exporter error: %v", err)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	view.RegisterExporter(pe)

	if cfg.PrometheusPort <= 0 {
		return nil
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", pe)
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.PrometheusPort),
			Handler: mux,
		}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Prometheus metrics server stopped: %v", err)
		}
	}()

	return nil
}

// codecov:ignore:end
