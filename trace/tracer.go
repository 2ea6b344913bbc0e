// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package trace exports runtime spans to a zipkin collector.
package trace

import (
	"context"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	DefaultEndpoint = "http://localhost:9411/api/v2/spans"

	exportTimeout = 10 * time.Second
	// Must exceed [exportTimeout].
	shutdownTimeout = 15 * time.Second
)

type Config struct {
	Enabled bool `yaml:"enabled"`

	// TraceSampleRate is the fraction of transactions traced. Values >= 1
	// trace everything.
	TraceSampleRate float64 `yaml:"traceSampleRate"`

	// Endpoint defaults to [DefaultEndpoint].
	Endpoint string `yaml:"endpoint"`

	AppName string `yaml:"appName"`
	Agent   string `yaml:"agent"`
	Version string `yaml:"version"`
}

type zipkinTracer struct {
	oteltrace.Tracer

	provider *sdktrace.TracerProvider
}

func (z *zipkinTracer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return z.provider.Shutdown(ctx)
}

// New returns [trace.Noop] unless [cfg] enables tracing.
func New(cfg *Config) (trace.Tracer, error) {
	if !cfg.Enabled {
		return trace.Noop, nil
	}

	endpoint := cfg.Endpoint
	if len(endpoint) == 0 {
		endpoint = DefaultEndpoint
	}
	exporter, err := zipkin.New(endpoint)
	if err != nil {
		return nil, err
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.Agent),
		attribute.String("version", cfg.Version),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(exportTimeout)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.TraceSampleRate)),
	)
	return &zipkinTracer{
		Tracer:   provider.Tracer(cfg.AppName),
		provider: provider,
	}, nil
}
