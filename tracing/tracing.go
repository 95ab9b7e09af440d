package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"github.com/uber/jaeger-client-go"
	"github.com/uber/jaeger-client-go/config"
)

// LogrusAdapter bridges jaeger logging onto logrus
type LogrusAdapter struct {
	logger logrus.FieldLogger
}

// Error logs a jaeger error message
func (a LogrusAdapter) Error(msg string) {
	a.logger.Error(msg)
}

// Infof logs a jaeger informational message
func (a LogrusAdapter) Infof(msg string, args ...interface{}) {
	a.logger.Infof(msg, args...)
}

// InitTracer initializes the global tracer for the service
func InitTracer(l logrus.FieldLogger) func(serviceName string) (io.Closer, error) {
	return func(serviceName string) (io.Closer, error) {
		cfg, err := config.FromEnv()
		if err != nil {
			return nil, err
		}
		cfg.ServiceName = serviceName
		if cfg.Sampler.Type == "" {
			cfg.Sampler = &config.SamplerConfig{
				Type:  jaeger.SamplerTypeConst,
				Param: 1,
			}
		}

		tracer, closer, err := cfg.NewTracer(config.Logger(LogrusAdapter{logger: l}))
		if err != nil {
			return nil, err
		}

		opentracing.SetGlobalTracer(tracer)
		return closer, nil
	}
}

// StartSpan starts a span and returns a logger decorated with the span identifier
func StartSpan(l logrus.FieldLogger, name string, opts ...opentracing.StartSpanOption) (logrus.FieldLogger, opentracing.Span) {
	span := opentracing.StartSpan(name, opts...)

	fl := l.WithField("span.name", name)
	if sc, ok := span.Context().(jaeger.SpanContext); ok {
		fl = fl.WithField("span.id", sc.SpanID().String())
	}
	return fl, span
}

// Teardown closes the tracer during service shutdown
func Teardown(l logrus.FieldLogger) func(closer io.Closer) func() {
	return func(closer io.Closer) func() {
		return func() {
			if err := closer.Close(); err != nil {
				l.WithError(err).Error("Unable to close tracer.")
			}
		}
	}
}
