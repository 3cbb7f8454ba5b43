package cmdutil

import (
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"go.uber.org/zap"

	"github.com/christianselig/contact-relay/internal/config"
	"github.com/christianselig/contact-relay/internal/mail"
)

func NewLogger(cfg config.Config, debug bool) *zap.Logger {
	logger, _ := zap.NewProduction()
	if debug || cfg.Env == "" {
		logger, _ = zap.NewDevelopment()
	}

	return logger
}

// NewStatsdClient returns a no-op client when no agent address is configured.
func NewStatsdClient(cfg config.Config, tags ...string) (statsd.ClientInterface, error) {
	if cfg.StatsdURL == "" {
		return &statsd.NoOpClient{}, nil
	}

	if cfg.Env != "" {
		tags = append(tags, fmt.Sprintf("env:%s", cfg.Env))
	}

	client, err := statsd.New(cfg.StatsdURL, statsd.WithTags(tags), statsd.WithNamespace("contact_relay."))
	if err != nil {
		return nil, err
	}

	return client, nil
}

// NewTracing registers the global OpenTelemetry providers. Exporter settings
// come from the HONEYCOMB_* and OTEL_* environment. Without an exporter the
// global no-op provider stays in place and the returned shutdown does nothing.
func NewTracing(cfg config.Config, logger *zap.Logger) (func(), error) {
	if !cfg.Tracing {
		return func() {}, nil
	}

	return otelconfig.ConfigureOpenTelemetry(
		honeycomb.WithHoneycomb(),
		otelconfig.WithServiceName("contact-relay"),
		otelconfig.WithMetricsEnabled(false),
		otelconfig.WithLogger(otelLogger{logger.Sugar()}),
	)
}

// otelLogger keeps exporter failures from exiting the process.
type otelLogger struct {
	*zap.SugaredLogger
}

func (l otelLogger) Fatalf(format string, args ...interface{}) {
	l.Errorf(format, args...)
}

func NewMailSender(cfg config.Mail, logger *zap.Logger) (mail.Sender, error) {
	switch cfg.Provider {
	case config.ProviderSMTP:
		return mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.Operator, cfg.SMTPPassword), nil
	case config.ProviderSMTP2GO:
		logger.Warn("smtp2go cannot set Reply-To, replies will go to the operator mailbox",
			zap.String("mail#provider", cfg.Provider),
		)
		return mail.NewSMTP2GOSender(), nil
	case config.ProviderResend:
		return mail.NewResendSender(cfg.ResendAPIKey), nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownProvider, cfg.Provider)
}
