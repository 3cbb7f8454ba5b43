package cmdutil_test

import (
	"testing"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/christianselig/contact-relay/internal/cmdutil"
	"github.com/christianselig/contact-relay/internal/config"
	"github.com/christianselig/contact-relay/internal/mail"
)

func TestNewMailSender(t *testing.T) {
	t.Parallel()

	tt := map[string]struct {
		provider string
		want     mail.Sender
		warnings int
	}{
		"smtp":    {config.ProviderSMTP, &mail.SMTPSender{}, 0},
		"smtp2go": {config.ProviderSMTP2GO, &mail.SMTP2GOSender{}, 1},
		"resend":  {config.ProviderResend, &mail.ResendSender{}, 0},
	}

	for scenario, tc := range tt {
		tc := tc

		t.Run(scenario, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zap.WarnLevel)

			s, err := cmdutil.NewMailSender(config.Mail{
				Provider: tc.provider,
				Operator: "me@example.com",
				SMTPHost: config.DefaultSMTPHost,
				SMTPPort: config.DefaultSMTPPort,
			}, zap.New(core))
			require.NoError(t, err)
			assert.IsType(t, tc.want, s)

			require.Equal(t, tc.warnings, logs.Len())
			for _, entry := range logs.All() {
				assert.Contains(t, entry.Message, "Reply-To")
				assert.Equal(t, tc.provider, entry.ContextMap()["mail#provider"])
			}
		})
	}
}

func TestNewMailSenderUnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := cmdutil.NewMailSender(config.Mail{Provider: "fax"}, zap.NewNop())
	assert.ErrorIs(t, err, config.ErrUnknownProvider)
}

func TestNewTracingWithoutExporter(t *testing.T) {
	t.Parallel()

	before := otel.GetTracerProvider()

	shutdown, err := cmdutil.NewTracing(config.Config{}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	shutdown()

	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestNewStatsdClientWithoutAgent(t *testing.T) {
	t.Parallel()

	client, err := cmdutil.NewStatsdClient(config.Config{})
	require.NoError(t, err)
	assert.IsType(t, &statsd.NoOpClient{}, client)
}
