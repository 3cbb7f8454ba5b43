package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christianselig/contact-relay/internal/config"
)

func lookupFrom(env map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, config.ProviderSMTP, cfg.Mail.Provider)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.SMTPHost)
	assert.Equal(t, 587, cfg.Mail.SMTPPort)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:4173"}, cfg.Origins.Origins())
	assert.False(t, cfg.Tracing)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(lookupFrom(map[string]string{
		"PORT":          "8080",
		"CLIENT_URL":    "https://portfolio.example.com",
		"EMAIL_USER":    "me@example.com",
		"EMAIL_PASS":    "app-password",
		"MAIL_PROVIDER": "Resend",
		"SMTP_HOST":     "smtp.example.com",
		"SMTP_PORT":     "465",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, config.ProviderResend, cfg.Mail.Provider)
	assert.Equal(t, "me@example.com", cfg.Mail.Operator)
	assert.Equal(t, "app-password", cfg.Mail.SMTPPassword)
	assert.Equal(t, "smtp.example.com", cfg.Mail.SMTPHost)
	assert.Equal(t, 465, cfg.Mail.SMTPPort)
	assert.True(t, cfg.Origins.Allows("https://portfolio.example.com"))
}

func TestLoadTracing(t *testing.T) {
	t.Parallel()

	tt := map[string]struct {
		env  map[string]string
		want bool
	}{
		"nothing set":    {nil, false},
		"blank key":      {map[string]string{"HONEYCOMB_API_KEY": "  "}, false},
		"honeycomb key":  {map[string]string{"HONEYCOMB_API_KEY": "hcaik_123"}, true},
		"otlp collector": {map[string]string{"OTEL_EXPORTER_OTLP_ENDPOINT": "http://localhost:4317"}, true},
		"unrelated otel": {map[string]string{"OTEL_SERVICE_NAME": "contact-relay"}, false},
	}

	for scenario, tc := range tt {
		tc := tc

		t.Run(scenario, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.Load(lookupFrom(tc.env))
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.Tracing)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tt := map[string]struct {
		env  map[string]string
		want error
	}{
		"non numeric port":  {map[string]string{"PORT": "abc"}, config.ErrInvalidPort},
		"port out of range": {map[string]string{"PORT": "70000"}, config.ErrInvalidPort},
		"bad smtp port":     {map[string]string{"SMTP_PORT": "0"}, config.ErrInvalidPort},
		"unknown provider":  {map[string]string{"MAIL_PROVIDER": "carrier-pigeon"}, config.ErrUnknownProvider},
	}

	for scenario, tc := range tt {
		tc := tc

		t.Run(scenario, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(lookupFrom(tc.env))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOriginAllowlist(t *testing.T) {
	t.Parallel()

	al := config.NewOriginAllowlist("https://portfolio.example.com", "")

	tt := map[string]struct {
		origin string
		want   bool
	}{
		"vite dev server":   {"http://localhost:5173", true},
		"vite preview":      {"http://localhost:4173", true},
		"configured client": {"https://portfolio.example.com", true},
		"unknown origin":    {"http://evil.com", false},
		"trailing slash":    {"https://portfolio.example.com/", false},
		"different scheme":  {"http://portfolio.example.com", false},
		"empty origin":      {"", false},
	}

	for scenario, tc := range tt {
		tc := tc

		t.Run(scenario, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, al.Allows(tc.origin))
		})
	}
}

func TestOriginAllowlistIsImmutable(t *testing.T) {
	t.Parallel()

	al := config.NewOriginAllowlist()
	origins := al.Origins()
	origins[0] = "http://evil.com"

	assert.False(t, al.Allows("http://evil.com"))
	assert.True(t, al.Allows("http://localhost:5173"))
}
