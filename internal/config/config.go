package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	DefaultPort     = 5000
	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587
)

// Mail providers accepted in MAIL_PROVIDER.
const (
	ProviderSMTP    = "smtp"
	ProviderSMTP2GO = "smtp2go"
	ProviderResend  = "resend"
)

// Local frontend origins that are always allowed (Vite dev server and preview).
var devOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type Mail struct {
	Provider string

	// Operator is the mailbox that both sends and receives contact mail.
	Operator string

	SMTPHost     string
	SMTPPort     int
	SMTPPassword string

	ResendAPIKey string
}

type Config struct {
	Env       string
	Port      int
	StatsdURL string

	// Tracing is on once an exporter is configured, either Honeycomb directly
	// or any OTLP collector. The exporter itself reads its own environment.
	Tracing bool

	Origins OriginAllowlist
	Mail    Mail
}

// Load builds a Config from the environment. Mail credentials are not checked
// here; a bad password only shows up when the first message is sent.
func Load(lookup LookupFunc) (Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := Config{
		Env:       get("ENV"),
		Port:      DefaultPort,
		StatsdURL: get("STATSD_URL"),
		Tracing:   get("HONEYCOMB_API_KEY") != "" || get("OTEL_EXPORTER_OTLP_ENDPOINT") != "",
		Mail: Mail{
			Provider:     ProviderSMTP,
			Operator:     get("EMAIL_USER"),
			SMTPHost:     DefaultSMTPHost,
			SMTPPort:     DefaultSMTPPort,
			SMTPPassword: get("EMAIL_PASS"),
			ResendAPIKey: get("RESEND_API_KEY"),
		},
	}

	if v := get("PORT"); v != "" {
		port, err := parsePort(v)
		if err != nil {
			return Config{}, fmt.Errorf("PORT: %w", err)
		}
		cfg.Port = port
	}

	if v := get("SMTP_HOST"); v != "" {
		cfg.Mail.SMTPHost = v
	}

	if v := get("SMTP_PORT"); v != "" {
		port, err := parsePort(v)
		if err != nil {
			return Config{}, fmt.Errorf("SMTP_PORT: %w", err)
		}
		cfg.Mail.SMTPPort = port
	}

	if v := strings.ToLower(get("MAIL_PROVIDER")); v != "" {
		switch v {
		case ProviderSMTP, ProviderSMTP2GO, ProviderResend:
			cfg.Mail.Provider = v
		default:
			return Config{}, fmt.Errorf("MAIL_PROVIDER: %w: %q", ErrUnknownProvider, v)
		}
	}

	cfg.Origins = NewOriginAllowlist(get("CLIENT_URL"))

	return cfg, nil
}

func parsePort(v string) (int, error) {
	port, err := strconv.Atoi(v)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, v)
	}
	return port, nil
}

// OriginAllowlist is the fixed set of origins allowed to call the API from a
// browser. The zero value allows no origin.
type OriginAllowlist struct {
	origins []string
}

// NewOriginAllowlist returns the dev origins plus any non-empty extras.
func NewOriginAllowlist(extra ...string) OriginAllowlist {
	origins := slices.Clone(devOrigins)
	for _, o := range extra {
		if o != "" && !slices.Contains(origins, o) {
			origins = append(origins, o)
		}
	}
	return OriginAllowlist{origins: origins}
}

// Allows reports whether origin exactly matches an allowlisted origin.
func (al OriginAllowlist) Allows(origin string) bool {
	return slices.Contains(al.origins, origin)
}

func (al OriginAllowlist) Origins() []string {
	return slices.Clone(al.origins)
}
