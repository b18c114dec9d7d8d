package testsupport

import (
	"path/filepath"
	"testing"

	"rollcall/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Zoom.AccountID = "test-account"
	cfgVal.Zoom.ClientID = "test-client"
	cfgVal.Zoom.ClientSecret = "test-secret"

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := cfgVal.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	return builder.cfg
}

// WithZoomEndpoints points the Zoom client at test servers.
func WithZoomEndpoints(baseURL, authURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Zoom.BaseURL = baseURL
		b.cfg.Zoom.AuthURL = authURL
	}
}

// WithMeetings sets the report meeting list on the test config.
func WithMeetings(ids ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Report.MeetingIDs = ids
	}
}

// WithNtfyTopic enables notifications against the given endpoint.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}
