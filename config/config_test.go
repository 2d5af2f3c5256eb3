package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	ed "github.com/rickchristie/eventdispatcher"
	"github.com/rickchristie/eventdispatcher/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// -----------------------------------------------------------------------------
// Parse
// -----------------------------------------------------------------------------

func TestParse(t *testing.T) {
	type expected struct {
		config    *Config
		schemaErr bool
	}

	tests := []struct {
		name     string
		input    string
		expected expected
	}{
		{
			name: "full document",
			input: `
subscribers:
  - app.UserSubscriber
  - audit
max_recursion: 20
log_level: debug
trace: true
`,
			expected: expected{config: &Config{
				Subscribers:  []string{"app.UserSubscriber", "audit"},
				MaxRecursion: 20,
				LogLevel:     "debug",
				Trace:        true,
			}},
		},
		{
			name:  "empty document keeps defaults",
			input: "",
			expected: expected{config: &Config{
				Subscribers: []string{},
				LogLevel:    "info",
			}},
		},
		{
			name:  "explicit unlimited recursion",
			input: "max_recursion: 0",
			expected: expected{config: &Config{
				Subscribers: []string{},
				LogLevel:    "info",
			}},
		},
		{
			name:     "unknown key",
			input:    "listeners: []",
			expected: expected{schemaErr: true},
		},
		{
			name:     "recursion below minimum",
			input:    "max_recursion: -1",
			expected: expected{schemaErr: true},
		},
		{
			name:     "unknown log level",
			input:    "log_level: verbose",
			expected: expected{schemaErr: true},
		},
		{
			name:     "empty subscriber identifier",
			input:    "subscribers: ['']",
			expected: expected{schemaErr: true},
		},
		{
			name:     "subscriber identifier with whitespace",
			input:    "subscribers: ['app.User Subscriber']",
			expected: expected{schemaErr: true},
		},
		{
			name:     "trace not a boolean",
			input:    "trace: sometimes",
			expected: expected{schemaErr: true},
		},
		{
			name:     "subscribers not a list",
			input:    "subscribers: audit",
			expected: expected{schemaErr: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.input))

			if tc.expected.schemaErr {
				var verr *schema.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected.config, cfg)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("subscribers: [unclosed"))

	assert.ErrorContains(t, err, "failed to parse yaml")
}

// -----------------------------------------------------------------------------
// Load
// -----------------------------------------------------------------------------

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "dispatcher.yaml", "subscribers: [audit]\nmax_recursion: 5\n")
	t.Setenv("EVENTDISPATCHER_MAX_RECURSION", "7")
	t.Setenv("EVENTDISPATCHER_SUBSCRIBERS", "audit,mailer")

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxRecursion)
	assert.Equal(t, []string{"audit", "mailer"}, cfg.Subscribers)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	const key = "EVENTDISPATCHER_LOG_LEVEL"
	_, wasSet := os.LookupEnv(key)
	require.False(t, wasSet, "%s must not be set when running this test", key)
	t.Cleanup(func() { os.Unsetenv(key) })

	envFile := writeFile(t, "test.env", key+"=debug\n")

	cfg, err := Load("", envFile)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("schema violation names the file", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "log_level: loud\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, path)
	})

	t.Run("invalid level from environment", func(t *testing.T) {
		t.Setenv("EVENTDISPATCHER_LOG_LEVEL", "loud")
		_, err := Load("")
		assert.ErrorContains(t, err, `invalid log level "loud"`)
	})

	t.Run("malformed integer from environment", func(t *testing.T) {
		t.Setenv("EVENTDISPATCHER_MAX_RECURSION", "many")
		_, err := Load("")
		assert.ErrorContains(t, err, "failed to apply environment")
	})
}

func TestConfig_Logger(t *testing.T) {
	cfg := &Config{LogLevel: "warn"}

	logger, err := cfg.Logger()

	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

// -----------------------------------------------------------------------------
// Bootstrap
// -----------------------------------------------------------------------------

type recordingSubscribable struct {
	ids    []string
	failOn string
}

func (r *recordingSubscribable) Subscribe(subscriber any) error {
	id := subscriber.(string)
	if id == r.failOn {
		return ed.ErrInvalidArgument
	}
	r.ids = append(r.ids, id)
	return nil
}

func TestBootstrap_SubscribesInOrder(t *testing.T) {
	r := &recordingSubscribable{}
	cfg := &Config{Subscribers: []string{"b", "a", "c"}}

	require.NoError(t, Bootstrap(r, cfg))

	assert.Equal(t, []string{"b", "a", "c"}, r.ids)
}

func TestBootstrap_StopsAtFirstFailure(t *testing.T) {
	r := &recordingSubscribable{failOn: "a"}
	cfg := &Config{Subscribers: []string{"b", "a", "c"}}

	err := Bootstrap(r, cfg)

	assert.ErrorIs(t, err, ed.ErrInvalidArgument)
	assert.ErrorContains(t, err, `subscriber 1 ("a")`)
	assert.Equal(t, []string{"b"}, r.ids)
}

type auditSubscriber struct {
	seen []any
}

func (s *auditSubscriber) SubscribedEvents() ed.Subscriptions {
	return ed.Subscriptions{"user.created": ed.Method("Record")}
}

func (s *auditSubscriber) Record(payload any) {
	s.seen = append(s.seen, payload)
}

func TestNewDispatcher(t *testing.T) {
	audit := &auditSubscriber{}
	resolver := ed.NewContainer().Register("audit", func() any { return audit })
	cfg := &Config{Subscribers: []string{"audit"}, MaxRecursion: 3, LogLevel: "info"}

	d, err := NewDispatcher(cfg, resolver, nil, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 3, d.MaxRecursion())
	assert.Equal(t, []string{"user.created"}, d.Events())

	_, err = d.Dispatch("user.created", "bob")
	require.NoError(t, err)
	assert.Equal(t, []any{"bob"}, audit.seen)
}

func TestNewDispatcher_UnknownSubscriber(t *testing.T) {
	cfg := &Config{Subscribers: []string{"ghost"}}

	_, err := NewDispatcher(cfg, ed.NewContainer(), nil, zap.NewNop())

	assert.True(t, errors.Is(err, ed.ErrUnknownIdentifier))
}

func TestNewDispatcher_TraceLogsDispatches(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := &Config{Trace: true}

	d, err := NewDispatcher(cfg, ed.NewContainer(), nil, zap.New(core))
	require.NoError(t, err)
	d.Listen("user.created", func(any) {}, 0)

	_, err = d.Dispatch("user.created", nil)
	require.NoError(t, err)

	finished := logs.FilterMessage("dispatch finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, "user.created", finished[0].ContextMap()["event"])
}

func TestNewDispatcher_NoTraceByDefault(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	d, err := NewDispatcher(&Config{}, ed.NewContainer(), nil, zap.New(core))
	require.NoError(t, err)
	_, err = d.Dispatch("user.created", nil)
	require.NoError(t, err)

	assert.Zero(t, logs.FilterMessage("dispatch finished").Len())
}
