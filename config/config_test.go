package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray .env is picked up,
// and clears every variable Load reads.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"GO_ENV", "LOG_LEVEL", "CONFIG_FILE", "HOST", "PORT", "DATABASE_URL",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_OPERATION_TIMEOUT", "DB_AUTO_MIGRATE",
		"ALLOWED_ORIGINS", "FRONTEND_URL", "RATE_LIMIT_ENABLED", "MAIL_PROVIDER",
		"MAIL_FROM_ADDRESS", "MAIL_FROM_NAME", "MAIL_ADMIN_ADDRESS", "AWS_REGION",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.Database.OperationTimeout)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "noop", cfg.Mail.Provider)
	assert.Equal(t, DefaultOrigins, cfg.Origins())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://app@db:5432/codedcode")
	t.Setenv("DB_MAX_OPEN_CONNS", "8")
	t.Setenv("DB_OPERATION_TIMEOUT", "2500")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("FRONTEND_URL", "https://front.example")
	t.Setenv("MAIL_PROVIDER", "ses")
	t.Setenv("MAIL_FROM_ADDRESS", "noreply@codedcode.tech")
	t.Setenv("AWS_REGION", "ap-south-1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, EnvTest, cfg.Environment)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres://app@db:5432/codedcode", cfg.Database.URL)
	assert.Equal(t, 8, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2500*time.Millisecond, cfg.Database.OperationTimeout)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"https://a.example", "https://b.example", "https://front.example"}, cfg.Origins())
	assert.Equal(t, "ses", cfg.Mail.Provider)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "codedcode.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
  shutdown_timeout: 3s
database:
  max_open_conns: 5
  operation_timeout: 1s
mail:
  admin_address: admin@codedcode.tech
`), 0o600))
	t.Setenv("PORT", "7100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7100", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2, cfg.Database.MaxIdleConns)
	assert.Equal(t, time.Second, cfg.Database.OperationTimeout)
	assert.Equal(t, "admin@codedcode.tech", cfg.Mail.AdminAddress)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	// godotenv never overrides a variable that exists, even when empty.
	require.NoError(t, os.Unsetenv("MAIL_ADMIN_ADDRESS"))
	require.NoError(t, os.WriteFile(".env", []byte("MAIL_ADMIN_ADDRESS=team@codedcode.tech\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "team@codedcode.tech", cfg.Mail.AdminAddress)
}

func TestLoad_DotEnvSelectsEnvironment(t *testing.T) {
	isolate(t)
	require.NoError(t, os.Unsetenv("GO_ENV"))
	require.NoError(t, os.Unsetenv("RATE_LIMIT_ENABLED"))
	require.NoError(t, os.WriteFile(".env", []byte("GO_ENV=test\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, EnvTest, cfg.Environment)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "port", env: map[string]string{"PORT": "http"}, wantErr: "PORT must be a number"},
		{name: "pool", env: map[string]string{"DB_MAX_OPEN_CONNS": "2", "DB_MAX_IDLE_CONNS": "3"}, wantErr: "DB_MAX_IDLE_CONNS"},
		{name: "provider", env: map[string]string{"MAIL_PROVIDER": "smtp"}, wantErr: "MAIL_PROVIDER must be noop or ses"},
		{name: "ses sender", env: map[string]string{"MAIL_PROVIDER": "ses", "AWS_REGION": "ap-south-1"}, wantErr: "MAIL_FROM_ADDRESS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		env, level string
		wantJSON   bool
		wantDebug  bool
	}{
		{env: EnvProduction, level: "info", wantJSON: true},
		{env: EnvDevelopment, level: "debug", wantDebug: true},
		{env: EnvTest, level: "bogus"},
	}
	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.env, tt.level)
			logger.Debug("debug line")
			logger.Info("info line", "k", "v")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			assert.Contains(t, out, "info line")
			if tt.wantJSON {
				assert.Contains(t, out, `"msg":"info line"`)
			} else {
				assert.Contains(t, out, "msg=\"info line\"")
			}
		})
	}
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
}
