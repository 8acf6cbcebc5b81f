package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/17okk-xie/portfolio/internal/catalog"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "portfolio.sqlite3", cfg.DSN())
	assert.Equal(t, DefaultPIN, cfg.PIN)
	assert.Equal(t, catalog.MaxMediaSize, cfg.MaxUploadBytes)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: ":9000"
media_dir: /srv/media
pin: "1111"
log_level: debug
`), 0o644))

	t.Setenv("PORTFOLIO_PIN", "2222")
	t.Setenv("PORTFOLIO_MAX_UPLOAD_BYTES", "1048576")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/srv/media", cfg.MediaDir)
	assert.Equal(t, "2222", cfg.PIN)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(1<<20), cfg.MaxUploadBytes)
}

func TestLoadPostgres(t *testing.T) {
	t.Setenv("PORTFOLIO_DB_DRIVER", "postgres")
	_, err := Load("")
	assert.ErrorContains(t, err, "database_url")

	t.Setenv("PORTFOLIO_DATABASE_URL", "postgres://u:p@localhost/portfolio")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost/portfolio", cfg.DSN())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad pin", map[string]string{"PORTFOLIO_PIN": "12"}},
		{"bad driver", map[string]string{"PORTFOLIO_DB_DRIVER": "mysql"}},
		{"bad upload limit", map[string]string{"PORTFOLIO_MAX_UPLOAD_BYTES": "lots"}},
		{"upload limit above ceiling", map[string]string{"PORTFOLIO_MAX_UPLOAD_BYTES": "4000000000"}},
		{"bad log level", map[string]string{"PORTFOLIO_LOG_LEVEL": "verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestPINHashSkipsPlainPINCheck(t *testing.T) {
	t.Setenv("PORTFOLIO_PIN", "")
	t.Setenv("PORTFOLIO_PIN_HASH", "$2a$10$abcdefghijklmnopqrstuu")
	_, err := Load("")
	assert.NoError(t, err)
}

func TestLoadSecureCookies(t *testing.T) {
	t.Setenv("PORTFOLIO_SECURE_COOKIES", "true")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.SecureCookies)

	t.Setenv("PORTFOLIO_SECURE_COOKIES", "maybe")
	_, err = Load("")
	assert.ErrorContains(t, err, "PORTFOLIO_SECURE_COOKIES")
}
