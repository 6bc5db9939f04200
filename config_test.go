package vane

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfigFile(t, "server.yaml", `
addr: ":8080"
read_timeout: 20
tls_cert_file: cert.pem
tls_key_file: key.pem
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 20, cfg.ReadTimeout)
	assert.Equal(t, "cert.pem", cfg.TLSCertFile)
	assert.Equal(t, "key.pem", cfg.TLSKeyFile)
	// Unset timeouts take defaults.
	assert.Equal(t, defaultWriteTimeout, cfg.WriteTimeout)
	assert.Equal(t, defaultIdleTimeout, cfg.IdleTimeout)
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeConfigFile(t, "server.toml", `
addr = ":9090"
write_timeout = 30
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 30, cfg.WriteTimeout)
	assert.Equal(t, defaultReadTimeout, cfg.ReadTimeout)
}

func TestLoadConfigUnsupportedExtension(t *testing.T) {
	path := writeConfigFile(t, "server.ini", "addr=:1")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
