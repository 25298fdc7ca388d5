package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/statekit/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, 5*time.Second, cfg.NATS.Timeout())
	assert.Equal(t, "Composer", cfg.Composer.Name)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `{
		"version": "2.0.0",
		"nats": {"url": "nats://broker:4222", "timeout_seconds": 10},
		"composer": {
			"name": "checkout-composite",
			"children": [
				{"name": "cart"},
				{"name": "payment", "metadata": {"card": {"persisted": false, "anonymous": true}}}
			]
		}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", cfg.Version)
	assert.Equal(t, "nats://broker:4222", cfg.NATS.URL)
	assert.Equal(t, 10*time.Second, cfg.NATS.Timeout())
	assert.Equal(t, "checkout-composite", cfg.Composer.Name)
	require.Len(t, cfg.Composer.Children, 2)
	assert.False(t, cfg.Composer.Children[1].Metadata["card"].Persisted)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STATEKIT_NATS_URL", "nats://env-broker:4222")
	t.Setenv("STATEKIT_COMPOSER_NAME", "env-composite")
	t.Setenv("STATEKIT_NATS_TOKEN", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "nats://env-broker:4222", cfg.NATS.URL)
	assert.Equal(t, "env-composite", cfg.Composer.Name)
	assert.Equal(t, "secret", cfg.NATS.Token)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.json")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.IsConfiguration(err))
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, `{not json`)

	cfg, err := Load(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.IsConfiguration(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(*Config) {}, false},
		{"missing NATS URL", func(c *Config) { c.NATS.URL = "" }, true},
		{"zero timeout", func(c *Config) { c.NATS.TimeoutSeconds = 0 }, true},
		{"bad composer name", func(c *Config) { c.Composer.Name = "has spaces" }, true},
		{"bad child name", func(c *Config) {
			c.Composer.Children = []ChildConfig{{Name: ""}}
		}, true},
		{"metrics enabled without addr", func(c *Config) { c.Metrics.Addr = "" }, true},
		{"metrics disabled without addr", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.Addr = ""
		}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)

			err := cfg.Validate()
			if test.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfiguration(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}
