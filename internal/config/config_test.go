package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuseki-manager/pkg/fuseki"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)

	name, p := c.Profile("")
	assert.Equal(t, DefaultProfile, name)
	assert.Equal(t, "http://localhost:3030/", p.ClientConfig("").BaseURI())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.CurrentProfile = "prod"
	c.SetProfile("prod", Profile{
		Host:       "fuseki.example.org",
		Port:       443,
		Secured:    true,
		User:       "admin",
		Dataset:    "books",
		DropMode:   "dataset-root",
		Timeout:    5 * time.Second,
		Namespaces: map[string]string{"ex": "http://example.org/", "dc": "http://purl.org/dc/terms/"},
	})
	require.NoError(t, SaveFile(path, c))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "prod"}, loaded.ProfileNames())

	name, p := loaded.Profile("")
	assert.Equal(t, "prod", name)
	assert.Equal(t, "books", p.Dataset)
	assert.Equal(t, 5*time.Second, p.Timeout)

	cfg := p.ClientConfig("pw")
	assert.Equal(t, "https://fuseki.example.org:443/", cfg.BaseURI())
	assert.True(t, cfg.HasAuth())

	assert.Equal(t, fuseki.Namespaces{
		{Prefix: "dc", URI: "http://purl.org/dc/terms/"},
		{Prefix: "ex", URI: "http://example.org/"},
	}, p.NamespaceList())

	_, err = p.DataOptions()
	assert.NoError(t, err)
	assert.Len(t, p.TransportOptions(), 1)
}

func TestPasswordNeverSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.SetProfile("x", Profile{Host: "h", User: "admin"})
	require.NoError(t, SaveFile(path, c))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
}

func TestUnknownProfileFallsBackToDefaults(t *testing.T) {
	name, p := Default().Profile("staging")
	assert.Equal(t, "staging", name)
	assert.Equal(t, fuseki.DefaultPort, p.Port)
}

func TestInvalidDropMode(t *testing.T) {
	_, err := Profile{DropMode: "sideways"}.DataOptions()
	assert.ErrorIs(t, err, fuseki.ErrInvalidArgument)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles: [oops"), 0o600))
	_, err := LoadFile(path)
	assert.Error(t, err)
}
