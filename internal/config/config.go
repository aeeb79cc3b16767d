// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; passwords go to the OS keychain.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"fuseki-manager/internal/xdg"
	"fuseki-manager/pkg/fuseki"
)

// DefaultProfile is used when no profile is selected.
const DefaultProfile = "default"

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel       string              `yaml:"log_level"`
	CurrentProfile string              `yaml:"current_profile"`
	Profiles       map[string]*Profile `yaml:"profiles"`
}

// Profile describes one Fuseki server and how to talk to it.
type Profile struct {
	Host          string            `yaml:"host"`
	Port          int               `yaml:"port"`
	Secured       bool              `yaml:"secured"`
	User          string            `yaml:"user,omitempty"`
	Dataset       string            `yaml:"dataset,omitempty"`
	QueryService  string            `yaml:"query_service,omitempty"`
	UpdateService string            `yaml:"update_service,omitempty"`
	DropMode      string            `yaml:"drop_mode,omitempty"`
	Timeout       time.Duration     `yaml:"timeout,omitempty"`
	RateLimit     float64           `yaml:"rate_limit,omitempty"`
	RateBurst     int               `yaml:"rate_burst,omitempty"`
	Namespaces    map[string]string `yaml:"namespaces,omitempty"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{
		LogLevel:       "info",
		CurrentProfile: DefaultProfile,
		Profiles:       map[string]*Profile{DefaultProfile: DefaultProfileSettings()},
	}
}

// DefaultProfileSettings points at a local, unsecured Fuseki.
func DefaultProfileSettings() *Profile {
	return &Profile{Host: fuseki.DefaultHost, Port: fuseki.DefaultPort}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration; missing file returns defaults.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(p)
}

// LoadFile reads configuration from p; missing file returns defaults.
func LoadFile(p string) (Config, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", p, err)
	}
	if c.Profiles == nil {
		c.Profiles = map[string]*Profile{}
	}
	if c.CurrentProfile == "" {
		c.CurrentProfile = DefaultProfile
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(p, c)
}

// SaveFile writes configuration to p with 0600 permissions.
func SaveFile(p string, c Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Profile returns the named profile, or the current one when name is empty.
// Unknown profiles yield defaults so that flags alone can describe a server.
func (c Config) Profile(name string) (string, Profile) {
	if name == "" {
		name = c.CurrentProfile
	}
	if name == "" {
		name = DefaultProfile
	}
	if p, ok := c.Profiles[name]; ok && p != nil {
		return name, *p
	}
	return name, *DefaultProfileSettings()
}

// SetProfile stores p under name.
func (c *Config) SetProfile(name string, p Profile) {
	if c.Profiles == nil {
		c.Profiles = map[string]*Profile{}
	}
	c.Profiles[name] = &p
}

// ProfileNames lists profiles in lexical order.
func (c Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for n := range c.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ClientConfig converts the profile into library connection settings.
func (p Profile) ClientConfig(password string) fuseki.Config {
	return fuseki.Config{
		Host:     p.Host,
		Port:     p.Port,
		Secured:  p.Secured,
		User:     p.User,
		Password: password,
	}
}

// TransportOptions converts the profile's tuning knobs into transport options.
func (p Profile) TransportOptions() []fuseki.Option {
	var opts []fuseki.Option
	if p.Timeout > 0 {
		opts = append(opts, fuseki.WithTimeout(p.Timeout))
	}
	if p.RateLimit > 0 {
		opts = append(opts, fuseki.WithRateLimit(p.RateLimit, p.RateBurst))
	}
	return opts
}

// DataOptions converts the profile's drop mode into data client options.
func (p Profile) DataOptions() ([]fuseki.DataOption, error) {
	mode, err := fuseki.ParseDropMode(p.DropMode)
	if err != nil {
		return nil, err
	}
	return []fuseki.DataOption{fuseki.WithDropMode(mode)}, nil
}

// NamespaceList returns the profile's prefixes sorted by prefix.
func (p Profile) NamespaceList() fuseki.Namespaces {
	prefixes := make([]string, 0, len(p.Namespaces))
	for k := range p.Namespaces {
		prefixes = append(prefixes, k)
	}
	sort.Strings(prefixes)
	ns := make(fuseki.Namespaces, 0, len(prefixes))
	for _, k := range prefixes {
		ns = append(ns, fuseki.Namespace{Prefix: k, URI: p.Namespaces[k]})
	}
	return ns
}
