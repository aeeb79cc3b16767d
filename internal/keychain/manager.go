// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain keeps Fuseki passwords in the OS credential store, one
// entry per configuration profile. Passwords never reach the config file.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	"fuseki-manager/internal/xdg"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "fuseki-manager"

// ErrNoPassword is returned when a profile has no stored password.
var ErrNoPassword = errors.New("no password stored for profile")

// Manager provides thread-safe operations on the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager creates a keychain manager backed by the OS keyring.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return NewManagerWithRing(ring), nil
}

// NewManagerWithRing wraps an already opened keyring.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the global keychain manager instance.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}
	return globalManager, nil
}

// openRing opens the OS keyring with the platform's native backends. Linux
// falls back to an encrypted file in the XDG state directory.
func openRing() (keyring.Keyring, error) {
	cfg := keyring.Config{
		ServiceName: ServiceName,
		PassPrefix:  ServiceName,
	}

	switch runtime.GOOS {
	case "darwin":
		cfg.AllowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		cfg.AllowedBackends = []keyring.BackendType{keyring.WinCredBackend}
		cfg.WinCredPrefix = ServiceName
	default:
		dir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
		cfg.LibSecretCollectionName = "login"
		cfg.KWalletAppID = ServiceName
		cfg.KWalletFolder = ServiceName
		cfg.FileDir = dir
		cfg.FilePasswordFunc = keyring.TerminalPrompt
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. Install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}
	return ring, nil
}

func passwordKey(profile string) string {
	return "password:" + profile
}

// SavePassword stores the password of profile.
func (m *Manager) SavePassword(profile, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{
		Key:         passwordKey(profile),
		Data:        []byte(password),
		Label:       ServiceName + " " + profile,
		Description: "Fuseki password",
	})
}

// LoadPassword retrieves the password of profile. A missing entry yields ErrNoPassword.
func (m *Manager) LoadPassword(profile string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(passwordKey(profile))
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNoPassword
		}
		return "", err
	}
	if len(it.Data) == 0 {
		return "", ErrNoPassword
	}
	return string(it.Data), nil
}

// DeletePassword removes the password of profile. Deleting a missing entry is not an error.
func (m *Manager) DeletePassword(profile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Remove(passwordKey(profile)); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
