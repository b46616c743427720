package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "aide"
	keyringUser    = "gemini-api-key"

	// EnvAPIKey overrides the keyring when set.
	EnvAPIKey = "GEMINI_API_KEY"
)

// ErrNoAPIKey is returned when no key is found anywhere.
var ErrNoAPIKey = errors.New("no Gemini API key configured (set GEMINI_API_KEY or run `aide config set-key`)")

// ResolveAPIKey finds the API key: environment first, then the OS keyring.
// If the config file still carries a plaintext key it is migrated into the
// keyring and scrubbed from disk.
func ResolveAPIKey(cfg *Config, path string) (string, error) {
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key, nil
	}

	// Self-heal: a key left in the yaml moves to the keyring.
	if cfg.APIKey != "" {
		key := cfg.APIKey
		if err := StoreAPIKey(key); err == nil {
			cfg.APIKey = ""
			_ = cfg.Save(path)
		}
		return key, nil
	}

	key, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoAPIKey
		}
		return "", fmt.Errorf("reading keyring: %w", err)
	}
	return key, nil
}

// StoreAPIKey writes the key into the OS keyring.
func StoreAPIKey(key string) error {
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("storing key in keyring: %w", err)
	}
	return nil
}

// DeleteAPIKey removes the key from the OS keyring.
func DeleteAPIKey() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting key from keyring: %w", err)
	}
	return nil
}
