// Package keyring provides access to the system keychain for storing API keys.
package keyring

import (
	"errors"
	"fmt"

	"github.com/alkime/jailu/internal/llm"
	"github.com/zalando/go-keyring"
)

const serviceName = "jailu"

// ErrNotFound is returned when no key is stored for a provider.
var ErrNotFound = keyring.ErrNotFound

// entry returns the keychain entry name for a provider's API key.
func entry(p llm.Provider) string {
	return string(p) + "-api-key"
}

// Get retrieves a provider's API key from the system keychain.
func Get(p llm.Provider) (string, error) {
	value, err := keyring.Get(serviceName, entry(p))
	if err != nil {
		return "", fmt.Errorf("failed to get %s key from keychain: %w", p, err)
	}

	return value, nil
}

// Set stores a provider's API key in the system keychain.
func Set(p llm.Provider, value string) error {
	if value == "" {
		return errors.New("API key must not be empty")
	}
	if err := keyring.Set(serviceName, entry(p), value); err != nil {
		return fmt.Errorf("failed to set %s key in keychain: %w", p, err)
	}

	return nil
}

// Delete removes a provider's API key from the system keychain.
func Delete(p llm.Provider) error {
	if err := keyring.Delete(serviceName, entry(p)); err != nil {
		return fmt.Errorf("failed to delete %s key from keychain: %w", p, err)
	}

	return nil
}

// IsSet checks if a provider's API key exists in the keychain.
func IsSet(p llm.Provider) bool {
	_, err := keyring.Get(serviceName, entry(p))

	return err == nil
}

// Resolve fills in settings.APIKey from the keychain when it is empty.
// A missing entry is not an error: the client reports it on first use.
func Resolve(settings llm.Settings) llm.Settings {
	if settings.Configured() {
		return settings
	}
	if value, err := Get(settings.Provider); err == nil {
		settings.APIKey = value
	}

	return settings
}
