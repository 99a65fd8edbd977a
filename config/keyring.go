package config

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the OS keyring service the vault passphrase is stored under.
	KeyringService = "ossfm"
	keyringUser    = "vault"
)

// Passphrase returns the vault passphrase from PassphraseEnv, or from the OS keyring
// when the variable is empty. A missing keyring entry yields an empty string.
func Passphrase() string {
	if passphrase := os.Getenv(PassphraseEnv); passphrase != "" {
		return passphrase
	}

	passphrase, err := keyring.Get(KeyringService, keyringUser)
	if err != nil {
		return ""
	}
	return passphrase
}

// RememberPassphrase stores passphrase in the OS keyring.
func RememberPassphrase(passphrase string) error {
	if err := keyring.Set(KeyringService, keyringUser, passphrase); err != nil {
		return fmt.Errorf("failed to store passphrase in keyring: %w", err)
	}
	return nil
}

// ForgetPassphrase removes a stored passphrase. A missing entry is not an error.
func ForgetPassphrase() error {
	if err := keyring.Delete(KeyringService, keyringUser); err != nil && !stderrors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to remove passphrase from keyring: %w", err)
	}
	return nil
}
