package config

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/data/errors"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// PassphraseEnv names the environment variable holding the vault passphrase.
const PassphraseEnv = "OSSFM_PASSPHRASE"

const (
	vaultVersion = 1
	saltSize     = 16
	nonceSize    = 24
	keySize      = 32

	// scrypt parameters recommended for interactive logins
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// vaultFile is the on-disk envelope of an encrypted store configuration.
type vaultFile struct {
	Version int    `json:"version"`
	Salt    []byte `json:"salt"`
	Box     []byte `json:"box"`
}

// Seal encrypts cfg with a key derived from passphrase.
func Seal(cfg *StoreConfig, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, errors.Invalid("empty passphrase for", "vault")
	}

	plain, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode store configuration: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	box := secretbox.Seal(nonce[:], plain, &nonce, key)
	return json.Marshal(&vaultFile{
		Version: vaultVersion,
		Salt:    salt,
		Box:     box,
	})
}

// Unseal decrypts a vault produced by Seal.
func Unseal(sealed []byte, passphrase string) (*StoreConfig, error) {
	var vf vaultFile
	if err := json.Unmarshal(sealed, &vf); err != nil {
		return nil, fmt.Errorf("failed to decode vault: %w", err)
	}
	if vf.Version != vaultVersion {
		return nil, fmt.Errorf("failed to decode vault: unsupported version %d", vf.Version)
	}
	if len(vf.Box) < nonceSize {
		return nil, fmt.Errorf("failed to decode vault: %w", data.ErrInvalid)
	}

	key, err := deriveKey(passphrase, vf.Salt)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	copy(nonce[:], vf.Box[:nonceSize])

	plain, ok := secretbox.Open(nil, vf.Box[nonceSize:], &nonce, key)
	if !ok {
		return nil, errors.Invalid("wrong passphrase or corrupted file for", "vault")
	}

	var cfg StoreConfig
	if err := json.Unmarshal(plain, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode store configuration: %w", err)
	}
	return &cfg, nil
}

func deriveKey(passphrase string, salt []byte) (*[keySize]byte, error) {
	derived, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive vault key: %w", err)
	}

	var key [keySize]byte
	copy(key[:], derived)
	return &key, nil
}

// VaultSource reads the store configuration from an encrypted file. Every Load
// re-reads and decrypts the file, so changes written by Save are picked up immediately.
type VaultSource struct {
	path       string
	passphrase func() string
}

// NewVaultSource creates a vault at path. The passphrase is resolved on each access,
// using Passphrase when passphrase is nil.
func NewVaultSource(path string, passphrase func() string) *VaultSource {
	if passphrase == nil {
		passphrase = Passphrase
	}

	return &VaultSource{
		path:       path,
		passphrase: passphrase,
	}
}

func (vs *VaultSource) Path() string {
	return vs.path
}

func (vs *VaultSource) Load(ctx context.Context) (*StoreConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sealed, err := os.ReadFile(vs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigMissing("vault '" + vs.path + "' does not exist")
		}
		return nil, fmt.Errorf("failed to read vault '%s': %w", vs.path, err)
	}

	passphrase := vs.passphrase()
	if passphrase == "" {
		return nil, errors.ConfigMissing(PassphraseEnv + " is not set and no passphrase is stored in the keyring")
	}

	return Unseal(sealed, passphrase)
}

// Save encrypts cfg and replaces the vault file.
func (vs *VaultSource) Save(ctx context.Context, cfg *StoreConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sealed, err := Seal(cfg, vs.passphrase())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(vs.path), 0o700); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}

	tmp := vs.path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return fmt.Errorf("failed to write vault '%s': %w", vs.path, err)
	}
	if err := os.Rename(tmp, vs.path); err != nil {
		return fmt.Errorf("failed to replace vault '%s': %w", vs.path, err)
	}
	return nil
}
