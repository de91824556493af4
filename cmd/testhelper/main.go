// Command testhelper exposes the key management core over JSON on
// stdin/stdout so cross-implementation interoperability suites can drive it
// alongside clients written in other languages. Binary fields travel as
// standard base64.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	keyvault "github.com/passbox/keyvault-go"
)

// Config carries the helper's I/O streams so tests can run commands
// in-process with captured buffers.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// request covers the union of all command inputs; each command reads the
// fields it needs.
type request struct {
	Password   string                  `json:"password,omitempty"`
	Salt       keyvault.Base64Bytes    `json:"salt,omitempty"`
	Params     *keyvault.Params        `json:"params,omitempty"`
	Key        keyvault.Base64Bytes    `json:"key,omitempty"`
	Plaintext  keyvault.Base64Bytes    `json:"plaintext,omitempty"`
	Blob       *keyvault.EncryptedBlob `json:"blob,omitempty"`
	PrivateKey keyvault.Base64Bytes    `json:"privateKey,omitempty"`
	PublicKey  keyvault.Base64Bytes    `json:"publicKey,omitempty"`
}

func run(args []string, cfg *Config) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: testhelper <command>")
	}

	switch args[1] {
	case "derive-master-key":
		return runDeriveMasterKey(cfg)
	case "encrypt":
		return runEncrypt(cfg)
	case "decrypt":
		return runDecrypt(cfg)
	case "generate-keypair":
		return runGenerateKeyPair(cfg)
	case "derive-shared-key":
		return runDeriveSharedKey(cfg)
	case "fingerprint":
		return runFingerprint(cfg)
	case "create-vault-key":
		return runCreateVaultKey(cfg)
	case "decrypt-vault-key":
		return runDecryptVaultKey(cfg)
	case "wrap-vault-key":
		return runWrapVaultKey(cfg)
	case "unwrap-vault-key":
		return runUnwrapVaultKey(cfg)
	case "create-recovery-key":
		return runCreateRecoveryKey(cfg)
	case "recover-master-key":
		return runRecoverMasterKey(cfg)
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func readRequest(cfg *Config) (*request, error) {
	data, err := io.ReadAll(cfg.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	var req request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	return &req, nil
}

func emit(cfg *Config, v any) error {
	if err := json.NewEncoder(cfg.Stdout).Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func runDeriveMasterKey(cfg *Config) error {
	req, err := readRequest(cfg)
	if err != nil {
		return err
	}

	params := keyvault.DefaultParams()
	if req.Params != nil {
		params = *req.Params
	}

	masterKey, err := keyvault.DeriveMasterKey([]byte(req.Password), req.Salt, params)
	if err != nil {
		return fmt.Errorf("derive master key: %w", err)
	}

	return emit(cfg, struct {
		MasterKey keyvault.Base64Bytes `json:"masterKey"`
	}{masterKey})
}

func runEncrypt(cfg *Config) error {
	req, err := readRequest(cfg)
	if err != nil {
		return err
	}

	blob, err := keyvault.Encrypt(req.Plaintext, req.Key)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	return emit(cfg, blob)
}

func runDecrypt(cfg *Config) error {
	req, err := readRequest(cfg)
	if err != nil {
		return err
	}

	plaintext, err := keyvault.Decrypt(req.Blob, req.Key)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}

	return emit(cfg, struct {
		Plaintext keyvault.Base64Bytes `json:"plaintext"`
	}{plaintext})
}

func runGenerateKeyPair(cfg *Config) error {
	kp, err := keyvault.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}

	return emit(cfg, struct {
		PublicKey  keyvault.Base64Bytes `json:"publicKey"`
		PrivateKey keyvault.Base64Bytes `json:"privateKey"`
	}{kp.PublicKey, kp.PrivateKey})
}

func runDeriveSharedKey(cfg *Config) error {
	req, err := readRequest(cfg)
	if err != nil {
		return err
	}

	sharedKey, err := keyvault.DeriveSharedKey(req.PrivateKey, req.PublicKey)
	if err != nil {
		return fmt.Errorf("derive shared key: %w", err)
	}

	return emit(cfg, struct {
		SharedKey keyvault.Base64Bytes `json:"sharedKey"`
	}{sharedKey})
}

func runFingerprint(cfg *Config) error {
	req, err := readRequest(cfg)
	if err != nil {
		return err
	}

	fp, err := keyvault.PublicKeyFingerprint(req.PublicKey)
	if err != nil {
		return fmt.Errorf("fingerprint: %w", err)
	}

	return emit(cfg, struct {
		Fingerprint string `json:"fingerprint"`
	}{fp})
}

func runCreateVaultKey(cfg *Config) error {
	req, err := readRequest(cfg)
	if err != nil {
		return err
	}

	vaultKey, wrapped, err := keyvault.CreateVaultKey(req.Key)
	if err != nil {
		return fmt.Errorf("create vault key: %w", err)
	}

	return emit(cfg, struct {
		VaultKey          keyvault.Base64Bytes    `json:"vaultKey"`
		EncryptedVaultKey *keyvault.EncryptedBlob `json:"encryptedVaultKey"`
	}{vaultKey, wrapped})
}

func runDecryptVaultKey(cfg *Config) error {
	req, err := readRequest(cfg)
	if err != nil {
		return err
	}

	vaultKey, err := keyvault.DecryptVaultKey(req.Blob, req.Key)
	if err != nil {
		return fmt.Errorf("decrypt vault key: %w", err)
	}

	return emit(cfg, struct {
		VaultKey keyvault.Base64Bytes `json:"vaultKey"`
	}{vaultKey})
}

func runWrapVaultKey(cfg *Config) error {
	req, err := readRequest(cfg)
	if err != nil {
		return err
	}

	blob, err := keyvault.WrapVaultKeyForSharing(req.Key, req.PrivateKey, req.PublicKey)
	if err != nil {
		return fmt.Errorf("wrap vault key: %w", err)
	}
	return emit(cfg, blob)
}

func runUnwrapVaultKey(cfg *Config) error {
	req, err := readRequest(cfg)
	if err != nil {
		return err
	}

	vaultKey, err := keyvault.UnwrapSharedVaultKey(req.Blob, req.PrivateKey, req.PublicKey)
	if err != nil {
		return fmt.Errorf("unwrap vault key: %w", err)
	}

	return emit(cfg, struct {
		VaultKey keyvault.Base64Bytes `json:"vaultKey"`
	}{vaultKey})
}

func runCreateRecoveryKey(cfg *Config) error {
	req, err := readRequest(cfg)
	if err != nil {
		return err
	}

	recoveryKey, escrowed, err := keyvault.CreateRecoveryKey(req.Key)
	if err != nil {
		return fmt.Errorf("create recovery key: %w", err)
	}

	return emit(cfg, struct {
		RecoveryKey        keyvault.Base64Bytes    `json:"recoveryKey"`
		EncryptedMasterKey *keyvault.EncryptedBlob `json:"encryptedMasterKey"`
	}{recoveryKey, escrowed})
}

func runRecoverMasterKey(cfg *Config) error {
	req, err := readRequest(cfg)
	if err != nil {
		return err
	}

	masterKey, err := keyvault.RecoverMasterKey(req.Blob, req.Key)
	if err != nil {
		return fmt.Errorf("recover master key: %w", err)
	}

	return emit(cfg, struct {
		MasterKey keyvault.Base64Bytes `json:"masterKey"`
	}{masterKey})
}
