package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	keyvault "github.com/passbox/keyvault-go"
)

// errorReader always fails, for exercising stdin read errors.
type errorReader struct{}

func (errorReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

// runCommand executes one helper command in-process with the given stdin
// payload and returns captured stdout.
func runCommand(t *testing.T, stdin any, args ...string) (string, error) {
	t.Helper()

	var in bytes.Buffer
	if stdin != nil {
		if err := json.NewEncoder(&in).Encode(stdin); err != nil {
			t.Fatalf("encode stdin: %v", err)
		}
	}

	var out bytes.Buffer
	cfg := &Config{
		Stdin:  &in,
		Stdout: &out,
		Stderr: &bytes.Buffer{},
	}
	err := run(append([]string{"testhelper"}, args...), cfg)
	return out.String(), err
}

func decodeOutput(t *testing.T, data string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(data), v); err != nil {
		t.Fatalf("decode output %q: %v", data, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Stdin != os.Stdin {
		t.Error("DefaultConfig().Stdin should be os.Stdin")
	}
	if cfg.Stdout != os.Stdout {
		t.Error("DefaultConfig().Stdout should be os.Stdout")
	}
	if cfg.Stderr != os.Stderr {
		t.Error("DefaultConfig().Stderr should be os.Stderr")
	}
}

func TestRun_MissingCommand(t *testing.T) {
	err := run([]string{"testhelper"}, &Config{Stdout: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "usage") {
		t.Errorf("run without command = %v, want usage error", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run([]string{"testhelper", "bogus"}, &Config{Stdout: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("run with unknown command = %v, want unknown command error", err)
	}
}

func TestRun_ReadError(t *testing.T) {
	cfg := &Config{Stdin: errorReader{}, Stdout: &bytes.Buffer{}}

	err := run([]string{"testhelper", "encrypt"}, cfg)
	if err == nil || !strings.Contains(err.Error(), "read stdin") {
		t.Errorf("run with failing stdin = %v, want read stdin error", err)
	}
}

func TestRun_InvalidJSON(t *testing.T) {
	cfg := &Config{Stdin: strings.NewReader("not valid json"), Stdout: &bytes.Buffer{}}

	err := run([]string{"testhelper", "encrypt"}, cfg)
	if err == nil || !strings.Contains(err.Error(), "parse request") {
		t.Errorf("run with invalid JSON = %v, want parse request error", err)
	}
}

func TestRunDeriveMasterKey_Deterministic(t *testing.T) {
	req := &request{
		Password: "correct horse",
		Salt:     keyvault.Base64Bytes(bytes.Repeat([]byte{0x42}, keyvault.SaltSize)),
		Params:   &keyvault.Params{Iterations: 1, MemoryKB: 1024, Parallelism: 1},
	}

	out1, err := runCommand(t, req, "derive-master-key")
	if err != nil {
		t.Fatalf("derive-master-key error = %v", err)
	}
	out2, err := runCommand(t, req, "derive-master-key")
	if err != nil {
		t.Fatalf("derive-master-key error = %v", err)
	}

	if out1 != out2 {
		t.Errorf("derive-master-key not deterministic: %q vs %q", out1, out2)
	}

	var resp struct {
		MasterKey keyvault.Base64Bytes `json:"masterKey"`
	}
	decodeOutput(t, out1, &resp)
	if len(resp.MasterKey) != keyvault.KeySize {
		t.Errorf("master key length = %d, want %d", len(resp.MasterKey), keyvault.KeySize)
	}
}

func TestRunEncryptDecrypt_RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x07}, keyvault.KeySize)
	plaintext := []byte("helper round trip")

	out, err := runCommand(t, &request{
		Key:       keyvault.Base64Bytes(key),
		Plaintext: keyvault.Base64Bytes(plaintext),
	}, "encrypt")
	if err != nil {
		t.Fatalf("encrypt error = %v", err)
	}

	var blob keyvault.EncryptedBlob
	decodeOutput(t, out, &blob)
	if blob.Algorithm != keyvault.AlgorithmAESGCM {
		t.Errorf("algorithm = %q, want %q", blob.Algorithm, keyvault.AlgorithmAESGCM)
	}

	out, err = runCommand(t, &request{
		Key:  keyvault.Base64Bytes(key),
		Blob: &blob,
	}, "decrypt")
	if err != nil {
		t.Fatalf("decrypt error = %v", err)
	}

	var resp struct {
		Plaintext keyvault.Base64Bytes `json:"plaintext"`
	}
	decodeOutput(t, out, &resp)
	if !bytes.Equal(resp.Plaintext, plaintext) {
		t.Errorf("round trip = %q, want %q", resp.Plaintext, plaintext)
	}
}

func TestRunDecrypt_WrongKey(t *testing.T) {
	key := bytes.Repeat([]byte{0x07}, keyvault.KeySize)

	out, err := runCommand(t, &request{
		Key:       keyvault.Base64Bytes(key),
		Plaintext: keyvault.Base64Bytes([]byte("secret")),
	}, "encrypt")
	if err != nil {
		t.Fatalf("encrypt error = %v", err)
	}

	var blob keyvault.EncryptedBlob
	decodeOutput(t, out, &blob)

	wrongKey := bytes.Repeat([]byte{0x08}, keyvault.KeySize)
	_, err = runCommand(t, &request{
		Key:  keyvault.Base64Bytes(wrongKey),
		Blob: &blob,
	}, "decrypt")
	if err == nil || !strings.Contains(err.Error(), "decrypt") {
		t.Errorf("decrypt with wrong key = %v, want decrypt error", err)
	}
}

func TestRunGenerateKeyPair_SharedKeySymmetry(t *testing.T) {
	type keypairResp struct {
		PublicKey  keyvault.Base64Bytes `json:"publicKey"`
		PrivateKey keyvault.Base64Bytes `json:"privateKey"`
	}

	generate := func() keypairResp {
		out, err := runCommand(t, nil, "generate-keypair")
		if err != nil {
			t.Fatalf("generate-keypair error = %v", err)
		}
		var kp keypairResp
		decodeOutput(t, out, &kp)
		if len(kp.PublicKey) != keyvault.PublicKeySize || len(kp.PrivateKey) != keyvault.PrivateKeySize {
			t.Fatalf("key sizes = %d/%d, want %d/%d",
				len(kp.PublicKey), len(kp.PrivateKey), keyvault.PublicKeySize, keyvault.PrivateKeySize)
		}
		return kp
	}

	alice := generate()
	bob := generate()

	derive := func(private, public keyvault.Base64Bytes) string {
		out, err := runCommand(t, &request{PrivateKey: private, PublicKey: public}, "derive-shared-key")
		if err != nil {
			t.Fatalf("derive-shared-key error = %v", err)
		}
		return out
	}

	if ab, ba := derive(alice.PrivateKey, bob.PublicKey), derive(bob.PrivateKey, alice.PublicKey); ab != ba {
		t.Errorf("shared keys differ: %q vs %q", ab, ba)
	}
}

func TestRunFingerprint(t *testing.T) {
	out, err := runCommand(t, nil, "generate-keypair")
	if err != nil {
		t.Fatalf("generate-keypair error = %v", err)
	}
	var kp struct {
		PublicKey keyvault.Base64Bytes `json:"publicKey"`
	}
	decodeOutput(t, out, &kp)

	out, err = runCommand(t, &request{PublicKey: kp.PublicKey}, "fingerprint")
	if err != nil {
		t.Fatalf("fingerprint error = %v", err)
	}

	var resp struct {
		Fingerprint string `json:"fingerprint"`
	}
	decodeOutput(t, out, &resp)
	if !strings.HasPrefix(resp.Fingerprint, "SHA256:") {
		t.Errorf("fingerprint = %q, want SHA256: prefix", resp.Fingerprint)
	}
}

func TestRunVaultKey_RoundTrip(t *testing.T) {
	masterKey := bytes.Repeat([]byte{0x11}, keyvault.KeySize)

	out, err := runCommand(t, &request{Key: keyvault.Base64Bytes(masterKey)}, "create-vault-key")
	if err != nil {
		t.Fatalf("create-vault-key error = %v", err)
	}

	var created struct {
		VaultKey          keyvault.Base64Bytes    `json:"vaultKey"`
		EncryptedVaultKey *keyvault.EncryptedBlob `json:"encryptedVaultKey"`
	}
	decodeOutput(t, out, &created)

	out, err = runCommand(t, &request{
		Key:  keyvault.Base64Bytes(masterKey),
		Blob: created.EncryptedVaultKey,
	}, "decrypt-vault-key")
	if err != nil {
		t.Fatalf("decrypt-vault-key error = %v", err)
	}

	var resp struct {
		VaultKey keyvault.Base64Bytes `json:"vaultKey"`
	}
	decodeOutput(t, out, &resp)
	if !bytes.Equal(resp.VaultKey, created.VaultKey) {
		t.Error("decrypted vault key does not match created vault key")
	}
}

func TestRunWrapUnwrapVaultKey(t *testing.T) {
	generate := func() (pub, priv keyvault.Base64Bytes) {
		out, err := runCommand(t, nil, "generate-keypair")
		if err != nil {
			t.Fatalf("generate-keypair error = %v", err)
		}
		var kp struct {
			PublicKey  keyvault.Base64Bytes `json:"publicKey"`
			PrivateKey keyvault.Base64Bytes `json:"privateKey"`
		}
		decodeOutput(t, out, &kp)
		return kp.PublicKey, kp.PrivateKey
	}

	alicePub, alicePriv := generate()
	bobPub, bobPriv := generate()
	vaultKey := bytes.Repeat([]byte{0x22}, keyvault.KeySize)

	out, err := runCommand(t, &request{
		Key:        keyvault.Base64Bytes(vaultKey),
		PrivateKey: alicePriv,
		PublicKey:  bobPub,
	}, "wrap-vault-key")
	if err != nil {
		t.Fatalf("wrap-vault-key error = %v", err)
	}

	var blob keyvault.EncryptedBlob
	decodeOutput(t, out, &blob)

	out, err = runCommand(t, &request{
		Blob:       &blob,
		PrivateKey: bobPriv,
		PublicKey:  alicePub,
	}, "unwrap-vault-key")
	if err != nil {
		t.Fatalf("unwrap-vault-key error = %v", err)
	}

	var resp struct {
		VaultKey keyvault.Base64Bytes `json:"vaultKey"`
	}
	decodeOutput(t, out, &resp)
	if !bytes.Equal(resp.VaultKey, vaultKey) {
		t.Error("unwrapped vault key does not match original")
	}
}

func TestRunRecovery_RoundTrip(t *testing.T) {
	masterKey := bytes.Repeat([]byte{0x33}, keyvault.KeySize)

	out, err := runCommand(t, &request{Key: keyvault.Base64Bytes(masterKey)}, "create-recovery-key")
	if err != nil {
		t.Fatalf("create-recovery-key error = %v", err)
	}

	var created struct {
		RecoveryKey        keyvault.Base64Bytes    `json:"recoveryKey"`
		EncryptedMasterKey *keyvault.EncryptedBlob `json:"encryptedMasterKey"`
	}
	decodeOutput(t, out, &created)

	out, err = runCommand(t, &request{
		Key:  created.RecoveryKey,
		Blob: created.EncryptedMasterKey,
	}, "recover-master-key")
	if err != nil {
		t.Fatalf("recover-master-key error = %v", err)
	}

	var resp struct {
		MasterKey keyvault.Base64Bytes `json:"masterKey"`
	}
	decodeOutput(t, out, &resp)
	if !bytes.Equal(resp.MasterKey, masterKey) {
		t.Error("recovered master key does not match original")
	}
}
