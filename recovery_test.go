package keyvault

import (
	"bytes"
	"errors"
	"testing"
)

func TestCreateRecoveryKey_RecoverMasterKey(t *testing.T) {
	masterKey := randomKey(t)

	recoveryKey, escrowed, err := CreateRecoveryKey(masterKey)
	if err != nil {
		t.Fatalf("CreateRecoveryKey() error = %v", err)
	}

	if len(recoveryKey) != KeySize {
		t.Errorf("recovery key size = %d, want %d", len(recoveryKey), KeySize)
	}
	if bytes.Equal(recoveryKey, masterKey) {
		t.Error("recovery key equals master key")
	}

	recovered, err := RecoverMasterKey(escrowed, recoveryKey)
	if err != nil {
		t.Fatalf("RecoverMasterKey() error = %v", err)
	}
	if !bytes.Equal(recovered, masterKey) {
		t.Error("recovered master key does not match original")
	}
}

func TestCreateRecoveryKey_UniquePerCall(t *testing.T) {
	masterKey := randomKey(t)

	key1, _, err := CreateRecoveryKey(masterKey)
	if err != nil {
		t.Fatal(err)
	}
	key2, _, err := CreateRecoveryKey(masterKey)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(key1, key2) {
		t.Error("two CreateRecoveryKey calls produced the same key")
	}
}

func TestCreateRecoveryKey_InvalidMasterKey(t *testing.T) {
	_, _, err := CreateRecoveryKey([]byte("short"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("CreateRecoveryKey() error = %v, want ErrInvalidInput", err)
	}
}

func TestRecoverMasterKey_WrongRecoveryKey(t *testing.T) {
	masterKey := randomKey(t)
	otherKey := randomKey(t)

	_, escrowed, err := CreateRecoveryKey(masterKey)
	if err != nil {
		t.Fatal(err)
	}

	_, err = RecoverMasterKey(escrowed, otherKey)
	if !errors.Is(err, ErrAuthentication) {
		t.Errorf("RecoverMasterKey() error = %v, want ErrAuthentication", err)
	}
}

func TestRecoverMasterKey_TamperedEscrow(t *testing.T) {
	masterKey := randomKey(t)

	recoveryKey, escrowed, err := CreateRecoveryKey(masterKey)
	if err != nil {
		t.Fatal(err)
	}

	escrowed.Ciphertext[0] ^= 0x01

	_, err = RecoverMasterKey(escrowed, recoveryKey)
	if !errors.Is(err, ErrAuthentication) {
		t.Errorf("RecoverMasterKey() error = %v, want ErrAuthentication", err)
	}
}

// TestRecovery_AfterPasswordChange exercises the flow recovery exists for:
// the user escrows the master key, loses the password, and recovers access
// to vault data without it.
func TestRecovery_AfterPasswordChange(t *testing.T) {
	password := []byte("forgotten password")
	salt := bytes.Repeat([]byte{0x33}, SaltSize)

	masterKey, err := DeriveMasterKey(password, salt, fastParams)
	if err != nil {
		t.Fatal(err)
	}

	vaultKey, wrappedVaultKey, err := CreateVaultKey(masterKey)
	if err != nil {
		t.Fatal(err)
	}
	secret, err := EncryptSecret("still here", vaultKey)
	if err != nil {
		t.Fatal(err)
	}

	recoveryKey, escrowed, err := CreateRecoveryKey(masterKey)
	if err != nil {
		t.Fatal(err)
	}

	// The password is gone. The recovery key alone restores the chain.
	recovered, err := RecoverMasterKey(escrowed, recoveryKey)
	if err != nil {
		t.Fatal(err)
	}
	vaultKey2, err := DecryptVaultKey(wrappedVaultKey, recovered)
	if err != nil {
		t.Fatal(err)
	}
	value, err := DecryptSecret(secret, vaultKey2)
	if err != nil {
		t.Fatal(err)
	}
	if value != "still here" {
		t.Errorf("recovered secret = %q, want %q", value, "still here")
	}
}
