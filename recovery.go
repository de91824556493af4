package keyvault

import (
	"fmt"

	"github.com/passbox/keyvault-go/internal/crypto"
)

// CreateRecoveryKey generates a fresh random 256-bit recovery key and wraps
// the master key under it. The recovery key is returned for one-time
// display to the user, who stores it out-of-band; the wrapped master key is
// escrowed server-side. There is no third path: losing both the password
// and the recovery key loses the account.
func CreateRecoveryKey(masterKey []byte) (recoveryKey []byte, encryptedMasterKey *EncryptedBlob, err error) {
	if len(masterKey) != KeySize {
		return nil, nil, &InvalidInputError{Param: "masterKey", Reason: fmt.Sprintf("must be %d bytes, got %d", KeySize, len(masterKey))}
	}

	recoveryKey, err = crypto.RandomBytes(KeySize)
	if err != nil {
		return nil, nil, err
	}

	encryptedMasterKey, err = Encrypt(masterKey, recoveryKey)
	if err != nil {
		crypto.Zeroize(recoveryKey)
		return nil, nil, err
	}
	return recoveryKey, encryptedMasterKey, nil
}

// RecoverMasterKey unwraps an escrowed master key using the recovery key,
// enabling account recovery without the original password. A wrong recovery
// key or a tampered blob returns an AuthenticationError.
func RecoverMasterKey(encryptedMasterKey *EncryptedBlob, recoveryKey []byte) ([]byte, error) {
	masterKey, err := decrypt(encryptedMasterKey, recoveryKey, "recover master key")
	if err != nil {
		return nil, err
	}
	if len(masterKey) != KeySize {
		crypto.Zeroize(masterKey)
		return nil, &InvalidInputError{Param: "blob", Reason: fmt.Sprintf("wrapped payload is %d bytes, want a %d-byte master key", len(masterKey), KeySize)}
	}
	return masterKey, nil
}
