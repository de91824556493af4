// Package keyvault implements the client-side key management core of the
// PassBox zero-knowledge secrets manager.
//
// All encryption and decryption happens on the client. The server only ever
// stores encrypted blobs and public keys; plaintext secrets and the keys that
// protect them never leave the caller's process. The package is a pure,
// stateless toolkit: every function takes explicit inputs and returns owned
// buffers, with no global state and no I/O.
//
// Basic usage:
//
//	salt, err := keyvault.GenerateSalt()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Derive the master key from the user's password.
//	masterKey, err := keyvault.DeriveMasterKey([]byte(password), salt, keyvault.DefaultParams())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer keyvault.Zeroize(masterKey)
//
//	// Create a vault key, wrapped under the master key for storage.
//	vaultKey, wrapped, err := keyvault.CreateVaultKey(masterKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer keyvault.Zeroize(vaultKey)
//
//	// Encrypt a secret value under the vault key.
//	blob, err := keyvault.EncryptSecret("hunter2", vaultKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Decryption failures are deliberately opaque: a wrong key and a tampered
// blob both produce an AuthenticationError that does not say which one it
// was. Check error classes with errors.Is against ErrAuthentication and
// ErrInvalidInput.
package keyvault
