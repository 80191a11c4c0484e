package testutil

import (
	"testing"

	"cookbook-go/internal/cookbook"
	"cookbook-go/internal/encryption"
)

// NewEncryptedStore wraps inner with the deterministic test encryptor.
func NewEncryptedStore(t *testing.T, inner cookbook.Store) cookbook.Store {
	t.Helper()
	enc := encryption.NewTestEncryptor()
	dec, err := enc.Unlock("passphrase")
	if err != nil {
		t.Fatalf("unlocking test encryptor: %v", err)
	}
	return encryption.NewEncryptedStore(inner, enc, dec)
}
