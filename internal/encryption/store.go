package encryption

import (
	"bytes"
	"fmt"

	"cookbook-go/internal/cookbook"
)

// EncryptedStore seals every value with an Encryptor before it reaches the
// wrapped Store and opens it again with the unlocked DecryptionContext.
// Keys are stored in plaintext.
type EncryptedStore struct {
	inner cookbook.Store
	enc   cookbook.Encryptor
	dec   cookbook.DecryptionContext
}

var _ cookbook.Store = (*EncryptedStore)(nil)

// NewEncryptedStore wraps inner. dec must come from enc.Unlock.
func NewEncryptedStore(inner cookbook.Store, enc cookbook.Encryptor, dec cookbook.DecryptionContext) *EncryptedStore {
	return &EncryptedStore{inner: inner, enc: enc, dec: dec}
}

func (s *EncryptedStore) Get(key string) ([]byte, error) {
	sealed, err := s.inner.Get(key)
	if err != nil || sealed == nil {
		return nil, err
	}

	var plain bytes.Buffer
	if err := s.dec.Decrypt(bytes.NewReader(sealed), &plain); err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", key, err)
	}
	if plain.Len() == 0 {
		return []byte{}, nil
	}
	return plain.Bytes(), nil
}

func (s *EncryptedStore) Set(key string, value []byte) error {
	return s.SetMany(map[string][]byte{key: value})
}

// SetMany encrypts every value first and hands them to the wrapped store in one call.
func (s *EncryptedStore) SetMany(values map[string][]byte) error {
	sealed := make(map[string][]byte, len(values))
	for key, value := range values {
		var buf bytes.Buffer
		if err := s.enc.Encrypt(bytes.NewReader(value), &buf); err != nil {
			return fmt.Errorf("encrypting %s: %w", key, err)
		}
		sealed[key] = buf.Bytes()
	}
	return s.inner.SetMany(sealed)
}

func (s *EncryptedStore) Delete(key string) error {
	return s.inner.Delete(key)
}

func (s *EncryptedStore) Close() error {
	return s.inner.Close()
}

// Unwrap returns the wrapped store.
func (s *EncryptedStore) Unwrap() cookbook.Store {
	return s.inner
}
