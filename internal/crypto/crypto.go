package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 16                         // PBKDF2 salt size in bytes
	KeySize    = chacha20poly1305.KeySize   // ChaCha20-Poly1305 key size (32)
	NonceSize  = chacha20poly1305.NonceSize // AEAD nonce size (12)
	TagSize    = chacha20poly1305.Overhead  // Poly1305 authentication tag size (16)
	Iterations = 100000                     // PBKDF2 iteration count
)

var (
	ErrInvalidBlob = errors.New("invalid encrypted blob")
	ErrAuthFailed  = errors.New("authentication failed")
)

// Blob is the encrypted folder-list container. Salt and nonce travel in
// the clear next to the ciphertext; only the password stays secret.
type Blob struct {
	Salt              [SaltSize]byte
	Nonce             [NonceSize]byte
	CiphertextWithTag []byte
}

// DeriveKey derives an AEAD key from a password and salt using
// PBKDF2-HMAC-SHA256. Deterministic for identical inputs.
func DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)
}

// Encrypt seals plaintext under a key derived from the password. A fresh
// salt and nonce are generated on every call; reusing a nonce under the
// same key would break confidentiality, so they are never cached.
// Empty plaintext is valid and yields a tag-only ciphertext.
func Encrypt(plaintext, password []byte) (*Blob, error) {
	blob := &Blob{}
	if _, err := rand.Read(blob.Salt[:]); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	if _, err := rand.Read(blob.Nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	key := DeriveKey(password, blob.Salt[:])
	defer ClearBytes(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	blob.CiphertextWithTag = aead.Seal(nil, blob.Nonce[:], plaintext, nil)
	return blob, nil
}

// Decrypt re-derives the key from the blob's salt and the supplied
// password, opens the ciphertext and verifies the tag. A wrong password
// and a corrupted blob are indistinguishable: both return ErrAuthFailed.
func Decrypt(blob *Blob, password []byte) ([]byte, error) {
	if len(blob.CiphertextWithTag) < TagSize {
		return nil, ErrInvalidBlob
	}

	key := DeriveKey(password, blob.Salt[:])
	defer ClearBytes(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, blob.Nonce[:], blob.CiphertextWithTag, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

// Marshal serializes the blob in the fixed positional layout
// salt || nonce || ciphertext+tag.
func (b *Blob) Marshal() []byte {
	out := make([]byte, 0, SaltSize+NonceSize+len(b.CiphertextWithTag))
	out = append(out, b.Salt[:]...)
	out = append(out, b.Nonce[:]...)
	out = append(out, b.CiphertextWithTag...)
	return out
}

// UnmarshalBlob parses the fixed positional layout. The decoder relies on
// fixed offsets for salt and nonce and treats the remainder as
// ciphertext+tag, which must carry at least the authentication tag.
func UnmarshalBlob(data []byte) (*Blob, error) {
	if len(data) < SaltSize+NonceSize+TagSize {
		return nil, ErrInvalidBlob
	}
	blob := &Blob{}
	copy(blob.Salt[:], data[:SaltSize])
	copy(blob.Nonce[:], data[SaltSize:SaltSize+NonceSize])
	blob.CiphertextWithTag = append([]byte(nil), data[SaltSize+NonceSize:]...)
	return blob, nil
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// GenerateRandom generates n random bytes
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}
