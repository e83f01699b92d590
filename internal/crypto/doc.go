// Package crypto implements the vault codec that protects the canary
// folder list at rest.
//
// Encryption uses ChaCha20-Poly1305 with:
//   - 32-byte key derived from password via PBKDF2
//   - 12-byte random nonce per encryption operation
//   - Authenticated encryption prevents tampering
//
// Key derivation uses PBKDF2-HMAC-SHA256 with:
//   - 16-byte random salt (stored unencrypted in the blob)
//   - 100,000 iterations
//
// The on-disk layout is positional, with no magic number, version or
// length prefixes:
//
//	salt[16] || nonce[12] || ciphertext+tag[len(plaintext)+16]
//
// Wrong password and corrupted ciphertext are indistinguishable: both
// surface as ErrAuthFailed, so a caller cannot be turned into a
// decryption oracle.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
package crypto
