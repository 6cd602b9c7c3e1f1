// Package crypto implements the encryption collaborator docmind's ingestion
// pipeline calls when a document's content is stored encrypted at rest.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"github.com/docmind/docmind/internal/xerrors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the secretbox key size in bytes.
	KeySize = 32

	// NonceSize is the XSalsa20-Poly1305 nonce size in bytes.
	NonceSize = 24

	// TagSize is the Poly1305 authentication tag size in bytes.
	TagSize = secretbox.Overhead

	// SaltSize is the Argon2i salt size in bytes.
	SaltSize = 32

	// blobVersion is the leading byte of an encrypted blob, reserved for
	// future format changes.
	blobVersion = 0x01
)

// argon2Params are the Argon2i parameters used to derive keys from
// passwords. Chosen for interactive use (a few hundred ms on commodity
// hardware) rather than server-side batch hashing.
var argon2Params = struct {
	time    uint32
	memory  uint32
	threads uint8
}{time: 3, memory: 64 * 1024, threads: 4}

// Sealed is the output of Encrypt: nonce and ciphertext kept apart so
// callers can persist them in separate columns if they choose to.
type Sealed struct {
	Ciphertext []byte
	Nonce      [NonceSize]byte
}

// SecretBoxEngine implements docmind's encryption collaborator using
// XSalsa20-Poly1305 (golang.org/x/crypto/nacl/secretbox) for AEAD and
// Argon2i (golang.org/x/crypto/argon2) for password-based key derivation.
type SecretBoxEngine struct {
	key [KeySize]byte
}

// NewSecretBoxEngine constructs an engine from a raw 32-byte key.
func NewSecretBoxEngine(key []byte) (*SecretBoxEngine, error) {
	if len(key) != KeySize {
		return nil, xerrors.New(xerrors.ErrCodeEncryptionKeyMissing,
			fmt.Sprintf("encryption key must be %d bytes, got %d", KeySize, len(key)), nil)
	}
	e := &SecretBoxEngine{}
	copy(e.key[:], key)
	return e, nil
}

// GenerateKey returns a fresh random 32-byte key suitable for NewSecretBoxEngine.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeInternal, err)
	}
	return key, nil
}

// DeriveKey derives a 32-byte key from a password and salt using Argon2i.
// The salt should be SaltSize random bytes generated once per identity and
// stored alongside the ciphertext (it is not secret).
func DeriveKey(password, salt []byte) []byte {
	return argon2.Key(password, salt, argon2Params.time, argon2Params.memory, argon2Params.threads, KeySize)
}

// Encrypt seals plaintext under the engine's key with a freshly generated
// random nonce.
func (e *SecretBoxEngine) Encrypt(plaintext []byte) (*Sealed, error) {
	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrCodeInternal, err)
	}

	ciphertext := secretbox.Seal(nil, plaintext, &nonce, &e.key)
	return &Sealed{Ciphertext: ciphertext, Nonce: nonce}, nil
}

// Decrypt opens a Sealed value. Returns ENCRYPTION_INVALID_MAC without
// leaking any plaintext when the ciphertext has been tampered with or the
// key is wrong.
func (e *SecretBoxEngine) Decrypt(s *Sealed) ([]byte, error) {
	plaintext, ok := secretbox.Open(nil, s.Ciphertext, &s.Nonce, &e.key)
	if !ok {
		return nil, xerrors.New(xerrors.ErrCodeEncryptionInvalidMAC, "ciphertext failed authentication", nil)
	}
	return plaintext, nil
}

// HashPassword derives a verifier for password under salt. The returned
// bytes are safe to store; VerifyPassword recomputes and compares them in
// constant time.
func (e *SecretBoxEngine) HashPassword(password string, salt []byte) []byte {
	return DeriveKey([]byte(password), salt)
}

// VerifyPassword reports whether password matches a hash produced by
// HashPassword with the same salt, without a timing side channel.
func (e *SecretBoxEngine) VerifyPassword(password string, salt, hash []byte) bool {
	candidate := DeriveKey([]byte(password), salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}

// SecureZero overwrites buf with zero bytes in place. Best-effort: Go's
// garbage collector may have already copied the underlying data elsewhere,
// but this closes the obvious window where a caller retains a reference.
func SecureZero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// Marshal packs a Sealed value into a single blob: version(1) || nonce(24) || ciphertext.
func (s *Sealed) Marshal() []byte {
	out := make([]byte, 1+NonceSize+len(s.Ciphertext))
	out[0] = blobVersion
	copy(out[1:1+NonceSize], s.Nonce[:])
	copy(out[1+NonceSize:], s.Ciphertext)
	return out
}

// UnmarshalSealed parses a blob produced by Sealed.Marshal.
func UnmarshalSealed(blob []byte) (*Sealed, error) {
	if len(blob) < 1+NonceSize+TagSize {
		return nil, xerrors.New(xerrors.ErrCodeEncryptionInvalidMAC, "encrypted blob too short", nil)
	}
	if blob[0] != blobVersion {
		return nil, xerrors.New(xerrors.ErrCodeEncryptionInvalidMAC, fmt.Sprintf("unsupported blob version %d", blob[0]), nil)
	}
	s := &Sealed{Ciphertext: append([]byte(nil), blob[1+NonceSize:]...)}
	copy(s.Nonce[:], blob[1:1+NonceSize])
	return s, nil
}
