package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	engine, err := NewSecretBoxEngine(key)
	require.NoError(t, err)

	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	sealed, err := engine.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEmpty(t, sealed.Ciphertext)

	recovered, err := engine.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, recovered)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	engine, err := NewSecretBoxEngine(key)
	require.NoError(t, err)

	sealed, err := engine.Encrypt([]byte("sensitive document body"))
	require.NoError(t, err)

	sealed.Ciphertext[0] ^= 0xFF

	_, err = engine.Decrypt(sealed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERR_603_ENCRYPTION_INVALID_MAC")
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	key1, err := GenerateKey()
	require.NoError(t, err)
	key2, err := GenerateKey()
	require.NoError(t, err)

	engine1, err := NewSecretBoxEngine(key1)
	require.NoError(t, err)
	engine2, err := NewSecretBoxEngine(key2)
	require.NoError(t, err)

	sealed, err := engine1.Encrypt([]byte("top secret"))
	require.NoError(t, err)

	_, err = engine2.Decrypt(sealed)
	require.Error(t, err)
}

func TestNewSecretBoxEngineRejectsWrongKeySize(t *testing.T) {
	_, err := NewSecretBoxEngine([]byte("too short"))
	require.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	engine, err := NewSecretBoxEngine(key)
	require.NoError(t, err)

	salt := make([]byte, SaltSize)
	for i := range salt {
		salt[i] = byte(i)
	}

	hash := engine.HashPassword("correct horse battery staple", salt)
	assert.True(t, engine.VerifyPassword("correct horse battery staple", salt, hash))
	assert.False(t, engine.VerifyPassword("wrong password", salt, hash))
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	salt := []byte("0123456789abcdef0123456789abcdef")
	k1 := DeriveKey([]byte("password"), salt)
	k2 := DeriveKey([]byte("password"), salt)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, KeySize)
}

func TestSealedMarshalUnmarshalRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	engine, err := NewSecretBoxEngine(key)
	require.NoError(t, err)

	sealed, err := engine.Encrypt([]byte("roundtrip via blob framing"))
	require.NoError(t, err)

	blob := sealed.Marshal()
	parsed, err := UnmarshalSealed(blob)
	require.NoError(t, err)

	recovered, err := engine.Decrypt(parsed)
	require.NoError(t, err)
	assert.Equal(t, []byte("roundtrip via blob framing"), recovered)
}

func TestUnmarshalSealedRejectsShortBlob(t *testing.T) {
	_, err := UnmarshalSealed([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestUnmarshalSealedRejectsUnknownVersion(t *testing.T) {
	blob := make([]byte, 1+NonceSize+TagSize)
	blob[0] = 0x99
	_, err := UnmarshalSealed(blob)
	require.Error(t, err)
}

func TestSecureZero(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	SecureZero(buf)
	for _, b := range buf {
		assert.Equal(t, byte(0), b)
	}
}
