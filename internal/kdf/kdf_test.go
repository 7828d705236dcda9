package kdf_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/filecrypt/internal/kdf"
)

func TestDerive_KnownAnswer(t *testing.T) {
	t.Parallel()

	deriver := kdf.Deriver{Algorithm: kdf.PBKDF2SHA256, Iterations: 1}

	key := deriver.Derive("password", []byte("salt"))

	assert.Equal(t,
		"120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b",
		hex.EncodeToString(key[:]))
}

// The default parameters must keep producing the keys that existing
// artifacts were encrypted with.
func TestDerive_DefaultParameters(t *testing.T) {
	t.Parallel()

	key := kdf.New().Derive("correct horse", kdf.DefaultSalt)

	assert.Equal(t, "1pzevnriwFjGahHQwo2k1UKdqOugzoI2Wss2YXAy4kI=", key.Encode())
}

func TestDerive_Deterministic(t *testing.T) {
	t.Parallel()

	deriver := kdf.New()

	first := deriver.Derive("correct horse", kdf.DefaultSalt)
	second := deriver.Derive("correct horse", kdf.DefaultSalt)

	assert.Equal(t, first, second)
	assert.False(t, first.IsZero())
}

func TestDerive_InputsChangeKey(t *testing.T) {
	t.Parallel()

	deriver := kdf.Deriver{Algorithm: kdf.PBKDF2SHA256, Iterations: 1000}
	base := deriver.Derive("correct horse", kdf.DefaultSalt)

	t.Run("passphrase", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, base, deriver.Derive("wrong horse", kdf.DefaultSalt))
	})

	t.Run("salt", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, base, deriver.Derive("correct horse", []byte("another salt")))
	})

	t.Run("iterations", func(t *testing.T) {
		t.Parallel()

		other := deriver
		other.Iterations++

		assert.NotEqual(t, base, other.Derive("correct horse", kdf.DefaultSalt))
	})

	t.Run("algorithm", func(t *testing.T) {
		t.Parallel()

		other := deriver
		other.Algorithm = kdf.PBKDF2SHA512

		assert.NotEqual(t, base, other.Derive("correct horse", kdf.DefaultSalt))
	})
}

func TestDerive_EmptyPassphrase(t *testing.T) {
	t.Parallel()

	deriver := kdf.Deriver{Algorithm: kdf.PBKDF2SHA256, Iterations: 1000}

	key := deriver.Derive("", kdf.DefaultSalt)

	assert.False(t, key.IsZero())
	assert.Equal(t, key, deriver.Derive("", kdf.DefaultSalt))
}

func TestDerive_Argon2ID(t *testing.T) {
	t.Parallel()

	deriver := kdf.Deriver{Algorithm: kdf.Argon2ID, Time: 1, Memory: 64, Threads: 1}

	first := deriver.Derive("correct horse", kdf.DefaultSalt)
	second := deriver.Derive("correct horse", kdf.DefaultSalt)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, deriver.Derive("wrong horse", kdf.DefaultSalt))
}

func TestDerive_UnknownAlgorithmPanics(t *testing.T) {
	t.Parallel()

	deriver := kdf.Deriver{Algorithm: "md5"}

	assert.Panics(t, func() { deriver.Derive("x", kdf.DefaultSalt) })
}

func TestKey_EncodeDecode(t *testing.T) {
	t.Parallel()

	key := kdf.Deriver{Algorithm: kdf.PBKDF2SHA256, Iterations: 1}.Derive("password", []byte("salt"))

	encoded := key.Encode()
	assert.Len(t, encoded, 44)

	decoded, err := kdf.DecodeKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, key, decoded)

	_, err = kdf.DecodeKey("c2hvcnQ=")
	require.ErrorIs(t, err, kdf.ErrInvalidKey)

	_, err = kdf.DecodeKey("not base64!")
	require.ErrorIs(t, err, kdf.ErrInvalidKey)
}

func TestKey_Zero(t *testing.T) {
	t.Parallel()

	key := kdf.New().Derive("correct horse", kdf.DefaultSalt)
	require.False(t, key.IsZero())

	key.Zero()

	assert.True(t, key.IsZero())
}

func TestDeriver_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pbkdf2-sha256(50000)", kdf.New().String())
	assert.Equal(t, "argon2id(t=3, m=65536KiB, p=4)",
		kdf.Deriver{Algorithm: kdf.Argon2ID, Time: 3, Memory: 65536, Threads: 4}.String())
}
