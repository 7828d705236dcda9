package kdf

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// Algorithm names a key derivation function.
type Algorithm string

const (
	// PBKDF2SHA256 is PBKDF2 with HMAC-SHA256.
	PBKDF2SHA256 Algorithm = "pbkdf2-sha256"
	// PBKDF2SHA512 is PBKDF2 with HMAC-SHA512.
	PBKDF2SHA512 Algorithm = "pbkdf2-sha512"
	// Argon2ID is the memory-hard Argon2id function.
	Argon2ID Algorithm = "argon2id"
)

const (
	// DefaultIterations is the PBKDF2 round count.
	DefaultIterations = 50000

	// DefaultArgonTime is the number of Argon2 passes over memory.
	DefaultArgonTime = 3
	// DefaultArgonMemory is the Argon2 memory cost in KiB (64 MiB).
	DefaultArgonMemory = 64 * 1024
	// DefaultArgonThreads is the Argon2 parallelism.
	DefaultArgonThreads = 4
)

// DefaultSalt is the salt shared by every passphrase and file.
// It is fixed so that the same passphrase always yields the same key.
//
//nolint:gochecknoglobals
var DefaultSalt = []byte("salt_value_for_key_generation")

// Algorithms lists the supported algorithms.
func Algorithms() []Algorithm {
	return []Algorithm{PBKDF2SHA256, PBKDF2SHA512, Argon2ID}
}

// Deriver turns a passphrase and a salt into a Key.
type Deriver struct {
	// Algorithm selects the derivation function.
	Algorithm Algorithm

	// Iterations is the PBKDF2 round count.
	Iterations int

	// Time, Memory (KiB) and Threads are the Argon2 cost parameters.
	Time    uint32
	Memory  uint32
	Threads uint8
}

// New returns a Deriver with the default parameters.
func New() Deriver {
	return Deriver{
		Algorithm:  PBKDF2SHA256,
		Iterations: DefaultIterations,
		Time:       DefaultArgonTime,
		Memory:     DefaultArgonMemory,
		Threads:    DefaultArgonThreads,
	}
}

// Derive computes the key for passphrase and salt.
// It is deterministic: equal inputs and parameters give equal keys.
// It panics on an unknown algorithm.
func (d Deriver) Derive(passphrase string, salt []byte) Key {
	secret := []byte(passphrase)
	defer zeroBytes(secret)

	var raw []byte

	switch d.Algorithm {
	case PBKDF2SHA256, "":
		raw = pbkdf2.Key(secret, salt, d.Iterations, KeySize, sha256.New)
	case PBKDF2SHA512:
		raw = pbkdf2.Key(secret, salt, d.Iterations, KeySize, sha512.New)
	case Argon2ID:
		raw = argon2.IDKey(secret, salt, d.Time, d.Memory, d.Threads, KeySize)
	default:
		panic(fmt.Sprintf("kdf: unknown algorithm %q", d.Algorithm))
	}

	var key Key

	copy(key[:], raw)
	zeroBytes(raw)

	return key
}

// String describes the parameters, without any secret.
func (d Deriver) String() string {
	if d.Algorithm == Argon2ID {
		return fmt.Sprintf("%s(t=%d, m=%dKiB, p=%d)", d.Algorithm, d.Time, d.Memory, d.Threads)
	}

	alg := d.Algorithm
	if alg == "" {
		alg = PBKDF2SHA256
	}

	return fmt.Sprintf("%s(%d)", alg, d.Iterations)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
