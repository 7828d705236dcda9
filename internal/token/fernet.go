package token

import (
	"crypto/aes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/idelchi/filecrypt/internal/kdf"
)

const (
	fernetPayloadOffset = headerSize + aes.BlockSize
	fernetTagSize       = sha256.Size

	// Header, IV, one block of ciphertext and the tag.
	fernetMinSize = fernetPayloadOffset + aes.BlockSize + fernetTagSize
)

// fernetKey copies key into the library's key type. The caller zeroes it.
func fernetKey(key *kdf.Key) *fernet.Key {
	k := fernet.Key(*key)

	return &k
}

// sealFernet returns the raw token. The library draws the IV itself.
func sealFernet(created time.Time, plaintext []byte, key *kdf.Key) ([]byte, error) {
	k := fernetKey(key)
	defer clear(k[:])

	tok, err := fernet.EncryptAndSignAtTime(plaintext, k, created)
	if err != nil {
		return nil, fmt.Errorf("generating IV: %w", err)
	}

	return decode(tok)
}

// openFernet verifies the tag before decrypting anything.
// The age check is left to the Cipher, so the library runs without a TTL.
func openFernet(raw []byte, key *kdf.Key) ([]byte, error) {
	ciphertext := raw[fernetPayloadOffset : len(raw)-fernetTagSize]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a multiple of the block size", ErrMalformedToken)
	}

	k := fernetKey(key)
	defer clear(k[:])

	plaintext := fernet.VerifyAndDecrypt(encode(raw), 0, []*fernet.Key{k})
	if plaintext == nil {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}
