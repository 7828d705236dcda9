package token

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"google.golang.org/protobuf/proto"

	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	gcmpb "github.com/tink-crypto/tink-go/v2/proto/aes_gcm_go_proto"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	"github.com/tink-crypto/tink-go/v2/tink"

	"github.com/idelchi/filecrypt/internal/kdf"
)

const (
	gcmKeySize   = 32
	gcmNonceSize = 12
	gcmTagSize   = 16

	gcmMinSize = headerSize + gcmNonceSize + gcmTagSize

	gcmKeyInfo = "filecrypt/aes-256-gcm"
	gcmTypeURL = "type.googleapis.com/google.crypto.tink.AesGcmKey"
)

// newGCMPrimitive derives the AES-256-GCM key from key and wraps it in a Tink AEAD.
// Tink draws the nonce from its own random source.
func newGCMPrimitive(key *kdf.Key) (tink.AEAD, error) {
	gcmKey := make([]byte, gcmKeySize)
	defer clear(gcmKey)

	if _, err := io.ReadFull(hkdf.New(sha256.New, key[:], nil, []byte(gcmKeyInfo)), gcmKey); err != nil {
		return nil, fmt.Errorf("deriving AES-GCM key: %w", err)
	}

	handle, err := newGCMKeyHandle(gcmKey)
	if err != nil {
		return nil, err
	}

	primitive, err := aead.New(handle)
	if err != nil {
		return nil, fmt.Errorf("creating AEAD: %w", err)
	}

	return primitive, nil
}

// newGCMKeyHandle creates a Tink keyset handle for AES-GCM from raw key bytes.
// The RAW output prefix keeps the ciphertext as nonce | ciphertext | tag.
func newGCMKeyHandle(key []byte) (*keyset.Handle, error) {
	serializedKey, err := proto.Marshal(&gcmpb.AesGcmKey{
		Version:  0,
		KeyValue: key,
	})
	if err != nil {
		return nil, fmt.Errorf("serializing AesGcmKey: %w", err)
	}

	keySet := &tinkpb.Keyset{
		PrimaryKeyId: 1,
		Key: []*tinkpb.Keyset_Key{
			{
				KeyData: &tinkpb.KeyData{
					TypeUrl:         gcmTypeURL,
					Value:           serializedKey,
					KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
				},
				Status:           tinkpb.KeyStatusType_ENABLED,
				KeyId:            1,
				OutputPrefixType: tinkpb.OutputPrefixType_RAW,
			},
		},
	}

	serializedKeyset, err := proto.Marshal(keySet)
	if err != nil {
		return nil, fmt.Errorf("serializing keyset: %w", err)
	}

	handle, err := insecurecleartextkeyset.Read(keyset.NewBinaryReader(bytes.NewReader(serializedKeyset)))
	if err != nil {
		return nil, fmt.Errorf("creating keyset handle: %w", err)
	}

	return handle, nil
}

// sealGCM authenticates the header as associated data.
func sealGCM(h header, plaintext []byte, key *kdf.Key) ([]byte, error) {
	primitive, err := newGCMPrimitive(key)
	if err != nil {
		return nil, err
	}

	ad := h.marshal()

	sealed, err := primitive.Encrypt(plaintext, ad)
	if err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}

	return append(ad, sealed...), nil
}

func openGCM(raw []byte, key *kdf.Key) ([]byte, error) {
	primitive, err := newGCMPrimitive(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := primitive.Decrypt(raw[headerSize:], raw[:headerSize])
	if err != nil {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}
