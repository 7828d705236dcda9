package token

import (
	"fmt"
	"strings"
)

// Scheme identifies the token construction. Its value is the version byte.
type Scheme byte

const (
	// SchemeFernet is AES-128-CBC with HMAC-SHA256, per the Fernet specification.
	SchemeFernet Scheme = 0x80
	// SchemeAESGCM is AES-256-GCM through a Tink AEAD.
	SchemeAESGCM Scheme = 0x91
)

// String returns the configuration name of the scheme.
func (s Scheme) String() string {
	switch s {
	case SchemeFernet:
		return "fernet"
	case SchemeAESGCM:
		return "aes-gcm"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(s))
	}
}

// ParseScheme returns the scheme for a configuration name.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(name) {
	case "fernet", "":
		return SchemeFernet, nil
	case "aes-gcm", "aesgcm", "gcm":
		return SchemeAESGCM, nil
	default:
		return 0, fmt.Errorf("unknown cipher scheme %q", name)
	}
}

// minSize is the smallest raw token the scheme can produce.
func (s Scheme) minSize() int {
	switch s {
	case SchemeFernet:
		return fernetMinSize
	case SchemeAESGCM:
		return gcmMinSize
	default:
		return 0
	}
}
