package token

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

const (
	timestampSize = 8
	headerSize    = 1 + timestampSize

	maxClockSkew = 60 * time.Second
)

//nolint:gochecknoglobals
var encoding = base64.URLEncoding.Strict()

// header is the version byte and creation timestamp leading every token.
type header struct {
	scheme  Scheme
	created time.Time
}

func (h header) marshal() []byte {
	buf := make([]byte, headerSize)
	buf[0] = byte(h.scheme)

	//nolint:gosec // timestamps before 1970 are not produced
	binary.BigEndian.PutUint64(buf[1:], uint64(h.created.Unix()))

	return buf
}

// parseHeader checks the version byte and the scheme's minimum length.
func parseHeader(raw []byte) (header, error) {
	if len(raw) < headerSize {
		return header{}, fmt.Errorf("%w: %d bytes is too short", ErrMalformedToken, len(raw))
	}

	scheme := Scheme(raw[0])

	switch scheme {
	case SchemeFernet, SchemeAESGCM:
	default:
		return header{}, fmt.Errorf("%w: unsupported version 0x%02x", ErrMalformedToken, raw[0])
	}

	if len(raw) < scheme.minSize() {
		return header{}, fmt.Errorf("%w: %d bytes is too short for %s", ErrMalformedToken, len(raw), scheme)
	}

	//nolint:gosec // any value is a valid timestamp, range is checked against the clock
	created := time.Unix(int64(binary.BigEndian.Uint64(raw[1:headerSize])), 0)

	return header{scheme: scheme, created: created}, nil
}

// encode serializes a raw token as text.
func encode(raw []byte) []byte {
	out := make([]byte, encoding.EncodedLen(len(raw)))
	encoding.Encode(out, raw)

	return out
}

// decode parses token text, ignoring a trailing line ending.
func decode(text []byte) ([]byte, error) {
	text = bytes.TrimRight(text, "\r\n")

	raw := make([]byte, encoding.DecodedLen(len(text)))

	n, err := encoding.Decode(raw, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	return raw[:n], nil
}

// Timestamp returns the creation time recorded in a token.
// The token is not authenticated, so the value is only informational.
func Timestamp(tok []byte) (time.Time, error) {
	h, err := Inspect(tok)
	if err != nil {
		return time.Time{}, err
	}

	return h.Created, nil
}

// Info describes a token without verifying it.
type Info struct {
	// Scheme is the token construction.
	Scheme Scheme
	// Created is the recorded creation time.
	Created time.Time
	// Size is the raw (decoded) token size in bytes.
	Size int
}

// Inspect parses the unauthenticated header of a token.
func Inspect(tok []byte) (Info, error) {
	raw, err := decode(tok)
	if err != nil {
		return Info{}, err
	}

	h, err := parseHeader(raw)
	if err != nil {
		return Info{}, err
	}

	return Info{Scheme: h.scheme, Created: h.created, Size: len(raw)}, nil
}
