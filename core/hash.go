package core

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"
)

// HashFormatSHA1 is the canonical format for installed-state identity; the
// registry supplies it for every file.
const HashFormatSHA1 = "sha1"

// GetHashImpl gets an implementation of hash.Hash for the given hash format string
func GetHashImpl(hashFormat string) (HashStringer, error) {
	switch strings.ToLower(hashFormat) {
	case "sha1":
		return &hexStringer{sha1.New()}, nil
	case "sha256":
		return &hexStringer{sha256.New()}, nil
	case "sha512":
		return &hexStringer{sha512.New()}, nil
	case "md5":
		return &hexStringer{md5.New()}, nil
	}
	return nil, fmt.Errorf("hash implementation %s not found", hashFormat)
}

// PreferredHashList orders hash formats from most to least preferred for
// identity checks.
var PreferredHashList = []string{
	"sha1",
	"sha512",
	"sha256",
	"md5",
}

type HashStringer interface {
	hash.Hash
	String() string
}

type hexStringer struct {
	hash.Hash
}

func (h *hexStringer) String() string {
	return hex.EncodeToString(h.Sum(nil))
}

// HashReader consumes the reader and returns the hex digest in the given format.
func HashReader(hashFormat string, r io.Reader) (string, error) {
	hasher, err := GetHashImpl(hashFormat)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(hasher, r); err != nil {
		return "", err
	}
	return hasher.String(), nil
}
