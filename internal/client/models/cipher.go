package models

import (
	"errors"
	"fmt"
	"strings"
)

// CipherMode is the AES operating mode selected for chunk encryption.
type CipherMode string

const (
	CipherAES256CBC CipherMode = "aes-256-cbc"
	CipherAES256ECB CipherMode = "aes-256-ecb"
	CipherAES256CFB CipherMode = "aes-256-cfb"
	CipherAES256OFB CipherMode = "aes-256-ofb"
	CipherAES256XTS CipherMode = "aes-256-xts"

	DefaultCipherMode = CipherAES256CBC
)

// CipherModes lists the supported modes in display order.
var CipherModes = []CipherMode{
	CipherAES256CBC,
	CipherAES256ECB,
	CipherAES256CFB,
	CipherAES256OFB,
	CipherAES256XTS,
}

var ErrUnknownCipherMode = errors.New("unknown cipher mode")

// ParseCipherMode accepts a mode name in any letter case.
func ParseCipherMode(s string) (CipherMode, error) {
	m := CipherMode(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCipherMode, s)
}

func (m CipherMode) Valid() bool {
	for _, c := range CipherModes {
		if m == c {
			return true
		}
	}
	return false
}

// NeedsIVAndSalt reports whether the derived IV and salt apply to the mode.
// XTS works with a double-length key only.
func (m CipherMode) NeedsIVAndSalt() bool {
	return m != CipherAES256XTS
}
