// Package ethaddr implements Ethereum address format checks and EIP-55
// mixed-case checksums.
package ethaddr

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ErrInvalidAddress is returned for input that is not 0x followed by 40 hex digits.
var ErrInvalidAddress = errors.New("invalid ethereum address format")

// IsHexAddress reports whether s is 0x followed by 40 hex digits, in any case.
func IsHexAddress(s string) bool {
	if len(s) != 42 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}

// ToChecksum returns the EIP-55 form of addr.
func ToChecksum(addr string) (string, error) {
	if !IsHexAddress(addr) {
		return "", ErrInvalidAddress
	}
	lower := strings.ToLower(addr[2:])
	hash := keccak256([]byte(lower))

	out := make([]byte, 0, 42)
	out = append(out, '0', 'x')
	for i := 0; i < len(lower); i++ {
		ch := lower[i]
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if ch >= 'a' && ch <= 'f' && nibble > 7 {
			ch -= 'a' - 'A'
		}
		out = append(out, ch)
	}
	return string(out), nil
}

// IsChecksummed reports whether addr is well formed and already in its
// EIP-55 form.
func IsChecksummed(addr string) bool {
	sum, err := ToChecksum(addr)
	return err == nil && sum == addr
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(data)
	return h.Sum(nil)
}
