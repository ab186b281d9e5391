package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	dErrors "nameplate/pkg/domain-errors"
)

// Address is a validated 20-byte account address.
// This is a domain primitive that enforces validity at parse time.
//
// Invariants:
//   - 0x prefix followed by exactly 40 hex characters
//   - mixed-case input must carry a valid EIP-55 checksum
//
// Equality is case-insensitive by construction: two Address values are equal
// when their bytes are equal, regardless of how they were spelled.
type Address struct {
	value common.Address
}

// ParseAddress validates external input and returns an Address.
// All-lowercase and all-uppercase hex are accepted without a checksum.
func ParseAddress(s string) (Address, error) {
	if len(s) != 2+2*common.AddressLength || !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address must be 0x followed by 40 hex characters")
	}
	if !common.IsHexAddress(s) {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address contains non-hex characters")
	}
	hexPart := s[2:]
	addr := common.HexToAddress(s)
	if isMixedCase(hexPart) && addr.Hex()[2:] != hexPart {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address checksum mismatch")
	}
	return Address{value: addr}, nil
}

// MustAddress parses an address, panicking if invalid.
// Use only in tests or for compile-time constants.
func MustAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Hex returns the EIP-55 checksummed display form.
func (a Address) Hex() string {
	return a.value.Hex()
}

// Lower returns the canonical lower-case form used for keys and comparisons.
func (a Address) Lower() string {
	return strings.ToLower(a.value.Hex())
}

// String returns the checksummed display form.
func (a Address) String() string {
	return a.Hex()
}

// Common returns the go-ethereum representation for RPC calls.
func (a Address) Common() common.Address {
	return a.value
}

// IsZero returns true for the zero address (also the zero value).
func (a Address) IsZero() bool {
	return a.value == (common.Address{})
}

// Sliced returns the shortened display form, e.g. 0x123...7890.
func (a Address) Sliced() string {
	h := a.Hex()
	return h[:5] + "..." + h[len(h)-4:]
}

// MarshalText encodes the checksummed form.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText applies the same validation as ParseAddress.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func isMixedCase(hex string) bool {
	return strings.ToLower(hex) != hex && strings.ToUpper(hex) != hex
}
