package domain

import (
	"strconv"
	"strings"

	dErrors "nameplate/pkg/domain-errors"
)

// ChainID identifies a blockchain network (EIP-155 chain id).
// Invariant: strictly positive. The zero value means "not specified" and is
// only meaningful to callers that apply a default chain.
type ChainID uint64

// ParseChainID validates a decimal chain id from external input.
func ParseChainID(s string) (ChainID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "chain id is required")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "chain id must be a positive integer")
	}
	if v == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "chain id must be greater than zero")
	}
	return ChainID(v), nil
}

// String returns the decimal form.
func (c ChainID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// IsZero reports whether the chain id was left unspecified.
func (c ChainID) IsZero() bool {
	return c == 0
}
