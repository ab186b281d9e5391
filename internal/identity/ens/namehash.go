package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	id "nameplate/pkg/domain"
)

// Namehash computes the EIP-137 node for name. Labels are lower-cased; full
// ENSIP-15 normalization is not applied.
func Namehash(name string) common.Hash {
	var node common.Hash
	name = strings.TrimSuffix(strings.ToLower(name), ".")
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := keccak([]byte(labels[i]))
		node = common.BytesToHash(keccak(node.Bytes(), labelHash))
	}
	return node
}

// ReverseName is the reverse record name for addr under namespace, e.g.
// "d8da6bf26964af9d7eed9e03e53415d37aa96045.addr.reverse".
func ReverseName(addr id.Address, namespace string) string {
	return strings.TrimPrefix(addr.Lower(), "0x") + "." + namespace
}

func keccak(parts ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}
