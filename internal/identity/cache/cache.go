// Package cache memoizes identity records per (address, chain) with a TTL.
//
// Every implementation returns sentinel.ErrNotFound on a miss, expires
// entries lazily on read and hands out defensive copies so callers cannot
// mutate what other callers will read.
package cache

import (
	"fmt"
	"strings"

	id "nameplate/pkg/domain"
)

// kindIdentity is the only artifact kind cached today; the key carries it so
// per-artifact entries can be added without colliding.
const kindIdentity = "identity"

// Key scopes an entry to one address on one chain and, when given, one
// attestation schema selection. The default selection has no suffix.
func Key(addr id.Address, chainID id.ChainID, schemas ...id.SchemaUID) string {
	base := fmt.Sprintf("%s/%d/%s", kindIdentity, uint64(chainID), addr.Lower())
	if sel := id.SchemaSelectionKey(schemas); sel != "" {
		return base + "/" + sel
	}
	return base
}

// sameIdentity reports whether key belongs to addr on chainID under any
// schema selection.
func sameIdentity(key string, addr id.Address, chainID id.ChainID) bool {
	base := Key(addr, chainID)
	return key == base || strings.HasPrefix(key, base+"/")
}
