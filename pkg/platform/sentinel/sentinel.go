package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Caches and backend adapters return
// these (optionally wrapped) so services can branch on them without knowing
// which store or transport produced them.
//
//   - ErrNotFound: no entry for the key (cache miss, lazily expired entry)
//   - ErrExpired: entry existed but its TTL has elapsed
//   - ErrUnavailable: backend temporarily unavailable (circuit open, store down)
var (
	ErrNotFound    = errors.New("not found")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
