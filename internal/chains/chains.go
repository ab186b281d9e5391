// Package chains is the registry of chains nameplate can resolve identities
// on. Each entry says where balances are read, which EAS index serves
// attestations and which schemas are trusted, and which name service owns
// reverse records for addresses on that chain.
//
// The registry is immutable after construction and safe for concurrent reads.
package chains

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
)

// NameServiceConfig describes an ENS-compatible deployment. When Registry is
// set the resolver for a node is looked up through it; otherwise Resolver is
// used directly, which is how L2 name services are deployed.
type NameServiceConfig struct {
	// HostChainID is the chain the contracts live on. Zero means the entry's own chain.
	HostChainID      id.ChainID     `json:"hostChainId,omitempty"`
	Registry         common.Address `json:"registry,omitempty"`
	Resolver         common.Address `json:"resolver,omitempty"`
	ReverseNamespace string         `json:"reverseNamespace"`
	// NameSuffix is the parent name this service is authoritative for, e.g.
	// "base.eth". Empty means the ENS root.
	NameSuffix    string `json:"nameSuffix,omitempty"`
	VerifyForward bool   `json:"verifyForward,omitempty"`
}

// NameService is a NameServiceConfig bound to the RPC endpoint of its host chain.
type NameService struct {
	NameServiceConfig
	ChainID id.ChainID
	RPCURL  string
}

// Entry is one registered chain.
type Entry struct {
	ChainID       id.ChainID
	Name          string
	RPCURL        string
	EASGraphQLAPI string
	SchemaUIDs    id.SchemaSet
	// NameService is nil when the chain has no name service of its own; the
	// default chain's service applies.
	NameService *NameServiceConfig
}

// Registry maps chain ids to entries.
type Registry struct {
	byID      map[id.ChainID]Entry
	byName    map[string]id.ChainID
	defaultID id.ChainID
}

// New validates entries and builds a registry. Later entries with the same
// chain id replace earlier ones.
func New(defaultChainID id.ChainID, entries ...Entry) (*Registry, error) {
	r := &Registry{
		byID:      make(map[id.ChainID]Entry, len(entries)),
		byName:    make(map[string]id.ChainID, len(entries)),
		defaultID: defaultChainID,
	}
	for _, e := range entries {
		if e.ChainID.IsZero() {
			return nil, fmt.Errorf("chain %q: chain id must be positive", e.Name)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("chain %d: name is required", e.ChainID)
		}
		if prev, ok := r.byID[e.ChainID]; ok {
			delete(r.byName, prev.Name)
		}
		if e.SchemaUIDs == nil {
			e.SchemaUIDs = id.NewSchemaSet()
		}
		r.byID[e.ChainID] = e
		r.byName[strings.ToLower(e.Name)] = e.ChainID
	}
	if _, ok := r.byID[defaultChainID]; !ok {
		return nil, &models.ConfigError{ChainID: defaultChainID, Err: fmt.Errorf("default %w", models.ErrChainNotRegistered)}
	}
	for _, e := range r.byID {
		if e.NameService == nil || e.NameService.HostChainID.IsZero() {
			continue
		}
		if _, ok := r.byID[e.NameService.HostChainID]; !ok {
			return nil, fmt.Errorf("chain %d: name service host chain %d is not registered", e.ChainID, e.NameService.HostChainID)
		}
	}
	return r, nil
}

// Lookup returns the entry for chainID or a ConfigError wrapping
// models.ErrChainNotRegistered.
func (r *Registry) Lookup(chainID id.ChainID) (Entry, error) {
	e, ok := r.byID[chainID]
	if !ok {
		return Entry{}, &models.ConfigError{ChainID: chainID, Err: models.ErrChainNotRegistered}
	}
	return e, nil
}

// LookupOrDefault treats a zero chain id as the default chain.
func (r *Registry) LookupOrDefault(chainID id.ChainID) (Entry, error) {
	if chainID.IsZero() {
		return r.Default(), nil
	}
	return r.Lookup(chainID)
}

// LookupName finds an entry by its registered name, case-insensitively.
func (r *Registry) LookupName(name string) (Entry, bool) {
	cid, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Entry{}, false
	}
	return r.byID[cid], true
}

// Default returns the default chain entry.
func (r *Registry) Default() Entry {
	return r.byID[r.defaultID]
}

// List returns every entry ordered by chain id.
func (r *Registry) List() []Entry {
	return slices.SortedFunc(maps.Values(r.byID), func(a, b Entry) int {
		return cmp.Compare(a.ChainID, b.ChainID)
	})
}

// NameServiceFor returns the name service that owns reverse records for
// addresses on chainID, falling back to the default chain's service.
func (r *Registry) NameServiceFor(chainID id.ChainID) (NameService, error) {
	e, err := r.Lookup(chainID)
	if err != nil {
		return NameService{}, err
	}
	if e.NameService != nil {
		return r.bind(e, *e.NameService), nil
	}
	def := r.Default()
	if def.NameService == nil {
		return NameService{}, &models.ConfigError{ChainID: chainID, Err: models.ErrNoNameService}
	}
	return r.bind(def, *def.NameService), nil
}

// NameServiceForName returns the service authoritative for name: the one with
// the longest matching NameSuffix, otherwise the root ENS service of the
// default chain, otherwise the root service with the lowest chain id.
func (r *Registry) NameServiceForName(name string) (NameService, error) {
	name = strings.ToLower(strings.TrimSuffix(name, "."))

	var (
		best      NameService
		bestLen   = -1
		root      NameService
		rootFound bool
	)
	for _, e := range r.List() {
		if e.NameService == nil {
			continue
		}
		cfg := *e.NameService
		suffix := strings.ToLower(cfg.NameSuffix)
		if suffix == "" {
			if !rootFound || e.ChainID == r.defaultID {
				root, rootFound = r.bind(e, cfg), true
			}
			continue
		}
		if (name == suffix || strings.HasSuffix(name, "."+suffix)) && len(suffix) > bestLen {
			best, bestLen = r.bind(e, cfg), len(suffix)
		}
	}
	if bestLen >= 0 {
		return best, nil
	}
	if rootFound {
		return root, nil
	}
	return NameService{}, &models.ConfigError{ChainID: r.defaultID, Err: models.ErrNoNameService}
}

func (r *Registry) bind(owner Entry, cfg NameServiceConfig) NameService {
	host := owner
	if !cfg.HostChainID.IsZero() {
		host = r.byID[cfg.HostChainID]
	}
	return NameService{NameServiceConfig: cfg, ChainID: host.ChainID, RPCURL: host.RPCURL}
}
