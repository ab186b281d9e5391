package resolver

import (
	"context"
	"errors"
	"strings"

	"nameplate/internal/identity/models"
)

const (
	avatarTextKey      = "avatar"
	arweaveGateway     = "https://arweave.net/"
	DefaultIPFSGateway = "https://ipfs.io/ipfs/"
)

// AvatarResolver resolves a name's avatar text record to a fetchable URL.
type AvatarResolver struct {
	registry    ChainRegistry
	backends    Backends
	ipfsGateway string
	options
}

// NewAvatarResolver wires an AvatarResolver. An empty ipfsGateway selects
// DefaultIPFSGateway.
func NewAvatarResolver(registry ChainRegistry, backends Backends, ipfsGateway string, opts ...Option) (*AvatarResolver, error) {
	if registry == nil {
		return nil, errors.New("chain registry is required")
	}
	if backends == nil {
		return nil, errors.New("backends are required")
	}
	if ipfsGateway == "" {
		ipfsGateway = DefaultIPFSGateway
	}
	if !strings.HasSuffix(ipfsGateway, "/") {
		ipfsGateway += "/"
	}
	return &AvatarResolver{
		registry:    registry,
		backends:    backends,
		ipfsGateway: ipfsGateway,
		options:     buildOptions(opts),
	}, nil
}

// Resolve returns the avatar URL for name, or nil when there is no usable
// avatar. An empty name returns nil without touching any backend.
func (r *AvatarResolver) Resolve(ctx context.Context, name string) (*string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	ns, err := r.registry.NameServiceForName(name)
	if err != nil {
		return nil, models.NewResolutionError(models.SourceAvatar, 0, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.backends.NameService(ns).Text(ctx, name, avatarTextKey)
	if err != nil {
		return nil, models.NewResolutionError(models.SourceAvatar, ns.ChainID, err)
	}
	url := NormalizeAvatarURL(raw, r.ipfsGateway)
	if url == nil && strings.TrimSpace(raw) != "" {
		r.logger.DebugContext(ctx, "unsupported avatar record", "name", name, "record", raw)
	}
	return url, nil
}

// NormalizeAvatarURL maps an avatar text record to a URL a client can load.
// http(s) and data URIs pass through, IPFS and Arweave references go through
// public gateways, anything else (NFT pointers included) yields nil.
func NormalizeAvatarURL(raw, ipfsGateway string) *string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)

	var out string
	switch {
	case raw == "":
		return nil
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "data:"):
		out = raw
	case strings.HasPrefix(lower, "ipfs://"):
		cid := raw[len("ipfs://"):]
		if strings.HasPrefix(strings.ToLower(cid), "ipfs/") {
			cid = cid[len("ipfs/"):]
		}
		out = ipfsURL(ipfsGateway, cid)
	case strings.HasPrefix(lower, "/ipfs/"):
		out = ipfsURL(ipfsGateway, raw[len("/ipfs/"):])
	case strings.HasPrefix(lower, "ipfs/"):
		out = ipfsURL(ipfsGateway, raw[len("ipfs/"):])
	case strings.HasPrefix(lower, "ar://"):
		if tx := raw[len("ar://"):]; tx != "" {
			out = arweaveGateway + tx
		}
	}
	if out == "" {
		return nil
	}
	return &out
}

func ipfsURL(gateway, cid string) string {
	if cid == "" {
		return ""
	}
	if gateway == "" {
		gateway = DefaultIPFSGateway
	}
	if !strings.HasSuffix(gateway, "/") {
		gateway += "/"
	}
	return gateway + cid
}
