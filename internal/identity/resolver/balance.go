package resolver

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"

	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
)

// BalanceProvider reads the native balance of an address at the latest block.
type BalanceProvider struct {
	registry ChainRegistry
	backends Backends
	options
}

// NewBalanceProvider wires a BalanceProvider.
func NewBalanceProvider(registry ChainRegistry, backends Backends, opts ...Option) (*BalanceProvider, error) {
	if registry == nil {
		return nil, errors.New("chain registry is required")
	}
	if backends == nil {
		return nil, errors.New("backends are required")
	}
	return &BalanceProvider{registry: registry, backends: backends, options: buildOptions(opts)}, nil
}

// Balance returns the wei balance of addr on chainID.
func (p *BalanceProvider) Balance(ctx context.Context, addr id.Address, chainID id.ChainID) (*big.Int, error) {
	entry, err := p.registry.Lookup(chainID)
	if err != nil {
		return nil, err
	}
	if entry.RPCURL == "" {
		return nil, models.NewResolutionError(models.SourceBalance, chainID, fmt.Errorf("chain %s has no rpc url", entry.Name))
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	bal, err := p.backends.Balances(entry.RPCURL).BalanceAt(ctx, addr.Common(), nil)
	if err != nil {
		return nil, models.NewResolutionError(models.SourceBalance, chainID, err)
	}
	return bal, nil
}

// FormatEther renders wei as a decimal ether amount without trailing zeros.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return ""
	}
	s := new(big.Rat).SetFrac(wei, big.NewInt(params.Ether)).FloatString(18)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
