// Package ens reads reverse names, forward addresses and text records from
// ENS-compatible contracts over JSON-RPC.
package ens

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"nameplate/internal/chains"
	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
)

const registryABI = `[{"name":"resolver","type":"function","stateMutability":"view",
"inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]}]`

const resolverABI = `[
{"name":"name","type":"function","stateMutability":"view",
 "inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"string"}]},
{"name":"addr","type":"function","stateMutability":"view",
 "inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]},
{"name":"text","type":"function","stateMutability":"view",
 "inputs":[{"name":"node","type":"bytes32"},{"name":"key","type":"string"}],"outputs":[{"name":"","type":"string"}]}]`

var (
	registryContract = mustABI(registryABI)
	resolverContract = mustABI(resolverABI)
)

func mustABI(def string) *abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return &parsed
}

// Client talks to one name service deployment.
type Client struct {
	caller ethereum.ContractCaller
	cfg    chains.NameServiceConfig
}

// NewClient binds caller to the contracts described by cfg.
func NewClient(caller ethereum.ContractCaller, cfg chains.NameServiceConfig) *Client {
	return &Client{caller: caller, cfg: cfg}
}

// Name returns the primary name for addr, or "" when none is set. With
// forward verification enabled a name whose addr record does not point back
// at addr is treated as unset.
func (c *Client) Name(ctx context.Context, addr id.Address) (string, error) {
	node := Namehash(ReverseName(addr, c.cfg.ReverseNamespace))
	resolver, err := c.resolverFor(ctx, node)
	if err != nil || resolver == (common.Address{}) {
		return "", err
	}
	var name string
	found, err := c.call(ctx, resolver, resolverContract, "name", &name, node)
	if err != nil || !found || name == "" {
		return "", err
	}
	if !c.cfg.VerifyForward {
		return name, nil
	}
	forward, err := c.Addr(ctx, name)
	if err != nil {
		return "", err
	}
	if forward != addr.Common() {
		return "", nil
	}
	return name, nil
}

// Addr returns the address record of name, or the zero address when unset.
func (c *Client) Addr(ctx context.Context, name string) (common.Address, error) {
	node := Namehash(name)
	resolver, err := c.resolverFor(ctx, node)
	if err != nil || resolver == (common.Address{}) {
		return common.Address{}, err
	}
	var out common.Address
	if _, err := c.call(ctx, resolver, resolverContract, "addr", &out, node); err != nil {
		return common.Address{}, err
	}
	return out, nil
}

// Text returns the text record key of name, or "" when unset.
func (c *Client) Text(ctx context.Context, name, key string) (string, error) {
	node := Namehash(name)
	resolver, err := c.resolverFor(ctx, node)
	if err != nil || resolver == (common.Address{}) {
		return "", err
	}
	var out string
	if _, err := c.call(ctx, resolver, resolverContract, "text", &out, node, key); err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) resolverFor(ctx context.Context, node common.Hash) (common.Address, error) {
	if c.cfg.Registry == (common.Address{}) {
		return c.cfg.Resolver, nil
	}
	var out common.Address
	if _, err := c.call(ctx, c.cfg.Registry, registryContract, "resolver", &out, node); err != nil {
		return common.Address{}, err
	}
	return out, nil
}

// call performs an eth_call and unpacks a single return value into out.
// found is false when the target has no code or reverted, which for a
// resolver means the record does not exist.
func (c *Client) call(ctx context.Context, to common.Address, contract *abi.ABI, method string, out any, args ...any) (found bool, err error) {
	input, err := contract.Pack(method, args...)
	if err != nil {
		return false, fmt.Errorf("pack %s: %w", method, err)
	}
	data, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, nil)
	if err != nil {
		if isRevert(err) {
			return false, nil
		}
		return false, fmt.Errorf("call %s on %s: %w", method, to.Hex(), err)
	}
	if len(data) == 0 {
		return false, nil
	}
	values, err := contract.Unpack(method, data)
	if err != nil || len(values) != 1 {
		return false, fmt.Errorf("decode %s: %w", method, errors.Join(models.ErrMalformedResponse, err))
	}
	switch dst := out.(type) {
	case *string:
		v, ok := values[0].(string)
		if !ok {
			return false, fmt.Errorf("decode %s: %w", method, models.ErrMalformedResponse)
		}
		*dst = v
	case *common.Address:
		v, ok := values[0].(common.Address)
		if !ok {
			return false, fmt.Errorf("decode %s: %w", method, models.ErrMalformedResponse)
		}
		*dst = v
	default:
		return false, fmt.Errorf("decode %s: unsupported output %T", method, out)
	}
	return true, nil
}

func isRevert(err error) bool {
	return strings.Contains(err.Error(), "execution reverted")
}
