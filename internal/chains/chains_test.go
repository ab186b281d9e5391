package chains

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"nameplate/internal/identity/models"
	id "nameplate/pkg/domain"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	r, err := New(Mainnet, Builtin()...)
	s.Require().NoError(err)
	s.registry = r
}

func (s *RegistrySuite) TestLookup() {
	s.Run("registered chain", func() {
		e, err := s.registry.Lookup(Base)
		s.Require().NoError(err)
		s.Equal("base", e.Name)
		s.True(e.SchemaUIDs.Contains(SchemaVerifiedAccount))
	})

	s.Run("unregistered chain is a config error", func() {
		_, err := s.registry.Lookup(999)
		var ce *models.ConfigError
		s.Require().ErrorAs(err, &ce)
		s.Equal(id.ChainID(999), ce.ChainID)
		s.ErrorIs(err, models.ErrChainNotRegistered)
	})

	s.Run("zero chain id means default only through LookupOrDefault", func() {
		_, err := s.registry.Lookup(0)
		s.Error(err)
		e, err := s.registry.LookupOrDefault(0)
		s.Require().NoError(err)
		s.Equal(Mainnet, e.ChainID)
	})
}

func (s *RegistrySuite) TestList() {
	list := s.registry.List()
	s.Require().Len(list, 6)
	for i := 1; i < len(list); i++ {
		s.Less(list[i-1].ChainID, list[i].ChainID)
	}
}

func (s *RegistrySuite) TestLookupName() {
	e, ok := s.registry.LookupName("Base-Sepolia")
	s.Require().True(ok)
	s.Equal(BaseSepolia, e.ChainID)

	_, ok = s.registry.LookupName("solana")
	s.False(ok)
}

func (s *RegistrySuite) TestNameServiceFor() {
	s.Run("chain with its own service", func() {
		ns, err := s.registry.NameServiceFor(Base)
		s.Require().NoError(err)
		s.Equal(Base, ns.ChainID)
		s.Equal("80002105.reverse", ns.ReverseNamespace)
		s.Equal(BaseL2Resolver, ns.Resolver)
		s.Equal("https://mainnet.base.org", ns.RPCURL)
	})

	s.Run("chain without a service falls back to the default chain", func() {
		ns, err := s.registry.NameServiceFor(Optimism)
		s.Require().NoError(err)
		s.Equal(Mainnet, ns.ChainID)
		s.Equal(ENSRegistry, ns.Registry)
		s.True(ns.VerifyForward)
	})

	s.Run("unknown chain", func() {
		_, err := s.registry.NameServiceFor(999)
		s.ErrorIs(err, models.ErrChainNotRegistered)
	})
}

func (s *RegistrySuite) TestNameServiceForName() {
	cases := map[string]id.ChainID{
		"vitalik.eth":         Mainnet,
		"jesse.base.eth":      Base,
		"BASE.ETH":            Base,
		"alice.basetest.eth":  BaseSepolia,
		"notbase.eth":         Mainnet,
		"nick.eth.":           Mainnet,
		"someone.example.xyz": Mainnet,
	}
	for name, want := range cases {
		ns, err := s.registry.NameServiceForName(name)
		s.Require().NoError(err, name)
		s.Equal(want, ns.ChainID, name)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Run("default must be registered", func(t *testing.T) {
		_, err := New(Base, Entry{ChainID: Mainnet, Name: "mainnet"})
		assert.ErrorIs(t, err, models.ErrChainNotRegistered)
	})

	t.Run("name service host must be registered", func(t *testing.T) {
		_, err := New(Mainnet, Entry{
			ChainID:     Mainnet,
			Name:        "mainnet",
			NameService: &NameServiceConfig{HostChainID: 5, ReverseNamespace: "addr.reverse"},
		})
		assert.Error(t, err)
	})

	t.Run("name service hosted on another chain uses that chain's rpc", func(t *testing.T) {
		r, err := New(Mainnet,
			Entry{ChainID: Mainnet, Name: "mainnet", RPCURL: "https://l1"},
			Entry{ChainID: 7777, Name: "rollup", RPCURL: "https://l2", NameService: &NameServiceConfig{
				HostChainID: Mainnet, Registry: ENSRegistry, ReverseNamespace: "addr.reverse",
			}},
		)
		require.NoError(t, err)
		ns, err := r.NameServiceFor(7777)
		require.NoError(t, err)
		assert.Equal(t, "https://l1", ns.RPCURL)
		assert.Equal(t, Mainnet, ns.ChainID)
	})

	t.Run("no name service anywhere", func(t *testing.T) {
		r, err := New(Optimism, Entry{ChainID: Optimism, Name: "optimism"})
		require.NoError(t, err)
		_, err = r.NameServiceFor(Optimism)
		assert.ErrorIs(t, err, models.ErrNoNameService)
		_, err = r.NameServiceForName("vitalik.eth")
		assert.ErrorIs(t, err, models.ErrNoNameService)
	})
}

func TestEntryFromJSON(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		e, err := EntryFromJSON([]byte(`{
			"id": 10,
			"name": "optimism",
			"rpcUrl": "https://op.example",
			"easGraphqlAPI": "https://optimism.easscan.org/graphql",
			"schemaUids": ["0xF8B05C79F090979BF4A80270ABA232DFF11A10D9CA55C4F88DE95317970F0DE9"]
		}`))
		require.NoError(t, err)
		assert.Equal(t, Optimism, e.ChainID)
		assert.True(t, e.SchemaUIDs.Contains(SchemaVerifiedAccount))
		assert.Nil(t, e.NameService)
	})

	t.Run("invalid schema uid", func(t *testing.T) {
		_, err := EntryFromJSON([]byte(`{"id": 10, "name": "optimism", "schemaUids": ["0x1234"]}`))
		assert.Error(t, err)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := EntryFromJSON([]byte(`{"name": "x"}`))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "optimism.json"), []byte(`{
		"id": 10,
		"name": "optimism",
		"rpcUrl": "https://op.custom",
		"easGraphqlAPI": "https://optimism.easscan.org/graphql",
		"schemaUids": ["0x1801901fabd0e6189356b4fb52bb0ab855276d84f7ec140839fbd1f6801ca065"]
	}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zora.json"), []byte(`{
		"id": 7777777,
		"name": "zora",
		"rpcUrl": "https://rpc.zora.energy",
		"easGraphqlAPI": ""
	}`), 0o600))

	env := map[string]string{"BASE_SEPOLIA_RPC_URL": "https://bs.override"}
	r, err := Load(LoadOptions{
		DefaultChainID: Base,
		Dir:            dir,
		Getenv:         func(k string) string { return env[k] },
	})
	require.NoError(t, err)

	assert.Equal(t, Base, r.Default().ChainID)

	op, err := r.Lookup(Optimism)
	require.NoError(t, err)
	assert.Equal(t, "https://op.custom", op.RPCURL)
	assert.True(t, op.SchemaUIDs.Contains(SchemaVerifiedCountry))

	_, err = r.Lookup(7777777)
	assert.NoError(t, err)

	bs, err := r.Lookup(BaseSepolia)
	require.NoError(t, err)
	assert.Equal(t, "https://bs.override", bs.RPCURL)

	ns, err := r.NameServiceFor(Optimism)
	require.NoError(t, err)
	assert.Equal(t, Base, ns.ChainID, "default chain's service applies")
}

func TestRPCEnvVar(t *testing.T) {
	assert.Equal(t, "BASE_SEPOLIA_RPC_URL", RPCEnvVar("base-sepolia"))
	assert.Equal(t, "MAINNET_RPC_URL", RPCEnvVar("mainnet"))
}
