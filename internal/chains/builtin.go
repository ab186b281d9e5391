package chains

import (
	"github.com/ethereum/go-ethereum/common"

	id "nameplate/pkg/domain"
)

// Well-known chain ids.
const (
	Mainnet     id.ChainID = 1
	Optimism    id.ChainID = 10
	Base        id.ChainID = 8453
	Arbitrum    id.ChainID = 42161
	Sepolia     id.ChainID = 11155111
	BaseSepolia id.ChainID = 84532
)

var (
	// ENSRegistry is deployed at the same address on mainnet and sepolia.
	ENSRegistry = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

	BaseL2Resolver        = common.HexToAddress("0xC6d566A56A1aFf6508b41f6c90ff131615583BCD")
	BaseSepoliaL2Resolver = common.HexToAddress("0x6533C94869D28fAA8dF77cc63f9e2b2D6Cf77eBA")
)

// Coinbase Verifications schemas on Base.
var (
	SchemaVerifiedAccount = id.MustSchemaUID("0xf8b05c79f090979bf4a80270aba232dff11a10d9ca55c4f88de95317970f0de9")
	SchemaVerifiedCountry = id.MustSchemaUID("0x1801901fabd0e6189356b4fb52bb0ab855276d84f7ec140839fbd1f6801ca065")
)

// Builtin returns the chains nameplate knows about without any configuration.
// Chains without trusted schemas serve no attestations until a chain file
// adds some.
func Builtin() []Entry {
	return []Entry{
		{
			ChainID:       Mainnet,
			Name:          "mainnet",
			RPCURL:        "https://cloudflare-eth.com",
			EASGraphQLAPI: "https://easscan.org/graphql",
			SchemaUIDs:    id.NewSchemaSet(),
			NameService: &NameServiceConfig{
				Registry:         ENSRegistry,
				ReverseNamespace: "addr.reverse",
				VerifyForward:    true,
			},
		},
		{
			ChainID:       Optimism,
			Name:          "optimism",
			RPCURL:        "https://mainnet.optimism.io",
			EASGraphQLAPI: "https://optimism.easscan.org/graphql",
			SchemaUIDs:    id.NewSchemaSet(),
		},
		{
			ChainID:       Base,
			Name:          "base",
			RPCURL:        "https://mainnet.base.org",
			EASGraphQLAPI: "https://base.easscan.org/graphql",
			SchemaUIDs:    id.NewSchemaSet(SchemaVerifiedAccount, SchemaVerifiedCountry),
			NameService: &NameServiceConfig{
				Resolver:         BaseL2Resolver,
				ReverseNamespace: "80002105.reverse",
				NameSuffix:       "base.eth",
			},
		},
		{
			ChainID:       Arbitrum,
			Name:          "arbitrum",
			RPCURL:        "https://arb1.arbitrum.io/rpc",
			EASGraphQLAPI: "https://arbitrum.easscan.org/graphql",
			SchemaUIDs:    id.NewSchemaSet(),
		},
		{
			ChainID:       Sepolia,
			Name:          "sepolia",
			RPCURL:        "https://rpc.sepolia.org",
			EASGraphQLAPI: "https://sepolia.easscan.org/graphql",
			SchemaUIDs:    id.NewSchemaSet(),
		},
		{
			ChainID:       BaseSepolia,
			Name:          "base-sepolia",
			RPCURL:        "https://sepolia.base.org",
			EASGraphQLAPI: "https://base-sepolia.easscan.org/graphql",
			SchemaUIDs:    id.NewSchemaSet(),
			NameService: &NameServiceConfig{
				Resolver:         BaseSepoliaL2Resolver,
				ReverseNamespace: "80014a34.reverse",
				NameSuffix:       "basetest.eth",
			},
		},
	}
}
