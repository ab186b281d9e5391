package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nameplate/internal/chains"
	id "nameplate/pkg/domain"
)

var (
	chainFlag     string
	chainsDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "nameplate",
	Short: "Resolve blockchain addresses into names, avatars and attestations",
	Long: fmt.Sprintf(`nameplate turns an address into the identity a wallet UI shows for it:
its primary name, avatar, native balance and EAS attestations.

Run it as an HTTP service with "serve", or look addresses up directly with
"whois" and "attestations".

Built-in chains use public RPC nodes. Override a chain's node with
%s (for example), or add chains with JSON files in --chains-dir.`,
		chains.RPCEnvVar("mainnet")),
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&chainFlag, "chain", "c", "", "chain id or name. Defaults to DEFAULT_CHAIN_ID.")
	rootCmd.PersistentFlags().StringVar(&chainsDirFlag, "chains-dir", "", "directory of custom chain JSON files. Overrides CHAINS_DIR.")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// selectedChain resolves --chain against the registry. Empty means the
// registry default.
func selectedChain(reg *chains.Registry) (id.ChainID, error) {
	raw := strings.TrimSpace(chainFlag)
	if raw == "" {
		return 0, nil
	}
	if e, ok := reg.LookupName(raw); ok {
		return e.ChainID, nil
	}
	chainID, err := id.ParseChainID(raw)
	if err != nil {
		return 0, fmt.Errorf("unknown chain %q", raw)
	}
	if _, err := reg.Lookup(chainID); err != nil {
		return 0, err
	}
	return chainID, nil
}
