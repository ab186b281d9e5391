package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nameplate/internal/chains"
	"nameplate/internal/platform/logger"
	id "nameplate/pkg/domain"
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List the registered chains",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := chains.Load(chains.LoadOptions{
			DefaultChainID: id.ChainID(cfg.DefaultChainID),
			Dir:            cfg.ChainsDir,
			Logger:         logger.NewWithWriter(os.Stderr, cfg.LogLevel, "text"),
		})
		if err != nil {
			return err
		}

		defaultID := reg.Default().ChainID
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tNAME SERVICE\tSCHEMAS\tEAS")
		for _, e := range reg.List() {
			name := e.Name
			if e.ChainID == defaultID {
				name += " (default)"
			}
			ns := "-"
			if e.NameService != nil {
				ns = e.NameService.ReverseNamespace
			}
			eas := e.EASGraphQLAPI
			if eas == "" {
				eas = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", e.ChainID, name, ns, len(e.SchemaUIDs), eas)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(chainsCmd)
}
