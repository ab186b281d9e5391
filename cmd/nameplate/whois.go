package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nameplate/internal/identity/handler"
	"nameplate/internal/identity/resolver"
	"nameplate/internal/identity/service"
	"nameplate/internal/platform/logger"
	id "nameplate/pkg/domain"
)

var (
	whoisBalance bool
	whoisJSON    bool
	whoisSchemas []string
)

var whoisCmd = &cobra.Command{
	Use:   "whois <address> [address...]",
	Short: "Show the name, avatar and attestations of addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logger.NewWithWriter(os.Stderr, cfg.LogLevel, "text")

		a, err := newApp(cmd.Context(), cfg, log, appOptions{withBalance: whoisBalance})
		if err != nil {
			return err
		}
		defer a.Close()

		chainID, err := selectedChain(a.registry)
		if err != nil {
			return err
		}
		resolveOpts := []service.ResolveOption{service.WithFreshLookup()}
		schemas, err := parseSchemaFlag(whoisSchemas)
		if err != nil {
			return err
		}
		if len(schemas) > 0 {
			resolveOpts = append(resolveOpts, service.WithSchemas(schemas...))
		}

		for _, raw := range args {
			addr, err := id.ParseAddress(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", raw, err)
			}
			rec, err := a.service.ResolveIdentity(cmd.Context(), addr, chainID, resolveOpts...)
			if err != nil {
				return fmt.Errorf("%s: %w", addr.Hex(), err)
			}

			if whoisJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(handler.FromRecord(rec)); err != nil {
					return err
				}
				continue
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (chain %d)\n", rec.Address.Hex(), rec.ChainID)
			fmt.Fprintf(out, "  name:         %s\n", rec.DisplayName())
			if rec.AvatarURL != nil {
				fmt.Fprintf(out, "  avatar:       %s\n", *rec.AvatarURL)
			}
			if rec.Balance != nil {
				fmt.Fprintf(out, "  balance:      %s ETH\n", resolver.FormatEther(rec.Balance))
			}
			fmt.Fprintf(out, "  attestations: %d\n", len(rec.Attestations))
			for _, att := range rec.Attestations {
				fmt.Fprintf(out, "    %s schema=%s attester=%s\n", att.ID, att.SchemaID, att.Attester.Hex())
			}
		}
		return nil
	},
}

func init() {
	whoisCmd.Flags().BoolVar(&whoisBalance, "balance", false, "also read the native balance")
	whoisCmd.Flags().BoolVar(&whoisJSON, "json", false, "print records as JSON")
	whoisCmd.Flags().StringSliceVar(&whoisSchemas, "schema", nil, "only show attestations of these schema UIDs")
	rootCmd.AddCommand(whoisCmd)
}
