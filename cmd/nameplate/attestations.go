package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"nameplate/internal/identity/handler"
	"nameplate/internal/identity/models"
	"nameplate/internal/platform/logger"
	id "nameplate/pkg/domain"
	pstrings "nameplate/pkg/platform/strings"
)

var (
	attSchemas        []string
	attRevoked        bool
	attLimit          int
	attSkip           int
	attNotExpiredOnly bool
)

var attestationsCmd = &cobra.Command{
	Use:   "attestations <address>",
	Short: "List EAS attestations received by an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := id.ParseAddress(args[0])
		if err != nil {
			return err
		}
		opts := models.GetAttestationsOptions{
			Revoked: attRevoked,
			Limit:   attLimit,
			Skip:    attSkip,
		}
		if opts.Schemas, err = parseSchemaFlag(attSchemas); err != nil {
			return err
		}
		if attNotExpiredOnly {
			opts.ExpirationTime = time.Now()
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg, logger.NewWithWriter(os.Stderr, cfg.LogLevel, "text"), appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		chainID, err := selectedChain(a.registry)
		if err != nil {
			return err
		}
		atts, err := a.service.Attestations(cmd.Context(), addr, chainID, opts)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(handler.FromAttestations(atts)); err != nil {
			return fmt.Errorf("encode attestations: %w", err)
		}
		return nil
	},
}

// parseSchemaFlag reads a --schema flag, which may be repeated or comma
// separated.
func parseSchemaFlag(values []string) ([]id.SchemaUID, error) {
	var out []id.SchemaUID
	for _, raw := range pstrings.SplitList(values, ",") {
		uid, err := id.ParseSchemaUID(raw)
		if err != nil {
			return nil, fmt.Errorf("--schema %s: %w", raw, err)
		}
		out = append(out, uid)
	}
	return out, nil
}

func init() {
	attestationsCmd.Flags().StringSliceVar(&attSchemas, "schema", nil, "schema UIDs to include. Defaults to every schema trusted for the chain.")
	attestationsCmd.Flags().BoolVar(&attRevoked, "revoked", false, "include revoked attestations")
	attestationsCmd.Flags().BoolVar(&attNotExpiredOnly, "active", false, "exclude attestations that have already expired")
	attestationsCmd.Flags().IntVar(&attLimit, "limit", models.DefaultAttestationLimit, "page size")
	attestationsCmd.Flags().IntVar(&attSkip, "skip", 0, "number of attestations to skip")
	rootCmd.AddCommand(attestationsCmd)
}
