package chains

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	id "nameplate/pkg/domain"
)

// File is the on-disk form of a custom chain, one JSON object per file.
type File struct {
	ID            uint64             `json:"id"`
	Name          string             `json:"name"`
	RPCURL        string             `json:"rpcUrl"`
	EASGraphQLAPI string             `json:"easGraphqlAPI"`
	SchemaUIDs    []string           `json:"schemaUids"`
	NameService   *NameServiceConfig `json:"nameService,omitempty"`
}

// EntryFromJSON parses and validates one chain file.
func EntryFromJSON(content []byte) (Entry, error) {
	var f File
	if err := json.Unmarshal(content, &f); err != nil {
		return Entry{}, fmt.Errorf("failed to unmarshal chain config: %w", err)
	}
	if f.ID == 0 {
		return Entry{}, fmt.Errorf("chain config: id must be positive")
	}
	if f.Name == "" {
		return Entry{}, fmt.Errorf("chain config %d: name is required", f.ID)
	}
	uids := make([]id.SchemaUID, 0, len(f.SchemaUIDs))
	for _, raw := range f.SchemaUIDs {
		uid, err := id.ParseSchemaUID(raw)
		if err != nil {
			return Entry{}, fmt.Errorf("chain config %d: %w", f.ID, err)
		}
		uids = append(uids, uid)
	}
	return Entry{
		ChainID:       id.ChainID(f.ID),
		Name:          f.Name,
		RPCURL:        f.RPCURL,
		EASGraphQLAPI: f.EASGraphQLAPI,
		SchemaUIDs:    id.NewSchemaSet(uids...),
		NameService:   f.NameService,
	}, nil
}

// LoadDir reads every *.json file in dir. Files that fail to parse are logged
// and skipped so one bad file does not take the built-in chains down with it.
func LoadDir(dir string, logger *slog.Logger) ([]Entry, error) {
	if dir == "" {
		return nil, nil
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob chain files in %s: %w", dir, err)
	}
	entries := make([]Entry, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}
		entry, err := EntryFromJSON(content)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping chain file", "file", file, "error", err)
			}
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// RPCEnvVar is the variable that overrides a chain's RPC endpoint, e.g.
// BASE_SEPOLIA_RPC_URL.
func RPCEnvVar(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_")) + "_RPC_URL"
}

// LoadOptions controls Load.
type LoadOptions struct {
	DefaultChainID id.ChainID
	Dir            string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	Logger *slog.Logger
}

// Load builds the registry from the built-in table, then custom chain files
// (which replace built-ins with the same chain id), then RPC env overrides.
func Load(opts LoadOptions) (*Registry, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	entries := Builtin()
	custom, err := LoadDir(opts.Dir, opts.Logger)
	if err != nil {
		return nil, err
	}
	for _, c := range custom {
		if opts.Logger != nil {
			opts.Logger.Info("loaded custom chain", "chain_id", uint64(c.ChainID), "name", c.Name)
		}
		entries = append(entries, c)
	}
	for i := range entries {
		if url := strings.TrimSpace(getenv(RPCEnvVar(entries[i].Name))); url != "" {
			entries[i].RPCURL = url
		}
	}
	defaultID := opts.DefaultChainID
	if defaultID.IsZero() {
		defaultID = Mainnet
	}
	return New(defaultID, entries...)
}
