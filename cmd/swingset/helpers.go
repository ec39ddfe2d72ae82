// Shared helpers for swingset subcommands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fieldday-labs/swingset/internal/dataset"
	"github.com/fieldday-labs/swingset/internal/sqlite"
	"github.com/fieldday-labs/swingset/pkg/types"
)

// buildStoreConfig assembles the backend Config from flags, config.yaml, and
// environment. The source dataset is loaded eagerly when dataset_path is set
// so that Attach can seed an empty store and re-import a stale one.
func buildStoreConfig() (types.Config, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend:          appConfig.GetString(cfgKeyBackend),
		DataDir:          dataDir,
		CascadeFavorites: appConfig.GetBool(cfgKeyCascadeFavorites),
	}

	if path := appConfig.GetString(cfgKeyDatasetPath); path != "" {
		ds, err := dataset.ReadPlaygrounds(path)
		if err != nil {
			return types.Config{}, fmt.Errorf("read dataset %s: %w", path, err)
		}
		cfg.Dataset = ds
	}

	if appConfig.IsSet(cfgKeySprinklerMin) && appConfig.IsSet(cfgKeySprinklerMax) {
		cfg.SprinklerExpect = &types.CountRange{
			Min: appConfig.GetInt(cfgKeySprinklerMin),
			Max: appConfig.GetInt(cfgKeySprinklerMax),
		}
	}

	return cfg, nil
}

// attachBackend creates and attaches the SQLite backend. Callers must
// Detach when finished.
func attachBackend() (*sqlite.Backend, error) {
	cfg, err := buildStoreConfig()
	if err != nil {
		return nil, err
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPlaygroundTable writes playgrounds as an aligned table.
func printPlaygroundTable(playgrounds []types.Playground) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "PROP ID\tNAME\tBOROUGH\tACCESSIBLE\tSENSORY")
	for _, p := range playgrounds {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.PropID, p.Name, p.Borough(), p.NormalizedAccessible(), p.SensoryFriendly)
	}
	return w.Flush()
}

// printPlayground writes a single playground, honoring --json.
func printPlayground(p *types.Playground) error {
	if flagJSON {
		return printJSON(p)
	}
	return printPlaygroundTable([]types.Playground{*p})
}

// printPlaygrounds writes a playground list, honoring --json.
func printPlaygrounds(playgrounds []types.Playground) error {
	if flagJSON {
		return printJSON(playgrounds)
	}
	return printPlaygroundTable(playgrounds)
}

// printPlaygroundPtrs writes a pointer-typed playground list, honoring --json.
func printPlaygroundPtrs(playgrounds []*types.Playground) error {
	if flagJSON {
		return printJSON(playgrounds)
	}
	flat := make([]types.Playground, 0, len(playgrounds))
	for _, p := range playgrounds {
		flat = append(flat, *p)
	}
	return printPlaygroundTable(flat)
}

// parseBoolFlag converts a tri-state string flag ("", "true", "false") into
// an optional bool. Empty means unconstrained.
func parseBoolFlag(value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean value %q", value)
	}
	return &b, nil
}
