// Package config loads the build-time configuration that chooses which
// table-construction algorithm to run and how permissive the build is about
// conflicts and recovery, TOML-encoded in the style of the teacher's own
// app configuration (internal/tqw.LoadManifestFile /
// internal/tqw.LoadWorldDataFile: read the file, hand the bytes to
// BurntSushi/toml, validate the decoded struct). This is the one
// third-party config library anywhere in the pack, so it is the one used
// here even though the spec itself never mandates a config file format.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sturgeon-gen/sturgeon/parse"
)

// BuildConfig holds the settings for how a table is constructed and
// compressed for a loaded Grammar. Neither sturgeon.Build nor parse.Build
// takes a BuildConfig: Resolve maps Algorithm to a parse.Algorithm, and the
// other fields are decoded and defaulted here but not applied by any code in
// this module.
type BuildConfig struct {
	// Algorithm selects the table-construction method: "lr0", "slr", "lr1",
	// or "lalr" (case-insensitive). Defaults to "lalr" if empty.
	Algorithm string `toml:"algorithm"`

	// Compress selects whether the default-action and
	// unreachable-state-pruning passes (parse.Compress) are wanted.
	Compress bool `toml:"compress"`

	// FailOnConflict records whether a table with any Conflict should be
	// treated as a failed build. Table construction itself never fails on a
	// conflict, and nothing in this module reads this field.
	FailOnConflict bool `toml:"fail_on_conflict"`

	// RecoveryShiftBudget is the desired panic-mode recovery counter reset
	// value. Zero or a negative value is replaced by 3 on decode. parse.Parser
	// does not read it; it always uses a budget of 3.
	RecoveryShiftBudget int `toml:"recovery_shift_budget"`
}

// DefaultBuildConfig is used by Load when a config file omits a field.
var DefaultBuildConfig = BuildConfig{
	Algorithm: "lalr",
	Compress:  true,
}

// Load reads and decodes a BuildConfig from a TOML file at path, applying
// DefaultBuildConfig's values for any field the file leaves unset.
func Load(path string) (BuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BuildConfig{}, err
	}
	return Decode(data)
}

// Decode parses TOML-encoded configuration bytes directly, for callers that
// already have the config in memory (e.g. embedded or generated at build
// time) rather than on disk.
func Decode(data []byte) (BuildConfig, error) {
	cfg := DefaultBuildConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return BuildConfig{}, fmt.Errorf("decode build config: %w", err)
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultBuildConfig.Algorithm
	}
	if cfg.RecoveryShiftBudget <= 0 {
		cfg.RecoveryShiftBudget = 3
	}
	if _, ok := algorithmByName(cfg.Algorithm); !ok {
		return BuildConfig{}, fmt.Errorf("unknown algorithm %q", cfg.Algorithm)
	}
	return cfg, nil
}

// Resolve returns the parse.Algorithm this config names.
func (c BuildConfig) Resolve() parse.Algorithm {
	algo, _ := algorithmByName(c.Algorithm)
	return algo
}

func algorithmByName(name string) (parse.Algorithm, bool) {
	switch strings.ToLower(name) {
	case "lr0":
		return parse.LR0, true
	case "slr":
		return parse.SLR, true
	case "lr1":
		return parse.LR1, true
	case "lalr", "":
		return parse.LALR, true
	default:
		return parse.LALR, false
	}
}
