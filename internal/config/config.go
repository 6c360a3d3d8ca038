// Package config builds the run configuration by layering compiled-in
// defaults, an optional JSON config file, environment variables, and
// command-line flags, in that order of increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default values for every tunable, centralised here so the CLI help text,
// the defaults layer, and any documentation stay in sync with one source of
// truth.
const (
	DefaultLevThreshold   = 0
	DefaultLineThreshold  = 1
	DefaultBlockThreshold = 10
	DefaultWorkerThreads  = 1
	DefaultReportingMode  = "text"
)

// ReportingMode selects between the two renderer implementations.
type ReportingMode string

const (
	ReportingText ReportingMode = "text"
	ReportingJSON ReportingMode = "json"
)

// Configuration is the immutable, fully-resolved set of run parameters.
type Configuration struct {
	LevThreshold   int           `koanf:"lev_threshold"`
	LineThreshold  int           `koanf:"line_threshold"`
	BlockThreshold int           `koanf:"block_threshold"`
	WorkerThreads  int           `koanf:"worker_threads"`
	ReportingMode  ReportingMode `koanf:"reporting_mode"`
	Verbose        bool          `koanf:"verbose"`
	ConfigPath     string        `koanf:"-"`
	Paths          []string      `koanf:"-"`
}

// FlagOverrides mirrors Configuration's tunables plus a Set of flag names
// the caller actually passed on the command line; only those win over the
// file and environment layers, so defaults baked into the flag parser don't
// silently override a config file.
type FlagOverrides struct {
	LevThreshold   *int
	LineThreshold  *int
	BlockThreshold *int
	WorkerThreads  *int
	ReportingMode  *string
	Verbose        *bool
	Set            map[string]bool
}

// Load builds a Configuration from, in ascending precedence: compiled-in
// defaults, the JSON file at configPath (if non-empty), environment
// variables prefixed SUPERDIFF_, and whichever flags the caller actually
// set.
func Load(configPath string, flags FlagOverrides) (Configuration, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"lev_threshold":   DefaultLevThreshold,
		"line_threshold":  DefaultLineThreshold,
		"block_threshold": DefaultBlockThreshold,
		"worker_threads":  DefaultWorkerThreads,
		"reporting_mode":  DefaultReportingMode,
		"verbose":         false,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Configuration{}, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), json.Parser()); err != nil {
			return Configuration{}, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: "SUPERDIFF_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "SUPERDIFF_")), value
		},
	}), nil); err != nil {
		return Configuration{}, fmt.Errorf("load environment: %w", err)
	}

	if err := applyFlagOverrides(k, flags); err != nil {
		return Configuration{}, fmt.Errorf("apply flags: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return Configuration{}, fmt.Errorf("unmarshal configuration: %w", err)
	}
	cfg.ConfigPath = configPath

	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}

	return cfg, nil
}

func applyFlagOverrides(k *koanf.Koanf, flags FlagOverrides) error {
	overrides := map[string]interface{}{}

	if flags.Set["lev-threshold"] && flags.LevThreshold != nil {
		overrides["lev_threshold"] = *flags.LevThreshold
	}
	if flags.Set["line-threshold"] && flags.LineThreshold != nil {
		overrides["line_threshold"] = *flags.LineThreshold
	}
	if flags.Set["block-threshold"] && flags.BlockThreshold != nil {
		overrides["block_threshold"] = *flags.BlockThreshold
	}
	if flags.Set["worker-threads"] && flags.WorkerThreads != nil {
		overrides["worker_threads"] = *flags.WorkerThreads
	}
	if flags.Set["reporting-mode"] && flags.ReportingMode != nil {
		overrides["reporting_mode"] = *flags.ReportingMode
	}
	if flags.Set["verbose"] && flags.Verbose != nil {
		overrides["verbose"] = *flags.Verbose
	}

	if len(overrides) == 0 {
		return nil
	}
	return k.Load(confmap.Provider(overrides, "."), nil)
}

// Validate rejects configurations the rest of the system cannot act on. A
// malformed configuration is a fatal "Configuration error" per the run's
// error-handling contract.
func (c Configuration) Validate() error {
	if c.LevThreshold < 0 {
		return fmt.Errorf("lev_threshold must be >= 0, got %d", c.LevThreshold)
	}
	if c.LineThreshold < 0 {
		return fmt.Errorf("line_threshold must be >= 0, got %d", c.LineThreshold)
	}
	if c.BlockThreshold < 1 {
		return fmt.Errorf("block_threshold must be >= 1, got %d", c.BlockThreshold)
	}
	if c.WorkerThreads < 1 {
		return fmt.Errorf("worker_threads must be >= 1, got %d", c.WorkerThreads)
	}
	switch c.ReportingMode {
	case ReportingText, ReportingJSON:
	default:
		return fmt.Errorf("reporting_mode must be %q or %q, got %q", ReportingText, ReportingJSON, c.ReportingMode)
	}
	return nil
}
