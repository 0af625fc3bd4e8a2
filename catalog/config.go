package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oacatalog/oaserrors"
)

//go:embed defaults.yaml
var defaultConfigYAML []byte

// Config holds the curated naming policy applied by the extractor.
//
// The lists are maintained alongside the document producer, not derived from
// the document. Market tokens and markers follow the producer's URL
// conventions. The extractor takes a nil Markets and empty marker or suffix
// fields from DefaultConfig, so Config{SeedNames: s, IgnoredNames: i} keeps
// the built-in market and f10 naming.
type Config struct {
	// SeedNames are emitted first in Catalog.APIKeyList, in order.
	SeedNames []string `yaml:"seedNames" json:"seedNames"`
	// IgnoredNames are derived names excluded from the catalog.
	IgnoredNames []string `yaml:"ignoredNames" json:"ignoredNames"`
	// Markets are the market tokens recognised before the version segment.
	Markets []string `yaml:"markets" json:"markets"`
	// OptionMarker is the segment that turns the following market token into
	// an options market.
	OptionMarker string `yaml:"optionMarker" json:"optionMarker"`
	// OptionSuffix is appended to a market token preceded by OptionMarker.
	OptionSuffix string `yaml:"optionSuffix" json:"optionSuffix"`
	// F10Marker is searched for in the path prefix.
	F10Marker string `yaml:"f10Marker" json:"f10Marker"`
	// F10Prefix is prepended to names whose prefix contains F10Marker.
	F10Prefix string `yaml:"f10Prefix" json:"f10Prefix"`
}

// configKeys lists the keys accepted in a configuration file.
var configKeys = []string{
	"seedNames", "ignoredNames", "markets",
	"optionMarker", "optionSuffix", "f10Marker", "f10Prefix",
}

var defaultConfig = sync.OnceValues(func() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
})

// DefaultConfig returns the built-in naming policy. Each call returns an
// independent copy.
func DefaultConfig() Config {
	cfg, err := defaultConfig()
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded defaults are invalid: %v", err))
	}
	return cfg.Clone()
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.SeedNames = slices.Clone(c.SeedNames)
	c.IgnoredNames = slices.Clone(c.IgnoredNames)
	c.Markets = slices.Clone(c.Markets)
	return c
}

// withDefaults fills nil Markets and empty markers and suffixes from
// DefaultConfig. An explicitly empty Markets slice is kept.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Markets == nil {
		c.Markets = def.Markets
	}
	if c.OptionMarker == "" {
		c.OptionMarker = def.OptionMarker
	}
	if c.OptionSuffix == "" {
		c.OptionSuffix = def.OptionSuffix
	}
	if c.F10Marker == "" {
		c.F10Marker = def.F10Marker
	}
	if c.F10Prefix == "" {
		c.F10Prefix = def.F10Prefix
	}
	return c
}

// Validate reports configuration that would make name derivation meaningless.
func (c Config) Validate() error {
	for i, m := range c.Markets {
		if m == "" {
			return &oaserrors.ConfigError{Option: fmt.Sprintf("markets[%d]", i), Message: "market tokens must not be empty"}
		}
	}
	if c.OptionMarker == "" {
		return &oaserrors.ConfigError{Option: "optionMarker", Message: "must not be empty"}
	}
	if c.F10Marker == "" {
		return &oaserrors.ConfigError{Option: "f10Marker", Message: "must not be empty"}
	}
	return nil
}

// LoadConfig reads a YAML or JSON configuration file. Keys the file omits keep
// their DefaultConfig values; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, &oaserrors.ConfigError{Option: "config", Value: path, Message: "failed to read file", Cause: err}
	}
	return ParseConfig(data)
}

// ParseConfig is LoadConfig for configuration already in memory.
func ParseConfig(data []byte) (Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Config{}, &oaserrors.ConfigError{Option: "config", Message: "invalid YAML/JSON", Cause: err}
	}
	if len(root.Content) > 0 {
		body := root.Content[0]
		if body.Kind != yaml.MappingNode {
			return Config{}, &oaserrors.ConfigError{Option: "config", Message: "configuration must be an object"}
		}
		for i := 0; i < len(body.Content); i += 2 {
			if key := body.Content[i].Value; !slices.Contains(configKeys, key) {
				return Config{}, &oaserrors.ConfigError{Option: key, Message: "unknown configuration key"}
			}
		}
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &oaserrors.ConfigError{Option: "config", Message: "invalid configuration", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
