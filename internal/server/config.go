package server

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ironsheep/feature-tools-mcp/internal/composite"
	"github.com/ironsheep/feature-tools-mcp/internal/features"
	"github.com/ironsheep/feature-tools-mcp/internal/teblid"
)

// Environment variables read by LoadConfigFromEnv.
const (
	EnvLogLevel          = "FEATURE_MCP_LOG_LEVEL"
	EnvORBNFeatures      = "FEATURE_MCP_ORB_NFEATURES"
	EnvORBScaleFactor    = "FEATURE_MCP_ORB_SCALE_FACTOR"
	EnvORBNLevels        = "FEATURE_MCP_ORB_NLEVELS"
	EnvTEBLIDScaleFactor = "FEATURE_MCP_TEBLID_SCALE_FACTOR"
	EnvTEBLIDBits        = "FEATURE_MCP_TEBLID_BITS"
)

// Config holds everything the server needs at start-up.
type Config struct {
	// Extractor is passed unchanged to composite.New.
	Extractor composite.Config

	// Debug enables per-request and extractor diagnostics on the standard
	// logger.
	Debug bool
}

// DefaultConfig returns the default extractor parameters with debug off.
func DefaultConfig() Config {
	return Config{Extractor: composite.DefaultConfig()}
}

// LoadConfigFromEnv starts from DefaultConfig and applies any environment
// overrides. Unset variables keep their defaults; malformed values are
// reported as errors wrapping features.ErrInvalidConfig.
func LoadConfigFromEnv() (Config, error) {
	return loadConfig(os.LookupEnv)
}

func loadConfig(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	if v, ok := lookup(EnvLogLevel); ok && v == "debug" {
		cfg.Debug = true
	}

	ints := []struct {
		env string
		dst *int
	}{
		{EnvORBNFeatures, &cfg.Extractor.ORB.NFeatures},
		{EnvORBNLevels, &cfg.Extractor.ORB.NLevels},
	}
	for _, e := range ints {
		v, ok := lookup(e.env)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q is not an integer", features.ErrInvalidConfig, e.env, v)
		}
		*e.dst = n
	}

	floats := []struct {
		env string
		dst *float64
	}{
		{EnvORBScaleFactor, &cfg.Extractor.ORB.ScaleFactor},
		{EnvTEBLIDScaleFactor, &cfg.Extractor.TEBLID.ScaleFactor},
	}
	for _, e := range floats {
		v, ok := lookup(e.env)
		if !ok || v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q is not a number", features.ErrInvalidConfig, e.env, v)
		}
		*e.dst = f
	}

	if v, ok := lookup(EnvTEBLIDBits); ok && v != "" {
		bits, err := strconv.Atoi(v)
		if err != nil || !teblid.BitWidth(bits).Valid() {
			return Config{}, fmt.Errorf("%w: %s=%q must be 256 or 512", features.ErrInvalidConfig, EnvTEBLIDBits, v)
		}
		cfg.Extractor.TEBLID.Bits = teblid.BitWidth(bits)
	}
	return cfg, nil
}
