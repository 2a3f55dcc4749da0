package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by Load.
const (
	EnvRequireGeomPath = "PX_USDREADER_REQUIRE_GEOM_PATH_SUBSTR"
	EnvIgnoreGeomPath  = "PX_USDREADER_IGNORE_GEOM_PATH_SUBSTR"
	EnvReadFloat2AsUV  = "MARI_READ_FLOAT2_AS_UV"
)

// applyEnv applies environment overrides to the config. A set variable
// replaces the configured value, even when empty.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRequireGeomPath); ok {
		cfg.Filter.Require = splitList(v)
	}
	if v, ok := lookup(EnvIgnoreGeomPath); ok {
		cfg.Filter.Ignore = splitList(v)
	}
	if v, ok := lookup(EnvReadFloat2AsUV); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvReadFloat2AsUV, err)
		}
		cfg.Extract.ReadFloat2AsUV = b
	}
	return nil
}

var lookupEnv = os.LookupEnv
