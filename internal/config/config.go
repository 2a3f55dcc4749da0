// Package config handles meshtool configuration loading and management.
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config holds all extraction settings.
type Config struct {
	Extract ExtractConfig `yaml:"extract" toml:"extract"`
	Filter  FilterConfig  `yaml:"filter" toml:"filter"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ExtractConfig holds what an extraction pass loads and how.
type ExtractConfig struct {
	UVSet            string   `yaml:"uv_set" toml:"uv_set"`
	MappingScheme    string   `yaml:"mapping_scheme" toml:"mapping_scheme"` // "Force Ptex" skips UVs
	Frames           []int    `yaml:"frames" toml:"frames"`
	LoadMode         string   `yaml:"load_mode" toml:"load_mode"` // specified, all or first
	Models           []string `yaml:"models" toml:"models"`
	Gprims           []string `yaml:"gprims" toml:"gprims"`
	Variants         string   `yaml:"variants" toml:"variants"`
	KeepCentered     bool     `yaml:"keep_centered" toml:"keep_centered"`
	IncludeInvisible bool     `yaml:"include_invisible" toml:"include_invisible"`
	ConformYUp       bool     `yaml:"conform_y_up" toml:"conform_y_up"`
	ReadFloat2AsUV   bool     `yaml:"read_float2_as_uv" toml:"read_float2_as_uv"`
	StrictIndices    bool     `yaml:"strict_indices" toml:"strict_indices"`
	SelectionGroups  bool     `yaml:"selection_groups" toml:"selection_groups"`
	Workers          int      `yaml:"workers" toml:"workers"`
}

// FilterConfig holds mesh path substring filters.
type FilterConfig struct {
	Require []string `yaml:"require" toml:"require"`
	Ignore  []string `yaml:"ignore" toml:"ignore"`
}

// OutputConfig holds output file paths.
type OutputConfig struct {
	CachePath string `yaml:"cache_path" toml:"cache_path"` // Empty derives it from the scene path
	PassLog   string `yaml:"pass_log" toml:"pass_log"`     // Empty disables the pass log file
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Extract: ExtractConfig{
			UVSet:          "map1",
			MappingScheme:  "UV if available, Ptex otherwise",
			Frames:         []int{1},
			LoadMode:       "specified",
			ConformYUp:     true,
			ReadFloat2AsUV: true,
			Workers:        1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ParseFrameList parses a comma separated frame list such as "1,2,5".
// Each entry is read as a number and truncated; empty entries are skipped.
func ParseFrameList(s string) ([]int, error) {
	var frames []int
	for _, part := range splitList(s) {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid frame %q: %w", part, err)
		}
		frames = append(frames, int(f))
	}
	return frames, nil
}

// FormatFrameList is the inverse of ParseFrameList.
func FormatFrameList(frames []int) string {
	parts := make([]string, len(frames))
	for i, f := range frames {
		parts[i] = strconv.Itoa(f)
	}
	return strings.Join(parts, ",")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
