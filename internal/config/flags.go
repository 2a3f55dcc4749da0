package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config           string
	Debug            bool
	UVSet            string
	Frames           string
	LoadMode         string
	Models           string
	Gprims           string
	Variants         string
	KeepCentered     bool
	IncludeInvisible bool
	ZUp              bool
	StrictIndices    bool
	SelectionGroups  bool
	Workers          int
	LogFile          string
}

// RegisterFlags defines the config flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.UVSet, "uvset", "", "UV set to load")
	fs.StringVar(&f.Frames, "frames", "", "Comma separated frame numbers")
	fs.StringVar(&f.LoadMode, "load", "", "Models to load: specified, all or first")
	fs.StringVar(&f.Models, "models", "", "Comma separated model names")
	fs.StringVar(&f.Gprims, "gprims", "", "Comma separated mesh names or paths")
	fs.StringVar(&f.Variants, "variants", "", "Variant selections, e.g. /World/chair{lod=high}")
	fs.BoolVar(&f.KeepCentered, "keep-centered", false, "Discard model transforms")
	fs.BoolVar(&f.IncludeInvisible, "include-invisible", false, "Load invisible meshes")
	fs.BoolVar(&f.ZUp, "z-up", false, "Keep Z-up scenes Z-up")
	fs.BoolVar(&f.StrictIndices, "strict", false, "Reject meshes with out of range indices")
	fs.BoolVar(&f.SelectionGroups, "selection-groups", false, "Create a face selection group per mesh")
	fs.IntVar(&f.Workers, "workers", 0, "Meshes built at once")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	return f
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) error {
	if f == nil {
		return nil
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.UVSet != "" {
		cfg.Extract.UVSet = f.UVSet
	}
	if f.Frames != "" {
		frames, err := ParseFrameList(f.Frames)
		if err != nil {
			return err
		}
		cfg.Extract.Frames = frames
	}
	if f.LoadMode != "" {
		cfg.Extract.LoadMode = f.LoadMode
	}
	if f.Models != "" {
		cfg.Extract.Models = splitList(f.Models)
	}
	if f.Gprims != "" {
		cfg.Extract.Gprims = splitList(f.Gprims)
	}
	if f.Variants != "" {
		cfg.Extract.Variants = f.Variants
	}
	if f.KeepCentered {
		cfg.Extract.KeepCentered = true
	}
	if f.IncludeInvisible {
		cfg.Extract.IncludeInvisible = true
	}
	if f.ZUp {
		cfg.Extract.ConformYUp = false
	}
	if f.StrictIndices {
		cfg.Extract.StrictIndices = true
	}
	if f.SelectionGroups {
		cfg.Extract.SelectionGroups = true
	}
	if f.Workers > 0 {
		cfg.Extract.Workers = f.Workers
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	return nil
}
