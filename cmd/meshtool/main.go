// meshtool is a CLI utility for normalizing scene meshes into geometry caches.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshnorm/internal/config"
	"github.com/Faultbox/meshnorm/internal/extract"
	"github.com/Faultbox/meshnorm/internal/host"
	"github.com/Faultbox/meshnorm/internal/logger"
	"github.com/Faultbox/meshnorm/internal/mesh"
	"github.com/Faultbox/meshnorm/pkg/scene"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "uvsets", "uv":
		cmdUVSets(args)
	case "extract", "x":
		cmdExtract(args)
	case "dump":
		cmdDump(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - scene mesh normalization utility

Usage:
  meshtool <command> [options] <file>

Commands:
  info [options] <scene.yaml>      List meshes with face and corner counts
  uvsets [options] <scene.yaml>    List UV sets offered by the scene's meshes
  extract [options] <scene.yaml>   Normalize meshes and write a geometry cache
  dump <file.mgeo>                 Show a geometry cache summary

Options (info, uvsets, extract):
  -config <path>       Config file (YAML or TOML)
  -uvset <name>        UV set to load (default map1)
  -frames <list>       Comma separated frames, e.g. 1,2,10
  -load <mode>         Models to load: specified, all or first
  -models <list>       Comma separated model names
  -gprims <list>       Comma separated mesh names or paths
  -variants <sels>     Variant selections, e.g. "/World/chair{lod=high}"
  -keep-centered       Discard model transforms
  -include-invisible   Load invisible meshes
  -z-up                Keep Z-up scenes Z-up
  -workers <n>         Meshes built at once
  -o <path>            Output cache path (extract only)

Examples:
  meshtool uvsets chair.yaml
  meshtool extract -uvset st -frames 1,2,3 -models chair -o chair.mgeo room.yaml
  meshtool dump chair.mgeo`)
}

// setup parses a subcommand's flags, loads the config and initializes
// logging. It returns the scene path.
func setup(fs *flag.FlagSet, args []string) (*config.Config, string) {
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: meshtool %s [options] <scene.yaml>\n", fs.Name())
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg, fs.Arg(0)
}

func loadStage(path string) *scene.Stage {
	stage, err := scene.Load(path)
	if err != nil {
		logger.Error("Cannot load scene", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return stage
}

// meshOptions converts the config's extract settings to mesh options.
func meshOptions(cfg *config.Config) mesh.Options {
	return mesh.Options{
		UVSet:          extract.UVSetFromChoice(cfg.Extract.UVSet),
		MappingScheme:  cfg.Extract.MappingScheme,
		Frames:         cfg.Extract.Frames,
		ConformYUp:     cfg.Extract.ConformYUp,
		ReadFloat2AsUV: cfg.Extract.ReadFloat2AsUV,
		StrictIndices:  cfg.Extract.StrictIndices,
	}
}

func filter(cfg *config.Config) mesh.Filter {
	return mesh.Filter{Require: cfg.Filter.Require, Ignore: cfg.Filter.Ignore}
}

// extractOptions converts the config to extraction pass options.
func extractOptions(cfg *config.Config, source string) (extract.Options, error) {
	mode, err := extract.ParseLoadMode(cfg.Extract.LoadMode)
	if err != nil {
		return extract.Options{}, err
	}
	return extract.Options{
		Mesh:             meshOptions(cfg),
		Source:           source,
		LoadMode:         mode,
		Models:           cfg.Extract.Models,
		Gprims:           cfg.Extract.Gprims,
		Variants:         cfg.Extract.Variants,
		IncludeInvisible: cfg.Extract.IncludeInvisible,
		KeepCentered:     cfg.Extract.KeepCentered,
		SelectionGroups:  cfg.Extract.SelectionGroups,
		Filter:           filter(cfg),
		Workers:          cfg.Extract.Workers,
		Logger:           logger.Log,
	}, nil
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cfg, path := setup(fs, args)
	defer logger.Sync()

	stage := loadStage(path)
	opts := meshOptions(cfg)
	opts.SourceUpY = stage.IsUpY()
	opts.Logger = logger.Log
	f := filter(cfg)

	fmt.Printf("Scene:   %s\n", path)
	fmt.Printf("Up axis: %s\n", upAxis(stage))
	fmt.Printf("Frames:  %s\n", config.FormatFrameList(cfg.Extract.Frames))
	fmt.Println()
	fmt.Printf("  %-40s %7s %8s %-8s %-6s %-8s %s\n", "PATH", "FACES", "CORNERS", "STATE", "UV", "SUBDIV", "SIZE")

	count, valid := 0, 0
	stage.Traverse(func(n *scene.Node) bool {
		if !mesh.IsValidNode(n, f) {
			return true
		}
		count++
		m := mesh.Build(n, opts)
		if m.HasGeometry() {
			valid++
		}
		subdiv := "-"
		if m.IsSubdivisionMesh() {
			subdiv = m.Subdiv().Scheme
		}
		size := "-"
		if m.HasGeometry() {
			s := m.Bounds(m.FrameNumbers()[0]).Size()
			size = fmt.Sprintf("%gx%gx%g", s[0], s[1], s[2])
		}
		fmt.Printf("  %-40s %7d %8d %-8s %-6t %-8s %s\n",
			n.Path(), m.Topology().FaceCount(), m.Topology().CornerCount(), m.State(), m.HasUVs(), subdiv, size)
		if err := m.Err(); err != nil {
			fmt.Printf("    error: %v\n", err)
		}
		return true
	})

	fmt.Println()
	fmt.Printf("Meshes: %d (%d valid)\n", count, valid)
}

func cmdUVSets(args []string) {
	fs := flag.NewFlagSet("uvsets", flag.ExitOnError)
	cfg, path := setup(fs, args)
	defer logger.Sync()

	stage := loadStage(path)
	d := extract.Discover(stage, filter(cfg), cfg.Extract.ReadFloat2AsUV)
	if len(d.UVSets) == 0 {
		fmt.Printf("No UV sets found in %s (%d meshes)\n", path, d.Meshes)
		return
	}
	for _, choice := range d.Choices() {
		fmt.Println(choice)
	}
}

func cmdExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	out := fs.String("o", "", "Output cache path")
	cfg, path := setup(fs, args)
	defer logger.Sync()

	stage := loadStage(path)
	opts, err := extractOptions(cfg, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := extract.Run(ctx, stage, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Output.PassLog != "" {
		if err := writePassLog(cfg.Output.PassLog, res); err != nil {
			logger.Warn("Cannot write pass log", zap.String("path", cfg.Output.PassLog), zap.Error(err))
		}
	}
	for _, line := range res.Log {
		fmt.Fprintln(os.Stderr, line)
	}
	if !res.OK() {
		os.Exit(1)
	}

	cachePath := *out
	if cachePath == "" {
		cachePath = cfg.Output.CachePath
	}
	if cachePath == "" {
		cachePath = strings.TrimSuffix(path, filepath.Ext(path)) + ".mgeo"
	}
	if err := res.Entity.SaveCache(cachePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Entity:  %s (%s)\n", res.Entity.Name, res.Entity.ID)
	fmt.Printf("Meshes:  %d loaded, %d skipped\n", len(res.Built), len(res.Skipped))
	fmt.Printf("Faces:   %d\n", res.Entity.FaceCount())
	fmt.Printf("Written: %s\n", cachePath)
}

func writePassLog(path string, res *extract.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := res.WriteLog(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdDump(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool dump <file.mgeo>")
		os.Exit(1)
	}

	e, err := host.LoadCache(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cache:   %s\n", args[0])
	fmt.Printf("Entity:  %s\n", e.Name)
	fmt.Printf("ID:      %s\n", e.ID)
	fmt.Printf("Objects: %d\n", len(e.Objects))
	fmt.Printf("Faces:   %d\n", e.FaceCount())

	if len(e.Metadata) > 0 {
		fmt.Println()
		fmt.Println("Metadata:")
		for _, k := range e.MetadataKeys() {
			fmt.Printf("  %-14s %s\n", k, e.Metadata[k])
		}
	}

	for _, o := range e.Objects {
		fmt.Println()
		fmt.Printf("%s (%d faces)\n", o.Label, o.FaceCount)
		if o.Subdiv.Scheme != "" {
			fmt.Printf("  subdiv:  %s boundary=%d fvli=%d\n",
				o.Subdiv.Scheme, o.Subdiv.InterpolateBoundary, o.Subdiv.FaceVaryingLinearInterpolation)
		}
		if g := o.SelectionGroup; g != nil {
			fmt.Printf("  group:   %s (%d faces)\n", g.Name, len(g.FaceIndices))
		}
		for _, b := range o.Buffers {
			fmt.Printf("  %-20s %-5s %d\n", b.Role, b.Kind, b.Len())
		}
		if len(o.Frames) > 0 {
			frames := make([]int, len(o.Frames))
			for i, f := range o.Frames {
				frames[i] = f.Frame
			}
			fmt.Printf("  frames:  %s\n", config.FormatFrameList(frames))
		}
	}
}

func upAxis(stage *scene.Stage) string {
	if stage.IsUpY() {
		return "Y"
	}
	return "Z"
}
