package extract

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/meshnorm/internal/host"
	"github.com/Faultbox/meshnorm/internal/mesh"
	"github.com/Faultbox/meshnorm/pkg/scene"
)

// Primvars holding a mesh's handle label, in lookup order.
var handlePrimvars = []string{"__gprimHandleid", "__handleId"}

// Result is the outcome of a pass.
type Result struct {
	// Entity holds one object per loaded mesh.
	Entity *host.Entity
	// Built lists the loaded meshes and Skipped the invalid ones, both in
	// traversal order.
	Built   []*mesh.Mesh
	Skipped []*mesh.Mesh
	// Log holds the user-facing messages of the pass.
	Log []string
}

// OK reports whether at least one mesh was loaded.
func (r *Result) OK() bool {
	return len(r.Built) > 0
}

// Err combines the errors of the skipped meshes.
func (r *Result) Err() error {
	var err error
	for _, m := range r.Skipped {
		cause := m.Err()
		if cause == nil {
			cause = host.ErrNoGeometry
		}
		err = multierr.Append(err, fmt.Errorf("%s: %w", m.Path(), cause))
	}
	return err
}

// WriteLog writes the pass log, one message per line.
func (r *Result) WriteLog(w io.Writer) error {
	for _, line := range r.Log {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// job is a mesh selected for loading.
type job struct {
	node      *scene.Node
	model     *scene.Node
	modelData *host.ModelData
	label     string
}

type pass struct {
	opts  Options
	stage *scene.Stage
	log   *zap.Logger
	res   *Result
}

// Run loads the meshes of a stage selected by opts into a new entity.
//
// Variant selections are applied as nodes are reached. Models switch the
// current model, which decides whether the meshes below it load. Invalid
// meshes are skipped and reported; the pass fails only when ctx is done or
// a mesh cannot be added to the entity.
func Run(ctx context.Context, stage *scene.Stage, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &pass{
		opts:  opts,
		stage: stage,
		log:   logger.With(zap.String("source", opts.Source)),
		res:   &Result{},
	}

	p.log.Debug("Starting extraction",
		zap.String("uv_set", opts.Mesh.UVSet),
		zap.Ints("frames", opts.Mesh.Frames),
		zap.Stringer("load_mode", opts.LoadMode),
		zap.Strings("models", opts.Models),
		zap.Strings("gprims", opts.Gprims),
		zap.Bool("keep_centered", opts.KeepCentered),
		zap.Bool("include_invisible", opts.IncludeInvisible))

	jobs := p.collect()
	meshes, err := p.build(ctx, jobs)
	if err != nil {
		return nil, err
	}
	if err := p.commit(jobs, meshes); err != nil {
		return nil, err
	}
	return p.res, nil
}

// collect walks the stage and returns the meshes to load in traversal order.
func (p *pass) collect() []job {
	sels, bad := ParseVariants(p.opts.Variants)
	for _, b := range bad {
		p.log.Warn("Ignoring malformed variant selection", zap.String("variant", b))
	}

	var (
		jobs      []job
		loadThis  = p.opts.LoadMode != LoadSpecified || len(p.opts.Models) == 0
		current   *scene.Node
		modelData *host.ModelData
		first     *scene.Node
	)

	p.stage.Traverse(func(n *scene.Node) bool {
		p.applyVariants(n, sels)

		if n.IsModel() {
			switch p.opts.LoadMode {
			case LoadAll:
				loadThis = true
			case LoadFirstFound:
				if first == nil {
					first = n
				}
				loadThis = n == first || strings.HasPrefix(n.Path(), first.Path()+"/")
			default:
				loadThis = len(p.opts.Models) == 0 || slices.Contains(p.opts.Models, n.Name())
			}
			if loadThis {
				current = n
				md := host.NewModelData(n, p.opts.Mesh.UVSet)
				modelData = &md
			}
			return true
		}

		if !loadThis {
			return true
		}
		if !p.opts.IncludeInvisible && n.IsInvisible(scene.DefaultTime()) {
			p.log.Debug("Pruning invisible node", zap.String("path", n.Path()))
			return false
		}
		if !mesh.IsValidNode(n, p.opts.Filter) {
			return true
		}
		if len(p.opts.Gprims) > 0 &&
			!slices.Contains(p.opts.Gprims, n.Name()) &&
			!slices.Contains(p.opts.Gprims, n.Path()) {
			return true
		}

		jobs = append(jobs, job{node: n, model: current, modelData: modelData, label: handleLabel(n)})
		return true
	})
	return jobs
}

func (p *pass) applyVariants(n *scene.Node, sels []VariantSelection) {
	for _, sel := range sels {
		if sel.Path != n.Path() {
			continue
		}
		if n.SetVariantSelection(sel.Set, sel.Variant) {
			p.log.Debug("Set variant selection", zap.Stringer("selection", sel))
		} else {
			p.log.Warn("Variant selection not found", zap.Stringer("selection", sel))
		}
	}
}

// build normalizes the selected meshes with up to Workers at once.
func (p *pass) build(ctx context.Context, jobs []job) ([]*mesh.Mesh, error) {
	meshes := make([]*mesh.Mesh, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.opts.Workers, 1))
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			meshes[i] = mesh.Build(j.node, p.meshOptions(j))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}

func (p *pass) meshOptions(j job) mesh.Options {
	opts := p.opts.Mesh
	opts.SourceUpY = p.stage.IsUpY()
	opts.Logger = p.log
	opts.Reference = nil
	if p.opts.KeepCentered && j.model != nil {
		opts.Reference = j.model
	}
	return opts
}

// commit adds the built meshes to the entity in traversal order.
func (p *pass) commit(jobs []job, meshes []*mesh.Mesh) error {
	var modelData *host.ModelData
	entity := host.NewEntity("")

	for i, m := range meshes {
		for _, d := range m.Diagnostics() {
			if d.Severity >= mesh.SeverityWarning {
				p.res.Log = append(p.res.Log, d.Message)
			}
		}
		if !m.HasGeometry() {
			p.log.Warn("Skipping invalid mesh", zap.String("path", m.Path()), zap.Error(m.Err()))
			p.res.Skipped = append(p.res.Skipped, m)
			continue
		}

		o, err := entity.AddMesh(m, jobs[i].label)
		if err != nil {
			return fmt.Errorf("adding %s: %w", m.Path(), err)
		}
		if !p.opts.SelectionGroups {
			o.SelectionGroup = nil
		}
		b := m.Bounds(m.FrameNumbers()[0])
		p.log.Debug("Found importable mesh",
			zap.String("path", m.Path()),
			zap.String("label", o.Label),
			zap.Float32s("bounds_min", b.Min[:]),
			zap.Float32s("bounds_max", b.Max[:]))
		p.res.Built = append(p.res.Built, m)
		if jobs[i].modelData != nil {
			modelData = jobs[i].modelData
		}
	}

	if modelData != nil {
		entity.Name = modelData.InstanceName
		entity.SetMetadata(modelData.Metadata())
	} else {
		entity.Name = strings.TrimSuffix(filepath.Base(p.opts.Source), filepath.Ext(p.opts.Source))
	}
	p.res.Entity = entity

	if !p.res.OK() {
		p.res.Log = append(p.res.Log,
			fmt.Sprintf("No valid geometry with uv set %s found in %s.", p.opts.Mesh.UVSet, p.opts.Source),
			"Was looking for "+strings.Join(p.opts.Models, ","))
		p.log.Warn("No valid geometry found",
			zap.String("uv_set", p.opts.Mesh.UVSet),
			zap.Strings("models", p.opts.Models))
	} else {
		p.log.Info("Extraction complete",
			zap.String("entity", entity.Name),
			zap.Int("built", len(p.res.Built)),
			zap.Int("skipped", len(p.res.Skipped)),
			zap.Int("faces", entity.FaceCount()))
	}
	return nil
}

// handleLabel returns the mesh's handle primvar value, or its path.
func handleLabel(n *scene.Node) string {
	for _, name := range handlePrimvars {
		pv := n.Primvar(name)
		if pv == nil {
			continue
		}
		v, ok := pv.ComputeFlattened(scene.Earliest)
		if !ok {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return n.Path()
}

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []int32:
		if len(v) == 1 {
			return fmt.Sprint(v[0])
		}
	case []float32:
		if len(v) == 1 {
			return fmt.Sprint(v[0])
		}
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
