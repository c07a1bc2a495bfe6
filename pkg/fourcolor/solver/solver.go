package solver

import (
	"context"

	"github.com/google/uuid"

	"github.com/fourcolor/fourcolor/internal/solver"
	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// MapSolver colors one map. It holds the graph and palette; everything
// that varies between runs (heuristic toggles, seeds, domain
// restrictions, tracing) is passed to Solve as options.
type MapSolver struct {
	graph   *fourcolor.Graph
	palette fourcolor.Palette
}

// NewMapSolver returns a solver for g over palette. A nil palette means
// the canonical ten colors.
func NewMapSolver(g *fourcolor.Graph, palette fourcolor.Palette) *MapSolver {
	return &MapSolver{graph: g, palette: palette}
}

type solveOptions struct {
	tracer    fourcolor.Tracer
	seeds     fourcolor.Assignment
	domains   map[fourcolor.RegionID][]fourcolor.Color
	useMRV    bool
	useDegree bool
}

func (o *solveOptions) apply(options ...Option) *solveOptions {
	for _, applyOption := range options {
		applyOption(o)
	}
	return o
}

func defaultSolveOptions() *solveOptions {
	return &solveOptions{
		useMRV:    true,
		useDegree: true,
	}
}

type Option func(*solveOptions)

// WithTracer streams each trace event to t as the search produces it.
// The full event log is always available on the Result regardless.
func WithTracer(t fourcolor.Tracer) Option {
	return func(o *solveOptions) {
		o.tracer = t
	}
}

// WithMRV enables or disables minimum-remaining-values variable
// selection. Enabled by default.
func WithMRV(enabled bool) Option {
	return func(o *solveOptions) {
		o.useMRV = enabled
	}
}

// WithDegree enables or disables the degree tie-break during variable
// selection. Enabled by default.
func WithDegree(enabled bool) Option {
	return func(o *solveOptions) {
		o.useDegree = enabled
	}
}

// WithSeeds fixes the colors of particular regions before the search
// starts. A seed collapses the region's starting domain to the one
// color, so seeded regions surface through the ordinary selection
// path and the trace stays uniform. Seeds that make the map
// uncolorable yield a Failed result, not an error; a seed naming an
// unknown region or a color outside the palette is a configuration
// error.
func WithSeeds(seeds fourcolor.Assignment) Option {
	return func(o *solveOptions) {
		o.seeds = seeds
	}
}

// WithDomains restricts the candidate colors of particular regions to
// a subset of the palette. Regions not listed keep the full palette.
func WithDomains(domains map[fourcolor.RegionID][]fourcolor.Color) Option {
	return func(o *solveOptions) {
		o.domains = domains
	}
}

// Solve runs the backtracking search to the first complete coloring
// and returns its Result, stamped with a fresh run ID. The Result's
// Outcome distinguishes Succeeded, Failed, and Cancelled; an error
// return means the inputs could not be searched at all.
func (s *MapSolver) Solve(ctx context.Context, options ...Option) (*fourcolor.Result, error) {
	opts := defaultSolveOptions().apply(options...)

	domains, err := s.mergeDomains(opts)
	if err != nil {
		return nil, err
	}

	engineOpts := []solver.Option{
		solver.WithGraph(s.graph),
		solver.WithMRV(opts.useMRV),
		solver.WithDegree(opts.useDegree),
	}
	if s.palette != nil {
		engineOpts = append(engineOpts, solver.WithPalette(s.palette))
	}
	if domains != nil {
		engineOpts = append(engineOpts, solver.WithDomains(domains))
	}
	if opts.tracer != nil {
		engineOpts = append(engineOpts, solver.WithTracer(opts.tracer))
	}

	engine, err := solver.NewSolver(engineOpts...)
	if err != nil {
		return nil, err
	}

	result, err := engine.Solve(ctx)
	if err != nil {
		return nil, err
	}
	// The engine's output is byte-deterministic; identity is stamped
	// here so replays of the same problem stay comparable.
	result.RunID = uuid.NewString()
	return result, nil
}

// mergeDomains folds seeds into the domain overrides as singletons.
// A seed wins over a domain override for the same region, but only if
// the override allows the seeded color.
func (s *MapSolver) mergeDomains(opts *solveOptions) (map[fourcolor.RegionID][]fourcolor.Color, error) {
	if len(opts.seeds) == 0 {
		return opts.domains, nil
	}
	merged := make(map[fourcolor.RegionID][]fourcolor.Color, len(opts.domains)+len(opts.seeds))
	for r, cs := range opts.domains {
		merged[r] = cs
	}
	for r, c := range opts.seeds {
		if restricted, ok := merged[r]; ok {
			allowed := false
			for _, rc := range restricted {
				if rc == c {
					allowed = true
					break
				}
			}
			if !allowed {
				return nil, fourcolor.InvalidAssignmentError{
					Region: r,
					Color:  c,
					Reason: "seed color is outside the region's restricted domain",
				}
			}
		}
		merged[r] = []fourcolor.Color{c}
	}
	return merged, nil
}

// Greedy colors g without search: regions in descending degree order
// each take the first palette color no colored neighbor uses. Regions
// left without a legal color are omitted; complete reports whether
// every region was colored. It is a fallback for maps the full search
// proves uncolorable with the given palette.
func Greedy(g *fourcolor.Graph, palette fourcolor.Palette) (a fourcolor.Assignment, complete bool) {
	if palette == nil {
		palette = fourcolor.DefaultPalette()
	}
	return solver.Greedy(g, palette)
}
