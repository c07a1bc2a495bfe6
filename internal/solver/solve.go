package solver

import (
	"context"
	"time"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

type Solver interface {
	Solve(context.Context) (*fourcolor.Result, error)
}

type solver struct {
	graph     *fourcolor.Graph
	palette   fourcolor.Palette
	domains   map[fourcolor.RegionID][]fourcolor.Color
	tracer    fourcolor.Tracer
	useMRV    bool
	useDegree bool
}

const (
	succeeded = 1
	failed    = -1
	cancelled = 0
)

// Solve runs one search to the first complete coloring. Failed and
// Cancelled are verdicts carried in the Result, not errors; an error
// return means the input could not be searched at all.
func (s *solver) Solve(ctx context.Context) (*fourcolor.Result, error) {
	start := time.Now()

	h, err := s.newSearch()
	if err != nil {
		return nil, err
	}
	outcome := h.Do(ctx)

	// This likely indicates a bug, so discard whatever
	// partial trace was produced.
	if h.err != nil {
		return nil, h.err
	}

	result := &fourcolor.Result{
		Events: h.events,
		Stats:  h.stats,
	}
	result.Stats.Duration = time.Since(start)
	switch outcome {
	case succeeded:
		result.Outcome = fourcolor.Succeeded
		result.Assignment = h.st.assignment()
	case failed:
		result.Outcome = fourcolor.Failed
	default:
		result.Outcome = fourcolor.Cancelled
	}
	return result, nil
}

func NewSolver(options ...Option) (Solver, error) {
	s := solver{useMRV: true, useDegree: true}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *solver) error

func WithGraph(g *fourcolor.Graph) Option {
	return func(s *solver) error {
		s.graph = g
		return nil
	}
}

func WithPalette(p fourcolor.Palette) Option {
	return func(s *solver) error {
		if err := p.Validate(); err != nil {
			return err
		}
		s.palette = p
		return nil
	}
}

// WithDomains narrows the starting candidate sets of particular
// regions. Candidates keep palette order no matter how the lists here
// are ordered; regions absent from domains start with the full
// palette. A region listed with no colors starts with an empty domain.
func WithDomains(domains map[fourcolor.RegionID][]fourcolor.Color) Option {
	return func(s *solver) error {
		s.domains = domains
		return nil
	}
}

// WithMRV enables or disables the minimum-remaining-values selection
// heuristic. It is enabled by default.
func WithMRV(enabled bool) Option {
	return func(s *solver) error {
		s.useMRV = enabled
		return nil
	}
}

// WithDegree enables or disables the degree tie-break during
// selection. It is enabled by default.
func WithDegree(enabled bool) Option {
	return func(s *solver) error {
		s.useDegree = enabled
		return nil
	}
}

func WithTracer(t fourcolor.Tracer) Option {
	return func(s *solver) error {
		s.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(s *solver) error {
		if s.graph == nil {
			var err error
			s.graph, err = fourcolor.NewGraph(nil, nil)
			return err
		}
		return nil
	},
	func(s *solver) error {
		if s.palette == nil {
			s.palette = fourcolor.DefaultPalette()
		}
		return nil
	},
	func(s *solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
}
