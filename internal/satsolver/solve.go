package satsolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

var ErrIncomplete = errors.New("solver stopped before reaching a verdict")

// Constraint describes one clause of the coloring formula in map
// terms, so unsatisfiable cores read meaningfully.
type Constraint struct {
	Region   fourcolor.RegionID
	Neighbor fourcolor.RegionID
	Color    fourcolor.Color
}

func (c Constraint) String() string {
	if c.Neighbor == "" {
		return fmt.Sprintf("region %s needs a color", c.Region)
	}
	return fmt.Sprintf("border %s-%s cannot share color %s", c.Region, c.Neighbor, c.Color)
}

// NotColorable is an error composed of a set of constraints sufficient
// to make a coloring impossible.
type NotColorable []Constraint

func (e NotColorable) Error() string {
	const msg = "map not colorable"
	if len(e) == 0 {
		return msg
	}
	s := make([]string, len(e))
	for i, c := range e {
		s[i] = c.String()
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(s, ", "))
}

type Solver interface {
	Solve(context.Context) (fourcolor.Assignment, error)
}

type solver struct {
	g       inter.S
	graph   *fourcolor.Graph
	palette fourcolor.Palette
	domains map[fourcolor.RegionID][]fourcolor.Color
	lits    *litMapping
}

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// Solve decides colorability outright. Unlike the backtracking search
// it visits no ordered search space and emits no trace; it exists to
// cross-check search verdicts and to explain impossible maps through
// unsatisfiable cores.
func (s *solver) Solve(_ context.Context) (fourcolor.Assignment, error) {
	if rs := s.lits.EmptyDomains(); len(rs) > 0 {
		core := make(NotColorable, len(rs))
		for i, r := range rs {
			core[i] = Constraint{Region: r}
		}
		return nil, core
	}

	s.lits.AddConstraints(s.g)
	s.lits.AssumeConstraints(s.g)
	switch s.g.Solve() {
	case satisfiable:
		return s.lits.Assignment(s.g), nil
	case unsatisfiable:
		return nil, NotColorable(s.lits.Conflicts(s.g))
	}
	return nil, ErrIncomplete
}

func NewSolver(options ...Option) (Solver, error) {
	s := solver{g: gini.New()}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *solver) error

// WithProblem sets the graph and palette to decide.
func WithProblem(g *fourcolor.Graph, palette fourcolor.Palette) Option {
	return func(s *solver) error {
		if err := palette.Validate(); err != nil {
			return err
		}
		s.graph = g
		s.palette = palette
		return nil
	}
}

// WithDomains narrows the colors allowed for particular regions, with
// the same validation the backtracking search applies.
func WithDomains(domains map[fourcolor.RegionID][]fourcolor.Color) Option {
	return func(s *solver) error {
		s.domains = domains
		return nil
	}
}

var defaults = []Option{
	func(s *solver) error {
		if s.graph == nil {
			var err error
			s.graph, err = fourcolor.NewGraph(nil, nil)
			if err != nil {
				return err
			}
		}
		if s.palette == nil {
			s.palette = fourcolor.DefaultPalette()
		}
		return nil
	},
	func(s *solver) error {
		var err error
		s.lits, err = newLitMapping(s.graph, s.palette, s.domains)
		return err
	},
}
