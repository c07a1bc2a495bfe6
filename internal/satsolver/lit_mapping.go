package satsolver

import (
	"sort"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// cell identifies one (region, color) choice in the formula.
type cell struct {
	region int
	color  int
}

// litMapping performs translation between regions and colors on one
// side and the literals of the SAT formula on the other. Each allowed
// cell gets an input literal; every constraint becomes a gate literal
// that is assumed rather than asserted, so unsatisfiable cores can be
// mapped back to the constraints that produced them.
type litMapping struct {
	regions []fourcolor.RegionID
	palette fourcolor.Palette
	c       *logic.C
	cells   map[cell]z.Lit
	gates   map[z.Lit]Constraint
	inorder []z.Lit
	empty   []fourcolor.RegionID
}

func newLitMapping(g *fourcolor.Graph, palette fourcolor.Palette, domains map[fourcolor.RegionID][]fourcolor.Color) (*litMapping, error) {
	regions := g.Regions()
	d := &litMapping{
		regions: regions,
		palette: palette,
		c:       logic.NewC(),
		cells:   make(map[cell]z.Lit),
		gates:   make(map[z.Lit]Constraint),
	}

	index := make(map[fourcolor.RegionID]int, len(regions))
	for i, r := range regions {
		index[r] = i
	}

	allowed := make([][]bool, len(regions))
	for i := range allowed {
		allowed[i] = make([]bool, len(palette))
		for c := range allowed[i] {
			allowed[i][c] = true
		}
	}
	overridden := make([]fourcolor.RegionID, 0, len(domains))
	for r := range domains {
		overridden = append(overridden, r)
	}
	sort.Slice(overridden, func(i, j int) bool { return overridden[i] < overridden[j] })
	for _, r := range overridden {
		ri, ok := index[r]
		if !ok {
			return nil, fourcolor.InvalidAssignmentError{Region: r, Reason: "unknown region"}
		}
		only := make([]bool, len(palette))
		for _, c := range domains[r] {
			ci := palette.Index(c)
			if ci < 0 {
				return nil, fourcolor.InvalidAssignmentError{Region: r, Color: c, Reason: "color not in palette"}
			}
			only[ci] = true
		}
		allowed[ri] = only
	}

	for ri := range regions {
		for ci := range palette {
			if allowed[ri][ci] {
				d.cells[cell{region: ri, color: ci}] = d.c.Lit()
			}
		}
	}

	// Every region must take at least one of its allowed colors.
	// Regions allowed nothing cannot be encoded as a gate; they are
	// recorded and reported before the solver ever runs.
	for ri, r := range regions {
		var m z.Lit
		first := true
		for ci := range palette {
			lit, ok := d.cells[cell{region: ri, color: ci}]
			if !ok {
				continue
			}
			if first {
				m = lit
				first = false
				continue
			}
			m = d.c.Or(m, lit)
		}
		if first {
			d.empty = append(d.empty, r)
			continue
		}
		d.gate(m, Constraint{Region: r})
	}

	// Bordering regions cannot take the same color.
	for _, border := range g.Borders() {
		ai, bi := index[border[0]], index[border[1]]
		for ci := range palette {
			la, ok := d.cells[cell{region: ai, color: ci}]
			if !ok {
				continue
			}
			lb, ok := d.cells[cell{region: bi, color: ci}]
			if !ok {
				continue
			}
			d.gate(d.c.Or(la.Not(), lb.Not()), Constraint{
				Region:   border[0],
				Neighbor: border[1],
				Color:    palette[ci],
			})
		}
	}

	return d, nil
}

func (d *litMapping) gate(m z.Lit, c Constraint) {
	d.gates[m] = c
	d.inorder = append(d.inorder, m)
}

// EmptyDomains returns the regions whose starting domains allow no
// color at all, in input order.
func (d *litMapping) EmptyDomains() []fourcolor.RegionID {
	return d.empty
}

// AddConstraints teaches the constraints encoded in the embedded
// circuit to the solver g.
func (d *litMapping) AddConstraints(g inter.S) {
	d.c.ToCnf(g)
}

// AssumeConstraints assumes every gate literal in build order, keeping
// the constraints retractable so unsatisfiable cores stay available.
func (d *litMapping) AssumeConstraints(s inter.S) {
	for _, m := range d.inorder {
		s.Assume(m)
	}
}

// Conflicts maps the solver's failed assumptions back to the
// constraints they stand for.
func (d *litMapping) Conflicts(g inter.Assumable) []Constraint {
	whys := g.Why(nil)
	cs := make([]Constraint, 0, len(whys))
	for _, why := range whys {
		if c, ok := d.gates[why]; ok {
			cs = append(cs, c)
		}
	}
	return cs
}

// Assignment extracts a coloring from the model, taking each region's
// lowest true color index.
func (d *litMapping) Assignment(g inter.S) fourcolor.Assignment {
	a := make(fourcolor.Assignment, len(d.regions))
	for ri, r := range d.regions {
		for ci := range d.palette {
			if lit, ok := d.cells[cell{region: ri, color: ci}]; ok && g.Value(lit) {
				a[r] = d.palette[ci]
				break
			}
		}
	}
	return a
}
