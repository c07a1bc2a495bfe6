package fourcolor

import (
	"fmt"
	"sort"
)

// Graph is an immutable region adjacency map. Regions keep the order
// they were given in, and every border is stored in both directions.
type Graph struct {
	regions  []RegionID
	index    map[RegionID]int
	adjacent [][]int
}

// NewGraph builds a Graph from regions in input order and a map from
// each region to the regions it borders. Borders must be symmetric:
// if borders lists B under A, it must also list A under B. Duplicate
// entries within a single neighbor list are collapsed.
func NewGraph(regions []RegionID, borders map[RegionID][]RegionID) (*Graph, error) {
	g := &Graph{
		regions: make([]RegionID, len(regions)),
		index:   make(map[RegionID]int, len(regions)),
	}
	for i, r := range regions {
		if _, ok := g.index[r]; ok {
			return nil, DuplicateRegionError(r)
		}
		g.regions[i] = r
		g.index[r] = i
	}

	var unknown []string
	for r := range borders {
		if _, ok := g.index[r]; !ok {
			unknown = append(unknown, string(r))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		r := RegionID(unknown[0])
		return nil, MalformedGraphError{
			Region: r,
			Reason: fmt.Sprintf("borders listed for unknown region %q", r),
		}
	}

	adjacent := make([]map[int]struct{}, len(regions))
	for i := range adjacent {
		adjacent[i] = make(map[int]struct{})
	}
	for ri, r := range g.regions {
		for _, nb := range borders[r] {
			ni, ok := g.index[nb]
			if !ok {
				return nil, MalformedGraphError{
					Region:   r,
					Neighbor: nb,
					Reason:   fmt.Sprintf("region %q borders unknown region %q", r, nb),
				}
			}
			if ni == ri {
				return nil, MalformedGraphError{
					Region:   r,
					Neighbor: nb,
					Reason:   fmt.Sprintf("region %q borders itself", r),
				}
			}
			adjacent[ri][ni] = struct{}{}
		}
	}

	g.adjacent = make([][]int, len(regions))
	for ri := range adjacent {
		idx := make([]int, 0, len(adjacent[ri]))
		for ni := range adjacent[ri] {
			idx = append(idx, ni)
		}
		sort.Ints(idx)
		g.adjacent[ri] = idx
	}
	for ri, nbs := range g.adjacent {
		for _, ni := range nbs {
			if _, ok := adjacent[ni][ri]; !ok {
				return nil, MalformedGraphError{
					Region:   g.regions[ni],
					Neighbor: g.regions[ri],
					Reason: fmt.Sprintf("border %s-%s is not symmetric: %s does not list %s back",
						g.regions[ri], g.regions[ni], g.regions[ni], g.regions[ri]),
				}
			}
		}
	}
	return g, nil
}

// Len returns the number of regions.
func (g *Graph) Len() int {
	return len(g.regions)
}

// Regions returns the regions in input order.
func (g *Graph) Regions() []RegionID {
	out := make([]RegionID, len(g.regions))
	copy(out, g.regions)
	return out
}

// Neighbors returns the regions bordering r, ordered by their position
// in the region input. It returns nil for an unknown region.
func (g *Graph) Neighbors(r RegionID) []RegionID {
	ri, ok := g.index[r]
	if !ok {
		return nil
	}
	out := make([]RegionID, len(g.adjacent[ri]))
	for i, ni := range g.adjacent[ri] {
		out[i] = g.regions[ni]
	}
	return out
}

// Degree returns the number of borders r participates in.
func (g *Graph) Degree(r RegionID) int {
	ri, ok := g.index[r]
	if !ok {
		return 0
	}
	return len(g.adjacent[ri])
}

// HasBorder reports whether a and b share a border.
func (g *Graph) HasBorder(a, b RegionID) bool {
	ai, ok := g.index[a]
	if !ok {
		return false
	}
	bi, ok := g.index[b]
	if !ok {
		return false
	}
	for _, ni := range g.adjacent[ai] {
		if ni == bi {
			return true
		}
	}
	return false
}

// Borders returns every border exactly once as ordered pairs. The
// first region of each pair is the one earlier in input order, and
// pairs are sorted the same way.
func (g *Graph) Borders() [][2]RegionID {
	var out [][2]RegionID
	for ri, nbs := range g.adjacent {
		for _, ni := range nbs {
			if ni > ri {
				out = append(out, [2]RegionID{g.regions[ri], g.regions[ni]})
			}
		}
	}
	return out
}
