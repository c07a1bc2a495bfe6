package solver

import (
	"sort"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// Greedy colors regions in descending degree order, ties broken by
// input order, giving each region the first palette color none of its
// already-colored neighbors uses. Regions with no legal color are left
// out of the assignment; complete reports whether none were.
//
// Greedy gives no trace and no optimality; it exists as a fallback
// rendering when the full search fails on a too-small palette.
func Greedy(g *fourcolor.Graph, palette fourcolor.Palette) (a fourcolor.Assignment, complete bool) {
	regions := g.Regions()
	order := make([]int, len(regions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.Degree(regions[order[i]]) > g.Degree(regions[order[j]])
	})

	a = make(fourcolor.Assignment, len(regions))
	complete = true
	for _, ri := range order {
		r := regions[ri]
		used := make(map[fourcolor.Color]struct{})
		for _, nb := range g.Neighbors(r) {
			if c, ok := a[nb]; ok {
				used[c] = struct{}{}
			}
		}
		placed := false
		for _, c := range palette {
			if _, taken := used[c]; !taken {
				a[r] = c
				placed = true
				break
			}
		}
		if !placed {
			complete = false
		}
	}
	return a, complete
}
