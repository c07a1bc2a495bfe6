package solver

import (
	"context"
	"fmt"
	"sort"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// search drives one depth-first coloring attempt. It owns the trace
// under construction and the candidate store, and it leaves the store
// exactly as it found it behind every branch it abandons.
type search struct {
	regions   []fourcolor.RegionID
	neighbors [][]int
	degree    []int
	palette   fourcolor.Palette
	st        *store
	useMRV    bool
	useDegree bool
	tracer    fourcolor.Tracer
	events    []fourcolor.Event
	stats     fourcolor.Stats
	err       error
}

func (s *solver) newSearch() (*search, error) {
	regions := s.graph.Regions()
	index := make(map[fourcolor.RegionID]int, len(regions))
	for i, r := range regions {
		index[r] = i
	}

	neighbors := make([][]int, len(regions))
	degree := make([]int, len(regions))
	for i, r := range regions {
		nbs := s.graph.Neighbors(r)
		neighbors[i] = make([]int, len(nbs))
		for j, nb := range nbs {
			neighbors[i][j] = index[nb]
		}
		degree[i] = len(nbs)
	}

	domains := make([][]bool, len(regions))
	for i := range domains {
		domains[i] = make([]bool, len(s.palette))
		for c := range domains[i] {
			domains[i][c] = true
		}
	}
	overridden := make([]fourcolor.RegionID, 0, len(s.domains))
	for r := range s.domains {
		overridden = append(overridden, r)
	}
	sort.Slice(overridden, func(i, j int) bool { return overridden[i] < overridden[j] })
	for _, r := range overridden {
		ri, ok := index[r]
		if !ok {
			return nil, fourcolor.InvalidAssignmentError{Region: r, Reason: "unknown region"}
		}
		allowed := make([]bool, len(s.palette))
		for _, c := range s.domains[r] {
			ci := s.palette.Index(c)
			if ci < 0 {
				return nil, fourcolor.InvalidAssignmentError{Region: r, Color: c, Reason: "color not in palette"}
			}
			allowed[ci] = true
		}
		domains[ri] = allowed
	}

	return &search{
		regions:   regions,
		neighbors: neighbors,
		degree:    degree,
		palette:   s.palette,
		st:        newStore(regions, s.palette, domains),
		useMRV:    s.useMRV,
		useDegree: s.useDegree,
		tracer:    s.tracer,
	}, nil
}

// Do recursively extends the current partial coloring and reports
// succeeded, failed, or cancelled. The context is polled once per
// recursion level; cancellation unwinds the whole search without
// recording backtrack events.
func (h *search) Do(ctx context.Context) int {
	if ctx.Err() != nil {
		return cancelled
	}
	if h.st.allAssigned() {
		h.emit(fourcolor.Event{Kind: fourcolor.EventAssignmentSucceeded})
		return succeeded
	}

	v := h.pick()
	if v < 0 {
		h.err = fmt.Errorf("unexpected internal error")
		return failed
	}
	h.stats.Selections++
	h.emit(fourcolor.Event{Kind: fourcolor.EventVariableSelected, Region: h.regions[v]})

	for _, c := range h.st.candidates(v) {
		mark := h.st.snapshot()
		if err := h.st.assign(v, c); err != nil {
			h.err = err
			return failed
		}
		h.stats.Attempts++
		h.emit(fourcolor.Event{Kind: fourcolor.EventValueTried, Region: h.regions[v], Color: h.palette[c]})

		wiped, ok := h.forwardCheck(v, c)
		if !ok {
			h.st.restore(mark)
			h.stats.Prunes++
			h.emit(fourcolor.Event{
				Kind:   fourcolor.EventValuePruned,
				Region: h.regions[v],
				Color:  h.palette[c],
				Cause:  h.regions[wiped],
			})
			continue
		}

		switch h.Do(ctx) {
		case succeeded:
			return succeeded
		case cancelled:
			h.st.restore(mark)
			return cancelled
		}
		if h.err != nil {
			return failed
		}
		h.st.restore(mark)
		h.stats.Backtracks++
		h.emit(fourcolor.Event{Kind: fourcolor.EventBacktrack, Region: h.regions[v]})
	}
	return failed
}

// pick returns the next region to color: smallest remaining domain
// first when MRV is on, then highest degree when the degree tie-break
// is on, then earliest input order. Degree is the region's static
// degree in the graph, not a count of its unassigned neighbors.
func (h *search) pick() int {
	best := -1
	for r := range h.regions {
		if h.st.assigned(r) {
			continue
		}
		if best < 0 {
			best = r
			continue
		}
		if h.useMRV {
			if d, b := h.st.size(r), h.st.size(best); d != b {
				if d < b {
					best = r
				}
				continue
			}
		}
		if h.useDegree && h.degree[r] > h.degree[best] {
			best = r
		}
	}
	return best
}

// forwardCheck removes c from every unassigned neighbor of v, emitting
// one prune event per removal with v as the cause. It stops at the
// first neighbor left without candidates and reports that neighbor.
func (h *search) forwardCheck(v, c int) (wiped int, ok bool) {
	for _, nb := range h.neighbors[v] {
		if h.st.assigned(nb) {
			continue
		}
		if !h.st.remove(nb, c) {
			continue
		}
		h.stats.Prunes++
		h.emit(fourcolor.Event{
			Kind:   fourcolor.EventValuePruned,
			Region: h.regions[nb],
			Color:  h.palette[c],
			Cause:  h.regions[v],
		})
		if h.st.size(nb) == 0 {
			return nb, false
		}
	}
	return 0, true
}

func (h *search) emit(e fourcolor.Event) {
	e.Seq = len(h.events) + 1
	h.events = append(h.events, e)
	h.tracer.Trace(e)
}
