package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

func newTestSearch(t *testing.T, s solver) *search {
	t.Helper()
	if s.tracer == nil {
		s.tracer = DefaultTracer{}
	}
	h, err := s.newSearch()
	assert.NoError(t, err)
	return h
}

func regionIndex(h *search, r fourcolor.RegionID) int {
	for i := range h.regions {
		if h.regions[i] == r {
			return i
		}
	}
	return -1
}

func TestPick(t *testing.T) {
	// Degrees: A=1, B=3, C=2, D=1, E=1.
	fixture := mustGraph(
		[]fourcolor.RegionID{"A", "B", "C", "D", "E"},
		map[fourcolor.RegionID][]fourcolor.RegionID{
			"A": {"B"},
			"B": {"A", "C", "E"},
			"C": {"B", "D"},
			"D": {"C"},
			"E": {"B"},
		},
	)
	palette := fourcolor.Palette{"red", "green", "blue"}

	type tc struct {
		Name    string
		MRV     bool
		Degree  bool
		Domains map[fourcolor.RegionID][]fourcolor.Color
		Assign  fourcolor.Assignment
		Expect  fourcolor.RegionID
	}

	for _, tt := range []tc{
		{
			Name:   "both heuristics prefer the highest degree",
			MRV:    true,
			Degree: true,
			Expect: "B",
		},
		{
			Name:   "mrv alone falls back to input order",
			MRV:    true,
			Expect: "A",
		},
		{
			Name:   "degree alone",
			Degree: true,
			Expect: "B",
		},
		{
			Name:   "no heuristics take input order",
			Expect: "A",
		},
		{
			Name:    "mrv prefers the smallest domain",
			MRV:     true,
			Degree:  true,
			Domains: map[fourcolor.RegionID][]fourcolor.Color{"C": {"red", "green"}},
			Expect:  "C",
		},
		{
			Name:   "mrv ties break by degree then input order",
			MRV:    true,
			Degree: true,
			Domains: map[fourcolor.RegionID][]fourcolor.Color{
				"C": {"red", "green"},
				"D": {"red", "green"},
			},
			Expect: "C",
		},
		{
			Name:    "degree alone ignores domain sizes",
			Degree:  true,
			Domains: map[fourcolor.RegionID][]fourcolor.Color{"C": {"red"}},
			Expect:  "B",
		},
		{
			Name:   "degree stays static as neighbors get assigned",
			MRV:    true,
			Degree: true,
			Assign: fourcolor.Assignment{"A": "red", "E": "green"},
			Expect: "B",
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert := assert.New(t)

			h := newTestSearch(t, solver{
				graph:     fixture,
				palette:   palette,
				domains:   tt.Domains,
				useMRV:    tt.MRV,
				useDegree: tt.Degree,
			})
			for r, c := range tt.Assign {
				assert.NoError(h.st.assign(regionIndex(h, r), palette.Index(c)))
			}

			v := h.pick()
			assert.GreaterOrEqual(v, 0)
			assert.Equal(tt.Expect, h.regions[v])
		})
	}
}

func TestPickExhausted(t *testing.T) {
	assert := assert.New(t)

	h := newTestSearch(t, solver{
		graph:   mustGraph([]fourcolor.RegionID{"A"}, nil),
		palette: fourcolor.Palette{"red"},
	})
	assert.NoError(h.st.assign(0, 0))
	assert.Equal(-1, h.pick())
}

func TestSearchRestoresStoreOnFailure(t *testing.T) {
	assert := assert.New(t)

	h := newTestSearch(t, solver{
		graph:     triangle(),
		palette:   fourcolor.Palette{"red", "green"},
		useMRV:    true,
		useDegree: true,
	})

	assert.Equal(failed, h.Do(context.Background()))
	assert.NoError(h.err)

	// A failed search leaves no residue: every region is unassigned
	// with its full starting domain, and the trail is fully unwound.
	for r := range h.regions {
		assert.False(h.st.assigned(r))
		assert.Equal(2, h.st.size(r))
	}
	assert.False(h.st.allAssigned())
	assert.Empty(h.st.trail)
}

func TestForwardCheckSkipsAssignedNeighbors(t *testing.T) {
	assert := assert.New(t)

	h := newTestSearch(t, solver{
		graph:   chain4(),
		palette: fourcolor.Palette{"red", "green", "blue"},
	})

	a, b := regionIndex(h, "A"), regionIndex(h, "B")
	assert.NoError(h.st.assign(a, 0))
	h.events, h.stats = nil, fourcolor.Stats{}

	// Assigning B=green touches only C; A is already assigned and D is
	// not a neighbor.
	assert.NoError(h.st.assign(b, 1))
	wiped, ok := h.forwardCheck(b, 1)
	assert.True(ok)
	assert.Zero(wiped)
	assert.Equal([]fourcolor.Event{
		{Seq: 1, Kind: fourcolor.EventValuePruned, Region: "C", Color: "green", Cause: "B"},
	}, h.events)
	assert.Equal(1, h.stats.Prunes)
}
