package solver

import (
	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// token marks a point in the store's trail. Restoring a token undoes
// every change made after it was taken and invalidates any token taken
// later than it.
type token int

// change is one undoable store mutation: a candidate color removed
// from a region, or a commit mark when color is committed.
type change struct {
	region int
	color  int
}

const (
	// noColor is the chosen value of an uncommitted region.
	noColor = -1
	// committed is the change color marking a commit rather than a
	// candidate removal.
	committed = -1
)

// store tracks the remaining candidate colors of every region in one
// trail-backed arena, so the search can snapshot before a guess and
// restore in time proportional to the changes made since.
type store struct {
	regions []fourcolor.RegionID
	palette fourcolor.Palette
	present [][]bool
	count   []int
	chosen  []int
	left    int
	trail   []change
}

// newStore builds a store over regions where domains[r][c] reports
// whether palette color c starts as a candidate for region r.
func newStore(regions []fourcolor.RegionID, palette fourcolor.Palette, domains [][]bool) *store {
	s := &store{
		regions: regions,
		palette: palette,
		present: make([][]bool, len(regions)),
		count:   make([]int, len(regions)),
		chosen:  make([]int, len(regions)),
		left:    len(regions),
	}
	for r := range regions {
		s.present[r] = make([]bool, len(palette))
		copy(s.present[r], domains[r])
		for _, in := range s.present[r] {
			if in {
				s.count[r]++
			}
		}
		s.chosen[r] = noColor
	}
	return s
}

// assigned reports whether r has a committed color.
func (s *store) assigned(r int) bool {
	return s.chosen[r] != noColor
}

// allAssigned reports whether every region has a committed color.
func (s *store) allAssigned() bool {
	return s.left == 0
}

// size returns the number of candidate colors r has left.
func (s *store) size(r int) int {
	return s.count[r]
}

// has reports whether color c is still a candidate for r.
func (s *store) has(r, c int) bool {
	return s.present[r][c]
}

// candidates returns r's remaining candidates in palette order. The
// slice is freshly allocated, so later store changes do not affect it.
func (s *store) candidates(r int) []int {
	out := make([]int, 0, s.count[r])
	for c, in := range s.present[r] {
		if in {
			out = append(out, c)
		}
	}
	return out
}

// domain returns r's remaining candidates as colors in palette order.
func (s *store) domain(r int) []fourcolor.Color {
	cs := s.candidates(r)
	out := make([]fourcolor.Color, len(cs))
	for i, c := range cs {
		out[i] = s.palette[c]
	}
	return out
}

// remove deletes color c from r's candidates and reports whether it
// was present. Removals are recorded on the trail.
func (s *store) remove(r, c int) bool {
	if !s.present[r][c] {
		return false
	}
	s.present[r][c] = false
	s.count[r]--
	s.trail = append(s.trail, change{region: r, color: c})
	return true
}

// assign commits r to color c, collapsing its candidates to c alone.
// The collapse and the commit are both recorded on the trail.
func (s *store) assign(r, c int) error {
	if s.chosen[r] != noColor {
		return fourcolor.InvalidAssignmentError{
			Region: s.regions[r],
			Color:  s.palette[c],
			Reason: "region already has a color",
		}
	}
	if !s.present[r][c] {
		return fourcolor.InvalidAssignmentError{
			Region: s.regions[r],
			Color:  s.palette[c],
			Reason: "color is not in the region's current domain",
		}
	}
	for x := range s.present[r] {
		if x != c && s.present[r][x] {
			s.present[r][x] = false
			s.count[r]--
			s.trail = append(s.trail, change{region: r, color: x})
		}
	}
	s.chosen[r] = c
	s.left--
	s.trail = append(s.trail, change{region: r, color: committed})
	return nil
}

// snapshot returns a token for the store's current state.
func (s *store) snapshot() token {
	return token(len(s.trail))
}

// restore rewinds the store to the state captured by t.
func (s *store) restore(t token) {
	for len(s.trail) > int(t) {
		ch := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		if ch.color == committed {
			s.chosen[ch.region] = noColor
			s.left++
			continue
		}
		s.present[ch.region][ch.color] = true
		s.count[ch.region]++
	}
}

// assignment returns the committed colors as a public Assignment.
func (s *store) assignment() fourcolor.Assignment {
	a := make(fourcolor.Assignment, len(s.regions))
	for r, c := range s.chosen {
		if c != noColor {
			a[s.regions[r]] = s.palette[c]
		}
	}
	return a
}
