package fourcolor

import (
	"fmt"
	"time"
)

// RegionID values uniquely identify particular regions within the
// input to a single search.
type RegionID string

func (id RegionID) String() string {
	return string(id)
}

// RegionIDFromString returns a RegionID based on a provided string.
func RegionIDFromString(s string) RegionID {
	return RegionID(s)
}

// Color is an opaque palette entry. The search never interprets colors
// beyond comparing them for equality; callers conventionally use hex
// strings so renderers can display them directly.
type Color string

func (c Color) String() string {
	return string(c)
}

// Palette is the ordered list of colors available to every region.
// Candidate colors are always tried in palette order.
type Palette []Color

// DefaultPalette returns the canonical ten-color palette.
func DefaultPalette() Palette {
	return Palette{
		"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FECA57",
		"#FF9FF3", "#54A0FF", "#5F27CD", "#00D2D3", "#FF9F43",
	}
}

// Index returns the position of c in the palette, or -1 if absent.
func (p Palette) Index(c Color) int {
	for i := range p {
		if p[i] == c {
			return i
		}
	}
	return -1
}

// Validate returns a DuplicateColorError if the palette lists the same
// color more than once.
func (p Palette) Validate() error {
	seen := make(map[Color]struct{}, len(p))
	for _, c := range p {
		if _, ok := seen[c]; ok {
			return DuplicateColorError(c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// Assignment maps regions to their committed colors. A partial
// assignment simply omits the uncolored regions.
type Assignment map[RegionID]Color

// Satisfies reports whether the assignment colors every region of g
// and no two bordering regions share a color.
func (a Assignment) Satisfies(g *Graph) bool {
	for _, r := range g.Regions() {
		c, ok := a[r]
		if !ok {
			return false
		}
		for _, nb := range g.Neighbors(r) {
			if a[nb] == c {
				return false
			}
		}
	}
	return true
}

// Outcome is the terminal verdict of a search.
type Outcome string

const (
	// Succeeded means a complete conflict-free coloring was found.
	Succeeded Outcome = "succeeded"
	// Failed means the search space was exhausted without finding a
	// coloring. It is a verdict about the problem, not an error.
	Failed Outcome = "failed"
	// Cancelled means the caller's context ended the search before it
	// reached a verdict.
	Cancelled Outcome = "cancelled"
)

// Stats are counters accumulated over a single search.
type Stats struct {
	Selections int           `json:"selections"`
	Attempts   int           `json:"attempts"`
	Prunes     int           `json:"prunes"`
	Backtracks int           `json:"backtracks"`
	Duration   time.Duration `json:"duration"`
}

// Result is the verdict of one search together with the complete event
// log that led to it. Assignment is nil unless Outcome is Succeeded.
type Result struct {
	RunID      string
	Outcome    Outcome
	Assignment Assignment
	Events     []Event
	Stats      Stats
}

// MalformedGraphError describes a structural defect in graph input,
// such as an asymmetric border or a reference to an unknown region.
type MalformedGraphError struct {
	Region   RegionID
	Neighbor RegionID
	Reason   string
}

func (e MalformedGraphError) Error() string {
	return fmt.Sprintf("malformed graph: %s", e.Reason)
}

// DuplicateRegionError is returned when the same region appears more
// than once in graph input.
type DuplicateRegionError RegionID

func (e DuplicateRegionError) Error() string {
	return fmt.Sprintf("duplicate region %q", RegionID(e))
}

// DuplicateColorError is returned when the same color appears more
// than once in a palette.
type DuplicateColorError Color

func (e DuplicateColorError) Error() string {
	return fmt.Sprintf("duplicate color %q in palette", Color(e))
}

// InvalidAssignmentError is returned when a requested color cannot be
// given to a region, for example a seed color outside the palette or a
// domain entry for an unknown region.
type InvalidAssignmentError struct {
	Region RegionID
	Color  Color
	Reason string
}

func (e InvalidAssignmentError) Error() string {
	return fmt.Sprintf("cannot assign %q to region %q: %s", e.Color, e.Region, e.Reason)
}
