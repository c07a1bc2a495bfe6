package mapfile

import (
	"fmt"
	"strings"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// Map is one coloring problem as loaded from a map document: the
// region graph plus everything the document configures about the run.
// A nil Palette means the canonical default palette.
type Map struct {
	Name    string
	Graph   *fourcolor.Graph
	Palette fourcolor.Palette
	Domains map[fourcolor.RegionID][]fourcolor.Color
	Seeds   fourcolor.Assignment
}

// EffectivePalette returns the map's palette, defaulted.
func (m *Map) EffectivePalette() fourcolor.Palette {
	if m.Palette != nil {
		return m.Palette
	}
	return fourcolor.DefaultPalette()
}

// splitPair parses one border token of the form "A-B".
func splitPair(token string) (a, b fourcolor.RegionID, err error) {
	left, right, found := strings.Cut(token, "-")
	if !found || left == "" || right == "" {
		return "", "", fmt.Errorf("invalid border pair (%s): expected <region>-<region>", token)
	}
	return fourcolor.RegionID(left), fourcolor.RegionID(right), nil
}

// buildGraph turns an ordered region list and one-sided border pairs
// into a validated Graph. Pairs are mirrored before construction, so
// documents list each border once in either direction.
func buildGraph(regions []fourcolor.RegionID, pairs [][2]fourcolor.RegionID) (*fourcolor.Graph, error) {
	borders := make(map[fourcolor.RegionID][]fourcolor.RegionID, len(regions))
	for _, p := range pairs {
		borders[p[0]] = append(borders[p[0]], p[1])
		borders[p[1]] = append(borders[p[1]], p[0])
	}
	return fourcolor.NewGraph(regions, borders)
}
