// Package mapgen builds reproducible random maps for benchmarks and
// property tests. Regions are scattered on a Vogel sunflower spiral
// and bordered with their nearest neighbors, which keeps the graphs
// map-like: mostly local borders, no hub dominating the rest.
package mapgen

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/fourcolor/fourcolor/internal/mapfile"
	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// Options shape one generated map. The same Options always produce
// the same map.
type Options struct {
	// Regions is the number of regions. Must be at least 1.
	Regions int
	// Degree is the target borders per region. Regions may end up
	// with slightly more where the connectivity pass demands it.
	// Must be at least 1.
	Degree int
	// Seed drives the position jitter.
	Seed int64
}

type point struct {
	x, y float64
}

func (p point) distanceTo(q point) float64 {
	return math.Hypot(p.x-q.x, p.y-q.y)
}

// Generate builds a random map from opts.
func Generate(opts Options) (*mapfile.Map, error) {
	if opts.Regions < 1 {
		return nil, fmt.Errorf("invalid region count %d: must be at least 1", opts.Regions)
	}
	if opts.Degree < 1 {
		return nil, fmt.Errorf("invalid target degree %d: must be at least 1", opts.Degree)
	}

	random := rand.New(rand.NewSource(opts.Seed))

	// Vogel spiral with a little jitter so different seeds give
	// different neighborhoods.
	goldenAngle := math.Pi * (3 - math.Sqrt(5))
	points := make([]point, opts.Regions)
	for i := range points {
		r := math.Sqrt(float64(i) + 0.5)
		theta := float64(i) * goldenAngle
		points[i] = point{
			x: r*math.Cos(theta) + random.Float64()*0.4,
			y: r*math.Sin(theta) + random.Float64()*0.4,
		}
	}

	regions := make([]fourcolor.RegionID, opts.Regions)
	for i := range regions {
		regions[i] = fourcolor.RegionID(fmt.Sprintf("R%d", i+1))
	}

	degree := make([]int, opts.Regions)
	bordered := make([]map[int]bool, opts.Regions)
	for i := range bordered {
		bordered[i] = map[int]bool{}
	}
	var pairs [][2]fourcolor.RegionID
	link := func(i, j int) {
		if i == j || bordered[i][j] {
			return
		}
		bordered[i][j] = true
		bordered[j][i] = true
		degree[i]++
		degree[j]++
		pairs = append(pairs, [2]fourcolor.RegionID{regions[i], regions[j]})
	}

	// Connectivity first: every region borders its nearest earlier
	// region. Then each region tops up to the target degree with its
	// nearest remaining neighbors.
	for i := 1; i < opts.Regions; i++ {
		nearest := 0
		for j := 1; j < i; j++ {
			if points[i].distanceTo(points[j]) < points[i].distanceTo(points[nearest]) {
				nearest = j
			}
		}
		link(i, nearest)
	}
	for i := 0; i < opts.Regions; i++ {
		if degree[i] >= opts.Degree {
			continue
		}
		byDistance := make([]int, 0, opts.Regions-1)
		for j := 0; j < opts.Regions; j++ {
			if j != i {
				byDistance = append(byDistance, j)
			}
		}
		sort.Slice(byDistance, func(a, b int) bool {
			return points[i].distanceTo(points[byDistance[a]]) < points[i].distanceTo(points[byDistance[b]])
		})
		for _, j := range byDistance {
			if degree[i] >= opts.Degree {
				break
			}
			link(i, j)
		}
	}

	borders := make(map[fourcolor.RegionID][]fourcolor.RegionID, opts.Regions)
	for _, p := range pairs {
		borders[p[0]] = append(borders[p[0]], p[1])
		borders[p[1]] = append(borders[p[1]], p[0])
	}
	graph, err := fourcolor.NewGraph(regions, borders)
	if err != nil {
		return nil, err
	}
	return &mapfile.Map{
		Name:  fmt.Sprintf("random-%d-%d-%d", opts.Regions, opts.Degree, opts.Seed),
		Graph: graph,
	}, nil
}
