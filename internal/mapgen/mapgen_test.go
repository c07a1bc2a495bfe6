package mapgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fourcolor/fourcolor/internal/solver"
	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

func TestGenerateValidatesOptions(t *testing.T) {
	for _, tt := range []struct {
		Name string
		Opts Options
	}{
		{
			Name: "zero regions",
			Opts: Options{Regions: 0, Degree: 3},
		},
		{
			Name: "zero degree",
			Opts: Options{Regions: 10, Degree: 0},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := Generate(tt.Opts)
			assert.Error(t, err)
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	assert := assert.New(t)

	opts := Options{Regions: 40, Degree: 4, Seed: 7}
	first, err := Generate(opts)
	assert.NoError(err)
	second, err := Generate(opts)
	assert.NoError(err)

	assert.Equal(first.Name, second.Name)
	assert.Equal(first.Graph.Regions(), second.Graph.Regions())
	assert.Equal(first.Graph.Borders(), second.Graph.Borders())

	opts.Seed = 8
	third, err := Generate(opts)
	assert.NoError(err)
	assert.NotEqual(first.Graph.Borders(), third.Graph.Borders())
}

func TestGenerateIsConnected(t *testing.T) {
	assert := assert.New(t)

	m, err := Generate(Options{Regions: 60, Degree: 3, Seed: 1})
	assert.NoError(err)

	regions := m.Graph.Regions()
	seen := map[fourcolor.RegionID]bool{regions[0]: true}
	frontier := []fourcolor.RegionID{regions[0]}
	for len(frontier) > 0 {
		r := frontier[0]
		frontier = frontier[1:]
		for _, nb := range m.Graph.Neighbors(r) {
			if !seen[nb] {
				seen[nb] = true
				frontier = append(frontier, nb)
			}
		}
	}
	assert.Len(seen, len(regions))
}

func TestGenerateMeetsTargetDegree(t *testing.T) {
	assert := assert.New(t)

	const target = 4
	m, err := Generate(Options{Regions: 50, Degree: target, Seed: 3})
	assert.NoError(err)
	for _, r := range m.Graph.Regions() {
		assert.GreaterOrEqual(m.Graph.Degree(r), target)
	}
}

func TestGeneratedMapsAreColorable(t *testing.T) {
	assert := assert.New(t)

	// Near-planar neighborhoods stay easy for ten colors; this guards
	// against the generator degenerating into dense clutter.
	for seed := int64(0); seed < 3; seed++ {
		m, err := Generate(Options{Regions: 30, Degree: 3, Seed: seed})
		assert.NoError(err)

		s, err := solver.NewSolver(solver.WithGraph(m.Graph))
		assert.NoError(err)
		result, err := s.Solve(context.Background())
		assert.NoError(err)
		assert.Equal(fourcolor.Succeeded, result.Outcome)
		assert.True(result.Assignment.Satisfies(m.Graph))
	}
}
