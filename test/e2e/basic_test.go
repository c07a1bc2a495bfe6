package e2e

import (
	"bytes"
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fourcolor/fourcolor/internal/mapfile"
	"github.com/fourcolor/fourcolor/internal/mapgen"
	"github.com/fourcolor/fourcolor/internal/runfile"
	"github.com/fourcolor/fourcolor/internal/satsolver"
	"github.com/fourcolor/fourcolor/pkg/fourcolor"
	"github.com/fourcolor/fourcolor/pkg/fourcolor/solver"
)

// The full pipeline a user drives from the command line: load a map,
// solve it, cross-check the verdict, record the run, and read the run
// back the way the replay visualizer does.
var _ = Describe("Solving a built-in map end to end", func() {
	var (
		ctx context.Context
		m   *mapfile.Map
	)
	BeforeEach(func() {
		ctx = context.Background()

		var err error
		m, err = mapfile.Sample("australia")
		Expect(err).ToNot(HaveOccurred())
	})

	It("finds a three-coloring and the SAT solver agrees", func() {
		palette := fourcolor.DefaultPalette()[:3]

		result, err := solver.NewMapSolver(m.Graph, palette).Solve(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Outcome).To(Equal(fourcolor.Succeeded))
		Expect(result.Assignment.Satisfies(m.Graph)).To(BeTrue())

		oracle, err := satsolver.NewSolver(satsolver.WithProblem(m.Graph, palette))
		Expect(err).ToNot(HaveOccurred())
		a, err := oracle.Solve(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(a.Satisfies(m.Graph)).To(BeTrue())
	})

	It("proves two colors impossible and both solvers agree on why not", func() {
		palette := fourcolor.DefaultPalette()[:2]

		result, err := solver.NewMapSolver(m.Graph, palette).Solve(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Outcome).To(Equal(fourcolor.Failed))

		oracle, err := satsolver.NewSolver(satsolver.WithProblem(m.Graph, palette))
		Expect(err).ToNot(HaveOccurred())
		_, satErr := oracle.Solve(ctx)
		var notColorable satsolver.NotColorable
		Expect(errors.As(satErr, &notColorable)).To(BeTrue())
		Expect(notColorable).ToNot(BeEmpty())
	})

	It("round-trips a recorded run through a run file", func() {
		palette := fourcolor.DefaultPalette()[:3]

		result, err := solver.NewMapSolver(m.Graph, palette).Solve(ctx)
		Expect(err).ToNot(HaveOccurred())

		var buf bytes.Buffer
		run := &runfile.Run{
			MapName: m.Name,
			Regions: m.Graph.Regions(),
			Borders: m.Graph.Borders(),
			Palette: palette,
			Result:  result,
		}
		Expect(runfile.Write(&buf, run)).To(Succeed())

		back, err := runfile.Read(&buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(back.Result).To(Equal(result))

		g, err := back.Graph()
		Expect(err).ToNot(HaveOccurred())
		Expect(back.Result.Assignment.Satisfies(g)).To(BeTrue())
	})

	It("replays a trace to the recorded final coloring", func() {
		palette := fourcolor.DefaultPalette()[:3]

		result, err := solver.NewMapSolver(m.Graph, palette).Solve(ctx)
		Expect(err).ToNot(HaveOccurred())

		// Fold the events the way a renderer would: paint on
		// value-tried, unpaint on backtrack.
		replayed := fourcolor.Assignment{}
		for _, e := range result.Events {
			switch e.Kind {
			case fourcolor.EventValueTried:
				replayed[e.Region] = e.Color
			case fourcolor.EventBacktrack:
				delete(replayed, e.Region)
			}
		}
		Expect(replayed).To(Equal(result.Assignment))
	})
})

var _ = Describe("Solving generated maps end to end", func() {
	It("solves a generated map written and reloaded as YAML", func() {
		generated, err := mapgen.Generate(mapgen.Options{Regions: 25, Degree: 3, Seed: 11})
		Expect(err).ToNot(HaveOccurred())

		var buf bytes.Buffer
		Expect(mapfile.EncodeYAML(&buf, generated)).To(Succeed())
		loaded, err := mapfile.DecodeYAML(&buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(loaded.Graph.Borders()).To(Equal(generated.Graph.Borders()))

		result, err := solver.NewMapSolver(loaded.Graph, nil).Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Outcome).To(Equal(fourcolor.Succeeded))
		Expect(result.Assignment.Satisfies(loaded.Graph)).To(BeTrue())
	})

	It("keeps seeded regions fixed through a full solve", func() {
		m, err := mapfile.Sample("western-us")
		Expect(err).ToNot(HaveOccurred())
		palette := fourcolor.DefaultPalette()[:4]
		seeds := fourcolor.Assignment{"CA": palette[0], "CO": palette[1]}

		result, err := solver.NewMapSolver(m.Graph, palette).Solve(
			context.Background(), solver.WithSeeds(seeds))
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Outcome).To(Equal(fourcolor.Succeeded))
		Expect(result.Assignment["CA"]).To(Equal(palette[0]))
		Expect(result.Assignment["CO"]).To(Equal(palette[1]))
		Expect(result.Assignment.Satisfies(m.Graph)).To(BeTrue())
	})
})
