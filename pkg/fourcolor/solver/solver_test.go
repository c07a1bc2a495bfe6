package solver_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
	"github.com/fourcolor/fourcolor/pkg/fourcolor/solver"
)

func TestSolver(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "MapSolver Suite")
}

func mustGraph(regions []fourcolor.RegionID, borders map[fourcolor.RegionID][]fourcolor.RegionID) *fourcolor.Graph {
	g, err := fourcolor.NewGraph(regions, borders)
	Expect(err).ToNot(HaveOccurred())
	return g
}

func triangle() *fourcolor.Graph {
	return mustGraph(
		[]fourcolor.RegionID{"A", "B", "C"},
		map[fourcolor.RegionID][]fourcolor.RegionID{
			"A": {"B", "C"},
			"B": {"A", "C"},
			"C": {"A", "B"},
		},
	)
}

var palette3 = fourcolor.Palette{"red", "green", "blue"}

var _ = Describe("MapSolver", func() {
	It("colors a triangle with three colors", func() {
		s := solver.NewMapSolver(triangle(), palette3)
		result, err := s.Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Outcome).To(Equal(fourcolor.Succeeded))
		Expect(result.Assignment.Satisfies(triangle())).To(BeTrue())
		Expect(result.RunID).ToNot(BeEmpty())
	})

	It("fails a triangle with two colors", func() {
		s := solver.NewMapSolver(triangle(), fourcolor.Palette{"red", "green"})
		result, err := s.Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Outcome).To(Equal(fourcolor.Failed))
		Expect(result.Assignment).To(BeNil())
	})

	It("defaults a nil palette to the canonical ten colors", func() {
		s := solver.NewMapSolver(triangle(), nil)
		result, err := s.Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Outcome).To(Equal(fourcolor.Succeeded))
		def := fourcolor.DefaultPalette()
		for _, c := range result.Assignment {
			Expect(def.Index(c)).To(BeNumerically(">=", 0))
		}
	})

	It("reports cancellation as an outcome, not an error", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := solver.NewMapSolver(triangle(), palette3)
		result, err := s.Solve(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Outcome).To(Equal(fourcolor.Cancelled))
		Expect(result.Events).To(BeEmpty())
	})

	It("stamps distinct run IDs on otherwise identical runs", func() {
		s := solver.NewMapSolver(triangle(), palette3)
		first, err := s.Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		second, err := s.Solve(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(first.RunID).ToNot(Equal(second.RunID))
		Expect(first.Events).To(Equal(second.Events))
		Expect(first.Assignment).To(Equal(second.Assignment))
	})

	Describe("seeds", func() {
		It("keeps the seeded color in the result", func() {
			s := solver.NewMapSolver(triangle(), palette3)
			result, err := s.Solve(context.Background(),
				solver.WithSeeds(fourcolor.Assignment{"B": "blue"}))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Outcome).To(Equal(fourcolor.Succeeded))
			Expect(result.Assignment["B"]).To(Equal(fourcolor.Color("blue")))
			Expect(result.Assignment.Satisfies(triangle())).To(BeTrue())
		})

		It("fails rather than errors when seeds conflict", func() {
			s := solver.NewMapSolver(triangle(), palette3)
			result, err := s.Solve(context.Background(),
				solver.WithSeeds(fourcolor.Assignment{"A": "red", "B": "red"}))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Outcome).To(Equal(fourcolor.Failed))
		})

		It("rejects a seed color outside the palette", func() {
			s := solver.NewMapSolver(triangle(), palette3)
			_, err := s.Solve(context.Background(),
				solver.WithSeeds(fourcolor.Assignment{"A": "mauve"}))
			Expect(err).To(HaveOccurred())
			var invalid fourcolor.InvalidAssignmentError
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(invalid.Region).To(Equal(fourcolor.RegionID("A")))
		})

		It("rejects a seed naming an unknown region", func() {
			s := solver.NewMapSolver(triangle(), palette3)
			_, err := s.Solve(context.Background(),
				solver.WithSeeds(fourcolor.Assignment{"Z": "red"}))
			var invalid fourcolor.InvalidAssignmentError
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		It("rejects a seed outside the region's restricted domain", func() {
			s := solver.NewMapSolver(triangle(), palette3)
			_, err := s.Solve(context.Background(),
				solver.WithSeeds(fourcolor.Assignment{"A": "red"}),
				solver.WithDomains(map[fourcolor.RegionID][]fourcolor.Color{
					"A": {"green", "blue"},
				}))
			var invalid fourcolor.InvalidAssignmentError
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})
	})

	Describe("domain restrictions", func() {
		It("honors per-region domains", func() {
			s := solver.NewMapSolver(triangle(), palette3)
			result, err := s.Solve(context.Background(),
				solver.WithDomains(map[fourcolor.RegionID][]fourcolor.Color{
					"A": {"red"},
					"B": {"green"},
				}))
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Outcome).To(Equal(fourcolor.Succeeded))
			Expect(result.Assignment["A"]).To(Equal(fourcolor.Color("red")))
			Expect(result.Assignment["B"]).To(Equal(fourcolor.Color("green")))
		})
	})

	Describe("heuristic toggles", func() {
		It("solves in every selection mode", func() {
			for _, mode := range []struct{ mrv, degree bool }{
				{true, true}, {true, false}, {false, true}, {false, false},
			} {
				s := solver.NewMapSolver(triangle(), palette3)
				result, err := s.Solve(context.Background(),
					solver.WithMRV(mode.mrv), solver.WithDegree(mode.degree))
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Outcome).To(Equal(fourcolor.Succeeded))
				Expect(result.Assignment.Satisfies(triangle())).To(BeTrue())
			}
		})
	})
})

var _ = Describe("Greedy", func() {
	It("colors a triangle completely with three colors", func() {
		a, complete := solver.Greedy(triangle(), palette3)
		Expect(complete).To(BeTrue())
		Expect(a.Satisfies(triangle())).To(BeTrue())
	})

	It("reports an incomplete coloring when the palette runs out", func() {
		a, complete := solver.Greedy(triangle(), fourcolor.Palette{"red", "green"})
		Expect(complete).To(BeFalse())
		Expect(len(a)).To(BeNumerically("<", 3))
	})
})
