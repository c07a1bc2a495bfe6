package bench

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fourcolor/fourcolor/internal/mapgen"
	"github.com/fourcolor/fourcolor/internal/satsolver"
	"github.com/fourcolor/fourcolor/pkg/fourcolor"
	"github.com/fourcolor/fourcolor/pkg/fourcolor/solver"
)

type config struct {
	name    string
	options []solver.Option
}

// configs are the four selection modes. The greedy baseline and the
// SAT oracle are benched separately since neither takes solve options.
var configs = []config{
	{name: "mrv+degree", options: []solver.Option{solver.WithMRV(true), solver.WithDegree(true)}},
	{name: "mrv", options: []solver.Option{solver.WithMRV(true), solver.WithDegree(false)}},
	{name: "degree", options: []solver.Option{solver.WithMRV(false), solver.WithDegree(true)}},
	{name: "input-order", options: []solver.Option{solver.WithMRV(false), solver.WithDegree(false)}},
}

type row struct {
	name       string
	solved     int
	attempts   int
	prunes     int
	backtracks int
	duration   time.Duration
}

func NewBenchCommand() *cobra.Command {
	var (
		regions int
		degree  int
		colors  int
		maps    int
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compares the selection heuristics on random maps",
		Long: `Generates a batch of random maps and solves each one under every
selection mode, alongside the greedy baseline and the SAT oracle.
Each mode runs in its own goroutine on its own solver; results are
aggregated per mode.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if colors < 1 || colors > len(fourcolor.DefaultPalette()) {
				return fmt.Errorf("--colors must be 1..%d", len(fourcolor.DefaultPalette()))
			}
			return run(cmd, regions, degree, colors, maps, seed)
		},
	}

	cmd.Flags().IntVar(&regions, "regions", 60, "regions per generated map")
	cmd.Flags().IntVar(&degree, "degree", 4, "target borders per region")
	cmd.Flags().IntVar(&colors, "colors", 4, "palette size")
	cmd.Flags().IntVar(&maps, "maps", 10, "number of maps in the batch")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed of the first map; later maps increment it")

	return cmd
}

func run(cmd *cobra.Command, regions, degree, colors, maps int, seed int64) error {
	palette := fourcolor.DefaultPalette()[:colors]

	graphs := make([]*fourcolor.Graph, maps)
	for i := range graphs {
		m, err := mapgen.Generate(mapgen.Options{
			Regions: regions,
			Degree:  degree,
			Seed:    seed + int64(i),
		})
		if err != nil {
			return err
		}
		graphs[i] = m.Graph
	}

	rows := make([]row, len(configs)+2)
	group, ctx := errgroup.WithContext(cmd.Context())
	for i, c := range configs {
		i, c := i, c
		group.Go(func() error {
			r, err := benchSearch(ctx, c, graphs, palette)
			if err != nil {
				return err
			}
			rows[i] = r
			return nil
		})
	}
	group.Go(func() error {
		rows[len(configs)] = benchGreedy(graphs, palette)
		return nil
	})
	group.Go(func() error {
		r, err := benchOracle(ctx, graphs, palette)
		if err != nil {
			return err
		}
		rows[len(configs)+1] = r
		return nil
	})
	if err := group.Wait(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "mode\tsolved\tattempts\tprunes\tbacktracks\tduration\n")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d/%d\t%d\t%d\t%d\t%s\n",
			r.name, r.solved, maps, r.attempts, r.prunes, r.backtracks, r.duration)
	}
	return w.Flush()
}

func benchSearch(ctx context.Context, c config, graphs []*fourcolor.Graph, palette fourcolor.Palette) (row, error) {
	r := row{name: c.name}
	for _, g := range graphs {
		result, err := solver.NewMapSolver(g, palette).Solve(ctx, c.options...)
		if err != nil {
			return row{}, err
		}
		if result.Outcome == fourcolor.Succeeded {
			r.solved++
		}
		r.attempts += result.Stats.Attempts
		r.prunes += result.Stats.Prunes
		r.backtracks += result.Stats.Backtracks
		r.duration += result.Stats.Duration
	}
	return r, nil
}

func benchGreedy(graphs []*fourcolor.Graph, palette fourcolor.Palette) row {
	r := row{name: "greedy"}
	for _, g := range graphs {
		start := time.Now()
		_, complete := solver.Greedy(g, palette)
		r.duration += time.Since(start)
		if complete {
			r.solved++
		}
	}
	return r
}

func benchOracle(ctx context.Context, graphs []*fourcolor.Graph, palette fourcolor.Palette) (row, error) {
	r := row{name: "sat-oracle"}
	for _, g := range graphs {
		oracle, err := satsolver.NewSolver(satsolver.WithProblem(g, palette))
		if err != nil {
			return row{}, err
		}
		start := time.Now()
		_, solveErr := oracle.Solve(ctx)
		r.duration += time.Since(start)
		if solveErr == nil {
			r.solved++
			continue
		}
		var notColorable satsolver.NotColorable
		if !errors.As(solveErr, &notColorable) {
			return row{}, solveErr
		}
	}
	return r, nil
}
