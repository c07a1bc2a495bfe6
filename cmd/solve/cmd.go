package solve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fourcolor/fourcolor/internal/mapfile"
	internalsolver "github.com/fourcolor/fourcolor/internal/solver"
	"github.com/fourcolor/fourcolor/pkg/fourcolor"
	"github.com/fourcolor/fourcolor/pkg/fourcolor/solver"
)

type options struct {
	sample    string
	pairs     bool
	palette   []string
	colors    int
	mrv       bool
	degree    bool
	greedy    bool
	verify    bool
	verbose   bool
	traceFile string
}

func NewSolveCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "solve [path]",
		Short: "Colors a map so that no bordering regions share a color",
		Long: `Colors a map so that no bordering regions share a color, or reports
that no such coloring exists with the given palette.

Maps are YAML documents:

  name: square
  regions: [A, B, C, D]
  borders:
    - A-B
    - B-C
    - C-D
    - D-A

or, with --pairs, the line-oriented numeric format:

  p map 4 2
  1-2 2-3
  3-4,1-4

Built-in maps are available through --sample instead of a path.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (opts.sample == "") {
				return fmt.Errorf("provide a map file path or --sample, not both")
			}
			if len(args) == 1 {
				if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("file (%s) not found", args[0])
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd, opts, path)
		},
	}

	cmd.Flags().StringVar(&opts.sample, "sample", "",
		fmt.Sprintf("solve a built-in map %v instead of a file", mapfile.SampleNames()))
	cmd.Flags().BoolVar(&opts.pairs, "pairs", false, "read the map in the numeric pairs format")
	cmd.Flags().StringSliceVar(&opts.palette, "palette", nil, "replace the palette with these colors")
	cmd.Flags().IntVar(&opts.colors, "colors", 0, "use only the first N palette colors")
	cmd.Flags().BoolVar(&opts.mrv, "mrv", true, "select the region with the fewest remaining colors first")
	cmd.Flags().BoolVar(&opts.degree, "degree", true, "break selection ties by region degree")
	cmd.Flags().BoolVar(&opts.greedy, "greedy", false, "print a best-effort greedy coloring when the search fails")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "cross-check the verdict with the SAT solver")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "stream trace events to stderr while searching")
	cmd.Flags().StringVar(&opts.traceFile, "trace", "", "record the run to this file for later replay")

	return cmd
}

// loadMap reads the problem from a file or the sample registry.
func loadMap(opts *options, path string) (*mapfile.Map, error) {
	if opts.sample != "" {
		return mapfile.Sample(opts.sample)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening map file (%s): %w", path, err)
	}
	defer f.Close()

	if opts.pairs {
		m, err := mapfile.DecodePairs(f)
		if err != nil {
			return nil, fmt.Errorf("error parsing map file (%s): %w", path, err)
		}
		return m, nil
	}
	m, err := mapfile.DecodeYAML(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing map file (%s): %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// effectivePalette applies the --palette and --colors flags on top of
// the map's own palette.
func effectivePalette(opts *options, m *mapfile.Map) (fourcolor.Palette, error) {
	palette := m.EffectivePalette()
	if len(opts.palette) > 0 {
		palette = make(fourcolor.Palette, len(opts.palette))
		for i, c := range opts.palette {
			palette[i] = fourcolor.Color(c)
		}
	}
	if opts.colors > 0 {
		if opts.colors > len(palette) {
			return nil, fmt.Errorf("--colors %d exceeds the palette size %d", opts.colors, len(palette))
		}
		palette = palette[:opts.colors]
	}
	return palette, palette.Validate()
}

func run(cmd *cobra.Command, opts *options, path string) error {
	m, err := loadMap(opts, path)
	if err != nil {
		return err
	}
	palette, err := effectivePalette(opts, m)
	if err != nil {
		return err
	}

	solveOpts := []solver.Option{
		solver.WithMRV(opts.mrv),
		solver.WithDegree(opts.degree),
	}
	if m.Domains != nil {
		solveOpts = append(solveOpts, solver.WithDomains(m.Domains))
	}
	if m.Seeds != nil {
		solveOpts = append(solveOpts, solver.WithSeeds(m.Seeds))
	}
	if opts.verbose {
		solveOpts = append(solveOpts, solver.WithTracer(internalsolver.LoggingTracer{Writer: cmd.ErrOrStderr()}))
	}

	result, err := solver.NewMapSolver(m.Graph, palette).Solve(cmd.Context(), solveOpts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch result.Outcome {
	case fourcolor.Succeeded:
		fmt.Fprintln(out, "coloring found:")
		for _, r := range m.Graph.Regions() {
			fmt.Fprintf(out, "%s = %s\n", r, result.Assignment[r])
		}
	case fourcolor.Failed:
		fmt.Fprintf(out, "no coloring exists with %d colors\n", len(palette))
		if opts.greedy {
			printGreedy(cmd, m, palette)
		}
	case fourcolor.Cancelled:
		fmt.Fprintln(out, "search cancelled")
	}
	fmt.Fprintf(out, "selections=%d attempts=%d prunes=%d backtracks=%d duration=%s\n",
		result.Stats.Selections, result.Stats.Attempts, result.Stats.Prunes,
		result.Stats.Backtracks, result.Stats.Duration)

	if opts.verify && result.Outcome != fourcolor.Cancelled {
		if err := verify(cmd, m, palette, result); err != nil {
			return err
		}
	}
	if opts.traceFile != "" {
		if err := writeRun(opts.traceFile, m, palette, result); err != nil {
			return err
		}
		fmt.Fprintf(out, "run recorded to %s\n", opts.traceFile)
	}
	return nil
}

func printGreedy(cmd *cobra.Command, m *mapfile.Map, palette fourcolor.Palette) {
	out := cmd.OutOrStdout()
	a, complete := solver.Greedy(m.Graph, palette)
	if complete {
		// Greedy can finish where search failed only on seeded or
		// domain-restricted maps; the restrictions do not bind it.
		fmt.Fprintln(out, "greedy coloring (ignores domains and seeds):")
	} else {
		fmt.Fprintln(out, "partial greedy coloring:")
	}
	for _, r := range m.Graph.Regions() {
		if c, ok := a[r]; ok {
			fmt.Fprintf(out, "%s = %s\n", r, c)
		} else {
			fmt.Fprintf(out, "%s = (uncolored)\n", r)
		}
	}
}
