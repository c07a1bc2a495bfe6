package solve

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fourcolor/fourcolor/internal/mapfile"
	"github.com/fourcolor/fourcolor/internal/runfile"
	"github.com/fourcolor/fourcolor/internal/satsolver"
	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

// verify cross-checks the search verdict against the SAT solver, which
// decides colorability without any search ordering. On a Failed
// verdict the SAT solver's unsatisfiable core explains which borders
// make the map impossible.
func verify(cmd *cobra.Command, m *mapfile.Map, palette fourcolor.Palette, result *fourcolor.Result) error {
	domains := m.Domains
	if len(m.Seeds) > 0 {
		domains = make(map[fourcolor.RegionID][]fourcolor.Color, len(m.Domains)+len(m.Seeds))
		for r, cs := range m.Domains {
			domains[r] = cs
		}
		for r, c := range m.Seeds {
			domains[r] = []fourcolor.Color{c}
		}
	}

	oracle, err := satsolver.NewSolver(
		satsolver.WithProblem(m.Graph, palette),
		satsolver.WithDomains(domains),
	)
	if err != nil {
		return err
	}
	_, satErr := oracle.Solve(cmd.Context())

	out := cmd.OutOrStdout()
	var notColorable satsolver.NotColorable
	switch {
	case satErr == nil && result.Outcome == fourcolor.Succeeded:
		fmt.Fprintln(out, "verified: SAT solver agrees a coloring exists")
	case errors.As(satErr, &notColorable) && result.Outcome == fourcolor.Failed:
		fmt.Fprintln(out, "verified: SAT solver agrees no coloring exists")
		if len(notColorable) > 0 {
			fmt.Fprintf(out, "because: %s\n", notColorable)
		}
	case satErr != nil && !errors.As(satErr, &notColorable):
		return satErr
	default:
		return fmt.Errorf("verdict mismatch: search says %s, SAT solver disagrees", result.Outcome)
	}
	return nil
}

// writeRun records the problem and the full result to path as a run
// file that replay can animate.
func writeRun(path string, m *mapfile.Map, palette fourcolor.Palette, result *fourcolor.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating run file (%s): %w", path, err)
	}
	defer f.Close()

	run := &runfile.Run{
		MapName: m.Name,
		Regions: m.Graph.Regions(),
		Borders: m.Graph.Borders(),
		Palette: palette,
		Result:  result,
	}
	if err := runfile.Write(f, run); err != nil {
		return fmt.Errorf("error writing run file (%s): %w", path, err)
	}
	return nil
}
