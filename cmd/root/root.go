package root

import (
	"github.com/spf13/cobra"

	"github.com/fourcolor/fourcolor/cmd/bench"
	"github.com/fourcolor/fourcolor/cmd/generate"
	"github.com/fourcolor/fourcolor/cmd/replay"
	"github.com/fourcolor/fourcolor/cmd/solve"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fourcolor",
		Short: "Fourcolor is a map coloring engine",
		Long: `A map coloring engine built on backtracking search with forward
checking and the MRV and degree heuristics. Every search records a
replayable trace of its decisions.
For more information visit https://github.com/fourcolor/fourcolor`,
	}

	// add sub-commands
	rootCmd.AddCommand(solve.NewSolveCommand())
	rootCmd.AddCommand(replay.NewReplayCommand())
	rootCmd.AddCommand(generate.NewGenerateCommand())
	rootCmd.AddCommand(bench.NewBenchCommand())

	return rootCmd
}
