package replay

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fourcolor/fourcolor/internal/runfile"
)

func NewReplayCommand() *cobra.Command {
	var (
		delay time.Duration
		fps   int
	)
	cmd := &cobra.Command{
		Use:   "replay <run-file>",
		Short: "Animates a recorded solver run in the terminal",
		Long: `Animates a recorded solver run in the terminal, painting regions as
the search tried them and unpainting them as it backtracked. Run files
are produced by solve --trace.

Keys: space pauses, n steps forward, p steps back, r restarts,
+ and - change the playback delay, q quits.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if fps > 0 {
				delay = time.Second / time.Duration(fps)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("error opening run file (%s): %w", args[0], err)
			}
			defer f.Close()

			run, err := runfile.Read(f)
			if err != nil {
				return fmt.Errorf("error reading run file (%s): %w", args[0], err)
			}

			program := tea.NewProgram(newModel(run, delay), tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", 250*time.Millisecond, "pause between replayed events")
	cmd.Flags().IntVar(&fps, "fps", 0, "events per second; overrides --delay when set")

	return cmd
}
