package generate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fourcolor/fourcolor/internal/mapfile"
	"github.com/fourcolor/fourcolor/internal/mapgen"
)

func NewGenerateCommand() *cobra.Command {
	var (
		regions int
		degree  int
		seed    int64
		output  string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generates a random map as a YAML map document",
		Long: `Generates a random map and writes it as a YAML map document that
solve accepts. The same flags always produce the same map.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := mapgen.Generate(mapgen.Options{
				Regions: regions,
				Degree:  degree,
				Seed:    seed,
			})
			if err != nil {
				return err
			}
			if output == "" {
				return mapfile.EncodeYAML(cmd.OutOrStdout(), m)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("error creating map file (%s): %w", output, err)
			}
			defer f.Close()
			if err := mapfile.EncodeYAML(f, m); err != nil {
				return fmt.Errorf("error writing map file (%s): %w", output, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&regions, "regions", 30, "number of regions")
	cmd.Flags().IntVar(&degree, "degree", 3, "target borders per region")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generation seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the map here instead of stdout")

	return cmd
}
