package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/phasehull/chem"
	"github.com/katalvlaran/phasehull/fixture"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		system string
		n      int
		seed   int64
		output string
		depth  float64
		spread float64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic, reproducible entry set as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sys, err := chem.ParseChemicalSystem(system)
			if err != nil {
				return err
			}
			if !(depth >= 0) || !(spread >= 0) {
				return fmt.Errorf("depth and spread must be >= 0")
			}
			entries, err := fixture.Generate(sys, n, seed, fixture.WithDepth(depth), fixture.WithSpread(spread))
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			a.logger.Debug("generate", "system", sys.String(), "entries", len(entries), "seed", seed, "output", output)

			return fixture.Encode(out, &fixture.Set{System: sys, Entries: entries})
		},
	}
	cmd.Flags().StringVarP(&system, "system", "s", "", "chemical system, e.g. Li-Fe-O")
	cmd.Flags().IntVarP(&n, "count", "n", 100, "number of generated entries besides the pure references")
	cmd.Flags().Int64Var(&seed, "seed", 1, "noise and sampling seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&depth, "depth", fixture.DefaultDepth, "deepest formation energy (eV/atom)")
	cmd.Flags().Float64Var(&spread, "spread", fixture.DefaultSpread, "maximum random lift above the landscape (eV/atom)")
	_ = cmd.MarkFlagRequired("system")

	return cmd
}
