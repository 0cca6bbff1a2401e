package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/phasehull/chem"
	"github.com/katalvlaran/phasehull/projection"
)

func newProjectCmd(a *app) *cobra.Command {
	var (
		system  string
		energy  float64
		inverse bool
	)
	cmd := &cobra.Command{
		Use:   "project VALUE...",
		Short: "Map fractions to plot coordinates, or back with --inverse",
		Long: `Without --inverse, VALUE is one amount per element in system order and
the output is the d−1 plot coordinates (plus --energy when given).
With --inverse, VALUE is d−1 coordinates (or d with energy last) and the
output is the element fractions. Put -- before negative values.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := chem.ParseChemicalSystem(system)
			if err != nil {
				return err
			}
			p, err := projection.New(sys.Dim())
			if err != nil {
				return err
			}
			vals := make([]float64, len(args))
			for i, s := range args {
				if vals[i], err = strconv.ParseFloat(s, 64); err != nil {
					return fmt.Errorf("value %d: %w", i, err)
				}
			}
			a.logger.Debug("project", "system", sys.String(), "inverse", inverse, "values", vals)

			out := cmd.OutOrStdout()
			if inverse {
				return writeFractions(out, sys, p, vals)
			}
			var coords []float64
			if cmd.Flags().Changed("energy") {
				coords, err = p.ProjectWithEnergy(vals, energy)
			} else {
				coords, err = p.Project(vals)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, joinFloats(coords))

			return err
		},
	}
	cmd.Flags().StringVarP(&system, "system", "s", "", "chemical system, e.g. Li-Fe-O")
	cmd.Flags().Float64Var(&energy, "energy", 0, "energy per atom appended as the last coordinate")
	cmd.Flags().BoolVar(&inverse, "inverse", false, "map coordinates back to fractions")
	_ = cmd.MarkFlagRequired("system")

	return cmd
}

func writeFractions(out io.Writer, sys chem.ChemicalSystem, p *projection.Projector, vals []float64) error {
	var (
		fr     []float64
		energy float64
		err    error
	)
	withEnergy := len(vals) == sys.Dim()
	if withEnergy {
		fr, energy, err = p.UnprojectWithEnergy(vals)
	} else {
		fr, err = p.Unproject(vals)
	}
	if err != nil {
		return err
	}
	parts := make([]string, 0, len(fr)+1)
	for i, f := range fr {
		parts = append(parts, fmt.Sprintf("%s=%.6f", sys.Element(i), f))
	}
	if withEnergy {
		parts = append(parts, fmt.Sprintf("E=%.6f", energy))
	}
	_, err = fmt.Fprintln(out, strings.Join(parts, " "))

	return err
}

func joinFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatFloat(x, 'f', 6, 64)
	}

	return strings.Join(parts, " ")
}
