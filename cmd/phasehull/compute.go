package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/phasehull/chem"
	"github.com/katalvlaran/phasehull/fixture"
	"github.com/katalvlaran/phasehull/hullcache"
	"github.com/katalvlaran/phasehull/stability"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

// requestFlags are the per-run overrides shared by compute and watch.
type requestFlags struct {
	tolerance float64
	policy    string
	threshold float64
}

func (f *requestFlags) register(cmd *cobra.Command, cfg Config) {
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", cfg.Tolerance, "relative numerical tolerance")
	cmd.Flags().StringVar(&f.policy, "policy", cfg.ReferencePolicy.String(), "reference policy: zero, lowest or none")
	cmd.Flags().Float64Var(&f.threshold, "threshold", cfg.Threshold, "e_above_hull cutoff for visible unstable entries (eV/atom)")
}

// request applies flag > fixture > environment precedence.
func (f *requestFlags) request(cmd *cobra.Command, cfg Config, set *fixture.Set) (hullcache.Request, error) {
	req := set.Request()
	if set.Tolerance == 0 {
		req.Tolerance = cfg.Tolerance
	}
	if set.Policy == nil {
		req.Policy = cfg.ReferencePolicy
	}
	if cmd.Flags().Changed("tolerance") {
		req.Tolerance = f.tolerance
	}
	if cmd.Flags().Changed("policy") {
		p, err := stability.ParseReferencePolicy(f.policy)
		if err != nil {
			return hullcache.Request{}, err
		}
		req.Policy = p
	}

	return req, nil
}

func newComputeCmd(a *app) *cobra.Command {
	var (
		flags  requestFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "compute FILE...",
		Short: "Classify every entry of one or more YAML entry sets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatTable && format != formatYAML {
				return fmt.Errorf("unknown format %q", format)
			}
			cache, err := hullcache.New(a.cfg.CacheSize, hullcache.WithLogger(a.logger))
			if err != nil {
				return err
			}
			for _, path := range args {
				set, err := fixture.Load(path)
				if err != nil {
					return err
				}
				req, err := flags.request(cmd, a.cfg, set)
				if err != nil {
					return err
				}
				d, err := cache.Get(cmd.Context(), req)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				a.logger.Info("computed", "file", path, "system", d.System.String(), "entries", len(d.Results), "facets", len(d.Facets))

				rep := newReport(path, req.Entries, d, flags.threshold)
				if format == formatYAML {
					err = writeYAML(cmd.OutOrStdout(), rep)
				} else {
					err = writeTable(cmd.OutOrStdout(), rep)
				}
				if err != nil {
					return err
				}
			}

			return nil
		},
	}
	flags.register(cmd, a.cfg)
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table or yaml")

	return cmd
}

type report struct {
	File      string        `yaml:"file"`
	System    string        `yaml:"system"`
	Tolerance float64       `yaml:"tolerance"`
	Policy    string        `yaml:"policy"`
	Threshold float64       `yaml:"threshold"`
	Stable    int           `yaml:"stable"`
	Unstable  int           `yaml:"unstable"`
	Visible   int           `yaml:"visible_unstable"`
	Error     string        `yaml:"error,omitempty"`
	Warnings  []string      `yaml:"warnings,omitempty"`
	TieLines  [][2]string   `yaml:"tie_lines,omitempty"`
	Entries   []entryReport `yaml:"entries"`
}

type entryReport struct {
	Index         int         `yaml:"index"`
	ID            string      `yaml:"id,omitempty"`
	Composition   string      `yaml:"composition"`
	EnergyPerAtom float64     `yaml:"energy_per_atom"`
	Status        string      `yaml:"status"`
	EAboveHull    float64     `yaml:"e_above_hull"`
	HullEnergy    float64     `yaml:"hull_energy"`
	Decomposition []component `yaml:"decomposition,omitempty"`
	Approximate   bool        `yaml:"approximate_reference,omitempty"`
	Error         string      `yaml:"error,omitempty"`
}

type component struct {
	Phase  string  `yaml:"phase"`
	Weight float64 `yaml:"weight"`
}

func newReport(path string, entries []chem.PhaseEntry, d *stability.Diagram, threshold float64) report {
	rep := report{
		File:      path,
		System:    d.System.String(),
		Tolerance: d.Tolerance,
		Policy:    d.Policy.String(),
		Threshold: threshold,
		Stable:    len(d.StableEntries()),
		Unstable:  len(d.UnstableEntries()),
		Visible:   stability.CountVisibleUnstable(d.Results, threshold),
		Entries:   make([]entryReport, len(d.Results)),
	}
	if d.Err != nil {
		rep.Error = d.Err.Error()
	}
	for _, w := range d.Warnings {
		rep.Warnings = append(rep.Warnings, w.Error())
	}
	for _, tl := range d.TieLines() {
		rep.TieLines = append(rep.TieLines, [2]string{pointLabel(d, entries, tl[0]), pointLabel(d, entries, tl[1])})
	}
	for i, r := range d.Results {
		e := entries[i]
		er := entryReport{
			Index:         i,
			ID:            e.ID,
			Composition:   e.Composition.String(),
			EnergyPerAtom: e.EnergyPerAtom,
			Status:        r.Status.String(),
			EAboveHull:    r.EAboveHull,
			HullEnergy:    r.HullEnergy,
			Approximate:   r.ApproximateReference,
		}
		for _, c := range r.Decomposition {
			er.Decomposition = append(er.Decomposition, component{Phase: pointLabel(d, entries, c.Point), Weight: c.Weight})
		}
		if r.Err != nil {
			er.Error = r.Err.Error()
		}
		rep.Entries[i] = er
	}

	return rep
}

// pointLabel names a diagram point: the entry label, or "*El" for a
// synthesized reference.
func pointLabel(d *stability.Diagram, entries []chem.PhaseEntry, pi int) string {
	p := d.Points[pi]
	if p.Entry >= 0 {
		return entries[p.Entry].Label()
	}
	if axis, ok := p.PureAxis(d.Tolerance); ok {
		return "*" + string(d.System.Element(axis))
	}

	return "point " + strconv.Itoa(pi)
}

func writeYAML(w io.Writer, rep report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}

	return enc.Close()
}

func writeTable(w io.Writer, rep report) error {
	fmt.Fprintf(w, "%s: %s (tolerance %g, policy %s)\n", rep.File, rep.System, rep.Tolerance, rep.Policy)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tCOMPOSITION\tE/ATOM\tSTATUS\tE_ABOVE_HULL\tDECOMPOSITION")
	for _, e := range rep.Entries {
		parts := make([]string, 0, len(e.Decomposition))
		for _, c := range e.Decomposition {
			parts = append(parts, fmt.Sprintf("%.3f %s", c.Weight, c.Phase))
		}
		status := e.Status
		if e.Error != "" && e.Status != stability.Stable.String() {
			status += " (" + e.Error + ")"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.4f\t%s\t%.4f\t%s\n",
			e.Index, e.ID, e.Composition, e.EnergyPerAtom, status, e.EAboveHull, strings.Join(parts, " + "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "stable %d, unstable %d, visible unstable (<= %g) %d\n", rep.Stable, rep.Unstable, rep.Threshold, rep.Visible)
	for _, warn := range rep.Warnings {
		fmt.Fprintln(w, "warning:", warn)
	}
	if rep.Error != "" {
		fmt.Fprintln(w, "error:", rep.Error)
	}

	return nil
}
