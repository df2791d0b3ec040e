package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/stefanpenner/brandpilot/pkg/catalog"
	"github.com/stefanpenner/brandpilot/pkg/program"
	"github.com/stefanpenner/brandpilot/pkg/reward"
	"github.com/stefanpenner/brandpilot/pkg/tui"
	"go.uber.org/zap"
)

// programView is a program with its metrics, as printed by list and show.
type programView struct {
	program.Program
	Metrics program.Metrics `json:"metrics"`
}

func (a *app) views(programs []program.Program) []programView {
	now := a.now()
	out := make([]programView, len(programs))
	for i, p := range programs {
		out[i] = programView{Program: p, Metrics: program.ComputeMetrics(p, now)}
	}
	return out
}

func newListCmd(a *app) *cobra.Command {
	var brand, query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List programs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			programs := program.Filter(a.store.List(), brand, query)
			views := a.views(programs)
			if a.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), views)
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No programs found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), programTable(views))
			return nil
		},
	}
	cmd.Flags().StringVar(&brand, "brand", program.AllBrands, "Only show programs of this brand")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search brand, description and id")
	return cmd
}

func programTable(views []programView) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "BRAND", "TYPE", "STATUS", "PAYMENT", "ACHIEVED", "TIME GONE")
	for _, v := range views {
		t.Row(
			v.ID,
			v.Brand,
			v.ProgramType,
			string(v.Status),
			string(v.PaymentStatus),
			fmt.Sprintf("%s / %s (%d%%)", humanize.Commaf(v.Achievement), humanize.Commaf(v.Target), v.Metrics.AchievementProgress),
			fmt.Sprintf("%d%%", v.Metrics.TimeGoneProgress),
		)
	}
	return t.Render()
}

func newBoardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print programs grouped by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, dropped := program.GroupByStatus(a.store.List())
			for _, p := range dropped {
				a.logger.Warn("program with unknown status left off the board",
					zap.String("id", p.ID),
					zap.String("status", string(p.Status)))
			}

			if a.jsonOutput {
				out := make(map[program.Status][]programView, len(columns))
				for status, programs := range columns {
					out[status] = a.views(programs)
				}
				return outputJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			for i, status := range program.Statuses {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "%s (%d)\n", status, len(columns[status]))
				for _, v := range a.views(columns[status]) {
					fmt.Fprintf(w, "  %s  %-16s %-16s %3d%%  %s\n",
						v.ID, v.Brand, v.ProgramType, v.Metrics.AchievementProgress, v.PaymentStatus)
				}
			}
			return nil
		},
	}
}

// brandShare is a chart row.
type brandShare struct {
	Brand string  `json:"brand"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

func newChartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Print program counts per brand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			programs := a.store.List()
			counts := program.GroupByBrand(programs)

			rows := make([]brandShare, len(counts))
			width := 0
			for i, bc := range counts {
				rows[i] = brandShare{Brand: bc.Brand, Count: bc.Count, Share: bc.Share(len(programs))}
				if len(bc.Brand) > width {
					width = len(bc.Brand)
				}
			}
			if a.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), rows)
			}

			for _, r := range rows {
				bar := strings.Repeat("█", int(r.Share*40+0.5))
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s %s %d (%.0f%%)\n", width, r.Brand, bar, r.Count, r.Share*100)
			}
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one program with its metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.store.Get(args[0])
			if errors.Is(err, program.ErrNotFound) {
				return fmt.Errorf("no program with id %q", args[0])
			}
			if err != nil {
				return err
			}

			v := a.views([]program.Program{p})[0]
			if a.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), v)
			}

			md := tui.ProgramMarkdown(p, v.Metrics)
			out, err := glamour.Render(md, "notty")
			if err != nil {
				out = md
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newRewardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reward <achievement> <percent>",
		Short: "Estimate the reward for an achievement and reward percentage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			achievement, err := parseAmountArg("achievement", args[0])
			if err != nil {
				return err
			}
			percent, err := parseAmountArg("percent", args[1])
			if err != nil {
				return err
			}

			estimated, err := reward.Calculate(achievement, percent)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), map[string]float64{
					"achievement": achievement,
					"percent":     percent,
					"estimated":   estimated,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), reward.FormatIDR(estimated))
			return nil
		},
	}
}

// parseAmountArg reads a number argument. NaN and infinities parse but are
// not amounts, so they count as 0 the way the estimator treats them.
func parseAmountArg(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, nil
	}
	return v, nil
}

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the brands and program types offered by the form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), catalog.Catalog{
					Brands:       a.catalog.Brands,
					ProgramTypes: a.catalog.ProgramTypes,
				})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Catalog: %s\n\nBrands:\n", a.cfg.CatalogPath())
			for _, b := range a.catalog.Brands {
				fmt.Fprintf(w, "  %s\n", b)
			}
			fmt.Fprintln(w, "\nProgram types:")
			for _, t := range a.catalog.ProgramTypes {
				fmt.Fprintf(w, "  %s\n", t)
			}
			return nil
		},
	}
}

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the default catalog into the data directory",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipCatalogAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.CatalogPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := catalog.Save(path, catalog.Default()); err != nil {
				return err
			}
			a.logger.Info("catalog written", zap.String("path", path))

			if a.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), map[string]string{"catalog": path})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing catalog")
	return cmd
}

// JSON helpers

func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
