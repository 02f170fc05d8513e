package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/viewtree/internal/demo"
	"github.com/vango-dev/viewtree/pkg/journal"
	"github.com/vango-dev/viewtree/pkg/metrics"
	"github.com/vango-dev/viewtree/pkg/view"
)

func demoCmd(c *cli) *cobra.Command {
	var (
		list        bool
		record      bool
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "demo [scenario...]",
		Short: "Run lifecycle scenarios and print their traces",
		Long: `Run scripted scenarios against a fresh document and print every
lifecycle callback as it fires, followed by the resulting markup.

Without arguments all scenarios run in name order.

Examples:
  viewtree demo --list
  viewtree demo lifecycle
  viewtree demo reorder --journal --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, s := range demo.Scenarios() {
					c.info("%-10s %s", s.Name, s.Description)
				}
				return nil
			}
			return runDemo(cmd.Context(), c, args, record, showMetrics)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List available scenarios")
	cmd.Flags().BoolVarP(&record, "journal", "j", false, "Record events into the journal")
	cmd.Flags().BoolVarP(&showMetrics, "metrics", "m", false, "Print metric totals after running")

	return cmd
}

func runDemo(ctx context.Context, c *cli, names []string, record, showMetrics bool) error {
	if len(names) == 0 {
		for _, s := range demo.Scenarios() {
			names = append(names, s.Name)
		}
	}
	for _, name := range names {
		if _, err := demo.Lookup(name); err != nil {
			return err
		}
	}

	var (
		observers []view.Option
		begin     func(string) error
	)
	if record {
		j, err := journal.Open(c.cfg.JournalPath(), journal.WithLogger(c.logger))
		if err != nil {
			return err
		}
		defer j.Close()
		observers = append(observers, view.WithObserver(j))
		begin = func(name string) error {
			_, err := j.Begin(name)
			return err
		}
		defer c.success("Recorded into %s", j.Path())
	}
	return runScenarios(ctx, c, names, observers, begin, showMetrics)
}

func runScenarios(ctx context.Context, c *cli, names []string, observers []view.Option, begin func(string) error, showMetrics bool) error {
	reg := prometheus.NewRegistry()
	if showMetrics {
		m := metrics.New(
			metrics.WithRegistry(reg),
			metrics.WithNamespace(c.cfg.Metrics.Namespace),
		)
		observers = append(observers, view.WithObserver(m))
	}

	for _, name := range names {
		// Each scenario is recorded as its own session.
		if begin != nil {
			if err := begin(name); err != nil {
				return err
			}
		}
		fmt.Printf("%s %s\n", c.paint("\033[1m", "==="), name)
		env := demo.NewEnv(os.Stdout, c.engineOptions(observers...)...)
		if err := demo.Run(ctx, name, env); err != nil {
			return err
		}
		fmt.Println()
	}

	if showMetrics {
		return printMetrics(reg)
	}
	return nil
}

// printMetrics prints the total of every gathered series per metric family.
func printMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, f := range families {
		var total float64
		for _, m := range f.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			}
		}
		fmt.Printf("  %-48s %g\n", f.GetName(), total)
	}
	return nil
}
