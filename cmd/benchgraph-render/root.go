package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/benchgraph/internal/adapters/chart"
	"github.com/okian/benchgraph/internal/adapters/source"
	app "github.com/okian/benchgraph/internal/app"
	"github.com/okian/benchgraph/internal/config"
	"github.com/okian/benchgraph/internal/domain/graph"
	"github.com/okian/benchgraph/pkg/logger"
)

// options holds the flags shared by every subcommand.
type options struct {
	data      string
	height    int
	scriptURL string
	colors    map[string]string
	retryMax  int
	logLevel  string
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "benchgraph-render",
		Short: "Render benchmark trend charts from github-action-benchmark data",
		Long: `benchgraph-render reads a data.js file (or URL) written by the benchmark
action and renders one Chart.js page per platform and benchmark.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return logger.SetLevelString(o.logLevel)
		},
	}

	defaults := config.New()
	pf := root.PersistentFlags()
	pf.StringVarP(&o.data, "data", "d", defaults.DataFile, "data.js path or http(s) URL")
	pf.IntVar(&o.height, "height", defaults.ChartHeight, "chart height in pixels")
	pf.StringVar(&o.scriptURL, "script-url", chart.DefaultScriptURL, "where pages load Chart.js from")
	pf.StringToStringVar(&o.colors, "color", nil, "tool color override, e.g. --color go=#00add8")
	pf.IntVar(&o.retryMax, "retry-max", defaults.HTTPRetryMax, "retries when fetching a URL")
	pf.StringVarP(&o.logLevel, "loglevel", "l", "warn", "log level: debug, info, warn, error")

	root.AddCommand(newRenderCmd(o), newListCmd(o))
	return root
}

func newRenderCmd(o *options) *cobra.Command {
	var (
		platform string
		benchArg string
		out      string
		all      bool
		outDir   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one chart, or every chart with --all",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := loadService(cmd.Context(), o)
			if err != nil {
				return err
			}
			if all {
				return renderAll(cmd.Context(), svc, outDir, cmd.OutOrStdout())
			}
			if platform == "" || benchArg == "" {
				return fmt.Errorf("--platform and --bench are required without --all")
			}
			art, err := svc.Render(cmd.Context(), platform, benchArg)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(art.Body)
				return err
			}
			return os.WriteFile(out, art.Body, 0o644)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&platform, "platform", "p", "", "platform key in data.js entries")
	f.StringVarP(&benchArg, "bench", "b", "", "benchmark name")
	f.StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	f.BoolVar(&all, "all", false, "render every chart into --out-dir")
	f.StringVar(&outDir, "out-dir", ".", "directory for --all pages")
	return cmd
}

func newListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available platform and benchmark pairs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := loadService(cmd.Context(), o)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PLATFORM\tBENCH\tPOINTS\tTOOL\tUNIT")
			for _, s := range svc.Benchmarks(cmd.Context()) {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", s.Platform, s.Bench, s.Points, s.Tool, s.Unit)
			}
			return tw.Flush()
		},
	}
}

// loadService builds a one-shot service over the --data source and loads it.
func loadService(ctx context.Context, o *options) (*app.Service, error) {
	var path, url string
	if strings.HasPrefix(o.data, "http://") || strings.HasPrefix(o.data, "https://") {
		url = o.data
	} else {
		path = o.data
	}
	src, err := source.New(path, url,
		source.WithRetryMax(o.retryMax),
		source.WithLogger(logger.Get().Named("source")),
	)
	if err != nil {
		return nil, err
	}
	charter, err := chart.New(
		chart.WithStandalone(true),
		chart.WithDirectLinks(true),
		chart.WithScriptURL(o.scriptURL),
	)
	if err != nil {
		return nil, err
	}
	svc := app.New(
		app.WithSource(src),
		app.WithCharter(charter),
		app.WithPalette(app.Palette(o.colors, "")),
		app.WithHeight(o.height),
		app.WithRefreshInterval(0),
		app.WithLogger(logger.Get().Named("render")),
	)
	if err := svc.Reload(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// renderAll writes one page per chart into dir and reports each file on w.
func renderAll(ctx context.Context, svc *app.Service, dir string, w io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, s := range svc.Benchmarks(ctx) {
		art, err := svc.Render(ctx, s.Platform, s.Bench)
		if err != nil {
			return err
		}
		name := filepath.Join(dir, fileName(graph.GraphID(s.Platform, s.Bench)))
		if err := os.WriteFile(name, art.Body, 0o644); err != nil {
			return err
		}
		fmt.Fprintln(w, name)
	}
	return nil
}

// fileName maps a graph id to a flat file name.
func fileName(id string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return r.Replace(id) + ".html"
}
