// Command netclique analyzes a network given as one "a-b" connection per
// line: it counts triangles touching nodes with a prefix and reports the
// largest fully connected groups.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lanparty/aoc"
)

var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "netclique",
		Short:        "Find triangles and maximal cliques in a pair-list network",
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newAnalyzeCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	return root
}

func newAnalyzeCmd() *cobra.Command {
	var (
		configPath string
		flags      = defaultConfig()
	)
	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Analyze the network in FILE (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = mergeFlags(cmd, cfg, flags)
			if err := cfg.validate(); err != nil {
				return err
			}
			level, _ := parseLevel(cfg.LogLevel)
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			ctx := aoc.WithLogger(cmd.Context(), logger)

			in, closeIn, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeIn()

			res, err := analyze(ctx, cfg, in)
			if err != nil {
				return err
			}
			return res.write(cmd.OutOrStdout(), cfg)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file")
	f.StringVar(&flags.Sep, "sep", flags.Sep, "separator between the two nodes of a line")
	f.StringVar(&flags.Prefix, "prefix", flags.Prefix, "count triangles with a member starting with this prefix")
	f.StringVar(&flags.Delimiter, "delimiter", flags.Delimiter, "delimiter for clique keys")
	f.BoolVar(&flags.Parallel, "parallel", flags.Parallel, "search top-level branches concurrently")
	f.IntVar(&flags.Workers, "workers", flags.Workers, "max concurrent branches with --parallel (0 = GOMAXPROCS)")
	f.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "abort the clique search after this long (0 = never)")
	f.StringVarP(&flags.Format, "format", "o", flags.Format, "output format: text or yaml")
	f.BoolVar(&flags.All, "all", flags.All, "list every maximum clique, not just the first")
	f.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level: debug, info, warn, error")
	return cmd
}

// mergeFlags overlays the flags the user set explicitly onto cfg.
func mergeFlags(cmd *cobra.Command, cfg, flags Config) Config {
	set := cmd.Flags().Changed
	if set("sep") {
		cfg.Sep = flags.Sep
	}
	if set("prefix") {
		cfg.Prefix = flags.Prefix
	}
	if set("delimiter") {
		cfg.Delimiter = flags.Delimiter
	}
	if set("parallel") {
		cfg.Parallel = flags.Parallel
	}
	if set("workers") {
		cfg.Workers = flags.Workers
	}
	if set("timeout") {
		cfg.Timeout = flags.Timeout
	}
	if set("format") {
		cfg.Format = flags.Format
	}
	if set("all") {
		cfg.All = flags.All
	}
	if set("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	return cfg
}

func openInput(cmd *cobra.Command, name string) (io.Reader, func(), error) {
	if name == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// Result is what analyze reports.
type Result struct {
	Network   aoc.Stats `yaml:"network"`
	Prefix    string    `yaml:"prefix"`
	Triangles int       `yaml:"triangles"`
	Cliques   int       `yaml:"maximal_cliques"`
	MaxSize   int       `yaml:"max_size"`
	MaxCount  int       `yaml:"max_count"`
	Key       string    `yaml:"key"`
	Maximum   []string  `yaml:"maximum,omitempty"`
}

func analyze(ctx context.Context, cfg Config, r io.Reader) (Result, error) {
	log := aoc.Logger(ctx)
	g, err := aoc.ParseNetwork(r, cfg.Sep)
	if err != nil {
		return Result{}, err
	}
	res := Result{Network: g.Stats(), Prefix: cfg.Prefix}
	log.Info("network loaded", "nodes", res.Network.Nodes, "edges", res.Network.Edges)

	res.Triangles = len(g.Triangles(aoc.HasPrefix(cfg.Prefix)))

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	cliques, err := g.MaximalCliques(ctx, aoc.SearchOptions{Parallel: cfg.Parallel, Workers: cfg.Workers})
	if err != nil {
		return Result{}, err
	}
	rep := aoc.NewReport(cliques)
	res.Cliques = rep.Total
	res.MaxSize = rep.MaxSize
	res.MaxCount = rep.MaxCount()
	res.Key = rep.Key(cfg.Delimiter)
	if cfg.All {
		for _, c := range rep.Maximum {
			res.Maximum = append(res.Maximum, c.Key(cfg.Delimiter))
		}
	}
	log.Info("analysis done", "summary", rep.String())
	return res, nil
}

func (r Result) write(w io.Writer, cfg Config) error {
	if cfg.Format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	fmt.Fprintf(w, "nodes: %d, edges: %d, components: %d, max degree: %d\n",
		r.Network.Nodes, r.Network.Edges, r.Network.Components, r.Network.MaxDegree)
	fmt.Fprintf(w, "triangles with a %q node: %d\n", r.Prefix, r.Triangles)
	fmt.Fprintf(w, "maximal cliques: %d\n", r.Cliques)
	fmt.Fprintf(w, "largest: %s (size %d, %d tied)\n", r.Key, r.MaxSize, r.MaxCount)
	for _, k := range r.Maximum {
		fmt.Fprintf(w, "  %s\n", k)
	}
	return nil
}
