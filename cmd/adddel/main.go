package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/leodido/structcli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sw965/featsel/config"
	"github.com/sw965/featsel/dataset"
	"github.com/sw965/featsel/model"
)

// Build metadata injected via ldflags.
var (
	version = ""
	commit  = ""
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "adddel",
		Short: "Add-del sequential feature selection",
		Long: `adddel selects feature columns of a CSV data set with the add-del procedure.

A forward pass adds columns one by one and keeps those that move the cross-validated
score in the preferred direction; a backward pass then tries to remove each kept column.`,
		SilenceUsage: true,
	}

	root.AddCommand(runCmd())
	root.AddCommand(metricsCmd())
	root.AddCommand(estimatorsCmd())
	root.AddCommand(versionCmd())
	return root
}

// RunOptions defines flags for the run subcommand. Flags that are set override the
// values of the configuration file.
type RunOptions struct {
	Config    string           `flag:"config" flagshort:"c" flagdescr:"YAML run configuration"`
	Estimator string           `flag:"estimator" flagshort:"e" flagdescr:"Estimator kind (see the estimators command)"`
	Metric    string           `flag:"metric" flagshort:"m" flagdescr:"Scoring metric (see the metrics command)"`
	Direction config.Direction `flag:"direction" flagshort:"d" flagdescr:"Score direction: auto, maximize or minimize" flagcustom:"true"`
	CV        int              `flag:"cv" flagshort:"k" flagdescr:"Number of cross-validation folds"`
	Seed      int              `flag:"seed" flagdescr:"Seed of the fold shuffling source"`
	Shuffle   bool             `flag:"shuffle" flagdescr:"Shuffle samples before cutting folds"`
	Target    string           `flag:"target" flagshort:"t" flagdescr:"Target column (default: last column)"`
	Quiet     bool             `flag:"quiet" flagshort:"q" flagdescr:"Suppress the progress report"`
	JSON      bool             `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
	Verbose   bool             `flag:"verbose" flagshort:"v" flagdescr:"Log every evaluation to stderr"`
}

func (o *RunOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (o *RunOptions) DefineDirection(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*config.Direction)
	*fieldPtr = config.Auto
	return fieldPtr.Value(), descr
}

func (o *RunOptions) DecodeDirection(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}
	return config.ParseDirection(s)
}

// resolve merges the configuration file with the flags that were set on c.
func (o *RunOptions) resolve(c *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.Config != "" {
		var err error
		if cfg, err = config.Load(o.Config); err != nil {
			return config.Config{}, err
		}
	}

	flags := c.Flags()
	if flags.Changed("estimator") {
		cfg.Estimator = config.EstimatorConfig{Kind: o.Estimator}
	}
	if flags.Changed("metric") {
		cfg.Metric = o.Metric
	}
	if flags.Changed("direction") {
		cfg.Direction = o.Direction
	}
	if flags.Changed("cv") {
		cfg.CV = o.CV
	}
	if flags.Changed("seed") {
		if o.Seed < 0 {
			return config.Config{}, fmt.Errorf("%w: negative seed %d", config.ErrInvalid, o.Seed)
		}
		cfg.Seed = uint64(o.Seed)
	}
	if flags.Changed("shuffle") {
		cfg.Shuffle = o.Shuffle
	}
	if flags.Changed("target") {
		cfg.Target = o.Target
	}
	if o.Quiet {
		cfg.Report = false
	}
	return cfg, cfg.Validate()
}

type runOutput struct {
	Features []int         `json:"features"`
	Names    []string      `json:"names"`
	Score    float64       `json:"score"`
	Maximize bool          `json:"maximize"`
	Config   config.Config `json:"config"`
}

func runCmd() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <data.csv>",
		Short: "Select features of a CSV data set",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := opts.resolve(c)
			if err != nil {
				return err
			}

			table, y, err := dataset.LoadCSV(args[0], cfg.Target)
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			var logger *slog.Logger
			if opts.Verbose {
				logger = slog.New(slog.NewTextHandler(c.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
			report := c.OutOrStdout()
			if opts.JSON {
				report = c.ErrOrStderr()
			}

			w, err := cfg.Build(report, logger)
			if err != nil {
				return err
			}
			res, err := w.Run(table, y, cfg.CV)
			if err != nil {
				return err
			}

			if opts.JSON {
				return printJSON(c.OutOrStdout(), runOutput{
					Features: res.Features,
					Names:    res.Names,
					Score:    res.Score,
					Maximize: w.Maximize(),
					Config:   cfg,
				})
			}
			fmt.Fprintf(c.OutOrStdout(), "selected: %s\n", strings.Join(res.Identifiers(), ", "))
			fmt.Fprintf(c.OutOrStdout(), "best score: %v\n", res.Score)
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// ListOptions defines flags for the listing subcommands.
type ListOptions struct {
	JSON bool `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *ListOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func metricsCmd() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "List the scoring metrics",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			names := config.SupportedMetrics()
			if opts.JSON {
				out := make(map[string]any, len(names))
				for _, name := range names {
					m := config.Metrics[name]
					out[name] = map[string]any{"greater_is_better": m.GreaterIsBetter, "description": m.Description}
				}
				return printJSON(c.OutOrStdout(), out)
			}
			for _, name := range names {
				m := config.Metrics[name]
				dir := config.Minimize
				if m.GreaterIsBetter {
					dir = config.Maximize
				}
				fmt.Fprintf(c.OutOrStdout(), "%-10s %-9s %s\n", name, dir, m.Description)
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func estimatorsCmd() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "estimators",
		Short: "List the estimator kinds",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			kinds := config.SupportedEstimators()
			out := make(map[string]string, len(kinds))
			for _, kind := range kinds {
				est, err := config.NewEstimator(config.EstimatorConfig{Kind: kind})
				if err != nil {
					return err
				}
				out[kind] = "regressor"
				if model.IsClassifier(est) {
					out[kind] = "classifier"
				}
			}
			if opts.JSON {
				return printJSON(c.OutOrStdout(), out)
			}
			for _, kind := range kinds {
				fmt.Fprintf(c.OutOrStdout(), "%-10s %s\n", kind, out[kind])
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the tool version",
		RunE: func(c *cobra.Command, args []string) error {
			w := c.OutOrStdout()
			if version == "" {
				fmt.Fprintln(w, "adddel (dev)")
				return nil
			}
			fmt.Fprintf(w, "adddel %s", version)
			if commit != "" {
				fmt.Fprintf(w, " (%s)", commit)
			}
			fmt.Fprintln(w)
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
