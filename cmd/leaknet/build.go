package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-leaknet/pkg/config"
	"github.com/dd0wney/cluso-leaknet/pkg/logging"
	"github.com/dd0wney/cluso-leaknet/pkg/pipeline"
)

type buildFlags struct {
	configFile  string
	input       string
	output      string
	compress    bool
	noGEXF      bool
	metricsFile string
	runID       string
}

func newBuildCmd(a *app) *cobra.Command {
	f := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the officer and company networks and write their tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			if cfg.LogLevel != "" && !cmd.Flags().Changed("log-level") && f.configFile != "" {
				if err := a.setLogger(cmd, cfg.LogLevel); err != nil {
					return err
				}
			}
			return runBuild(cmd, a.logger, cfg, f.runID)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configFile, "config", "", "YAML configuration file")
	flags.StringVar(&f.input, "input", "", "directory of per-company JSON documents")
	flags.StringVar(&f.output, "output", "", "output directory (default \"output\")")
	flags.BoolVar(&f.compress, "compress", false, "write tables with snappy framing (.csv.sz)")
	flags.BoolVar(&f.noGEXF, "no-gexf", false, "skip the GEXF graph files")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	flags.StringVar(&f.runID, "run-id", "", "run ID for logs and sinks (default a random UUID)")
	return cmd
}

// resolve merges defaults, the config file and explicitly set flags, in
// that order, and validates the result.
func (f *buildFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.configFile != "" {
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("input") {
		cfg.Input = f.input
	}
	if changed("output") {
		cfg.Output.Dir = f.output
	}
	if changed("compress") {
		cfg.Output.Compress = f.compress
	}
	if changed("no-gexf") {
		cfg.Output.GEXF = !f.noGEXF
	}
	if changed("metrics-file") {
		cfg.Output.MetricsFile = f.metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runBuild(cmd *cobra.Command, logger logging.Logger, cfg *config.Config, runID string) (err error) {
	ctx := cmd.Context()

	sinks, err := pipeline.OpenSinks(ctx, cfg.Publish, logger)
	if err != nil {
		return fmt.Errorf("open sinks: %w", err)
	}
	defer func() {
		err = errors.Join(err, pipeline.CloseSinks(sinks))
	}()

	opts := []pipeline.Option{pipeline.WithSinks(sinks...)}
	if runID != "" {
		opts = append(opts, pipeline.WithRunID(func() string { return runID }))
	}

	res, err := pipeline.New(cfg, logger, opts...).Run(ctx)
	if err != nil {
		logger.Error("build failed", logging.Error(err))
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderBuild(res))
	return nil
}
