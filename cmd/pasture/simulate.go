package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/pasture"
	"github.com/phanxgames/pasture/farm"
	"github.com/phanxgames/pasture/game"
	"github.com/phanxgames/pasture/metrics"
)

// simStart is the fixed start of every simulated session so that runs are
// reproducible.
var simStart = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

type simulateOptions struct {
	script    string
	state     string
	out       string
	maxFrames int
	metrics   bool
}

func newSimulateCmd(flags *rootFlags) *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate --script session.json",
		Short: "Replay a scripted session headlessly and print the final state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.OutOrStdout(), flags, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "JSON test script (required)")
	cmd.Flags().StringVar(&opts.state, "state", "", "JSON state to start from instead of a new herd")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the final state here instead of stdout")
	cmd.Flags().IntVar(&opts.maxFrames, "max-frames", 100000, "give up after this many frames")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print prometheus metrics after the state")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func runSimulate(w io.Writer, flags *rootFlags, opts *simulateOptions) error {
	cfg, err := flags.load()
	if err != nil {
		return err
	}
	log, err := pasture.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	data, err := os.ReadFile(opts.script)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	runner, err := pasture.LoadTestScript(data)
	if err != nil {
		return err
	}

	gameOpts := []game.Option{
		game.WithLogger(log),
		game.WithClock(pasture.NewManualClock(simStart)),
	}
	if opts.state != "" {
		s, err := readState(opts.state)
		if err != nil {
			return err
		}
		gameOpts = append(gameOpts, game.WithState(s))
	}
	var reg *prometheus.Registry
	if opts.metrics {
		reg = prometheus.NewRegistry()
		c := metrics.New(reg)
		gameOpts = append(gameOpts, game.WithSink(c), game.WithEntityStore(c))
	}

	g, err := game.New(cfg, gameOpts...)
	if err != nil {
		return err
	}
	g.RegisterScriptActions(runner)
	g.Scene.SetTestRunner(runner)

	frames := 0
	for !runner.Done() {
		if frames >= opts.maxFrames {
			return fmt.Errorf("script not finished after %d frames", frames)
		}
		g.Update()
		frames++
	}
	if err := runner.Err(); err != nil {
		return err
	}
	log.Info("simulation finished", zap.Int("frames", frames), zap.Time("clock", g.Now()))

	if err := writeState(w, opts.out, g.State()); err != nil {
		return err
	}
	if reg != nil {
		return writeMetrics(w, reg)
	}
	return nil
}

func readState(path string) (farm.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return farm.State{}, fmt.Errorf("read state: %w", err)
	}
	var s farm.State
	if err := json.Unmarshal(data, &s); err != nil {
		return farm.State{}, fmt.Errorf("parse state: %w", err)
	}
	return s, nil
}

func writeState(w io.Writer, path string, s farm.State) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
