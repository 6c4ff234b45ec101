package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/floq/internal/config"
	"github.com/san-kum/floq/internal/experiment"
	"github.com/san-kum/floq/internal/optim"
	"github.com/san-kum/floq/internal/storage"
	"github.com/san-kum/floq/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	live       bool

	spins      int
	ncomp      int
	omega      float64
	freq       float64
	amp        float64
	freqSpread float64
	ampSpread  float64
	duration   float64
	target     string
	optimizer  string
	maxIter    int
	rate       float64
	tol        float64
	steps      int
	penalty    float64
	seed       int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "floq",
		Short: "optimal control pulses for periodically driven quantum systems",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".floq", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "optimize a control pulse",
		RunE:  runOptimize,
	}
	optimizeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	optimizeCmd.Flags().StringVar(&preset, "preset", "", "preset configuration")
	optimizeCmd.Flags().BoolVar(&live, "live", false, "live convergence view")
	optimizeCmd.Flags().IntVar(&spins, "spins", 1, "ensemble size")
	optimizeCmd.Flags().IntVar(&ncomp, "ncomp", config.DefaultNcomp, "drive Fourier components")
	optimizeCmd.Flags().Float64Var(&omega, "omega", config.DefaultOmega, "angular driving frequency")
	optimizeCmd.Flags().Float64Var(&freq, "freq", config.DefaultFreq, "level splitting")
	optimizeCmd.Flags().Float64Var(&amp, "amp", config.DefaultAmp, "drive amplitude")
	optimizeCmd.Flags().Float64Var(&freqSpread, "freq-spread", 0, "disorder half-width on freq")
	optimizeCmd.Flags().Float64Var(&ampSpread, "amp-spread", 0, "disorder half-width on amp")
	optimizeCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "pulse duration")
	optimizeCmd.Flags().StringVar(&target, "target", "x", "target gate (identity|x|hadamard)")
	optimizeCmd.Flags().StringVar(&optimizer, "optimizer", "adam", "optimizer (gd|adam|lbfgs)")
	optimizeCmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "iteration limit")
	optimizeCmd.Flags().Float64Var(&rate, "rate", config.DefaultRate, "step rate")
	optimizeCmd.Flags().Float64Var(&tol, "tol", config.DefaultTol, "convergence tolerance")
	optimizeCmd.Flags().IntVar(&steps, "steps", config.DefaultTrotterSteps, "solver time steps")
	optimizeCmd.Flags().Float64Var(&penalty, "penalty", 0, "amplitude penalty weight")
	optimizeCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  runList,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run convergence",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run details",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	rootCmd.AddCommand(optimizeCmd, listCmd, plotCmd, showCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func buildConfig() (config.Config, error) {
	var cfg config.Config
	switch {
	case configFile != "":
		return config.Load(configFile)
	case preset != "":
		p, ok := config.Preset(preset)
		if !ok {
			return cfg, fmt.Errorf("unknown preset %q (have %v)", preset, config.PresetNames())
		}
		return p, nil
	default:
		cfg = config.Default()
		cfg.Spins = spins
		cfg.Ncomp = ncomp
		cfg.Omega = omega
		cfg.Freq = freq
		cfg.Amp = amp
		cfg.FreqSpread = freqSpread
		cfg.AmpSpread = ampSpread
		cfg.Duration = duration
		cfg.Target = target
		cfg.Optimizer = optimizer
		cfg.MaxIter = maxIter
		cfg.Rate = rate
		cfg.Tol = tol
		cfg.TrotterSteps = steps
		cfg.PenaltyWeight = penalty
		cfg.Seed = seed
		return cfg, cfg.Validate()
	}
}

func runOptimize(cmd *cobra.Command, args []string) error {
	log := logger()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, log)
	if err := exp.Setup(); err != nil {
		return err
	}

	var res *experiment.Result
	if live {
		res, err = runLive(exp)
	} else {
		res, err = exp.Run(context.Background())
	}
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(cfg, res)
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render("result"))
	fmt.Printf("run:        %s\n", runID)
	fmt.Printf("distance:   %.6e\n", res.Distance)
	fmt.Printf("iterations: %d\n", res.Iters)
	fmt.Printf("converged:  %v\n", res.Converged)
	fmt.Printf("controls:   %v\n", res.Controls)
	return nil
}

func runLive(exp *experiment.Experiment) (*experiment.Result, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(viz.NewModel())

	exp.SetProgress(func(pr optim.Progress) {
		p.Send(viz.ProgressMsg(pr))
	})

	var (
		res    *experiment.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		res, runErr = exp.Run(ctx)
		p.Send(viz.DoneMsg{Err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		return nil, err
	}
	cancel()
	<-done

	if errors.Is(runErr, context.Canceled) {
		return nil, fmt.Errorf("optimization aborted")
	}
	if runErr != nil {
		return nil, runErr
	}
	return res, nil
}

func runList(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTARGET\tSPINS\tOPTIMIZER\tDISTANCE\tITERS\tCONVERGED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.3e\t%d\t%v\n",
			run.ID, run.Target, run.Spins, run.Optimizer, run.Distance, run.Iters, run.Converged)
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	history, err := store.LoadHistory(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.Convergence(history, 16))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(meta.ID))
	fmt.Printf("timestamp:  %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("target:     %s\n", meta.Target)
	fmt.Printf("spins:      %d\n", meta.Spins)
	fmt.Printf("optimizer:  %s\n", meta.Optimizer)
	fmt.Printf("duration:   %g\n", meta.Duration)
	fmt.Printf("distance:   %.6e\n", meta.Distance)
	fmt.Printf("iterations: %d\n", meta.Iters)
	fmt.Printf("converged:  %v\n", meta.Converged)
	fmt.Printf("controls:   %v\n", meta.Controls)
	return nil
}
