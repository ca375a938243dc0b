package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ambient/internal/anim"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/fb"
	"github.com/san-kum/ambient/internal/graph"
	"github.com/san-kum/ambient/internal/loop"
	"github.com/san-kum/ambient/internal/noise"
	"github.com/san-kum/ambient/internal/scene"
	"github.com/san-kum/ambient/internal/viz"
)

var (
	configFile string
	preset     string
	logFile    string
	logLevel   string
	seed       int64
	fps        int
	palette    string

	// curve
	easing  string
	samples int
	// noise
	octaves     int
	persistence float64
	// datasets
	export string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ambient:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ambient",
		Short:         "ambient terminal visualisations",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runDefault,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log", "", "write logs to this file")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.Int64Var(&seed, "seed", 0, "noise seed (0 = time based)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "target frame rate")
	pf.StringVar(&palette, "palette", config.DefaultPalette, "colour palette ("+strings.Join(scene.PaletteNames(), ", ")+")")

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "mouse-reactive noise field",
		Args:  cobra.NoArgs,
		RunE:  runField,
	}

	sphereCmd := &cobra.Command{
		Use:   "sphere [dataset]",
		Short: "cycle through a graph dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSphere,
	}

	browseCmd := &cobra.Command{
		Use:   "browse [dataset]",
		Short: "browse a graph dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBrowse,
	}

	datasetsCmd := &cobra.Command{
		Use:   "datasets",
		Short: "list bundled datasets",
		Args:  cobra.NoArgs,
		RunE:  listDatasets,
	}
	datasetsCmd.Flags().StringVar(&export, "export", "", "print a dataset as yaml")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "plot the transition progress over one cycle",
		Args:  cobra.NoArgs,
		RunE:  plotCurve,
	}
	curveCmd.Flags().StringVar(&easing, "easing", "", "easing ("+strings.Join(anim.EasingNames(), ", ")+")")
	curveCmd.Flags().IntVar(&samples, "samples", 120, "number of samples")

	noiseCmd := &cobra.Command{
		Use:   "noise",
		Short: "plot a fractal noise profile",
		Args:  cobra.NoArgs,
		RunE:  plotNoise,
	}
	noiseCmd.Flags().IntVar(&octaves, "octaves", 0, "override octaves")
	noiseCmd.Flags().Float64Var(&persistence, "persistence", 0, "override persistence")
	noiseCmd.Flags().IntVar(&samples, "samples", 120, "number of samples")

	rootCmd.AddCommand(fieldCmd, sphereCmd, browseCmd, datasetsCmd, presetsCmd, curveCmd, noiseCmd)
	return rootCmd
}

// loadConfig resolves the preset, then the config file, then any flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		c, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("palette") {
		if _, ok := scene.LookupPalette(palette); !ok {
			return nil, fmt.Errorf("unknown palette: %s (available: %v)", palette, scene.PaletteNames())
		}
		cfg.Palette = palette
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger opens the --log file. The terminal belongs to the framebuffer
// while a scene runs, so without a file logs are discarded.
func newLogger() (*log.Logger, func() error, error) {
	if logFile == "" {
		return log.New(io.Discard), func() error { return nil }, nil
	}
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
		Prefix:          "ambient",
	})
	return logger, f.Close, nil
}

// runScene drives sc on the controlling terminal until ctx is done or the
// user quits.
func runScene(ctx context.Context, cfg *config.Config, sc loop.Scene, logger *log.Logger) error {
	tty := fb.NewTTY(os.Stdin, os.Stdout)
	if !tty.IsTerminal() {
		return errors.New("stdin is not a terminal")
	}
	w, h, err := tty.Size()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	r := loop.New(fb.New(w, h), sc, loop.Options{
		Interval: cfg.FrameInterval(),
		In:       os.Stdin,
		Out:      os.Stdout,
		Mode:     tty,
		Size:     tty.Size,
		Logger:   logger,
	})
	logger.Info("starting", "width", w, "height", h, "fps", cfg.FPS, "palette", cfg.Palette)
	err = r.Run(ctx)
	if err != nil {
		logger.Error("run failed", "err", err)
	}
	logger.Info("stopped")
	return err
}

// runDefault starts the scene named in the resolved config.
func runDefault(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Scene == "field" {
		return runField(cmd, args)
	}
	return runSphere(cmd, args)
}

func runField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	field := noise.New(cfg.SeedValue())
	logger.Debug("noise seeded", "seed", field.SeedValue())
	sc := scene.NewField(field, cfg, scene.GetPalette(cfg.Palette))
	return runScene(cmd.Context(), cfg, sc, logger)
}

func runSphere(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Dataset = args[0]
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	g, err := graph.Resolve(cfg.Dataset)
	if err != nil {
		return err
	}
	sc, err := scene.NewSphere(g, noise.New(cfg.SeedValue()), cfg, scene.GetPalette(cfg.Palette), scene.SphereOptions{
		Datasets: graph.Names(),
		Load:     graph.Resolve,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return runScene(cmd.Context(), cfg, sc, logger)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Dataset = args[0]
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	g, err := graph.Resolve(cfg.Dataset)
	if err != nil {
		return err
	}
	b := viz.NewBrowser(g, scene.GetPalette(cfg.Palette), viz.BrowserOptions{
		Datasets: graph.Names(),
		Load:     graph.Resolve,
		Logger:   logger,
	})
	return viz.RunBrowser(cmd.Context(), b)
}

func listDatasets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if export != "" {
		g, err := graph.Resolve(export)
		if err != nil {
			return err
		}
		data, err := graph.Marshal(g)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tNODES\tEDGES\tSEQUENCE")
	for _, name := range graph.Names() {
		g, err := graph.Load(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", g.Name(), g.Title(), g.Len(), g.EdgeCount(), len(g.Sequence()))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFPS\tDATASET\tPALETTE\tEASING\tIDLE\tTWEEN")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			name, p.FPS, p.Dataset, p.Palette, p.Animation.Easing, p.Animation.Idle, p.Animation.Tween)
	}
	return w.Flush()
}

// plotCurve samples TweenProgress across one full cycle on a synthetic clock.
func plotCurve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	name := cfg.Animation.Easing
	if easing != "" {
		name = easing
	}
	ease, err := anim.EasingByName(name)
	if err != nil {
		return err
	}
	if samples < 2 {
		return fmt.Errorf("samples must be at least 2")
	}

	now := time.Unix(0, 0)
	m := anim.New([]string{"a", "b"}, anim.Config{
		Idle:   cfg.Animation.Idle,
		Tween:  cfg.Animation.Tween,
		Easing: ease,
		Now:    func() time.Time { return now },
	})
	cycle := anim.Config{Idle: cfg.Animation.Idle, Tween: cfg.Animation.Tween}.Cycle()
	step := cycle / time.Duration(samples-1)

	data := make([]float64, samples)
	for i := range data {
		m.Update()
		data[i] = m.TweenProgress()
		now = now.Add(step)
	}

	plot := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("transition progress, %s easing, %s cycle", name, cycle)),
	)
	fmt.Fprintln(cmd.OutOrStdout(), plot)
	return nil
}

// plotNoise samples a horizontal line through the fractal field.
func plotNoise(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	nc := cfg.Noise
	if cmd.Flags().Changed("octaves") {
		nc.Octaves = octaves
	}
	if cmd.Flags().Changed("persistence") {
		nc.Persistence = persistence
	}
	if samples < 2 {
		return fmt.Errorf("samples must be at least 2")
	}

	field := noise.New(cfg.SeedValue())
	data := make([]float64, samples)
	for i := range data {
		data[i] = field.FractalSum(float64(i)*nc.Scale, 0, 0, nc.Octaves, nc.Persistence)
	}

	plot := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.LowerBound(-1),
		asciigraph.UpperBound(1),
		asciigraph.Caption(fmt.Sprintf("fractal noise, seed %d, %d octaves, persistence %.2f", field.SeedValue(), nc.Octaves, nc.Persistence)),
	)
	fmt.Fprintln(cmd.OutOrStdout(), plot)
	return nil
}
