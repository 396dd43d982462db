package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fieldviz/internal/analysis"
	"github.com/san-kum/fieldviz/internal/config"
	"github.com/san-kum/fieldviz/internal/decompose"
	"github.com/san-kum/fieldviz/internal/export"
	"github.com/san-kum/fieldviz/internal/grid"
	"github.com/san-kum/fieldviz/internal/metrics"
	"github.com/san-kum/fieldviz/internal/pipeline"
	"github.com/san-kum/fieldviz/internal/storage"
	"github.com/san-kum/fieldviz/internal/viz"
)

var (
	dataDir string
	// Field and grid
	expression string
	dimension  int
	density    int
	extent     float64
	atTime     float64
	workers    int
	// Animation
	frameRate int
	timeStep  float64
	// Config file
	configFile string
	// Preset name
	preset string
	// Output
	outPath  string
	imgW     int
	imgH     int
	asJSON   bool
	noSave   bool
	mapWidth int
	frames   int
)

// main registers the commands and runs the root command, opening the
// preset picker when no subcommand is given.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fieldviz",
		Short: "vector field decomposition and sampling lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fieldviz", "data directory")

	decomposeCmd := &cobra.Command{
		Use:   "decompose [expression]",
		Short: "split an expression into x, y and z coefficients",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecompose,
	}
	decomposeCmd.Flags().BoolVar(&asJSON, "json", false, "print components as JSON")

	sampleCmd := &cobra.Command{
		Use:   "sample [expression]",
		Short: "sample a field over a grid and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSample,
	}
	addFieldFlags(sampleCmd)
	sampleCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	sampleCmd.Flags().IntVar(&mapWidth, "map-width", 60, "width of the magnitude map")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot magnitude profile of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run frame to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a run as an SVG quiver plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	addImageFlags(svgCmd, "field.svg")

	pngCmd := &cobra.Command{
		Use:   "png [run_id]",
		Short: "render a run as a PNG quiver plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	addImageFlags(pngCmd, "field.png")

	liveCmd := &cobra.Command{
		Use:   "live [expression]",
		Short: "animate a field in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addFieldFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().Float64Var(&timeStep, "step", config.DefaultTimeStep, "time advanced per frame")

	animateCmd := &cobra.Command{
		Use:   "animate [expression]",
		Short: "sample successive frames and report per-frame metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnimate,
	}
	addFieldFlags(animateCmd)
	animateCmd.Flags().IntVar(&frames, "frames", 20, "number of frames")
	animateCmd.Flags().Float64Var(&timeStep, "step", config.DefaultTimeStep, "time advanced per frame")

	benchCmd := &cobra.Command{
		Use:   "bench [expression]",
		Short: "benchmark sampling across worker counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchSampling,
	}
	addFieldFlags(benchCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(decomposeCmd, sampleCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, svgCmd, pngCmd, liveCmd, animateCmd, benchCmd, presetsCmd)
	return rootCmd
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&expression, "expr", "", "field expression (overrides config)")
	cmd.Flags().IntVar(&dimension, "dim", config.DefaultDimension, "dimension (2 or 3)")
	cmd.Flags().IntVar(&density, "density", config.DefaultDensity, "points per axis")
	cmd.Flags().Float64Var(&extent, "extent", config.DefaultExtent, "half-width of the sampling cube")
	cmd.Flags().Float64Var(&atTime, "t", 0, "time")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "sampling goroutines")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func addImageFlags(cmd *cobra.Command, def string) {
	cmd.Flags().StringVarP(&outPath, "output", "o", def, "output file")
	cmd.Flags().IntVar(&imgW, "width", 800, "image width")
	cmd.Flags().IntVar(&imgH, "height", 800, "image height")
}

// resolveConfig layers preset, config file, then explicitly set flags and
// the positional expression. It returns the config and a run name.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "field"

	if preset != "" {
		p := config.FindPreset(preset)
		if p == nil {
			var all []string
			for _, g := range config.Groups() {
				all = append(all, config.ListPresets(g)...)
			}
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, all)
		}
		cfg, name = p, preset
	}

	// Config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("expr") {
		cfg.Expression = expression
	}
	if flags.Changed("dim") {
		cfg.Dimension = dimension
	}
	if flags.Changed("density") {
		cfg.Density = density
	}
	if flags.Changed("extent") {
		cfg.Bounds = grid.Cube(extent)
	}
	if flags.Changed("t") {
		cfg.Time = atTime
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Lookup("step") != nil && flags.Changed("step") {
		cfg.TimeStep = timeStep
	}
	if len(args) > 0 {
		cfg.Expression = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	p := pipeline.New(pipeline.Options{Workers: cfg.Workers})
	if _, err := p.SetExpression(cfg.Expression, cfg.Dimension); err != nil {
		return nil, err
	}
	if err := p.SetGrid(cfg.Grid()); err != nil {
		return nil, err
	}
	return p, nil
}

func runDecompose(cmd *cobra.Command, args []string) error {
	c, err := decompose.Decompose(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AXIS\tSYMBOL\tCOEFFICIENT")
	for _, a := range decompose.Axes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a, a.Symbol(), c.Get(a))
	}
	return w.Flush()
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	frame, err := p.SampleAt(cmd.Context(), cfg.Time)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "field: %s\n", frame.Expression)
	fmt.Fprintf(out, "components: %s\n", frame.Components)
	fmt.Fprintf(out, "grid: %d^%d points, t=%.3f\n", cfg.Density, cfg.Dimension, frame.Time)
	printSummary(out, frame, elapsed)
	fmt.Fprintln(out)
	fmt.Fprint(out, analysis.MagnitudeMapASCII(frame.Samples, mapWidth, mapWidth/2))

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(name, frame)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nrun: %s\n", runID)
	return nil
}

func printSummary(out io.Writer, frame *pipeline.Frame, elapsed time.Duration) {
	sum := analysis.Summarize(frame.Samples)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "samples\t%d\t(%d suppressed)\n", frame.Count, frame.Grid.Points()-frame.Count)
	fmt.Fprintf(w, "max |F|\t%.4f\n", sum.Max)
	fmt.Fprintf(w, "min |F|\t%.4f\n", sum.Min)
	fmt.Fprintf(w, "mean |F|\t%.4f\n", sum.Mean)
	fmt.Fprintf(w, "std dev\t%.4f\n", sum.StdDev)
	if elapsed > 0 {
		fmt.Fprintf(w, "elapsed\t%v\n", elapsed)
	}
	w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEXPRESSION\tTIME\tDIM\tDENSITY\tSAMPLES\tMAX")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.3f\n",
			run.ID,
			run.Expression,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dimension,
			run.Grid.Density,
			run.Count,
			run.MaxMagnitude,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frame, err := st.LoadFrame(args[0])
	if err != nil {
		return err
	}
	if frame.Count == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", args[0])
	fmt.Fprintf(out, "field: %s\n", frame.Expression)
	fmt.Fprintf(out, "samples: %d\n\n", frame.Count)

	graph := asciigraph.Plot(analysis.Magnitudes(frame.Samples),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("|F| in sample order"),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	hist := analysis.Histogram(frame.Samples, 20)
	counts := make([]float64, len(hist))
	for i, c := range hist {
		counts[i] = float64(c)
	}
	graph = asciigraph.Plot(counts,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("magnitude histogram, 0 to %.3f", frame.MaxMagnitude)),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	fmt.Fprint(out, analysis.MagnitudeMapASCII(frame.Samples, 60, 30))
	return nil
}

// output opens outPath, or returns stdout when it is empty.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outPath == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	frame, err := storage.New(dataDir).LoadFrame(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if err := export.WriteJSON(w, frame); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	samples, err := storage.New(dataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(w, samples); err != nil {
		closeFn()
		return err
	}
	if outPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %d samples to %s\n", len(samples), outPath)
	}
	return closeFn()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	frame, err := storage.New(dataDir).LoadFrame(args[0])
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(export.QuiverSVG(frame, imgW, imgH)), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	frame, err := storage.New(dataDir).LoadFrame(args[0])
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := export.WritePNG(f, frame, imgW, imgH); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return viz.RunLive(cmd.Context(), cfg, name)
}

func runAnimate(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	rec := metrics.Standard()
	p.AddObserver(rec)

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tTIME\tSAMPLES\tMAX")

	var peaks []float64
	n := 0
	anim := pipeline.Animation{Start: cfg.Time, Step: cfg.TimeStep, Frames: frames}
	err = p.Animate(cmd.Context(), anim, func(f *pipeline.Frame) bool {
		fmt.Fprintf(w, "%d\t%.3f\t%d\t%.4f\n", n, f.Time, f.Count, f.MaxMagnitude)
		peaks = append(peaks, f.MaxMagnitude)
		n++
		return true
	})
	if err != nil {
		return err
	}
	w.Flush()

	if len(peaks) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(peaks,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("max |F| per frame"),
		))
	}

	fmt.Fprintln(out)
	for _, m := range rec.Metrics() {
		fmt.Fprintf(out, "%-10s %.4f\n", m.Name(), m.Value())
	}
	return nil
}

func benchSampling(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %s on %d^%d points\n\n", cfg.Expression, cfg.Density, cfg.Dimension)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tSAMPLES\tTIME\tPOINTS/SEC")

	for _, n := range []int{1, 2, 4, 8} {
		run := cfg.Clone()
		run.Workers = n
		p, err := buildPipeline(run)
		if err != nil {
			return err
		}

		start := time.Now()
		frame, err := p.SampleAt(cmd.Context(), run.Time)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		rate := float64(run.Grid().Points()) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, frame.Count, elapsed, rate)
	}

	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	groups := config.Groups()
	if len(args) > 0 {
		groups = []string{args[0]}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tNAME\tEXPRESSION")
	found := false
	for _, g := range groups {
		for _, name := range config.ListPresets(g) {
			found = true
			fmt.Fprintf(w, "%s\t%s\t%s\n", g, name, config.GetPreset(g, name).Expression)
		}
	}
	if !found {
		return fmt.Errorf("no presets for group: %s (groups: %s)", args[0], strings.Join(config.Groups(), ", "))
	}
	return w.Flush()
}
