package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/roomsim/internal/acoustics"
	"github.com/san-kum/roomsim/internal/analysis"
	"github.com/san-kum/roomsim/internal/config"
	"github.com/san-kum/roomsim/internal/metrics"
	"github.com/san-kum/roomsim/internal/storage"
	"github.com/san-kum/roomsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	runName    string
	maxOrder   int
	sampleRate float64
	bufferLen  int
	speed      float64
	enhanced   bool
	workers    int
	noSave     bool
	// Plot selection
	receiver int
	band     string
	// Plot dimensions
	plotWidth  int
	plotHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roomsim",
		Short: "room acoustics impulse response simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".roomsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or json)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset room configuration")
	runCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to preset or \"room\")")
	runCmd.Flags().IntVar(&maxOrder, "max-order", 0, "override maximum reflection order")
	runCmd.Flags().Float64Var(&sampleRate, "rate", 0, "override sample rate (hz)")
	runCmd.Flags().IntVar(&bufferLen, "length", 0, "override buffer length (samples)")
	runCmd.Flags().Float64Var(&speed, "speed", 0, "override speed of sound (m/s)")
	runCmd.Flags().BoolVar(&enhanced, "enhanced", false, "use bandlimited pulse shaping")
	runCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all cpus)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip writing the run to disk")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available room presets",
		RunE:  listAvailablePresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot impulse responses for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&receiver, "receiver", 0, "receiver index")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	decayCmd := &cobra.Command{
		Use:   "decay [run_id]",
		Short: "decay curves and reverberation metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  decayRun,
	}
	decayCmd.Flags().IntVar(&receiver, "receiver", 0, "receiver index")
	decayCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	decayCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&receiver, "receiver", 0, "receiver index")
	analyzeCmd.Flags().StringVar(&band, "band", "mid", "band to analyze (low, mid, high)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export response samples to csv on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().IntVar(&receiver, "receiver", 0, "receiver index")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "interactive response browser",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the simulation across reflection orders",
		RunE:  benchOrders,
	}
	benchCmd.Flags().StringVar(&preset, "preset", "furnished_room", "preset to benchmark")

	rootCmd.AddCommand(runCmd, presetsCmd, initCmd, listCmd, plotCmd, decayCmd, analyzeCmd, exportCmd, exportCSVCmd, viewCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadRunConfig() (*config.Config, string, error) {
	name := runName

	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if name == "" {
			name = "room"
		}
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		if name == "" {
			name = preset
		}
	default:
		cfg = config.DefaultConfig()
		if name == "" {
			name = "room"
		}
	}

	if maxOrder > 0 {
		cfg.MaxOrder = maxOrder
	}
	if sampleRate > 0 {
		cfg.Simulation.SampleRate = sampleRate
	}
	if bufferLen > 0 {
		cfg.Simulation.BufferLength = bufferLen
	}
	if speed > 0 {
		cfg.Simulation.SpeedOfSound = speed
	}
	if enhanced {
		cfg.Simulation.Enhanced = true
	}

	return cfg, name, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadRunConfig()
	if err != nil {
		return err
	}

	opts := cfg.EngineOptions()
	if workers > 0 {
		opts.Workers = workers
	}

	engineCfg := cfg.EngineConfig()

	fmt.Printf("simulating %s (order %d, %d image sources per source)...\n",
		name, engineCfg.MaxOrder, acoustics.Count(engineCfg.MaxOrder))
	start := time.Now()

	responses, err := acoustics.Simulate(context.Background(), engineCfg, opts)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)

	room, err := cfg.Room()
	if err != nil {
		return err
	}
	rt60 := metrics.SabineRT60(room, engineCfg.Absorption)

	fmt.Println("\nsabine rt60:")
	for _, b := range acoustics.Bands() {
		fmt.Printf("  %-5s %.3fs\n", b, rt60[b])
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(name, cfg, opts, rt60, responses)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)

	return nil
}

func listAvailablePresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIMS\tSOURCES\tRECEIVERS\tORDER")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.1fx%.1fx%.1f\t%d\t%d\t%d\n",
			name,
			p.RoomDims[0], p.RoomDims[1], p.RoomDims[2],
			len(p.SourcePositions),
			len(p.ReceiverPositions),
			p.MaxOrder,
		)
	}

	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDIMS\tRECEIVERS\tRATE\tRT60(MID)")

	for _, run := range runs {
		dims := "?"
		if run.Room != nil {
			dims = fmt.Sprintf("%.1fx%.1fx%.1f",
				run.Room.RoomDims[0], run.Room.RoomDims[1], run.Room.RoomDims[2])
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0f\t%.3fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			dims,
			run.Receivers,
			run.SampleRate,
			run.RT60["mid"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	responses, _, err := st.LoadResponses(runID, receiver)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("receiver: %d\n\n", receiver)

	for _, b := range acoustics.Bands() {
		ir := responses[b]
		if len(ir) == 0 {
			continue
		}
		fmt.Println(viz.PlotWaveform(ir, meta.SampleRate, plotWidth, plotHeight, string(b)))
		fmt.Println()
	}

	return nil
}

func decayRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	responses, _, err := st.LoadResponses(runID, receiver)
	if err != nil {
		return err
	}

	analyzer := metrics.NewDecayAnalyzer(meta.SampleRate)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("receiver: %d\n\n", receiver)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BAND\tSABINE\tRT60\tEDT\tT20\tT30")

	for _, b := range acoustics.Bands() {
		ir := responses[b]
		if len(ir) == 0 {
			continue
		}
		dm, err := analyzer.Analyze(ir)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.3fs\t%.3fs\t%.3fs\t%.3fs\t%.3fs\n",
			b, meta.RT60[string(b)], dm.RT60, dm.EDT, dm.T20, dm.T30)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	for _, b := range acoustics.Bands() {
		ir := responses[b]
		if len(ir) == 0 {
			continue
		}
		curve, err := analyzer.Curve(ir)
		if err != nil {
			return err
		}
		fmt.Println(viz.PlotDecay(curve, meta.SampleRate, plotWidth, plotHeight, string(b)))
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	responses, _, err := st.LoadResponses(runID, receiver)
	if err != nil {
		return err
	}

	ir := responses[acoustics.Band(band)]
	if len(ir) == 0 {
		return fmt.Errorf("no data for band %q", band)
	}

	ps, err := analysis.PowerSpectrum(ir)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("band: %s, receiver: %d\n\n", band, receiver)

	fmt.Println(viz.PlotSpectrum(ps, 80, 15, fmt.Sprintf("power spectrum (%s)", band)))
	fmt.Println()

	bin, power := analysis.DominantBin(ps)
	fftSize := 2 * len(ps)
	freq := float64(bin) * meta.SampleRate / float64(fftSize)
	fmt.Printf("dominant frequency: %.1f hz (power %.3e)\n", freq, power)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	responses, times, err := st.LoadResponses(args[0], receiver)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "low", "mid", "high"}); err != nil {
		return err
	}
	for i, t := range times {
		row := []string{
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.FormatFloat(responses[acoustics.BandLow][i], 'g', -1, 64),
			strconv.FormatFloat(responses[acoustics.BandMid][i], 'g', -1, 64),
			strconv.FormatFloat(responses[acoustics.BandHigh][i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	responses := make(map[acoustics.Band][]acoustics.ImpulseResponse)
	for r := 0; r < meta.Receivers; r++ {
		bands, _, err := st.LoadResponses(runID, r)
		if err != nil {
			return err
		}
		for b, samples := range bands {
			responses[b] = append(responses[b], acoustics.ImpulseResponse(samples))
		}
	}

	rt60 := make(map[acoustics.Band]float64, len(meta.RT60))
	for b, v := range meta.RT60 {
		rt60[acoustics.Band(b)] = v
	}

	return viz.RunViewer(responses, rt60, meta.SampleRate)
}

func benchOrders(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	orders := []int{1, 2, 3, 4}
	modes := []bool{false, true}

	fmt.Printf("benchmarking %s\n\n", preset)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tSOURCES\tENHANCED\tTIME\tSOURCES/SEC")

	for _, order := range orders {
		for _, mode := range modes {
			cfg.MaxOrder = order
			cfg.Simulation.Enhanced = mode

			opts := cfg.EngineOptions()
			engineCfg := cfg.EngineConfig()

			start := time.Now()
			if _, err := acoustics.Simulate(context.Background(), engineCfg, opts); err != nil {
				return err
			}
			elapsed := time.Since(start)

			sources := acoustics.Count(order) * len(cfg.SourcePositions)
			perSec := float64(sources) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%v\t%v\t%.0f\n", order, sources, mode, elapsed, perSec)
		}
	}

	return w.Flush()
}
