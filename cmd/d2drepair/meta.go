package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/config"
	"github.com/jkim-oss/d2drepair/pkg/plot"
	"github.com/jkim-oss/d2drepair/pkg/reporting"
	"github.com/jkim-oss/d2drepair/pkg/system"
	"github.com/jkim-oss/d2drepair/pkg/yield"
)

var metaCmd = &cobra.Command{
	Use:   "meta",
	Args:  cobra.NoArgs,
	Short: "Sweep Monte-Carlo yield with and without repair across electrical yields (--Meta_Analysis)",
	Long: `Sweeps a range of electrical yields, sampling random fault populations at
each point and composing interface (or, with --System_Analysis, whole
system) yield with and without repair. Writes the yield curve to CSV and
plots it to SVG.`,
	RunE: runMeta,
}

func init() {
	addInterfaceFlags(metaCmd)
	metaCmd.Flags().Bool("System_Analysis", false, "sweep a whole system description instead of a single interface")
	metaCmd.Flags().String("System", "", "path to the system description YAML file (required with --System_Analysis)")
	metaCmd.Flags().Float64("Min_Yield", 0, "minimum electrical yield swept (overrides config default)")
	metaCmd.Flags().Float64("Max_Yield", 0, "maximum electrical yield swept (overrides config default)")
	metaCmd.Flags().Int("Number_of_electrical_yield_tested", 0, "number of electrical-yield sweep steps: N+1 points from min to max when linear, N points when log-scale (overrides config default)")
	metaCmd.Flags().Int("Number_of_faults_tested", 0, "Monte-Carlo samples drawn per sweep point (overrides config default)")
	metaCmd.Flags().Bool("Log_Scale", false, "sweep electrical yield on a log scale (1-10^-i) instead of linear")
	metaCmd.Flags().Bool("Bundle_Flag", false, "use the Bundle Solver instead of the Capacity Solver when resolving repairs")
	metaCmd.Flags().Int64("seed", 0, "master RNG seed (0 = nondeterministic)")
	metaCmd.Flags().String("output", "", "CSV output path for the yield curve (default: <output_dir>/yield.csv)")
	metaCmd.Flags().String("plot", "", "SVG output path for the yield plot (default: <output_dir>/yield.svg)")
}

// yieldConfigFromFlags builds a yield.Config, overlaying config defaults
// with any flag the user explicitly set.
func yieldConfigFromFlags(cmd *cobra.Command, cfg *config.Config) yield.Config {
	minYield := cfg.MonteCarlo.MinYield
	if cmd.Flags().Changed("Min_Yield") {
		minYield, _ = cmd.Flags().GetFloat64("Min_Yield")
	}
	maxYield := cfg.MonteCarlo.MaxYield
	if cmd.Flags().Changed("Max_Yield") {
		maxYield, _ = cmd.Flags().GetFloat64("Max_Yield")
	}
	yieldPoints := cfg.MonteCarlo.NumberOfElectricalYieldTested
	if cmd.Flags().Changed("Number_of_electrical_yield_tested") {
		yieldPoints, _ = cmd.Flags().GetInt("Number_of_electrical_yield_tested")
	}
	samples := cfg.MonteCarlo.NumberOfFaultsTested
	if cmd.Flags().Changed("Number_of_faults_tested") {
		samples, _ = cmd.Flags().GetInt("Number_of_faults_tested")
	}
	logScale := cfg.MonteCarlo.LogScale
	if cmd.Flags().Changed("Log_Scale") {
		logScale, _ = cmd.Flags().GetBool("Log_Scale")
	}
	bundleMode := cfg.FaultModel.BundleMode
	if cmd.Flags().Changed("Bundle_Flag") {
		bundleMode, _ = cmd.Flags().GetBool("Bundle_Flag")
	}
	seed, _ := cmd.Flags().GetInt64("seed")

	return yield.Config{
		Seed:            seed,
		MinYield:        minYield,
		MaxYield:        maxYield,
		YieldPoints:     yieldPoints,
		LogScale:        logScale,
		SamplesPerYield: samples,
		BundleMode:      bundleMode,
	}
}

func runMeta(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg)

	sweepCfg := yieldConfigFromFlags(cmd, cfg)
	systemAnalysis, _ := cmd.Flags().GetBool("System_Analysis")

	startTime := time.Now()
	var summary *reporting.YieldSummary
	var runErr error

	if systemAnalysis {
		systemFile, _ := cmd.Flags().GetString("System")
		if systemFile == "" {
			return fmt.Errorf("--System flag is required with --System_Analysis")
		}
		desc, loadErr := system.LoadFile(systemFile)
		if loadErr != nil {
			return fmt.Errorf("failed to load system description: %w", loadErr)
		}
		logger.Info("system yield sweep starting", "dies", len(desc.Dies()))
		result, estErr := yield.EstimateSystem(desc, yield.LoadInterfaceFiles(bumpmap.DefaultScale), sweepCfg)
		runErr = estErr
		if estErr == nil {
			summary = reporting.FromSystemResult(result)
		}
	} else {
		bumps, routes, loadErr := loadInterface(cmd)
		if loadErr != nil {
			return loadErr
		}
		logger.Info("interface yield sweep starting", "bumps", bumps.Len())
		curve := yield.Estimate(bumps, routes, sweepCfg)
		summary = reporting.FromCurve("", curve)
	}
	endTime := time.Now()

	report := &reporting.RunReport{
		RunID:      fmt.Sprintf("meta-%d", startTime.Unix()),
		Operation:  reporting.OperationMeta,
		BundleMode: sweepCfg.BundleMode,
		StartTime:  startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(startTime).String(),
	}
	if runErr != nil {
		report.Status = reporting.StatusFailed
		report.Message = runErr.Error()
	} else {
		report.Status = reporting.StatusCompleted
		report.Yield = summary
	}

	storage, storageErr := reporting.NewStorage(cfg.Reporting.OutputDir, cfg.Reporting.KeepLastN, logger)
	if storageErr != nil {
		logger.Warn("failed to create report storage", "error", storageErr)
	} else if _, saveErr := storage.SaveReport(report); saveErr != nil {
		logger.Warn("failed to save run report", "error", saveErr)
	}

	if runErr != nil {
		return fmt.Errorf("yield sweep failed: %w", runErr)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = cfg.Reporting.OutputDir + "/yield.csv"
	}
	if err := writeYieldCSV(outputPath, summary); err != nil {
		return fmt.Errorf("failed to write yield curve: %w", err)
	}

	yieldRange, withoutRepair, withRepair := summaryRanges(summary)
	p, err := plot.YieldFigure(yieldRange, withoutRepair, withRepair, plot.Options{})
	if err != nil {
		return fmt.Errorf("failed to build yield plot: %w", err)
	}
	plotPath, _ := cmd.Flags().GetString("plot")
	if plotPath == "" {
		plotPath = cfg.Reporting.OutputDir + "/yield.svg"
	}
	if err := plot.Save(p, plot.FormatSVG, plot.Options{}, plotPath); err != nil {
		return fmt.Errorf("failed to save yield plot: %w", err)
	}

	progress := reporting.NewProgressReporter(reporting.FormatText, logger)
	progress.ReportRunCompleted(report)
	logger.Info("yield curve written", "csv", outputPath, "plot", plotPath)

	return nil
}

// summaryRanges unpacks a YieldSummary's points into the three parallel
// slices plot.YieldFigure expects.
func summaryRanges(summary *reporting.YieldSummary) (yieldRange, withoutRepair, withRepair []float64) {
	yieldRange = make([]float64, len(summary.Points))
	withoutRepair = make([]float64, len(summary.Points))
	withRepair = make([]float64, len(summary.Points))
	for i, pt := range summary.Points {
		yieldRange[i] = pt.Yield
		withoutRepair[i] = pt.WithoutRepair
		withRepair[i] = pt.WithRepair
	}
	return yieldRange, withoutRepair, withRepair
}

func writeYieldCSV(path string, summary *reporting.YieldSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "yield,without_repair,with_repair")
	for _, pt := range summary.Points {
		fmt.Fprintf(f, "%g,%g,%g\n", pt.Yield, pt.WithoutRepair, pt.WithRepair)
	}
	return nil
}
