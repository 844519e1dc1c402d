package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jkim-oss/d2drepair/pkg/engine"
	"github.com/jkim-oss/d2drepair/pkg/metrics"
	"github.com/jkim-oss/d2drepair/pkg/reporting"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Args:  cobra.NoArgs,
	Short: "Find concrete repair solutions for every reparable fault (--Repair_Solutions)",
	Long: `Enumerates every fault pattern, classifies each one, and resolves every
Repair-tagged candidate with the Routing Solver's CSP backtracking search
(or the Bundle Solver, with --Bundle_Flag), attaching the concrete
per-chain multiplexer assignment whenever one is found. Writes the Repair
Solutions Table to CSV.`,
	RunE: runRepair,
}

func init() {
	addInterfaceFlags(repairCmd)
	addFaultModelFlags(repairCmd)
	repairCmd.Flags().Bool("Bundle_Flag", false, "use the Bundle Solver instead of the Routing Solver")
	repairCmd.Flags().String("output", "", "CSV output path for the repair solutions table (default: <output_dir>/repair_solutions.csv)")
}

func runRepair(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg)

	bumps, routes, err := loadInterface(cmd)
	if err != nil {
		return err
	}

	ft, faultsNumber, opts, err := faultModelFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	bundleMode, _ := cmd.Flags().GetBool("Bundle_Flag")
	if !cmd.Flags().Changed("Bundle_Flag") {
		bundleMode = cfg.FaultModel.BundleMode
	}

	startTime := time.Now()
	logger.Info("repair solutions starting", "fault_type", ft.Kind, "faults_number", faultsNumber, "bundle_mode", bundleMode)

	e := engine.New(bumps, routes, logger).WithMetrics(metrics.New())
	rows, err := e.Repair(ft, faultsNumber, opts, bundleMode)
	endTime := time.Now()

	bumpMapFile, _ := cmd.Flags().GetString("BumpMap")
	irlFile, _ := cmd.Flags().GetString("IRL")

	report := &reporting.RunReport{
		RunID:        fmt.Sprintf("repair-%d", startTime.Unix()),
		Operation:    reporting.OperationRepair,
		BumpMapFile:  bumpMapFile,
		IRLFile:      irlFile,
		FaultKind:    string(ft.Kind),
		FaultsNumber: faultsNumber,
		BundleMode:   bundleMode,
		StartTime:    startTime,
		EndTime:      endTime,
		Duration:     endTime.Sub(startTime).String(),
	}
	if err != nil {
		report.Status = reporting.StatusFailed
		report.Message = err.Error()
	} else {
		report.Status = reporting.StatusCompleted
		records := engine.ToRepairSolutionRecords(rows)
		report.RepairSolutionRows = records
		report.TagCounts = reporting.CountRepairSolutionTags(records)
	}

	storage, storageErr := reporting.NewStorage(cfg.Reporting.OutputDir, cfg.Reporting.KeepLastN, logger)
	if storageErr != nil {
		logger.Warn("failed to create report storage", "error", storageErr)
	} else if _, saveErr := storage.SaveReport(report); saveErr != nil {
		logger.Warn("failed to save run report", "error", saveErr)
	}

	if err != nil {
		return fmt.Errorf("repair solutions failed: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = cfg.Reporting.OutputDir + "/repair_solutions.csv"
	}
	if err := reporting.WriteRepairSolutionsTable(outputPath, report.RepairSolutionRows); err != nil {
		return fmt.Errorf("failed to write repair solutions table: %w", err)
	}

	progress := reporting.NewProgressReporter(reporting.FormatText, logger)
	progress.ReportRunCompleted(report)
	logger.Info("repair solutions table written", "path", outputPath)

	return nil
}
