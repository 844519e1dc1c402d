package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jkim-oss/d2drepair/pkg/engine"
	"github.com/jkim-oss/d2drepair/pkg/metrics"
	"github.com/jkim-oss/d2drepair/pkg/reporting"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Args:  cobra.NoArgs,
	Short: "Compute reparability statistics over every fault pattern (--Reparability_Statistics)",
	Long: `Enumerates every fault pattern consistent with the fault model, classifies
each one, and resolves every Repair-tagged candidate with the Capacity
Solver's fast necessary-condition check. Writes the Reparability Table to
CSV; it carries every Fault Table column plus the resolved tag, and no
separate Fault Table file is written.`,
	RunE: runStats,
}

func init() {
	addInterfaceFlags(statsCmd)
	addFaultModelFlags(statsCmd)
	statsCmd.Flags().String("output", "", "CSV output path for the reparability table (default: <output_dir>/reparability.csv)")
}

func runStats(cmd *cobra.Command, args []string) error {
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

	startTime := time.Now()
	logger.Info("reparability statistics starting", "fault_type", ft.Kind, "faults_number", faultsNumber)

	e := engine.New(bumps, routes, logger).WithMetrics(metrics.New())
	rows, err := e.Stats(ft, faultsNumber, opts)
	endTime := time.Now()

	bumpMapFile, _ := cmd.Flags().GetString("BumpMap")
	irlFile, _ := cmd.Flags().GetString("IRL")

	report := &reporting.RunReport{
		RunID:        fmt.Sprintf("stats-%d", startTime.Unix()),
		Operation:    reporting.OperationStats,
		BumpMapFile:  bumpMapFile,
		IRLFile:      irlFile,
		FaultKind:    string(ft.Kind),
		FaultsNumber: faultsNumber,
		StartTime:    startTime,
		EndTime:      endTime,
		Duration:     endTime.Sub(startTime).String(),
	}
	if err != nil {
		report.Status = reporting.StatusFailed
		report.Message = err.Error()
	} else {
		report.Status = reporting.StatusCompleted
		records := engine.ToReparabilityRecords(rows)
		report.ReparabilityRows = records
		report.TagCounts = reporting.CountReparabilityTags(records)
	}

	storage, storageErr := reporting.NewStorage(cfg.Reporting.OutputDir, cfg.Reporting.KeepLastN, logger)
	if storageErr != nil {
		logger.Warn("failed to create report storage", "error", storageErr)
	} else if _, saveErr := storage.SaveReport(report); saveErr != nil {
		logger.Warn("failed to save run report", "error", saveErr)
	}

	if err != nil {
		return fmt.Errorf("reparability statistics failed: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = cfg.Reporting.OutputDir + "/reparability.csv"
	}
	if err := reporting.WriteReparabilityTable(outputPath, report.ReparabilityRows); err != nil {
		return fmt.Errorf("failed to write reparability table: %w", err)
	}

	progress := reporting.NewProgressReporter(reporting.FormatText, logger)
	progress.ReportRunCompleted(report)
	logger.Info("reparability table written", "path", outputPath)

	return nil
}
