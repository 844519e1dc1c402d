package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkim-oss/d2drepair/pkg/bumpmap"
	"github.com/jkim-oss/d2drepair/pkg/config"
	"github.com/jkim-oss/d2drepair/pkg/fault"
	"github.com/jkim-oss/d2drepair/pkg/irl"
	"github.com/jkim-oss/d2drepair/pkg/reporting"
)

// loadConfig loads the configuration from file, auto-generating it if needed.
func loadConfig() (*config.Config, error) {
	configPath := cfgFile
	if configPath == "" {
		configPath = "config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("⚠️  Config file not found, creating default configuration at: %s\n", configPath)
		fmt.Println("   You can edit this file to customize fault-model and yield-sweep defaults.")
		fmt.Println()

		cfg := config.DefaultConfig()
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		return cfg, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newLogger builds the run logger from --verbose and the config's
// framework log format.
func newLogger(cfg *config.Config) *reporting.Logger {
	logLevel := reporting.LogLevelInfo
	if verbose {
		logLevel = reporting.LogLevelDebug
	}
	return reporting.NewLogger(reporting.LoggerConfig{
		Level:  logLevel,
		Format: reporting.LogFormat(cfg.Framework.LogFormat),
		Output: os.Stdout,
	})
}

// loadInterface loads a bump map and route table given --BumpMap/--IRL flags.
func loadInterface(cmd *cobra.Command) (*bumpmap.Table, *irl.Table, error) {
	bumpMapFile, _ := cmd.Flags().GetString("BumpMap")
	irlFile, _ := cmd.Flags().GetString("IRL")
	if bumpMapFile == "" {
		return nil, nil, fmt.Errorf("--BumpMap flag is required")
	}
	if irlFile == "" {
		return nil, nil, fmt.Errorf("--IRL flag is required")
	}

	bumps, err := bumpmap.LoadFile(bumpMapFile, bumpmap.DefaultScale)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load bump map: %w", err)
	}
	routes, err := irl.LoadFile(irlFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load IRL: %w", err)
	}
	return bumps, routes, nil
}

// faultModelFromFlags builds a fault.FaultType and faults-number from the
// shared fault-model flags, overlaying config defaults.
func faultModelFromFlags(cmd *cobra.Command, cfg *config.Config) (fault.FaultType, int, fault.Options, error) {
	faultType, _ := cmd.Flags().GetString("Fault_Type")
	if !cmd.Flags().Changed("Fault_Type") {
		faultType = cfg.FaultModel.FaultType
	}

	faultsNumber, _ := cmd.Flags().GetInt("Faults_Number")
	if !cmd.Flags().Changed("Faults_Number") {
		faultsNumber = cfg.FaultModel.FaultsNumber
	}

	shortedBumps, _ := cmd.Flags().GetInt("Shorted_Bumps_Number")
	if !cmd.Flags().Changed("Shorted_Bumps_Number") {
		shortedBumps = cfg.FaultModel.ShortedBumpsNumber
	}

	shortDistance, _ := cmd.Flags().GetFloat64("Short_Distance")
	if !cmd.Flags().Changed("Short_Distance") {
		shortDistance = float64(cfg.FaultModel.ShortDistance)
	}

	var kind fault.Kind
	switch faultType {
	case "Short":
		kind = fault.Short
	case "Open":
		kind = fault.Open
	default:
		return fault.FaultType{}, 0, fault.Options{}, fmt.Errorf("--Fault_Type must be \"Short\" or \"Open\", got %q", faultType)
	}

	ft := fault.FaultType{Kind: kind, K: shortedBumps, D: shortDistance}
	opts := fault.Options{PreserveSubFaults: cfg.FaultModel.PreserveSubFaults}

	if cfg.RequiresConfirmation(faultsNumber) {
		confirmed, _ := cmd.Flags().GetBool("confirm")
		if !confirmed {
			return fault.FaultType{}, 0, fault.Options{}, fmt.Errorf(
				"Faults_Number=%d exceeds safety.max_faults_number=%d; pass --confirm to proceed",
				faultsNumber, cfg.Safety.MaxFaultsNumber)
		}
	}

	return ft, faultsNumber, opts, nil
}

// addInterfaceFlags registers the bump-map/route-table input flags shared
// by every subcommand that loads a single interface.
func addInterfaceFlags(cmd *cobra.Command) {
	cmd.Flags().String("BumpMap", "", "path to the bump map file (.csv, .yaml, .xml, .json)")
	cmd.Flags().String("IRL", "", "path to the interconnect route list (IRL) file")
}

// addFaultModelFlags registers the shared fault-model flags.
func addFaultModelFlags(cmd *cobra.Command) {
	cmd.Flags().String("Fault_Type", "Open", "fault mechanism: Short or Open")
	cmd.Flags().Int("Faults_Number", 1, "number of simultaneous faults (m)")
	cmd.Flags().Int("Shorted_Bumps_Number", 2, "bumps per short (k for Short faults)")
	cmd.Flags().Float64("Short_Distance", 1, "max grid distance (µm) for a short candidate")
	cmd.Flags().Bool("confirm", false, "confirm a Faults_Number above the configured safety threshold")
}
