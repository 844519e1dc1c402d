package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	version = "dev" // Will be set by build flags
)

var rootCmd = &cobra.Command{
	Use:   "d2drepair",
	Short: "Die-to-die chiplet interconnect fault-reparability analysis engine",
	Long: `d2drepair enumerates fault patterns over a die-to-die bump map and route
table, classifies them, and resolves whether a multiplexed spare-bump
routing fabric can repair them. It reports reparability statistics, concrete
repair solutions, and Monte-Carlo yield-with-repair curves, and can render
the bump map to SVG.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(metaCmd)
	rootCmd.AddCommand(renderCmd)
}

// Commands are defined in separate files:
// - statsCmd in stats.go  (--Reparability_Statistics)
// - repairCmd in repair.go (--Repair_Solutions)
// - metaCmd in meta.go    (--Meta_Analysis / --System_Analysis)
// - renderCmd in render.go (--Create_SVG)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
