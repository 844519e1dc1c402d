package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkim-oss/d2drepair/pkg/aspect"
	"github.com/jkim-oss/d2drepair/pkg/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Args:  cobra.NoArgs,
	Short: "Render the bump map to SVG (--Create_SVG)",
	Long: `Draws the bump map colored and shaped per an aspect file, with an optional
legend and per-bump name labels. --Pitch, left unset or zero, is derived
from the bump grid spacing and a warning is logged.`,
	RunE: runRender,
}

func init() {
	addInterfaceFlags(renderCmd)
	renderCmd.Flags().String("Aspect", "", "path to the aspect file (Type,Color,Shape CSV)")
	renderCmd.Flags().Float64("BumpDiameter", 1, "bump diameter (µm)")
	renderCmd.Flags().Float64("Pitch", 0, "bump pitch (µm); 0 derives it from the bump grid")
	renderCmd.Flags().Float64("Margin", 0, "canvas margin, as a multiple of pitch")
	renderCmd.Flags().Bool("Legend", true, "draw the aspect legend")
	renderCmd.Flags().Bool("BumpName", false, "label each bump with its signal name")
	renderCmd.Flags().String("output", "", "SVG output path (default: <output_dir>/bumpmap.svg)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg)

	bumps, _, err := loadInterface(cmd)
	if err != nil {
		return err
	}

	aspectFile, _ := cmd.Flags().GetString("Aspect")
	if aspectFile == "" {
		return fmt.Errorf("--Aspect flag is required")
	}
	aspects, err := aspect.LoadFile(aspectFile)
	if err != nil {
		return fmt.Errorf("failed to load aspect file: %w", err)
	}

	diameter, _ := cmd.Flags().GetFloat64("BumpDiameter")
	pitch, _ := cmd.Flags().GetFloat64("Pitch")
	margin, _ := cmd.Flags().GetFloat64("Margin")
	legend, _ := cmd.Flags().GetBool("Legend")
	bumpName, _ := cmd.Flags().GetBool("BumpName")

	opts := render.Options{
		BumpDiameter: diameter,
		Pitch:        pitch,
		Margin:       margin,
		Legend:       legend,
		BumpName:     bumpName,
		WarnPitchZero: func(msg string) {
			logger.Warn(msg)
		},
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = cfg.Reporting.OutputDir + "/bumpmap.svg"
	}
	if err := os.MkdirAll(cfg.Reporting.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create SVG file: %w", err)
	}
	defer f.Close()

	if err := render.Render(f, bumps, aspects, opts); err != nil {
		return fmt.Errorf("failed to render bump map: %w", err)
	}

	logger.Info("bump map rendered", "path", outputPath)
	return nil
}
