package reporting

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OutputFormat represents the progress output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTUI  OutputFormat = "tui"
)

// SweepProgress is a point-in-time snapshot of an enumerate/classify/solve
// sweep over a fault model.
type SweepProgress struct {
	Stage     string    `json:"stage"`
	Done      int       `json:"done"`
	Total     int       `json:"total"`
	StartTime time.Time `json:"start_time"`
}

// ProgressReporter reports sweep progress while an engine run is in flight.
type ProgressReporter struct {
	format OutputFormat
	logger *Logger
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(format OutputFormat, logger *Logger) *ProgressReporter {
	return &ProgressReporter{format: format, logger: logger}
}

// ReportProgress reports the current sweep stage and completion fraction.
func (pr *ProgressReporter) ReportProgress(p SweepProgress) {
	switch pr.format {
	case FormatJSON:
		pr.reportJSON(p)
	case FormatTUI:
		pr.reportTUI(p)
	default:
		pr.reportText(p)
	}
}

// ReportStageTransition reports moving from one sweep stage to the next
// (e.g. "enumerating" → "classifying" → "solving capacity").
func (pr *ProgressReporter) ReportStageTransition(from, to string) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":      "stage_transition",
			"from_stage": from,
			"to_stage":   to,
			"timestamp":  time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		fmt.Printf("🔄 Stage: %s → %s\n", from, to)
	default:
		fmt.Printf("[STAGE] %s -> %s\n", from, to)
	}
}

// ReportRunCompleted reports a finished stats/repair/meta run.
func (pr *ProgressReporter) ReportRunCompleted(report *RunReport) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "run_completed",
			"report":    report,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		pr.printRunSummary(report)
	default:
		pr.printTextSummary(report)
	}
}

func (pr *ProgressReporter) reportText(p SweepProgress) {
	elapsed := time.Since(p.StartTime).Round(time.Second)
	pct := 0.0
	if p.Total > 0 {
		pct = float64(p.Done) / float64(p.Total) * 100
	}
	fmt.Printf("[%s] %s | %d/%d (%.1f%%) | Elapsed: %s\n",
		time.Now().Format("15:04:05"), p.Stage, p.Done, p.Total, pct, elapsed)
}

func (pr *ProgressReporter) reportJSON(p SweepProgress) {
	data, err := json.Marshal(p)
	if err != nil {
		pr.logger.Error("failed to marshal progress", "error", err)
		return
	}
	fmt.Println(string(data))
}

func (pr *ProgressReporter) reportTUI(p SweepProgress) {
	pr.clearLine()
	pct := 0.0
	if p.Total > 0 {
		pct = float64(p.Done) / float64(p.Total) * 100
	}
	fmt.Printf("⚙️  %s: %d/%d (%.1f%%) | ⏱️  %s\n",
		p.Stage, p.Done, p.Total, pct, time.Since(p.StartTime).Round(time.Second))
}

func (pr *ProgressReporter) printRunSummary(report *RunReport) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("   RUN SUMMARY")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	statusIcon := "✅"
	if report.Status != StatusCompleted {
		statusIcon = "❌"
	}
	fmt.Printf("%s Run %s (%s)\n", statusIcon, report.Status, report.Operation)
	fmt.Printf("   Run ID:   %s\n", report.RunID)
	fmt.Printf("   Duration: %s\n", report.Duration)
	fmt.Println()

	if len(report.TagCounts) > 0 {
		fmt.Printf("📊 Tag Counts:\n")
		for tag, count := range report.TagCounts {
			fmt.Printf("   • %s: %d\n", tag, count)
		}
		fmt.Println()
	}

	if report.Yield != nil {
		fmt.Printf("📈 Yield Sweep: %d points", len(report.Yield.Points))
		if report.Yield.SystemMode {
			fmt.Printf(" (system mode, surface ratio %.4f)", report.Yield.SurfaceRatio)
		}
		fmt.Println()
		fmt.Println()
	}

	if len(report.Errors) > 0 {
		fmt.Printf("⚠️  Errors (%d):\n", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Printf("   • %s\n", e)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 80))
}

func (pr *ProgressReporter) printTextSummary(report *RunReport) {
	fmt.Printf("\n[RUN SUMMARY] %s (%s)\n", report.Status, report.Operation)
	fmt.Printf("  Run ID:   %s\n", report.RunID)
	fmt.Printf("  Duration: %s\n", report.Duration)
	if len(report.TagCounts) > 0 {
		fmt.Printf("  Tag counts:")
		for tag, count := range report.TagCounts {
			fmt.Printf(" %s=%d", tag, count)
		}
		fmt.Println()
	}
	if report.Yield != nil {
		fmt.Printf("  Yield sweep points: %d\n", len(report.Yield.Points))
	}
	if len(report.Errors) > 0 {
		fmt.Printf("  Errors: %d\n", len(report.Errors))
	}
	fmt.Println()
}

// clearScreen clears the terminal screen.
func (pr *ProgressReporter) clearScreen() {
	fmt.Print("\033[2J\033[H")
}

// clearLine clears the current line.
func (pr *ProgressReporter) clearLine() {
	fmt.Print("\033[K")
}
