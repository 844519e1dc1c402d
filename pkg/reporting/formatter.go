package reporting

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReportFormat represents the report output format.
type ReportFormat string

const (
	ReportFormatHTML ReportFormat = "html"
	ReportFormatText ReportFormat = "text"
	ReportFormatJSON ReportFormat = "json"
)

// Formatter generates formatted reports from a RunReport.
type Formatter struct {
	logger *Logger
}

// NewFormatter creates a new report formatter.
func NewFormatter(logger *Logger) *Formatter {
	return &Formatter{logger: logger}
}

// GenerateReport generates a report in the specified format.
func (f *Formatter) GenerateReport(report *RunReport, format ReportFormat, outputPath string) error {
	switch format {
	case ReportFormatHTML:
		return f.generateHTMLReport(report, outputPath)
	case ReportFormatText:
		return f.generateTextReport(report, outputPath)
	case ReportFormatJSON:
		return fmt.Errorf("JSON format is automatically saved by storage")
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func (f *Formatter) generateHTMLReport(report *RunReport, outputPath string) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"percent": func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) },
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}

	f.logger.Info("HTML report generated", "path", outputPath)
	return nil
}

func (f *Formatter) generateTextReport(report *RunReport, outputPath string) error {
	var buf bytes.Buffer

	buf.WriteString(strings.Repeat("=", 80) + "\n")
	buf.WriteString("   INTERCONNECT FAULT-REPARABILITY REPORT\n")
	buf.WriteString(strings.Repeat("=", 80) + "\n\n")

	buf.WriteString("RUN SUMMARY\n")
	buf.WriteString(strings.Repeat("-", 80) + "\n")
	buf.WriteString(fmt.Sprintf("Status:       %s\n", report.Status))
	buf.WriteString(fmt.Sprintf("Run ID:       %s\n", report.RunID))
	buf.WriteString(fmt.Sprintf("Operation:    %s\n", report.Operation))
	buf.WriteString(fmt.Sprintf("Bump map:     %s\n", report.BumpMapFile))
	buf.WriteString(fmt.Sprintf("IRL:          %s\n", report.IRLFile))
	if report.FaultKind != "" {
		buf.WriteString(fmt.Sprintf("Fault model:  %s, faults=%d, bundle=%v\n", report.FaultKind, report.FaultsNumber, report.BundleMode))
	}
	buf.WriteString(fmt.Sprintf("Start Time:   %s\n", report.StartTime.Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("End Time:     %s\n", report.EndTime.Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("Duration:     %s\n", report.Duration))
	if report.Message != "" {
		buf.WriteString(fmt.Sprintf("Message:      %s\n", report.Message))
	}
	buf.WriteString("\n")

	if len(report.TagCounts) > 0 {
		buf.WriteString("TAG COUNTS\n")
		buf.WriteString(strings.Repeat("-", 80) + "\n")
		tags := make([]string, 0, len(report.TagCounts))
		for tag := range report.TagCounts {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			buf.WriteString(fmt.Sprintf("%-20s %d\n", tag, report.TagCounts[tag]))
		}
		buf.WriteString("\n")
	}

	if report.Yield != nil {
		y := report.Yield
		buf.WriteString("YIELD SWEEP\n")
		buf.WriteString(strings.Repeat("-", 80) + "\n")
		if y.InterfaceName != "" {
			buf.WriteString(fmt.Sprintf("Interface: %s (system mode: %v)\n", y.InterfaceName, y.SystemMode))
		}
		buf.WriteString(fmt.Sprintf("%-12s %-16s %-16s\n", "Yield", "Without Repair", "With Repair"))
		for _, p := range y.Points {
			buf.WriteString(fmt.Sprintf("%-12.6f %-16.6f %-16.6f\n", p.Yield, p.WithoutRepair, p.WithRepair))
		}
		if y.SystemMode {
			buf.WriteString(fmt.Sprintf("Total surface:        %.4f\n", y.TotalSurface))
			buf.WriteString(fmt.Sprintf("Total surface repair: %.4f\n", y.TotalSurfaceRepair))
			buf.WriteString(fmt.Sprintf("Wasted surface:       %.4f\n", y.WastedSurface))
			buf.WriteString(fmt.Sprintf("Surface ratio:        %.4f\n", y.SurfaceRatio))
		}
		buf.WriteString("\n")
	}

	if len(report.Errors) > 0 {
		buf.WriteString("ERRORS\n")
		buf.WriteString(strings.Repeat("-", 80) + "\n")
		for i, e := range report.Errors {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, e))
		}
		buf.WriteString("\n")
	}

	buf.WriteString(strings.Repeat("=", 80) + "\n")
	buf.WriteString(fmt.Sprintf("Generated: %s\n", report.EndTime.Format("2006-01-02 15:04:05")))
	buf.WriteString(strings.Repeat("=", 80) + "\n")

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}

	f.logger.Info("text report generated", "path", outputPath)
	return nil
}

// CompareReports generates a side-by-side comparison of multiple runs — e.g.
// a bundle-mode sweep against a per-chain routing sweep over the same bump
// map, or two fault-model configurations.
func (f *Formatter) CompareReports(reports []*RunReport, outputPath string) error {
	if len(reports) < 2 {
		return fmt.Errorf("need at least 2 reports to compare")
	}

	var buf bytes.Buffer

	buf.WriteString(strings.Repeat("=", 80) + "\n")
	buf.WriteString("   RUN COMPARISON\n")
	buf.WriteString(strings.Repeat("=", 80) + "\n\n")

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StartTime.Before(reports[j].StartTime)
	})

	buf.WriteString(fmt.Sprintf("%-20s %-10s %-12s %-10s\n", "Run ID", "Op", "Status", "Duration"))
	buf.WriteString(strings.Repeat("-", 80) + "\n")
	for _, report := range reports {
		buf.WriteString(fmt.Sprintf("%-20s %-10s %-12s %-10s\n",
			report.RunID[:min(20, len(report.RunID))],
			report.Operation,
			report.Status,
			report.Duration,
		))
	}
	buf.WriteString("\n")

	buf.WriteString("TAG COUNT COMPARISON\n")
	buf.WriteString(strings.Repeat("-", 80) + "\n")

	tagNames := make(map[string]bool)
	for _, report := range reports {
		for tag := range report.TagCounts {
			tagNames[tag] = true
		}
	}
	names := make([]string, 0, len(tagNames))
	for name := range tagNames {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		buf.WriteString(fmt.Sprintf("\n%s:\n", name))
		for _, report := range reports {
			count, ok := report.TagCounts[name]
			if !ok {
				buf.WriteString(fmt.Sprintf("  - [%s] not present\n", report.RunID[:min(12, len(report.RunID))]))
				continue
			}
			buf.WriteString(fmt.Sprintf("  [%s] %d\n", report.RunID[:min(12, len(report.RunID))], count))
		}
	}
	buf.WriteString("\n")

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write comparison report: %w", err)
	}

	f.logger.Info("comparison report generated", "path", outputPath)
	return nil
}

// GetReportPath generates a report file path based on a run report and format.
func GetReportPath(report *RunReport, format ReportFormat, outputDir string) string {
	timestamp := report.StartTime.Format("20060102-150405")
	ext := string(format)
	filename := fmt.Sprintf("report-%s-%s.%s", timestamp, report.RunID, ext)
	return filepath.Join(outputDir, filename)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Fault-Reparability Report - {{.RunID}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            background-color: white;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            padding: 30px;
        }
        h1, h2 {
            color: #2c3e50;
            border-bottom: 2px solid #3498db;
            padding-bottom: 10px;
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 30px;
            border-radius: 8px 8px 0 0;
            margin: -30px -30px 30px -30px;
        }
        .info-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            margin: 20px 0;
        }
        .info-box {
            background-color: #ecf0f1;
            padding: 15px;
            border-radius: 4px;
        }
        .info-label {
            font-weight: bold;
            color: #7f8c8d;
            font-size: 0.9em;
            margin-bottom: 5px;
        }
        .info-value {
            font-size: 1.1em;
            color: #2c3e50;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin: 20px 0;
        }
        th, td {
            padding: 12px;
            text-align: left;
            border-bottom: 1px solid #ddd;
        }
        th {
            background-color: #3498db;
            color: white;
        }
        tr:hover {
            background-color: #f5f5f5;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Fault-Reparability Report</h1>
            <p>Operation: {{.Operation}}</p>
            <p>Run ID: {{.RunID}}</p>
        </div>

        <h2>Run Summary</h2>
        <div class="info-grid">
            <div class="info-box">
                <div class="info-label">Status</div>
                <div class="info-value">{{.Status}}</div>
            </div>
            <div class="info-box">
                <div class="info-label">Duration</div>
                <div class="info-value">{{.Duration}}</div>
            </div>
            <div class="info-box">
                <div class="info-label">Bump Map</div>
                <div class="info-value">{{.BumpMapFile}}</div>
            </div>
            <div class="info-box">
                <div class="info-label">IRL</div>
                <div class="info-value">{{.IRLFile}}</div>
            </div>
        </div>

        {{if .TagCounts}}
        <h2>Tag Counts</h2>
        <table>
            <thead><tr><th>Tag</th><th>Count</th></tr></thead>
            <tbody>
                {{range $tag, $count := .TagCounts}}
                <tr><td>{{$tag}}</td><td>{{$count}}</td></tr>
                {{end}}
            </tbody>
        </table>
        {{end}}

        {{if .Yield}}
        <h2>Yield Sweep</h2>
        <table>
            <thead><tr><th>Yield</th><th>Without Repair</th><th>With Repair</th></tr></thead>
            <tbody>
                {{range .Yield.Points}}
                <tr>
                    <td>{{percent .Yield}}</td>
                    <td>{{percent .WithoutRepair}}</td>
                    <td>{{percent .WithRepair}}</td>
                </tr>
                {{end}}
            </tbody>
        </table>
        {{if .Yield.SystemMode}}
        <div class="info-grid">
            <div class="info-box">
                <div class="info-label">Total Surface</div>
                <div class="info-value">{{.Yield.TotalSurface}}</div>
            </div>
            <div class="info-box">
                <div class="info-label">Total Surface Repair</div>
                <div class="info-value">{{.Yield.TotalSurfaceRepair}}</div>
            </div>
            <div class="info-box">
                <div class="info-label">Wasted Surface</div>
                <div class="info-value">{{.Yield.WastedSurface}}</div>
            </div>
            <div class="info-box">
                <div class="info-label">Surface Ratio</div>
                <div class="info-value">{{.Yield.SurfaceRatio}}</div>
            </div>
        </div>
        {{end}}
        {{end}}

        {{if .Errors}}
        <h2>Errors</h2>
        <ul>
            {{range .Errors}}
            <li>{{.}}</li>
            {{end}}
        </ul>
        {{end}}

        <p style="text-align: center; color: #7f8c8d; margin-top: 30px;">
            Generated {{.EndTime.Format "2006-01-02 15:04:05"}}
        </p>
    </div>
</body>
</html>
`
