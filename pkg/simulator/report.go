package simulator

import (
	"fmt"
	"strings"
)

// The engine's performance report is one text file holding several CSV
// sections separated by a literal `""` line: start/end times, resource
// utilization, task statistics, and overall simulation statistics. The
// sections are addressed by fixed position, not by header lookup.
const reportSectionSeparator = `""`

// SplitReport extracts the resource-utilization and overall-statistics
// sections from a performance report.
func SplitReport(report string) (utilization, overall string, err error) {
	sections := strings.Split(report, reportSectionSeparator)
	if len(sections) < 4 {
		return "", "", fmt.Errorf("malformed performance report: %d sections, want at least 4", len(sections))
	}
	return sections[1], sections[3], nil
}

// ReportSummary returns the resource-utilization and overall-statistics
// sections joined into one trimmed document, the shape handed back to the
// conversation layer.
func ReportSummary(report string) (string, error) {
	utilization, overall, err := SplitReport(report)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(utilization) + "\n" + strings.TrimSpace(overall), nil
}
