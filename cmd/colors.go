package cmd

import (
	"strings"

	"github.com/fatih/color"
	"github.com/khanhnv2901/seca-probe/internal/checker"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorBold    = color.New(color.Bold).SprintFunc()
)

func formatRiskWithColor(level checker.RiskLevel, determined bool, text string) string {
	if !determined {
		return colorInfo(text)
	}
	switch level {
	case checker.RiskHigh:
		return colorError(text)
	case checker.RiskMedium:
		return colorWarn(text)
	case checker.RiskLow:
		return colorSuccess(text)
	default:
		return text
	}
}

// formatSummaryWithColor colors a finding summary by its leading verdict word.
func formatSummaryWithColor(summary string) string {
	switch {
	case strings.HasPrefix(summary, "GOOD:"):
		return colorSuccess(summary)
	case strings.HasPrefix(summary, "WARNING:"):
		return colorWarn(summary)
	case strings.HasPrefix(summary, "UNKNOWN:"):
		return colorInfo(summary)
	default:
		return summary
	}
}
