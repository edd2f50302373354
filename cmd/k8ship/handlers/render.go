package handlers

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/imamik/k8ship/internal/deploy"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

// styled reports whether output should carry ANSI styling.
var styled = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// renderSummary produces the styled deployment summary string. Summaries
// are already sorted and deterministic; this only adds presentation.
func renderSummary(s deploy.Summary) string {
	plain := !styled()
	style := func(st lipgloss.Style, text string) string {
		if plain {
			return text
		}
		return st.Render(text)
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(style(titleStyle, fmt.Sprintf("  k8ship: %s", s.Status)))
	b.WriteString("\n")
	b.WriteString(style(dimStyle, "  "+strings.Repeat("─", 40)))
	b.WriteString("\n")

	for _, row := range s.Rows {
		op := style(opStyle(row.Op), string(row.Op))
		b.WriteString(fmt.Sprintf("    %-18s %-24s %s\n", row.Kind, row.Name, op))
		if row.Op == deploy.OpFailed && row.Detail != "" {
			b.WriteString(style(dimStyle, "      "+row.Detail))
			b.WriteString("\n")
		}
	}

	if s.Rollout != nil {
		b.WriteString(style(dimStyle, "  "+strings.Repeat("─", 40)))
		b.WriteString("\n")
		ready := fmt.Sprintf("    rollout: %d/%d replicas ready", s.Rollout.Ready, s.Rollout.Desired)
		if s.Rollout.ReadyNow() {
			b.WriteString(style(okStyle, ready))
		} else {
			b.WriteString(style(warnStyle, ready))
		}
		b.WriteString("\n")
	}

	if s.Elapsed > 0 {
		b.WriteString(style(dimStyle, fmt.Sprintf("    elapsed: %s", s.Elapsed)))
		b.WriteString("\n")
	}

	return b.String()
}

func opStyle(op deploy.Op) lipgloss.Style {
	switch op {
	case deploy.OpFailed:
		return failStyle
	case deploy.OpNotFound, deploy.OpSkipped:
		return warnStyle
	case deploy.OpCreated, deploy.OpConfigured, deploy.OpDeleted, deploy.OpPresent:
		return okStyle
	default:
		return dimStyle
	}
}
