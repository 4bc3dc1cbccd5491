package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fillscan/fillscan/internal/report"
	"github.com/fillscan/fillscan/internal/scanner"
)

var (
	summaryTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00D4AA"))

	summaryLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Width(12)

	summaryValue = lipgloss.NewStyle().
			Bold(true)

	summaryWarn = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB800"))

	summaryBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1)
)

// WriteSummary renders the end-of-scan statistics block. Falls back to a
// plain rendering when color is disabled.
func WriteSummary(w io.Writer, rep *report.Report, noColor bool) {
	title := "Scan complete"
	if rep.State == scanner.StateCancelled {
		title = "Scan cancelled, partial results"
	}

	if noColor {
		fmt.Fprintf(w, "\n%s\n", title)
		fmt.Fprintf(w, "  Host:      %s\n", rep.Host)
		fmt.Fprintf(w, "  Requests:  %d\n", rep.Stats.Total)
		fmt.Fprintf(w, "  Hits:      %d\n", rep.Stats.Hits)
		fmt.Fprintf(w, "  Rejected:  %d\n", rep.Stats.Rejected)
		fmt.Fprintf(w, "  Errors:    %d (timeout %d, connection %d, protocol %d)\n",
			rep.Stats.Errors(), rep.Stats.Timeouts, rep.Stats.ConnErrors, rep.Stats.ProtoErrors)
		fmt.Fprintf(w, "  Duration:  %s (%.1f req/s)\n",
			rep.Stats.Duration.Round(time.Millisecond), rep.Stats.RequestsPerSec)
		return
	}

	head := summaryTitle.Render(title)
	if rep.State == scanner.StateCancelled {
		head = summaryWarn.Render(title)
	}

	rows := []string{
		head,
		summaryLabel.Render("Host:") + summaryValue.Render(rep.Host),
		summaryLabel.Render("Requests:") + summaryValue.Render(fmt.Sprintf("%d", rep.Stats.Total)),
		summaryLabel.Render("Hits:") + summaryValue.Render(fmt.Sprintf("%d", rep.Stats.Hits)),
		summaryLabel.Render("Rejected:") + summaryValue.Render(fmt.Sprintf("%d", rep.Stats.Rejected)),
		summaryLabel.Render("Errors:") + summaryValue.Render(fmt.Sprintf("%d (timeout %d, connection %d, protocol %d)",
			rep.Stats.Errors(), rep.Stats.Timeouts, rep.Stats.ConnErrors, rep.Stats.ProtoErrors)),
		summaryLabel.Render("Duration:") + summaryValue.Render(fmt.Sprintf("%s (%.1f req/s)",
			rep.Stats.Duration.Round(time.Millisecond), rep.Stats.RequestsPerSec)),
	}

	fmt.Fprintf(w, "\n%s\n", summaryBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
