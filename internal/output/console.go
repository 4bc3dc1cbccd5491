package output

import (
	"fmt"
	"io"

	"github.com/fillscan/fillscan/internal/report"
	"github.com/fillscan/fillscan/internal/scanner"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorDim    = "\033[2m"
)

// Console prints live scan events to a writer (normally stderr, so stdout
// stays clean for piping).
type Console struct {
	w       io.Writer
	noColor bool
	quiet   bool
	verbose bool
}

// NewConsole creates a console printer.
func NewConsole(w io.Writer, noColor, quiet, verbose bool) *Console {
	return &Console{w: w, noColor: noColor, quiet: quiet, verbose: verbose}
}

// Hit prints one accepted result as it arrives.
func (c *Console) Hit(r report.Result) {
	if c.quiet {
		return
	}
	color := c.colorForStatus(r.StatusCode)
	reset := colorReset
	if c.noColor {
		color, reset = "", ""
	}
	fmt.Fprintf(c.w, "\r\033[K%s%3d%s  %s\n", color, r.StatusCode, reset, r.URL)
}

// Failure logs a failed probe. Only shown in verbose mode; failures are
// recorded in stats regardless.
func (c *Console) Failure(out scanner.Outcome) {
	if !c.verbose || c.quiet {
		return
	}
	fmt.Fprintf(c.w, "\r\033[K%s[!] %s: %s%s\n", c.dim(), out.URL, out.Kind, c.reset())
}

// Infof prints an informational line in the [*] register.
func (c *Console) Infof(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.w, "[*] "+format+"\n", args...)
}

// Donef prints a completion line in the [+] register.
func (c *Console) Donef(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.w, "[+] "+format+"\n", args...)
}

func (c *Console) dim() string {
	if c.noColor {
		return ""
	}
	return colorDim
}

func (c *Console) reset() string {
	if c.noColor {
		return ""
	}
	return colorReset
}

func (c *Console) colorForStatus(code int) string {
	if c.noColor {
		return ""
	}
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	case code >= 500:
		return colorRed
	default:
		return ""
	}
}
