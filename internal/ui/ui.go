// Package ui prints operator-facing messages with ANSI color when stdout is
// a terminal.
package ui

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const (
	Blue   = "\033[94m"
	Cyan   = "\033[96m"
	Green  = "\033[92m"
	Yellow = "\033[93m"
	Red    = "\033[91m"
	Reset  = "\033[0m"
)

// Printer writes status lines for the operator. Color is decided once at
// construction.
type Printer struct {
	color bool
}

// New returns a Printer that colors output iff stdout is a terminal.
func New() *Printer {
	return &Printer{color: term.IsTerminal(int(os.Stdout.Fd()))}
}

// NewPlain returns a Printer that never colors.
func NewPlain() *Printer { return &Printer{} }

// Color reports whether this printer emits ANSI codes.
func (p *Printer) Color() bool { return p.color }

// Colorize wraps text in the given color when enabled.
func (p *Printer) Colorize(text, color string) string {
	if !p.color {
		return text
	}
	return color + text + Reset
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Println(p.Colorize("✅ "+fmt.Sprintf(format, args...), Green))
}

func (p *Printer) Error(format string, args ...any) {
	fmt.Println(p.Colorize("❌ "+fmt.Sprintf(format, args...), Red))
}

func (p *Printer) Warning(format string, args ...any) {
	fmt.Println(p.Colorize("⚠️  "+fmt.Sprintf(format, args...), Yellow))
}

func (p *Printer) Info(format string, args ...any) {
	fmt.Println(p.Colorize("ℹ️  "+fmt.Sprintf(format, args...), Blue))
}

// Banner prints the devctl header.
func (p *Printer) Banner() {
	banner := `
╔══════════════════════════════════════════════════════════════╗
║          🚀 Spot Analyzer - Development Controller           ║
╚══════════════════════════════════════════════════════════════╝`
	fmt.Println(p.Colorize(banner, Cyan))
}
