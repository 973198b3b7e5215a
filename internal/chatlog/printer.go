// Package chatlog prints user-facing encounter lines with a timestamp and prefix.
package chatlog

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DefaultPrefix tags every line written by the printer.
const DefaultPrefix = "[gcdstats]"

var (
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	prefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// Printer writes one line per message.
type Printer struct {
	w        io.Writer
	prefix   string
	useColor bool
	now      func() time.Time
}

// Option configures a Printer.
type Option func(*Printer)

// WithColor enables lipgloss styling of the timestamp and prefix.
func WithColor(enabled bool) Option {
	return func(p *Printer) {
		p.useColor = enabled
	}
}

// WithPrefix replaces the default prefix.
func WithPrefix(prefix string) Option {
	return func(p *Printer) {
		p.prefix = prefix
	}
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Printer) {
		p.now = now
	}
}

// New constructs a Printer writing to w.
func New(w io.Writer, opts ...Option) *Printer {
	p := &Printer{
		w:      w,
		prefix: DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Printf formats and writes a single line.
func (p *Printer) Printf(format string, args ...any) {
	stamp := "[" + p.now().Format("15:04:05") + "]"
	prefix := p.prefix
	if p.useColor {
		stamp = timeStyle.Render(stamp)
		prefix = prefixStyle.Render(prefix)
	}
	msg := fmt.Sprintf(format, args...)
	if _, err := fmt.Fprintf(p.w, "%s %s %s\n", stamp, prefix, msg); err != nil {
		// Best-effort chat output.
		_ = err
	}
}
