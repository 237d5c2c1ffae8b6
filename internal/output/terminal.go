package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
)

// Screen redraws a full-screen view for watch mode. Escape sequences are only
// written when the target is a terminal.
type Screen struct {
	w   io.Writer
	tty bool
}

// NewScreen creates a Screen writing to w.
func NewScreen(w io.Writer) *Screen {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Screen{w: w, tty: tty}
}

// Begin hides the cursor.
func (s *Screen) Begin() {
	if s.tty {
		_, _ = fmt.Fprint(s.w, "\033[?25l")
	}
}

// End shows the cursor again.
func (s *Screen) End() {
	if s.tty {
		_, _ = fmt.Fprint(s.w, "\033[?25h")
	}
}

// Redraw clears the screen, prints header and then calls render. Without a
// terminal the frames are separated by a blank line instead.
func (s *Screen) Redraw(header string, render func(w io.Writer)) {
	if s.tty {
		_, _ = fmt.Fprint(s.w, "\033[2J\033[H")
	} else {
		_, _ = fmt.Fprintln(s.w)
	}
	if header != "" {
		_, _ = fmt.Fprintf(s.w, "%s\n\n", header)
	}
	render(s.w)
}

// NotifyContext returns a context that is canceled on interrupt or SIGTERM.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
