// Package terminal draws a chat session on a terminal: the banner, answers
// as they are revealed, failure panels and the progress spinner.
//
// Answers are drawn append-only. Each frame writes only what it adds to the
// previous one; when a frame is not an extension of the previous one (the
// highlight pass) the answer is redrawn in place on a terminal, and left as
// is otherwise, since the plain text does not change.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/longkey1/runway/internal/render"
	"github.com/longkey1/runway/internal/runway"
	"golang.org/x/term"
)

// SpinnerMessage is shown while the request is being prepared
const SpinnerMessage = "Checking the front row for updates..."

const defaultWidth = 80

// Presenter draws on an output stream. It implements chat.View.
type Presenter struct {
	// Sleep paces the spinner when the output is not a terminal.
	Sleep runway.Sleeper

	out      io.Writer
	fd       int
	tty      bool
	styles   *lipgloss.Renderer
	markdown *glamour.TermRenderer
	spinner  spinner.Spinner

	raw    string // markup of the answer being drawn
	cursor bool   // whether the cursor marker is on screen
}

// New returns a presenter writing to out. Cursor movement, colors and the
// spinner animation are used only when out is a terminal.
func New(out io.Writer) *Presenter {
	p := &Presenter{
		Sleep:   runway.Sleep,
		out:     out,
		fd:      -1,
		styles:  lipgloss.NewRenderer(out),
		spinner: spinner.MiniDot,
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	p.markdown = newMarkdownRenderer(p.tty, maxPanelWidth-4)
	return p
}

// IsTerminal reports whether the output is a terminal
func (p *Presenter) IsTerminal() bool {
	return p.tty
}

func (p *Presenter) width() int {
	if !p.tty {
		return defaultWidth
	}
	w, _, err := term.GetSize(p.fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func (p *Presenter) println(s string) {
	fmt.Fprintln(p.out, s)
}

// format renders markup for the output: styled on a terminal, plain otherwise
func (p *Presenter) format(s string) string {
	if p.tty {
		return Markup(p.styles, s)
	}
	return Strip(s)
}

// Draw shows one frame of an answer. A frame without cursor ends the answer.
func (p *Presenter) Draw(f render.Frame) {
	p.eraseCursor()
	if strings.HasPrefix(f.Text, p.raw) {
		io.WriteString(p.out, p.format(f.Text[len(p.raw):]))
	} else {
		p.redraw(f.Text)
	}
	p.raw = f.Text

	if f.Cursor {
		if p.tty {
			io.WriteString(p.out, render.CursorMarker)
			p.cursor = true
		}
		return
	}
	if !strings.HasSuffix(f.Text, "\n") {
		io.WriteString(p.out, "\n")
	}
	p.raw = ""
}

func (p *Presenter) eraseCursor() {
	if p.cursor {
		io.WriteString(p.out, "\b \b")
		p.cursor = false
	}
}

// redraw replaces the answer drawn so far with text
func (p *Presenter) redraw(text string) {
	drawn, next := Strip(p.raw), Strip(text)
	if !p.tty {
		if strings.HasPrefix(next, drawn) {
			io.WriteString(p.out, next[len(drawn):])
		} else {
			io.WriteString(p.out, "\n"+next)
		}
		return
	}

	io.WriteString(p.out, "\r")
	if up := rowsAbove(drawn, p.width()); up > 0 {
		fmt.Fprintf(p.out, "\x1b[%dA", up)
	}
	io.WriteString(p.out, "\x1b[J")
	io.WriteString(p.out, p.format(text))
}

// rowsAbove returns how many terminal rows the cursor sits below the first
// row of s once s has been written at a line start
func rowsAbove(s string, width int) int {
	lines := strings.Split(s, "\n")
	rows := 0
	for i, line := range lines {
		n := 1
		if w := lipgloss.Width(line); w > width {
			n = (w + width - 1) / width
		}
		if i < len(lines)-1 {
			rows += n
		} else {
			rows += n - 1
		}
	}
	return rows
}

// endAnswer terminates an answer left without its final frame
func (p *Presenter) endAnswer() {
	p.eraseCursor()
	if p.raw != "" {
		if !strings.HasSuffix(p.raw, "\n") {
			io.WriteString(p.out, "\n")
		}
		p.raw = ""
	}
}

// Wait shows the spinner for d. Off a terminal it only pauses.
func (p *Presenter) Wait(ctx context.Context, d time.Duration) error {
	p.endAnswer()
	if !p.tty || d <= 0 {
		sleep := p.Sleep
		if sleep == nil {
			sleep = runway.Sleep
		}
		return sleep(ctx, d)
	}

	style := p.styles.NewStyle().Foreground(lipgloss.Color(PanelAccent))
	frame := 0
	draw := func() {
		fmt.Fprintf(p.out, "\r%s %s", style.Render(p.spinner.Frames[frame%len(p.spinner.Frames)]), SpinnerMessage)
		frame++
	}
	defer io.WriteString(p.out, "\r\x1b[K")

	deadline := time.NewTimer(d)
	defer deadline.Stop()
	ticker := time.NewTicker(p.spinner.FPS)
	defer ticker.Stop()

	draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return nil
		case <-ticker.C:
			draw()
		}
	}
}
