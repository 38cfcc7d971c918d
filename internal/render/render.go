// Package render turns a raw completion into display text and reveals it
// word by word.
//
// The whole completion is in memory before the reveal starts; the pacing is
// cosmetic. A Sink receives every intermediate frame, so a caller that gets
// genuinely incremental text can drive the same sink directly.
package render

import (
	"context"
	"strings"
	"time"

	"github.com/longkey1/runway/internal/runway"
)

// CursorMarker is drawn after the text while a reveal is in progress.
const CursorMarker = "▌"

// Highlight colors
const (
	NewCollectionColor = "#9C27B0"
	TrendingNowColor   = "#E91E63"
)

type substitution struct {
	old, new string
}

// Applied in order, once, to the raw completion.
var cleaners = []substitution{
	{"**", ""},
	{"```", ""},
	{`\n`, "\n"},
	{"Date:", "<strong>Date:</strong>"},
	{"Location:", "<strong>Location:</strong>"},
	{"Trends:", "<strong>Trends:</strong>"},
}

// Applied to the fully revealed text.
var highlights = []substitution{
	{"NEW COLLECTION", "<span style='color: " + NewCollectionColor + "'>NEW COLLECTION</span>"},
	{"TRENDING NOW", "<span style='color: " + TrendingNowColor + "'>TRENDING NOW</span>"},
}

func apply(s string, subs []substitution) string {
	for _, sub := range subs {
		s = strings.ReplaceAll(s, sub.old, sub.new)
	}
	return s
}

// Clean strips bold and code-fence markers, turns escaped newlines into real
// ones and emphasises the Date, Location and Trends labels.
func Clean(raw string) string {
	return apply(raw, cleaners)
}

// Highlight marks the NEW COLLECTION and TRENDING NOW phrases.
func Highlight(text string) string {
	return apply(text, highlights)
}

// Layout returns the text a reveal of cleaned produces before highlighting:
// every word followed by one space, every line followed by a newline.
func Layout(cleaned string) string {
	var b strings.Builder
	for _, line := range strings.Split(cleaned, "\n") {
		for _, word := range strings.Fields(line) {
			b.WriteString(word)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Frame is one state of the display.
type Frame struct {
	Text   string
	Cursor bool // reveal still in progress
}

// String returns the frame as drawn, with the cursor marker when in progress.
func (f Frame) String() string {
	if f.Cursor {
		return f.Text + CursorMarker
	}
	return f.Text
}

// Sink receives frames. Each frame replaces the previous one.
type Sink interface {
	Draw(f Frame)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(f Frame)

// Draw calls fn(f).
func (fn SinkFunc) Draw(f Frame) {
	fn(f)
}

// Renderer reveals completions.
type Renderer struct {
	// Delay is the pause after each word.
	Delay time.Duration
	// Instant skips the word-by-word frames and draws only the final one.
	Instant bool
	// Sleep is used for the per-word pause; nil means the wall clock.
	Sleep runway.Sleeper
}

// New returns a renderer pausing delay after each word.
func New(delay time.Duration) *Renderer {
	return &Renderer{Delay: delay, Sleep: runway.Sleep}
}

// Reveal cleans raw, draws it word by word into sink and returns the final,
// highlighted text. The final frame is drawn without cursor.
func (r *Renderer) Reveal(ctx context.Context, raw string, sink Sink) (string, error) {
	cleaned := Clean(raw)

	if r.Instant {
		final := Highlight(Layout(cleaned))
		sink.Draw(Frame{Text: final})
		return final, nil
	}

	sleep := r.Sleep
	if sleep == nil {
		sleep = runway.Sleep
	}

	var b strings.Builder
	for _, line := range strings.Split(cleaned, "\n") {
		for _, word := range strings.Fields(line) {
			b.WriteString(word)
			b.WriteByte(' ')
			sink.Draw(Frame{Text: b.String(), Cursor: true})
			if err := sleep(ctx, r.Delay); err != nil {
				return "", err
			}
		}
		b.WriteByte('\n')
		sink.Draw(Frame{Text: b.String(), Cursor: true})
	}

	final := Highlight(b.String())
	sink.Draw(Frame{Text: final})
	return final, nil
}
