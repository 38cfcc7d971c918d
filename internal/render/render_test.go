package render

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/quick"
	"time"

	"github.com/longkey1/runway/internal/runway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	frames []Frame
}

func (r *recorder) Draw(f Frame) {
	r.frames = append(r.frames, f)
}

func countingSleep(n *int) runway.Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		*n++
		return nil
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bold markers",
			raw:  "**Paris Fashion Week** Date: 03/01/2025",
			want: "Paris Fashion Week <strong>Date:</strong> 03/01/2025",
		},
		{
			name: "code fences",
			raw:  "```Milan```",
			want: "Milan",
		},
		{
			name: "escaped newlines",
			raw:  `line one\nline two`,
			want: "line one\nline two",
		},
		{
			name: "labels",
			raw:  "Location: Paris Trends: sheer",
			want: "<strong>Location:</strong> Paris <strong>Trends:</strong> sheer",
		},
		{
			name: "highlights untouched",
			raw:  "NEW COLLECTION",
			want: "NEW COLLECTION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.raw))
		})
	}
}

func TestHighlight(t *testing.T) {
	got := Highlight("NEW COLLECTION and TRENDING NOW")
	assert.Equal(t,
		"<span style='color: #9C27B0'>NEW COLLECTION</span> and <span style='color: #E91E63'>TRENDING NOW</span>",
		got)
}

func TestLayout(t *testing.T) {
	assert.Equal(t, "a b \n\nc \n", Layout("a   b\n\n c"))
	assert.Equal(t, "\n", Layout(""))
}

func TestRevealFrames(t *testing.T) {
	sleeps := 0
	r := &Renderer{Delay: 30 * time.Millisecond, Sleep: countingSleep(&sleeps)}
	rec := &recorder{}

	final, err := r.Reveal(context.Background(), "Hello world\\nNEW COLLECTION", rec)
	require.NoError(t, err)

	want := []string{
		"Hello ▌",
		"Hello world ▌",
		"Hello world \n▌",
		"Hello world \nNEW ▌",
		"Hello world \nNEW COLLECTION ▌",
		"Hello world \nNEW COLLECTION \n▌",
		"Hello world \n<span style='color: #9C27B0'>NEW COLLECTION</span> \n",
	}
	var got []string
	for _, f := range rec.frames {
		got = append(got, f.String())
	}
	assert.Equal(t, want, got)
	assert.Equal(t, want[len(want)-1], final)
	assert.Equal(t, 4, sleeps, "one pause per word")
	assert.False(t, rec.frames[len(rec.frames)-1].Cursor)
}

func TestRevealMatchesLayout(t *testing.T) {
	property := func(raw string) bool {
		r := &Renderer{Sleep: func(context.Context, time.Duration) error { return nil }}
		final, err := r.Reveal(context.Background(), raw, SinkFunc(func(Frame) {}))
		if err != nil {
			return false
		}
		return final == Highlight(Layout(Clean(raw))) && !strings.Contains(final, CursorMarker)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}

	for _, raw := range []string{
		"",
		"**Paris Fashion Week** Date: 03/01/2025",
		"TRENDING NOW:\\n  sheer   layers\\n\\nNEW COLLECTION by Dior",
		"```\nLocation: Milan\n```",
	} {
		r := &Renderer{Sleep: func(context.Context, time.Duration) error { return nil }}
		final, err := r.Reveal(context.Background(), raw, SinkFunc(func(Frame) {}))
		require.NoError(t, err)
		assert.Equal(t, Highlight(Layout(Clean(raw))), final, "raw=%q", raw)
	}
}

func TestRevealInstant(t *testing.T) {
	sleeps := 0
	r := &Renderer{Delay: time.Second, Instant: true, Sleep: countingSleep(&sleeps)}
	rec := &recorder{}

	final, err := r.Reveal(context.Background(), "TRENDING NOW sheer", rec)
	require.NoError(t, err)

	require.Len(t, rec.frames, 1)
	assert.False(t, rec.frames[0].Cursor)
	assert.Equal(t, "<span style='color: #E91E63'>TRENDING NOW</span> sheer \n", final)
	assert.Zero(t, sleeps)
}

func TestRevealStopsWhenSleepFails(t *testing.T) {
	stop := errors.New("stop")
	r := &Renderer{Sleep: func(context.Context, time.Duration) error { return stop }}
	rec := &recorder{}

	_, err := r.Reveal(context.Background(), "one two three", rec)
	assert.ErrorIs(t, err, stop)
	assert.Len(t, rec.frames, 1)
}
