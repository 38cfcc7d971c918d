package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/longkey1/runway/internal/render"
	"github.com/longkey1/runway/internal/runway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Paris Fashion Week", want: "Paris Fashion Week"},
		{name: "strong", in: "<strong>Date:</strong> 03/01/2025", want: "Date: 03/01/2025"},
		{name: "span", in: "<span style='color: #9C27B0'>NEW COLLECTION</span> by Dior", want: "NEW COLLECTION by Dior"},
		{name: "unclosed", in: "<strong>Trends: pastel", want: "Trends: pastel"},
		{name: "other tags kept", in: "<b>bold</b>", want: "<b>bold</b>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.in))
		})
	}
}

func TestMarkupWithoutColors(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	in := "<strong>Location:</strong> Milan <span style='color: #E91E63'>TRENDING NOW</span>"
	assert.Equal(t, "Location: Milan TRENDING NOW", Markup(r, in))
}

func revealInto(t *testing.T, p *Presenter, raw string) string {
	t.Helper()
	r := render.New(0)
	r.Sleep = func(ctx context.Context, d time.Duration) error { return nil }
	final, err := r.Reveal(context.Background(), raw, p)
	require.NoError(t, err)
	return final
}

func TestDrawRevealIsAppendOnly(t *testing.T) {
	raw := "**Paris Fashion Week** Date: 03/01/2025\\nTrends: NEW COLLECTION pastel tailoring"
	var out bytes.Buffer
	p := New(&out)

	final := revealInto(t, p, raw)

	assert.Equal(t, Strip(final), out.String())
	assert.Equal(t, "Paris Fashion Week Date: 03/01/2025 \nTrends: NEW COLLECTION pastel tailoring \n", out.String())
	assert.NotContains(t, out.String(), render.CursorMarker)
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestDrawConsecutiveAnswers(t *testing.T) {
	var out bytes.Buffer
	p := New(&out)

	revealInto(t, p, "Milan")
	p.Draw(render.Frame{Text: "Connection issue - please refresh and try again"})
	p.Draw(render.Frame{Text: ""})

	assert.Equal(t, "Milan \nConnection issue - please refresh and try again\n\n", out.String())
}

func TestDrawUnrelatedFrame(t *testing.T) {
	var out bytes.Buffer
	p := New(&out)

	p.Draw(render.Frame{Text: "Paris ", Cursor: true})
	p.Draw(render.Frame{Text: "Tokyo", Cursor: true})
	p.ShowMessage(runway.AssistantMessage("Chat cleared!"))

	assert.Equal(t, "Paris \nTokyo\n👗 Chat cleared!\n", out.String())
}

func TestRowsAbove(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  int
	}{
		{name: "single line", text: "Paris ", width: 80, want: 0},
		{name: "ended line", text: "Paris \n", width: 80, want: 1},
		{name: "two lines", text: "a \nb \n", width: 80, want: 2},
		{name: "wrapped line", text: strings.Repeat("x", 25) + "\n", width: 10, want: 3},
		{name: "wrapped last line", text: strings.Repeat("x", 25), width: 10, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rowsAbove(tt.text, tt.width))
		})
	}
}

func TestShowFailure(t *testing.T) {
	tests := []struct {
		name   string
		kind   runway.Kind
		detail string
		want   []string
	}{
		{
			name: "credential",
			kind: runway.KindMissingCredential,
			want: []string{"API key required", "Get Started", "openrouter.ai/keys", "Create account & get key", "--api-key", "RUNWAY_API_KEY"},
		},
		{
			name: "processing",
			kind: runway.KindDecode,
			want: []string{"Processing error. Try:", "Specify designer or city", "Ask about specific seasons", "Check your internet connection"},
		},
		{
			name:   "network",
			kind:   runway.KindTransport,
			detail: "connection refused",
			want:   []string{"Network Error: connection refused"},
		},
		{
			name:   "unexpected",
			kind:   runway.KindUnexpected,
			detail: "boom",
			want:   []string{"Unexpected error: boom"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			New(&out).ShowFailure(tt.kind, tt.detail)
			for _, s := range tt.want {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestRemediation(t *testing.T) {
	assert.NotEmpty(t, Remediation(runway.KindMissingCredential))
	for _, source := range []string{"/key <key>", "--api-key", "OPENROUTER_API_KEY", "RUNWAY_API_KEY"} {
		assert.Contains(t, Remediation(runway.KindMissingCredential), source)
	}
	assert.NotEmpty(t, Remediation(runway.KindDecode))
	assert.Empty(t, Remediation(runway.KindTransport))
	assert.Empty(t, Remediation(runway.KindUnexpected))
}

func TestShowFailureEndsAnswer(t *testing.T) {
	var out bytes.Buffer
	p := New(&out)

	p.Draw(render.Frame{Text: "Paris ", Cursor: true})
	p.ShowFailure(runway.KindUnexpected, "boom")

	assert.True(t, strings.HasPrefix(out.String(), "Paris \n"))
}

func TestShowBanner(t *testing.T) {
	var out bytes.Buffer
	New(&out).ShowBanner()

	assert.Contains(t, out.String(), Title)
	assert.Contains(t, out.String(), Caption)
	for _, f := range Features {
		assert.Contains(t, out.String(), f.Description)
	}
}

func TestWaitWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	p := New(&out)
	var slept []time.Duration
	p.Sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	require.NoError(t, p.Wait(context.Background(), 300*time.Millisecond))

	assert.Equal(t, []time.Duration{300 * time.Millisecond}, slept)
	assert.Empty(t, out.String())
	assert.False(t, p.IsTerminal())
}
