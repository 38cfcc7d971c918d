// Package chat drives one prompt cycle of a session: credential check,
// completion request, failure classification and the reveal of the answer.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/longkey1/runway/internal/render"
	"github.com/longkey1/runway/internal/runway"
	"github.com/longkey1/runway/internal/runway/prompt"
	"github.com/longkey1/runway/internal/runway/session"
)

// Fallback replies stored when a turn fails after the credential check
const (
	NetworkFallback    = "Connection issue - please refresh and try again"
	UnexpectedFallback = "Please try your request again"
)

// State is a step of the prompt cycle
type State int

const (
	StateIdle State = iota
	StateAwaitingInput
	StateValidatingCredential
	StateRequesting
	StateRendering
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateValidatingCredential:
		return "validating_credential"
	case StateRequesting:
		return "requesting"
	case StateRendering:
		return "rendering"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// View is what the controller draws on
type View interface {
	render.Sink
	// Wait shows the progress indicator for d.
	Wait(ctx context.Context, d time.Duration) error
	// ShowFailure shows the guidance panel for a failed turn.
	ShowFailure(kind runway.Kind, detail string)
}

// Turn is the outcome of one submitted prompt
type Turn struct {
	Prompt   string
	Reply    string // stored assistant message, empty when none was stored
	Stored   bool   // whether an assistant message was appended
	Attempts int
	Kind     runway.Kind // meaningful only when Err is set
	Err      error
}

// Controller runs prompt cycles against a single session. It is not safe for
// concurrent use; a cycle runs to completion before the next one starts.
type Controller struct {
	Session  *session.Session
	Client   runway.Completer
	View     View
	Prompt   *prompt.Builder
	Renderer *render.Renderer
	Logger   *slog.Logger

	// SpinnerDelay is how long the progress indicator is shown before the request.
	SpinnerDelay time.Duration
	// OnTransition, when set, observes every state change.
	OnTransition func(from, to State)

	state State
}

// NewController returns a controller using the session's timing settings and
// the default system prompt
func NewController(sess *session.Session, client runway.Completer, view View) *Controller {
	return &Controller{
		Session:      sess,
		Client:       client,
		View:         view,
		Prompt:       prompt.NewBuilder(nil),
		Renderer:     render.New(sess.Config.RevealDelay),
		Logger:       slog.Default(),
		SpinnerDelay: sess.Config.SpinnerDelay,
	}
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) transition(to State) {
	from := c.state
	c.state = to
	c.Logger.Debug("state change", "from", from, "to", to)
	if c.OnTransition != nil {
		c.OnTransition(from, to)
	}
}

// Clear resets the conversation to the cleared seed message
func (c *Controller) Clear() {
	c.Session.Clear()
}

// Submit runs one prompt cycle. Failures end the turn and are reported in
// the returned Turn; they never leave the controller outside Idle.
func (c *Controller) Submit(ctx context.Context, text string) *Turn {
	turn := &Turn{Prompt: text}
	defer c.transition(StateIdle)

	c.transition(StateAwaitingInput)
	c.Session.AddMessage(runway.RoleUser, text)

	c.transition(StateValidatingCredential)
	if !c.Session.Config.HasAPIKey() {
		c.fail(turn, runway.NewError(runway.KindMissingCredential, 0, runway.ErrMissingCredential))
		return turn
	}

	c.transition(StateRequesting)
	reply, reveal, ok := c.request(ctx, turn)
	if !ok {
		return turn
	}

	c.transition(StateRendering)
	if reveal {
		final, err := c.reveal(ctx, reply)
		if err != nil {
			c.fail(turn, err)
			reply, reveal = UnexpectedFallback, false
		} else {
			reply = final
		}
	}
	if !reveal {
		c.draw(render.Frame{Text: reply})
	}

	c.Session.AddMessage(runway.RoleAssistant, reply)
	turn.Reply = reply
	turn.Stored = true
	return turn
}

// request obtains the reply text. reveal reports whether the text is a
// completion to be revealed; ok is false when no assistant message follows.
func (c *Controller) request(ctx context.Context, turn *Turn) (reply string, reveal, ok bool) {
	if err := c.View.Wait(ctx, c.SpinnerDelay); err != nil {
		c.fail(turn, runway.NewError(runway.KindUnexpected, 0, err))
		return UnexpectedFallback, false, true
	}

	rc := c.Session.NewRequest(c.Prompt.Build(c.Session.Config))
	completion, err := c.complete(ctx, rc)
	turn.Attempts = rc.Attempts
	if err == nil {
		return completion.Content, true, true
	}

	c.fail(turn, err)
	switch turn.Kind {
	case runway.KindMissingCredential:
		return "", false, false
	case runway.KindDecode:
		return "", false, true
	case runway.KindTransport:
		return NetworkFallback, false, true
	default:
		return UnexpectedFallback, false, true
	}
}

func (c *Controller) complete(ctx context.Context, rc *runway.RequestContext) (completion *runway.Completion, err error) {
	defer func() {
		if r := recover(); r != nil {
			completion, err = nil, runway.NewError(runway.KindUnexpected, rc.Attempts, fmt.Errorf("completion panicked: %v", r))
		}
	}()
	completion, err = c.Client.Complete(ctx, rc)
	if err == nil && completion == nil {
		err = runway.NewError(runway.KindUnexpected, rc.Attempts, errors.New("empty completion"))
	}
	return completion, err
}

func (c *Controller) reveal(ctx context.Context, raw string) (final string, err error) {
	defer func() {
		if r := recover(); r != nil {
			final, err = "", fmt.Errorf("rendering panicked: %v", r)
		}
	}()
	return c.Renderer.Reveal(ctx, raw, c.View)
}

func (c *Controller) draw(f render.Frame) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Error("drawing failed", "err", r)
		}
	}()
	c.View.Draw(f)
}

// fail records err on the turn, logs it and shows the matching panel
func (c *Controller) fail(turn *Turn, err error) {
	turn.Err = err
	turn.Kind = runway.KindOf(err)
	c.Logger.Error("turn failed", "kind", turn.Kind, "attempts", turn.Attempts, "err", err)

	defer func() {
		if r := recover(); r != nil {
			c.Logger.Error("drawing failed", "err", r)
		}
	}()
	c.View.ShowFailure(turn.Kind, runway.Detail(err))
}
