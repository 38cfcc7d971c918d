// Package prompt builds the system instruction sent with every request.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/longkey1/runway/internal/runway/config"
)

// DateLayout is the MM/DD/YYYY date format used in the instruction
const DateLayout = "01/02/2006"

// Builder derives system instructions from a template, the session config and a clock
type Builder struct {
	Prompt *Prompt
	Now    func() time.Time
}

// NewBuilder returns a builder using the given template and the wall clock
func NewBuilder(p *Prompt) *Builder {
	if p == nil {
		p = Default()
	}
	return &Builder{Prompt: p, Now: time.Now}
}

// Build returns the system instruction for the current config and date
func (b *Builder) Build(cfg *config.Config) string {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return Format(b.Prompt.System, cfg, now())
}

// Format fills the template placeholders
func Format(template string, cfg *config.Config, now time.Time) string {
	filters := ""
	if f := cfg.Filters(); len(f) > 0 {
		filters = fmt.Sprintf("- Filtering by: %s", strings.Join(f, ", "))
	}

	replacements := map[string]string{
		"season":  cfg.Season,
		"date":    now.Format(DateLayout),
		"filters": filters,
	}

	result := template
	for key, value := range replacements {
		placeholder := fmt.Sprintf("{{%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}
