package prompt

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultSystem is the built-in system instruction template.
// Placeholders: {{season}}, {{date}} and {{filters}}.
const DefaultSystem = `You are a fashion industry expert. STRICT RULES:
1. Format responses clearly:
   - Event Name (Designer)
   - Date & Location (MM/DD/YYYY, City)
   - Collection Theme/Inspiration
   - Key Trends/Highlights
   - Notable Attendees (if relevant)
2. Use fashion emojis: 👗👠👜👒
3. Current season: {{season}}
4. Highlight new designers in purple
5. Current date: {{date}}
6. Never use markdown
{{filters}}`

// Prompt represents the structure of a TOML prompt file
type Prompt struct {
	System string `toml:"system"`
}

// Default returns the built-in prompt
func Default() *Prompt {
	return &Prompt{System: DefaultSystem}
}

// LoadPrompt loads a prompt file and returns its contents
func LoadPrompt(filePath string) (*Prompt, error) {
	var prompt Prompt
	if _, err := toml.DecodeFile(filePath, &prompt); err != nil {
		return nil, fmt.Errorf("error decoding prompt file: %w", err)
	}
	if strings.TrimSpace(prompt.System) == "" {
		return nil, fmt.Errorf("prompt file %s has an empty 'system' entry", filePath)
	}
	return &prompt, nil
}

// Load returns the prompt stored at filePath, or the built-in prompt when filePath is empty
func Load(filePath string) (*Prompt, error) {
	if filePath == "" {
		return Default(), nil
	}
	return LoadPrompt(filePath)
}
