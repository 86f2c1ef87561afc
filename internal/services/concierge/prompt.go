package concierge

import (
	"strings"

	"github.com/arcosplaya/concierge/internal/content"
)

const languagePlaceholder = "{{language}}"

// SystemPrompt renders the persona preamble for one answer language.
type SystemPrompt struct {
	persona string
}

func NewSystemPrompt(persona string) *SystemPrompt {
	if !strings.Contains(persona, languagePlaceholder) {
		persona = strings.TrimRight(persona, "\n") + "\nRespond in the language: " + languagePlaceholder + "."
	}
	return &SystemPrompt{persona: persona}
}

func (sp *SystemPrompt) For(lang content.Language) string {
	return strings.ReplaceAll(sp.persona, languagePlaceholder, lang.String())
}
