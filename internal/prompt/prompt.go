// Package prompt assembles the system instruction and user message sent to
// the text generator for a reformulation request.
package prompt

import (
	"fmt"

	"github.com/alkime/jailu/internal/locale"
	"github.com/alkime/jailu/internal/tone"
)

// Prompt is the pair of messages for one generation request.
type Prompt struct {
	SystemInstruction string
	UserPrompt        string
}

var templates = map[locale.Code]map[tone.PresetID]string{
	locale.FR: frenchTemplates,
	locale.EN: englishTemplates,
}

var userPromptTemplates = map[locale.Code]string{
	locale.FR: "Voici le texte à reformuler:\n\n```\n%s\n```",
	locale.EN: "Here is the text to reformulate:\n\n```\n%s\n```",
}

// languageConstraints are appended to custom tone descriptions, which are
// written in whatever language the user chose.
var languageConstraints = map[locale.Code]string{
	locale.FR: "IMPORTANT : Réponds obligatoirement et uniquement en français, quelle que soit la langue du texte fourni.",
	locale.EN: "IMPORTANT: You must reply only in English, whatever the language of the provided text.",
}

// Assemble builds the prompt for text reformulated in tone t and language lang.
func Assemble(text string, t tone.Tone, lang locale.Language) Prompt {
	code := lang.Code
	if _, ok := templates[code]; !ok {
		code = locale.Default().Code
	}

	return Prompt{
		SystemInstruction: systemInstruction(t, code),
		UserPrompt:        fmt.Sprintf(userPromptTemplates[code], text),
	}
}

func systemInstruction(t tone.Tone, code locale.Code) string {
	switch t.Kind {
	case tone.KindCustom:
		return t.Custom.Description + "\n\n" + languageConstraints[code]
	default:
		if tmpl, ok := templates[code][t.Preset.ID]; ok {
			return tmpl
		}
		return templates[code][tone.Default().Preset.ID]
	}
}

// Template returns the system instruction of a preset in a language.
func Template(id tone.PresetID, code locale.Code) (string, bool) {
	tmpl, ok := templates[code][id]
	return tmpl, ok
}
