// Package tone defines the reformulation tones: a fixed set of presets and
// user-defined custom tones.
package tone

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alkime/jailu/internal/locale"
	"github.com/google/uuid"
)

// Kind discriminates the Tone variants.
type Kind int

const (
	// KindPredefined marks a preset tone.
	KindPredefined Kind = iota
	// KindCustom marks a user-defined tone.
	KindCustom
)

// PresetID identifies a predefined tone.
type PresetID string

const (
	Simple          PresetID = "simple"
	Sarcastic       PresetID = "sarcastic"
	Developer       PresetID = "developer"
	EssentialsRisks PresetID = "essentials-risks"
)

// Preset is a predefined tone.
type Preset struct {
	ID        PresetID `json:"id"`
	Preferred bool     `json:"preferred"`
}

// Custom is a user-defined tone. The JSON layout is the persisted one.
type Custom struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsCustom    bool   `json:"isCustom"`
}

// Tone is either a Preset or a Custom tone, as told by Kind.
type Tone struct {
	Kind   Kind
	Preset Preset
	Custom Custom
}

var presets = []Preset{
	{ID: Simple},
	{ID: Sarcastic, Preferred: true},
	{ID: Developer},
	{ID: EssentialsRisks},
}

var presetNames = map[locale.Code]map[PresetID]string{
	locale.FR: {
		Simple:          "Simple",
		Sarcastic:       "Sarcastique",
		Developer:       "Développeur",
		EssentialsRisks: "Essentiel & Risques",
	},
	locale.EN: {
		Simple:          "Simple",
		Sarcastic:       "Sarcastic",
		Developer:       "Developer",
		EssentialsRisks: "Essentials & Risks",
	},
}

// Presets returns the predefined tones in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a predefined tone by identifier.
func LookupPreset(id string) (Preset, bool) {
	for _, p := range presets {
		if string(p.ID) == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Predefined wraps a preset into a Tone.
func Predefined(p Preset) Tone {
	return Tone{Kind: KindPredefined, Preset: p}
}

// FromCustom wraps a custom tone into a Tone.
func FromCustom(c Custom) Tone {
	return Tone{Kind: KindCustom, Custom: c}
}

// Default is the tone selected at startup and after the selected custom
// tone is deleted.
func Default() Tone {
	p, _ := LookupPreset(string(Sarcastic))
	return Predefined(p)
}

// ID returns the identifier of the active variant.
func (t Tone) ID() string {
	switch t.Kind {
	case KindCustom:
		return t.Custom.ID
	default:
		return string(t.Preset.ID)
	}
}

// DisplayName returns the name shown for the tone in the given language.
func (t Tone) DisplayName(lang locale.Code) string {
	switch t.Kind {
	case KindCustom:
		return t.Custom.Name
	default:
		return t.Preset.DisplayName(lang)
	}
}

// DisplayName returns the localized preset name.
func (p Preset) DisplayName(lang locale.Code) string {
	names, ok := presetNames[lang]
	if !ok {
		names = presetNames[locale.FR]
	}
	if name, ok := names[p.ID]; ok {
		return name
	}
	return string(p.ID)
}

// Equal reports whether a and b designate the same tone.
func Equal(a, b Tone) bool {
	switch {
	case a.Kind == KindCustom && b.Kind == KindCustom:
		return a.Custom.ID == b.Custom.ID
	case a.Kind == KindPredefined && b.Kind == KindPredefined:
		return a.Preset.ID == b.Preset.ID
	default:
		return false
	}
}

// AfterDelete returns the tone to keep selected once the custom tone with
// deletedID is removed.
func AfterDelete(selected Tone, deletedID string) Tone {
	if selected.Kind == KindCustom && selected.Custom.ID == deletedID {
		return Default()
	}
	return selected
}

// Custom tone name bounds, in characters.
const (
	MinNameLength = 3
	MaxNameLength = 50
)

var (
	ErrNameRequired = errors.New("tone name is required")
	ErrNameTooShort = fmt.Errorf("tone name must be at least %d characters", MinNameLength)
	ErrNameTooLong  = fmt.Errorf("tone name cannot exceed %d characters", MaxNameLength)
)

// ValidateName trims and checks a custom tone name.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	n := utf8.RuneCountInString(trimmed)

	switch {
	case n == 0:
		return "", ErrNameRequired
	case n < MinNameLength:
		return "", ErrNameTooShort
	case n > MaxNameLength:
		return "", ErrNameTooLong
	}

	return trimmed, nil
}

// NewCustom builds a custom tone. Its identifier carries the creation time
// and a random suffix, so tones created in the same millisecond differ.
func NewCustom(name, description string, now time.Time) (Custom, error) {
	trimmed, err := ValidateName(name)
	if err != nil {
		return Custom{}, err
	}

	return Custom{
		ID:          fmt.Sprintf("custom-%d-%s", now.UnixMilli(), uuid.NewString()),
		Name:        trimmed,
		Description: description,
		IsCustom:    true,
	}, nil
}

// ValidationMessage localizes a ValidateName error. Other errors yield their
// own message.
func ValidationMessage(err error, msgs locale.Messages) string {
	switch {
	case errors.Is(err, ErrNameRequired):
		return msgs.ToneNameRequired
	case errors.Is(err, ErrNameTooShort):
		return msgs.ToneNameTooShort
	case errors.Is(err, ErrNameTooLong):
		return msgs.ToneNameTooLong
	default:
		return err.Error()
	}
}
