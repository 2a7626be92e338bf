package emotion

import (
	"regexp"
	"strings"
)

// Label is the closed set of affect states the companion can display.
type Label string

const (
	Saludo     Label = "saludo"
	Neutral    Label = "neutral"
	Feliz      Label = "feliz"
	Preocupado Label = "preocupado"
	Enojado    Label = "enojado"
	Confusion  Label = "confusion"
	Shock      Label = "shock"
	Triste     Label = "triste"
	Durmiendo  Label = "durmiendo"

	// Unknown marks a tag that was present but outside the vocabulary.
	Unknown Label = "nose"
)

// Extraction is the result of scanning a raw model reply for the
// emotion tag.
type Extraction struct {
	Emotion   string
	CleanText string
}

// tagPattern matches the wire format agreed with the system prompt:
// the word "Emocion" (accent tolerated), a colon, optional opening
// decorations, a run of letters including Spanish diacritics, then
// optional closing decorations and trailing periods/whitespace.
var tagPattern = regexp.MustCompile(`(?i)emoci[oó]n\s*:\s*["'` + "`" + `\[({«]*([a-zA-ZáéíóúüñÁÉÍÓÚÜÑ]+)["'` + "`" + `\])}»]*\.*\s*`)

// Extract pulls the first emotion tag out of raw and returns the
// lower-cased tag value together with the reply text minus the matched
// span. A missing tag is not an error: the emotion falls back to
// "neutral" and the text is returned trimmed and untouched.
func Extract(raw string) Extraction {
	loc := tagPattern.FindStringSubmatchIndex(raw)
	if loc == nil {
		return Extraction{Emotion: string(Neutral), CleanText: strings.TrimSpace(raw)}
	}

	captured := raw[loc[2]:loc[3]]
	emotion := strings.TrimRight(strings.ToLower(captured), ".")

	cleaned := raw[:loc[0]] + raw[loc[1]:]
	return Extraction{Emotion: emotion, CleanText: strings.TrimSpace(cleaned)}
}

// ParseLabel normalizes a raw emotion value to the closed enum.
func ParseLabel(raw string) (Label, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "saludo":
		return Saludo, true
	case "neutral":
		return Neutral, true
	case "feliz":
		return Feliz, true
	case "preocupado":
		return Preocupado, true
	case "enojado":
		return Enojado, true
	case "confusion", "confusión":
		return Confusion, true
	case "shock":
		return Shock, true
	case "triste":
		return Triste, true
	case "durmiendo":
		return Durmiendo, true
	default:
		return "", false
	}
}
