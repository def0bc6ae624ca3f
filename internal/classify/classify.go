// Package classify derives a school level and an output format from the
// topic of a work session.
//
// The heuristic is a best-effort label based on keyword matching against
// the topic text. It is deliberately a pure function with no I/O so it
// can be replaced by a stronger classifier without touching the
// orchestrator.
package classify

import "strings"

// Level is the school level inferred from a topic.
type Level string

// School levels, from elementary to higher education.
const (
	LevelFundamental Level = "Fundamental"
	LevelMedio       Level = "Medio"
	LevelTecnico     Level = "Tecnico"
	LevelFaculdade   Level = "Faculdade"
)

// Format is the output format inferred from a topic.
type Format string

// Output formats.
const (
	FormatDocumento Format = "documento"
	FormatSlides    Format = "slides"
)

// Keyword tables. Accented spellings are listed alongside the plain
// ones because real topics carry Portuguese diacritics.
var (
	fundamentalKeywords = []string{"fundamental", "basico", "básico"}
	medioKeywords       = []string{"medio", "médio"}
	tecnicoKeywords     = []string{"tecnico", "técnico", "tecnologo", "tecnólogo"}
	slidesKeywords      = []string{"slide", "apresentacao", "apresentação", "powerpoint"}
)

// Classify infers the level and format of a work from its topic text.
//
// Level checks are mutually exclusive with first-match order
// Fundamental, Medio, Tecnico; anything else defaults to Faculdade.
// Format is slides when a presentation keyword appears, else documento.
// Matching is case-insensitive substring matching.
func Classify(topic string) (Level, Format) {
	t := strings.ToLower(topic)

	level := LevelFaculdade
	switch {
	case containsAny(t, fundamentalKeywords):
		level = LevelFundamental
	case containsAny(t, medioKeywords):
		level = LevelMedio
	case containsAny(t, tecnicoKeywords):
		level = LevelTecnico
	}

	format := FormatDocumento
	if containsAny(t, slidesKeywords) {
		format = FormatSlides
	}

	return level, format
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
