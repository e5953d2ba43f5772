package i18n

import "strings"

// Translator retrieves localized messages for message ids.
// data provides optional values to embed in the message (for example,
// "min" or "skill"); placeholders are written as {name}.
type Translator interface {
	Message(id string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(id string, data map[string]string) string {
	dict := messagesEN
	if t.lang == "ja" {
		dict = messagesJA
	}
	msg, ok := dict[id]
	if !ok {
		if msg, ok = messagesEN[id]; !ok {
			return id
		}
	}
	return expand(msg, data)
}

func expand(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// Languages lists the built-in dictionaries.
func Languages() []string { return []string{"en", "ja"} }

// T fetches a message for the given id using the current Translator.
func T(id string, data map[string]string) string { return currentTranslator.Message(id, data) }
