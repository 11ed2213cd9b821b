// internal/assistant/language.go
package assistant

import (
	"regexp"
	"strings"
)

var spanishMarkers = map[string]bool{
	"hola": true, "gracias": true, "quisiera": true, "quiero": true,
	"tienen": true, "donde": true, "dónde": true, "cuanto": true,
	"cuánto": true, "favor": true, "buenas": true, "buenos": true,
	"pedido": true, "por": true, "la": true, "el": true, "una": true,
	"qué": true, "que": true, "con": true, "para": true, "mi": true,
}

var englishMarkers = map[string]bool{
	"hello": true, "hi": true, "thanks": true, "please": true,
	"would": true, "like": true, "want": true, "the": true,
	"where": true, "when": true, "how": true, "what": true,
	"my": true, "is": true, "i": true, "you": true, "do": true,
	"have": true, "can": true, "order": true,
}

var wordSplitter = regexp.MustCompile(`[^\p{L}]+`)

// DetectLanguage classifies a message as Spanish or English by counting
// marker-word occurrences from each list. The higher count wins; ties break
// toward Spanish.
func DetectLanguage(message string) string {
	var es, en int
	for _, token := range wordSplitter.Split(strings.ToLower(message), -1) {
		if token == "" {
			continue
		}
		if spanishMarkers[token] {
			es++
		}
		if englishMarkers[token] {
			en++
		}
	}
	if en > es {
		return "en"
	}
	return "es"
}
