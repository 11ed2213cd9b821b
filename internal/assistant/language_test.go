package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"clear spanish", "hola, quiero una pizza por favor", "es"},
		{"clear english", "hello, i would like to see the menu please", "en"},
		{"no markers defaults to spanish", "margherita", "es"},
		{"empty defaults to spanish", "", "es"},
		{"tie breaks toward spanish", "hola hello", "es"},
		{"accented markers count", "¿dónde está mi pedido?", "es"},
		{"english question", "what do you have for my order", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.message))
		})
	}
}
