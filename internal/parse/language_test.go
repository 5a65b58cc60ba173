package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobhawk-automation/internal/models"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		blob     string
		expected models.Language
	}{
		{
			name:     "english listing blob",
			blob:     "Senior Software Engineer Acme Corporation New York, United States",
			expected: models.LanguageEnglish,
		},
		{
			name:     "spanish listing blob",
			blob:     "Ingeniero de software con experiencia en sistemas distribuidos Ciudad de México",
			expected: models.LanguageSpanish,
		},
		{
			name:     "french listing blob",
			blob:     "Ingénieur logiciel développement des applications réparties Montréal Québec",
			expected: models.LanguageFrench,
		},
		{
			name:     "empty blob",
			blob:     "",
			expected: models.LanguageUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLanguage(tt.blob))
		})
	}
}
