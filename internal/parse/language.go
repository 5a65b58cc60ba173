package parse

import (
	"strings"

	"github.com/abadojack/whatlanggo"

	"go-jobhawk-automation/internal/models"
)

// languageWhitelist restricts classification to the languages the job
// boards actually serve us. Anything else becomes Unknown.
var languageOptions = whatlanggo.Options{
	Whitelist: map[whatlanggo.Lang]bool{
		whatlanggo.Eng: true,
		whatlanggo.Spa: true,
		whatlanggo.Fra: true,
	},
}

// DetectLanguage classifies a short blob (title + company + location)
// into a language tag. Blobs too short or too ambiguous to classify are
// reported as Unknown rather than guessed.
func DetectLanguage(blob string) models.Language {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return models.LanguageUnknown
	}
	info := whatlanggo.DetectWithOptions(blob, languageOptions)
	if !info.IsReliable() {
		// short title blobs rarely reach the reliability bar; keep the
		// best guess when the detector at least produced one
		if info.Confidence == 0 {
			return models.LanguageUnknown
		}
	}
	switch info.Lang {
	case whatlanggo.Eng:
		return models.LanguageEnglish
	case whatlanggo.Spa:
		return models.LanguageSpanish
	case whatlanggo.Fra:
		return models.LanguageFrench
	default:
		return models.LanguageUnknown
	}
}
