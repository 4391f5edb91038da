package assistantService

// Supported display languages mapped to the codes the translation and
// transcription services speak. Unknown display languages fall back to the
// default rather than failing the pipeline.
var languageTable = map[string]struct {
	TranslateCode string
	Locale        string
}{
	"English":   {"en", "en"},
	"Hindi":     {"hi", "hi"},
	"Bengali":   {"bn", "bn"},
	"Tamil":     {"ta", "ta"},
	"Telugu":    {"te", "te"},
	"Marathi":   {"mr", "mr"},
	"Gujarati":  {"gu", "gu"},
	"Kannada":   {"kn", "kn"},
	"Malayalam": {"ml", "ml"},
	"Punjabi":   {"pa", "pa"},
	"Odia":      {"or", "or"},
}

const defaultLocale = "en"

func translateCode(language string) string {
	if entry, ok := languageTable[language]; ok {
		return entry.TranslateCode
	}
	return languageTable[DefaultLanguage].TranslateCode
}

func localeForLanguage(language string) string {
	if entry, ok := languageTable[language]; ok {
		return entry.Locale
	}
	return defaultLocale
}
