package main

func init() {
	ensureTranslationCoverage()
}

func ensureTranslationCoverage() {
	en, ok := translations["en"]
	if !ok {
		return
	}
	for lang, langMap := range translations {
		if lang == "en" {
			continue
		}
		for key, value := range en {
			if _, exists := langMap[key]; !exists {
				langMap[key] = value
			}
		}
	}
}

// tr returns the text for key in lang, falling back to English and then
// to the key itself.
func tr(lang, key string) string {
	if lang == "" {
		lang = "en"
	}
	t, ok := translations[lang]
	if !ok {
		t = translations["en"]
	}
	if v, ok := t[key]; ok {
		return v
	}
	if tEn, ok := translations["en"]; ok {
		if v, ok := tEn[key]; ok {
			return v
		}
	}
	return key
}

func supportedLanguage(lang string) bool {
	_, ok := translations[lang]
	return ok
}
