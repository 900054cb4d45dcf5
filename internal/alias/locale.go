package alias

var localeLanguages = map[string]string{
	"en": LanguageEnglish,
	"jp": LanguageJapanese,
}

// LocaleToLanguage maps an alias locale onto a three letter language code.
// Unmapped locales return "".
func LocaleToLanguage(locale string) string {
	return localeLanguages[locale]
}
