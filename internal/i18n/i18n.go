package i18n

// Package i18n holds the UI translation bundle. The bundle is built once and
// never mutated afterwards; per-request code only reads from it.

// DefaultLanguage is used when no language is selected or the selected code
// is unknown.
const DefaultLanguage = "en"

// Dictionary maps UI string keys to translated text.
type Dictionary map[string]string

// Bundle is an immutable set of per-language dictionaries.
type Bundle struct {
	dicts map[string]Dictionary
}

// NewBundle builds the bundle with the supported languages.
func NewBundle() *Bundle {
	return &Bundle{
		dicts: map[string]Dictionary{
			"en": {
				"title":     "Health Tips",
				"book":      "Book an Appointment",
				"read_more": "Read More",
				"welcome":   "Welcome to Mobi Mama",
				"subtitle":  "Empowering mothers with healthcare guidance.",
				"login":     "Login",
				"signup":    "Sign Up",
			},
			"tw": {
				"title":     "Apɔw Mu Nkyerɛkyerɛ",
				"book":      "Paw Appɔintment",
				"read_more": "Kenkan Bio",
				"welcome":   "Akwaaba Mobi Mama",
				"subtitle":  "Yɛboa maamefoɔ wɔ Ghana sɛ wɔnya apɔw ho nkyerɛkyerɛ.",
				"login":     "Kɔ Mu",
				"signup":    "Bɔ Akawnt",
			},
		},
	}
}

// Supported reports whether lang has a dictionary.
func (b *Bundle) Supported(lang string) bool {
	_, ok := b.dicts[lang]
	return ok
}

// Resolve normalizes a requested language code: unknown or empty codes fall
// back to the default.
func (b *Bundle) Resolve(lang string) string {
	if b.Supported(lang) {
		return lang
	}
	return DefaultLanguage
}

// Dict returns the dictionary for lang, falling back to the default language
// for unknown codes. Never nil.
func (b *Bundle) Dict(lang string) Dictionary {
	return b.dicts[b.Resolve(lang)]
}
