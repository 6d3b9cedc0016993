// Package language holds the fixed set of languages a recipe can be translated into.
package language

import "golang.org/x/text/language"

// Language is a selectable target language. Key is the identifier used in forms and the
// API; Label is the native-script name placed inside translation prompts. Tag is the
// BCP 47 tag used to mark up rendered text.
type Language struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

// Default needs no translation.
var Default = Language{Key: "English", Label: "English", Tag: "en"}

var supported = []Language{
	Default,
	{Key: "Urdu", Label: "اردو", Tag: "ur"},
	{Key: "Sindhi", Label: "سنڌي", Tag: "sd-Arab"},
	{Key: "Punjabi (Shahmukhi)", Label: "پنجابی", Tag: "pa-Arab"},
	{Key: "Pashto", Label: "پښتو", Tag: "ps"},
	{Key: "Balochi", Label: "بلوچی", Tag: "bal-Arab"},
	{Key: "Gujarati", Label: "ગુજરાતી", Tag: "gu"},
	{Key: "Hindko", Label: "ہندکو", Tag: "hno-Arab"},
	{Key: "Wakhi", Label: "وخی", Tag: "wbl-Arab"},
}

// right-to-left scripts
var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Syrc": true,
	"Thaa": true,
}

// All returns the supported languages in display order, default first.
func All() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Lookup finds a language by key. An empty key selects Default.
func Lookup(key string) (Language, bool) {
	if key == "" {
		return Default, true
	}
	for _, l := range supported {
		if l.Key == key {
			return l, true
		}
	}
	return Language{}, false
}

// NeedsTranslation reports whether text generated in the default language must be translated.
func (l Language) NeedsTranslation() bool {
	return l.Key != Default.Key
}

// Dir is the HTML text direction of the language's script: "rtl" or "ltr".
func (l Language) Dir() string {
	tag, err := language.Parse(l.Tag)
	if err != nil {
		return "ltr"
	}
	script, _ := tag.Script()
	if rtlScripts[script.String()] {
		return "rtl"
	}
	return "ltr"
}
