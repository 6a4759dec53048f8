package lingosnip

import "strings"

// LanguageNames maps language tags to human-readable names. The catalog
// filler uses these when prompting a machine-translation provider.
var LanguageNames = map[string]string{
	"en-US": "English (United States)",
	"en-GB": "English (United Kingdom)",
	"de-DE": "German (Germany)",
	"es-ES": "Spanish (Spain)",
	"es-MX": "Spanish (Mexico)",
	"fr-FR": "French (France)",
	"it-IT": "Italian (Italy)",
	"ja-JP": "Japanese (Japan)",
	"ko-KR": "Korean (South Korea)",
	"nl-NL": "Dutch (Netherlands)",
	"pl-PL": "Polish (Poland)",
	"pt-BR": "Portuguese (Brazil)",
	"pt-PT": "Portuguese (Portugal)",
	"ru-RU": "Russian (Russia)",
	"sv-SE": "Swedish (Sweden)",
	"tr-TR": "Turkish (Turkey)",
	"zh-CN": "Chinese (Simplified)",
	"zh-TW": "Chinese (Traditional)",
	"ar-SA": "Arabic (Saudi Arabia)",
	"he-IL": "Hebrew (Israel)",
	"hi-IN": "Hindi (India)",
	"cs-CZ": "Czech (Czech Republic)",
	"da-DK": "Danish (Denmark)",
	"el-GR": "Greek (Greece)",
	"fi-FI": "Finnish (Finland)",
	"hu-HU": "Hungarian (Hungary)",
	"id-ID": "Indonesian (Indonesia)",
	"nb-NO": "Norwegian Bokmål (Norway)",
	"ro-RO": "Romanian (Romania)",
	"th-TH": "Thai (Thailand)",
	"uk-UA": "Ukrainian (Ukraine)",
	"vi-VN": "Vietnamese (Vietnam)",
}

// shortTagToFull maps bare language subtags to a full tag.
var shortTagToFull = map[string]string{
	"en": "en-US",
	"de": "de-DE",
	"es": "es-ES",
	"fr": "fr-FR",
	"it": "it-IT",
	"ja": "ja-JP",
	"ko": "ko-KR",
	"nl": "nl-NL",
	"pl": "pl-PL",
	"pt": "pt-BR",
	"ru": "ru-RU",
	"zh": "zh-CN",
	"ar": "ar-SA",
	"he": "he-IL",
	"hi": "hi-IN",
	"tr": "tr-TR",
	"vi": "vi-VN",
}

// RTLLanguages contains language subtags written right to left.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}

// GetLanguageName returns the human-readable name for a language tag.
// Falls back to the tag itself if not found.
func GetLanguageName(tag string) string {
	tag = NormalizeTag(tag)
	if name, ok := LanguageNames[tag]; ok {
		return name
	}
	if full, ok := shortTagToFull[baseSubtag(tag)]; ok {
		if name, ok := LanguageNames[full]; ok {
			return name
		}
	}
	return tag
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(tag string) string {
	if RTLLanguages[baseSubtag(tag)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL reports whether the language is written right to left.
func IsRTL(tag string) bool {
	return GetDirection(tag) == "rtl"
}

// NormalizeTag converts a language code to hyphenated BCP-47-like form
// (e.g. "fr_FR" becomes "fr-FR").
func NormalizeTag(tag string) string {
	return strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
}

// baseSubtag extracts the lowercase primary subtag (e.g. "ar" from "ar-SA").
func baseSubtag(tag string) string {
	tag = NormalizeTag(tag)
	if i := strings.IndexByte(tag, '-'); i > 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}
