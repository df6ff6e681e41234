package langtag

import "strings"

// countryLanguages maps ISO 3166-1 alpha-2 country codes to the language tag
// assigned automatically when a player connects without a stored preference.
// One language per country; players can always override it.
var countryLanguages = map[string]string{
	"AE": "ar-AE",
	"AO": "pt-AO",
	"AR": "es-AR",
	"AT": "de-AT",
	"AU": "en-AU",
	"BA": "bs-BA",
	"BD": "bn-BD",
	"BE": "nl-BE",
	"BG": "bg-BG",
	"BO": "es-BO",
	"BR": "pt-BR",
	"BY": "ru-BY",
	"CA": "en-CA",
	"CH": "de-CH",
	"CL": "es-CL",
	"CN": "zh-CN",
	"CO": "es-CO",
	"CR": "es-CR",
	"CU": "es-CU",
	"CV": "pt-CV",
	"CZ": "cs-CZ",
	"DE": "de-DE",
	"DK": "da-DK",
	"DO": "es-DO",
	"DZ": "ar-DZ",
	"EC": "es-EC",
	"EE": "et-EE",
	"EG": "ar-EG",
	"ES": "es-ES",
	"FI": "fi-FI",
	"FR": "fr-FR",
	"GB": "en-GB",
	"GR": "el-GR",
	"GT": "es-GT",
	"HK": "zh-HK",
	"HN": "es-HN",
	"HR": "hr-HR",
	"HU": "hu-HU",
	"ID": "id-ID",
	"IE": "en-IE",
	"IL": "he-IL",
	"IN": "hi-IN",
	"IQ": "ar-IQ",
	"IR": "fa-IR",
	"IS": "is-IS",
	"IT": "it-IT",
	"JP": "ja-JP",
	"KR": "ko-KR",
	"KZ": "kk-KZ",
	"LT": "lt-LT",
	"LU": "fr-LU",
	"LV": "lv-LV",
	"MA": "ar-MA",
	"MD": "ro-MD",
	"MX": "es-MX",
	"MY": "ms-MY",
	"MZ": "pt-MZ",
	"NG": "en-NG",
	"NL": "nl-NL",
	"NO": "nb-NO",
	"NZ": "en-NZ",
	"PA": "es-PA",
	"PE": "es-PE",
	"PH": "fil-PH",
	"PK": "ur-PK",
	"PL": "pl-PL",
	"PT": "pt-PT",
	"PY": "es-PY",
	"RO": "ro-RO",
	"RS": "sr-RS",
	"RU": "ru-RU",
	"SA": "ar-SA",
	"SE": "sv-SE",
	"SG": "en-SG",
	"SI": "sl-SI",
	"SK": "sk-SK",
	"TH": "th-TH",
	"TR": "tr-TR",
	"TW": "zh-TW",
	"UA": "uk-UA",
	"US": "en-US",
	"UY": "es-UY",
	"VE": "es-VE",
	"VN": "vi-VN",
	"ZA": "en-ZA",
}

// LanguageForCountry returns the language tag mapped to an ISO country code,
// or "" when the country has no mapping.
func LanguageForCountry(code string) string {
	return countryLanguages[strings.ToUpper(strings.TrimSpace(code))]
}
