// Package language holds the fixed table of languages the service accepts.
package language

// Supported maps a language code to its display name. Codes outside this
// table are rejected at the API boundary.
var Supported = map[string]string{
	"en":    "English",
	"es":    "Spanish",
	"fr":    "French",
	"de":    "German",
	"it":    "Italian",
	"pt":    "Portuguese",
	"ru":    "Russian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"zh-cn": "Chinese (Simplified)",
	"hi":    "Hindi",
	"bn":    "Bengali",
	"te":    "Telugu",
	"ta":    "Tamil",
	"mr":    "Marathi",
	"gu":    "Gujarati",
	"kn":    "Kannada",
	"ml":    "Malayalam",
	"pa":    "Punjabi",
	"ur":    "Urdu",
}

// IsSupported reports whether code is in the supported table.
func IsSupported(code string) bool {
	_, ok := Supported[code]
	return ok
}
