// Package langdetect guesses the source language of a query when the host
// passes "auto".
package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// minLetters is the shortest sample worth running the detector on.
const minLetters = 6

// candidates are the languages Baidu Fanyi can translate from, keyed to the
// host code reported for each.
var candidates = map[lingua.Language]string{
	lingua.Arabic:     "ar",
	lingua.Bulgarian:  "bg",
	lingua.Chinese:    "zh-CN",
	lingua.Czech:      "cs",
	lingua.Danish:     "da",
	lingua.Dutch:      "nl",
	lingua.English:    "en",
	lingua.Estonian:   "et",
	lingua.Finnish:    "fi",
	lingua.French:     "fr",
	lingua.German:     "de",
	lingua.Greek:      "el",
	lingua.Hungarian:  "hu",
	lingua.Italian:    "it",
	lingua.Japanese:   "ja",
	lingua.Korean:     "ko",
	lingua.Polish:     "pl",
	lingua.Portuguese: "pt",
	lingua.Romanian:   "ro",
	lingua.Russian:    "ru",
	lingua.Slovak:     "sk",
	lingua.Spanish:    "es",
	lingua.Swedish:    "sv",
	lingua.Thai:       "th",
	lingua.Vietnamese: "vi",
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Detect returns the host code of the most likely language of text, or "" when
// the sample is too short or no candidate fits.
func Detect(text string) string {
	sample := strings.TrimSpace(text)
	if !longEnough(sample) {
		return ""
	}

	detected, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return ""
	}
	return candidates[detected]
}

// HostCodes lists the codes Detect can return.
func HostCodes() []string {
	codes := make([]string, 0, len(candidates))
	for _, code := range candidates {
		codes = append(codes, code)
	}
	return codes
}

func longEnough(sample string) bool {
	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
			if letterCount >= minLetters {
				return true
			}
		}
	}
	return false
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		languages := make([]lingua.Language, 0, len(candidates))
		for lang := range candidates {
			languages = append(languages, lang)
		}
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build()
	})
	return detector
}
