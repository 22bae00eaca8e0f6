package fanyi

import (
	"sort"

	"horse.fit/fanyi/internal/language"
)

// baiduLanguages maps normalized host tags to Baidu's own codes.
var baiduLanguages = map[string]string{
	"en":    "en",
	"ar":    "ara",
	"et":    "est",
	"bg":    "bul",
	"pl":    "pl",
	"da":    "dan",
	"de":    "de",
	"ru":    "ru",
	"fr":    "fra",
	"fi":    "fin",
	"ko":    "kor",
	"nl":    "nl",
	"cs":    "cs",
	"ro":    "rom",
	"pt":    "pt",
	"ja":    "jp",
	"sv":    "swe",
	"sk":    "slo",
	"th":    "th",
	"es":    "spa",
	"el":    "el",
	"hu":    "hu",
	"it":    "it",
	"vi":    "vie",
	"zh-cn": "zh",
	"zh-tw": "zh",
}

// LanguageMapping pairs a host language code with the code Baidu expects.
type LanguageMapping struct {
	Code  string `json:"code"`
	Baidu string `json:"baidu"`
}

// BaiduCode returns the Baidu code for a host language code.
func BaiduCode(code string) (string, bool) {
	normalized := language.NormalizeTag(code)
	if normalized == "" {
		return "", false
	}
	baidu, ok := baiduLanguages[normalized]
	return baidu, ok
}

// SupportedLanguages returns the host codes the provider accepts, sorted.
func SupportedLanguages() []string {
	codes := make([]string, 0, len(baiduLanguages))
	for tag := range baiduLanguages {
		codes = append(codes, language.Canonical(tag))
	}
	sort.Strings(codes)
	return codes
}

// LanguageTable returns the full host to Baidu mapping, sorted by host code.
func LanguageTable() []LanguageMapping {
	table := make([]LanguageMapping, 0, len(baiduLanguages))
	for tag, baidu := range baiduLanguages {
		table = append(table, LanguageMapping{Code: language.Canonical(tag), Baidu: baidu})
	}
	sort.Slice(table, func(i, j int) bool {
		return table[i].Code < table[j].Code
	})
	return table
}
