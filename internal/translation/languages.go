package translation

import (
	"sort"
	"strings"

	"horse.fit/fanyi/internal/language"
)

type LanguageOption struct {
	Code         string `json:"code"`
	Label        string `json:"label"`
	Native       string `json:"native,omitempty"`
	ProviderCode string `json:"provider_code,omitempty"`
}

// CodeMapper is implemented by providers whose wire language codes differ
// from host codes.
type CodeMapper interface {
	ProviderCode(code string) (string, bool)
}

type languageLabel struct {
	english string
	chinese string
}

var translationLanguageLabels = map[string]languageLabel{
	"ar":    {english: "Arabic", chinese: "阿拉伯语"},
	"bg":    {english: "Bulgarian", chinese: "保加利亚语"},
	"cs":    {english: "Czech", chinese: "捷克语"},
	"da":    {english: "Danish", chinese: "丹麦语"},
	"de":    {english: "German", chinese: "德语"},
	"el":    {english: "Greek", chinese: "希腊语"},
	"en":    {english: "English", chinese: "英语"},
	"es":    {english: "Spanish", chinese: "西班牙语"},
	"et":    {english: "Estonian", chinese: "爱沙尼亚语"},
	"fi":    {english: "Finnish", chinese: "芬兰语"},
	"fr":    {english: "French", chinese: "法语"},
	"hu":    {english: "Hungarian", chinese: "匈牙利语"},
	"it":    {english: "Italian", chinese: "意大利语"},
	"ja":    {english: "Japanese", chinese: "日语"},
	"ko":    {english: "Korean", chinese: "韩语"},
	"nl":    {english: "Dutch", chinese: "荷兰语"},
	"pl":    {english: "Polish", chinese: "波兰语"},
	"pt":    {english: "Portuguese", chinese: "葡萄牙语"},
	"ro":    {english: "Romanian", chinese: "罗马尼亚语"},
	"ru":    {english: "Russian", chinese: "俄语"},
	"sk":    {english: "Slovak", chinese: "斯洛伐克语"},
	"sv":    {english: "Swedish", chinese: "瑞典语"},
	"th":    {english: "Thai", chinese: "泰语"},
	"vi":    {english: "Vietnamese", chinese: "越南语"},
	"zh-cn": {english: "Chinese (Simplified)", chinese: "简体中文"},
	"zh-tw": {english: "Chinese (Traditional)", chinese: "繁體中文"},
}

// TranslationLanguageOptions lists every language some registered provider
// supports, labelled where a label is known.
func TranslationLanguageOptions(registry *Registry) []LanguageOption {
	supported := map[string]string{}

	if registry != nil {
		for _, provider := range registry.providers {
			for _, code := range provider.SupportedLanguages() {
				normalized := language.NormalizeTag(code)
				if normalized == "" {
					continue
				}
				if _, seen := supported[normalized]; !seen {
					supported[normalized] = strings.TrimSpace(code)
				}
			}
		}
	}

	tags := make([]string, 0, len(supported))
	for tag := range supported {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	options := make([]LanguageOption, 0, len(tags))
	for _, tag := range tags {
		options = append(options, LabelLanguage(supported[tag]))
	}

	return options
}

// ProviderLanguageOptions lists the languages of one provider, including the
// provider's own code for each when it exposes one.
func ProviderLanguageOptions(provider Provider) []LanguageOption {
	if provider == nil {
		return nil
	}
	mapper, _ := provider.(CodeMapper)

	codes := provider.SupportedLanguages()
	options := make([]LanguageOption, 0, len(codes))
	for _, code := range codes {
		option := LabelLanguage(strings.TrimSpace(code))
		if mapper != nil {
			if providerCode, ok := mapper.ProviderCode(code); ok {
				option.ProviderCode = providerCode
			}
		}
		options = append(options, option)
	}
	return options
}

// LabelLanguage returns the display labels for a host code. Unknown codes are
// labelled with the upper-cased code.
func LabelLanguage(code string) LanguageOption {
	labels, hasLabels := translationLanguageLabels[language.NormalizeTag(code)]
	if hasLabels {
		return LanguageOption{
			Code:   code,
			Label:  labels.english,
			Native: labels.chinese,
		}
	}
	return LanguageOption{
		Code:  code,
		Label: strings.ToUpper(code),
	}
}
