package fanyi

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

type detailsStrategy func(parts []gjson.Result) []Details

// pronunciationKeys lists the symbol keys tried for each target language.
var pronunciationKeys = map[string][]string{
	"en": {"ph_am", "ph_en"},
	"zh": {"word_symbol"},
}

// detailStrategies picks how dictionary parts are read for each source language.
var detailStrategies = map[string]detailsStrategy{
	"zh": groupedDetails,
}

// ParseTranslation decodes a v2transapi response body.
func ParseTranslation(body []byte) (Translation, error) {
	if !gjson.ValidBytes(body) {
		return Translation{}, fmt.Errorf("%w: body is not valid JSON", ErrTranslationParsing)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return Translation{}, fmt.Errorf("%w: body is not a JSON object", ErrTranslationParsing)
	}

	result := root.Get("trans_result")
	if !result.Exists() || result.Type == gjson.Null {
		return Translation{}, fmt.Errorf("%w: trans_result is missing", ErrTranslationNotFound)
	}
	from, ok := stringField(result, "from")
	if !ok {
		return Translation{}, fmt.Errorf("%w: trans_result.from is missing", ErrTranslationParsing)
	}
	to, ok := stringField(result, "to")
	if !ok {
		return Translation{}, fmt.Errorf("%w: trans_result.to is missing", ErrTranslationParsing)
	}
	pair := result.Get("data.0")
	if !pair.Exists() || !pair.IsObject() {
		return Translation{}, fmt.Errorf("%w: trans_result.data is empty", ErrTranslationNotFound)
	}
	src, ok := stringField(pair, "src")
	if !ok {
		return Translation{}, fmt.Errorf("%w: trans_result.data[0].src is missing", ErrTranslationParsing)
	}
	dst, ok := stringField(pair, "dst")
	if !ok {
		return Translation{}, fmt.Errorf("%w: trans_result.data[0].dst is missing", ErrTranslationParsing)
	}

	translation := Translation{
		From:    from,
		To:      to,
		Query:   src,
		Text:    dst,
		Details: []Details{},
	}

	symbol := root.Get("dict_result.simple_means.symbols.0")
	if !symbol.IsObject() {
		return translation, nil
	}
	translation.Pronunciation = pronunciation(symbol, to)

	strategy, ok := detailStrategies[from]
	if !ok {
		strategy = flatDetails
	}
	if details := strategy(symbol.Get("parts").Array()); len(details) > 0 {
		translation.Details = details
	}
	return translation, nil
}

func pronunciation(symbol gjson.Result, to string) string {
	for _, key := range pronunciationKeys[to] {
		if value, ok := stringField(symbol, key); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// flatDetails maps every part entry to one Details value.
func flatDetails(parts []gjson.Result) []Details {
	details := make([]Details, 0, len(parts))
	for _, part := range parts {
		if !part.IsObject() {
			continue
		}
		meanings := make([]string, 0)
		for _, mean := range part.Get("means").Array() {
			if text := meaningText(mean); text != "" {
				meanings = append(meanings, text)
			}
		}
		details = append(details, Details{
			PartOfSpeech: partName(part),
			Meanings:     meanings,
		})
	}
	return details
}

// groupedDetails flattens the means of every part entry and merges meanings
// sharing a part of speech, keeping first-seen order.
func groupedDetails(parts []gjson.Result) []Details {
	details := make([]Details, 0, len(parts))
	index := make(map[string]int)

	add := func(pos, meaning string) {
		i, seen := index[pos]
		if !seen {
			i = len(details)
			index[pos] = i
			details = append(details, Details{PartOfSpeech: pos, Meanings: []string{}})
		}
		if meaning != "" {
			details[i].Meanings = append(details[i].Meanings, meaning)
		}
	}

	for _, part := range parts {
		if !part.IsObject() {
			continue
		}
		inherited := partName(part)
		for _, mean := range part.Get("means").Array() {
			pos := inherited
			if mean.IsObject() {
				if own, ok := stringField(mean, "part"); ok && own != "" {
					pos = own
				}
			}
			add(pos, meaningText(mean))
		}
	}
	return details
}

func meaningText(mean gjson.Result) string {
	switch {
	case mean.Type == gjson.String:
		return strings.TrimSpace(mean.String())
	case mean.IsObject():
		if text, ok := stringField(mean, "text"); ok && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		if text, ok := stringField(mean, "word_mean"); ok {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

func partName(part gjson.Result) string {
	if name, ok := stringField(part, "part"); ok && name != "" {
		return name
	}
	name, _ := stringField(part, "part_name")
	return name
}

func stringField(obj gjson.Result, key string) (string, bool) {
	value := obj.Get(key)
	if value.Type != gjson.String {
		return "", false
	}
	return value.String(), true
}
