// Package language normalizes the language tags hosts pass in.
package language

import "strings"

// NormalizeTag normalizes a language tag to lowercase and "-" separators.
// Returns an empty string when the value is blank or contains invalid characters.
func NormalizeTag(raw string) string {
	parts := splitTag(raw)
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "-")
}

// Canonical returns the conventional spelling of a tag: lowercase language,
// title-case script, uppercase region ("zh-cn" becomes "zh-CN").
func Canonical(raw string) string {
	parts := splitTag(raw)
	if len(parts) == 0 {
		return ""
	}
	for i := 1; i < len(parts); i++ {
		switch len(parts[i]) {
		case 2:
			parts[i] = strings.ToUpper(parts[i])
		case 4:
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "-")
}

func splitTag(raw string) []string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return nil
	}

	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	parts := strings.Split(trimmed, "-")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !isAlphaLower(part) {
			return nil
		}
		normalized = append(normalized, part)
	}
	return normalized
}

func isAlphaLower(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
