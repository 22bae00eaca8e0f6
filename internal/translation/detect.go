package translation

import (
	"fmt"
	"strings"

	"horse.fit/fanyi/internal/langdetect"
)

// AutoDetect is the source language value that asks for detection.
const AutoDetect = "auto"

// ResolveSourceLanguage returns from unchanged unless it is empty or "auto",
// in which case the language of text is detected.
func ResolveSourceLanguage(from, text string) (string, error) {
	trimmed := strings.TrimSpace(from)
	if trimmed != "" && !strings.EqualFold(trimmed, AutoDetect) {
		return trimmed, nil
	}

	code := langdetect.Detect(text)
	if code == "" {
		return "", fmt.Errorf("could not detect source language")
	}
	return code, nil
}
