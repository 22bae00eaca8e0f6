package fanyi

import "errors"

var (
	ErrIneligible          = errors.New("language pair is not supported")
	ErrTokenAcquisition    = errors.New("token acquisition failed")
	ErrNetwork             = errors.New("network request failed")
	ErrTranslationNotFound = errors.New("translation not found in response")
	ErrTranslationParsing  = errors.New("translation response could not be parsed")
	// ErrCanceled is the only error Translate returns to callers.
	ErrCanceled = errors.New("translation canceled")
)
