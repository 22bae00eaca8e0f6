package translation

import "context"

// Provider translates text between languages and renders a display fragment.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	CanTranslate(req TranslateRequest) bool
	Name() string
	Info() ProviderInfo
	SupportedLanguages() []string
}

// TranslateRequest describes one translation request.
type TranslateRequest struct {
	Text       string
	SourceLang string // host code (for example: "en", "zh-CN")
	TargetLang string
}

// TranslateResponse contains the translated text, the rendered fragment and
// provider metadata. Failure is set when the provider rendered a failure
// fragment instead of a translation.
type TranslateResponse struct {
	Text          string
	Pronunciation string
	Senses        []Sense
	Fragment      string
	SourceLang    string
	TargetLang    string
	ProviderName  string
	LatencyMs     int64
	Attempts      int
	Failure       error
}

// Sense is one dictionary entry: a part of speech and its meanings.
type Sense struct {
	PartOfSpeech string   `json:"part_of_speech"`
	Meanings     []string `json:"meanings"`
}

func (r *TranslateResponse) OK() bool {
	return r != nil && r.Failure == nil
}

// ProviderInfo is the descriptive record a provider exposes to hosts.
type ProviderInfo struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Source      string `json:"source"`
	SourceURL   string `json:"source_url"`
	Author      string `json:"author"`
	AuthorURL   string `json:"author_url"`
}
