package fanyi

import (
	"embed"
	"html"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var fragmentTemplates = template.Must(
	template.New("fragments").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/*.html"),
)

const (
	detailID              = "baiduDetail"
	genericFailureMessage = "Translation is unavailable right now."
)

// Renderer turns translations and failures into HTML fragments.
type Renderer struct {
	baseURL string
	icon    string
}

func NewRenderer(baseURL string) *Renderer {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Renderer{
		baseURL: baseURL,
		icon:    IconPath,
	}
}

type sourceView struct {
	URL  string
	Icon string
	Name string
}

type translationView struct {
	Translation
	VoiceURL string
	DetailID string
	Source   sourceView
}

type failureView struct {
	ProviderID string
	From       string
	Text       string
	Message    string
	Source     sourceView
}

// Render produces the result fragment. It never fails; a template error
// degrades to a minimal escaped fragment.
func (r *Renderer) Render(t Translation) string {
	view := translationView{
		Translation: t,
		VoiceURL:    VoiceURL(r.baseURL, t.From, t.Query),
		DetailID:    detailID,
		Source:      r.source(SourceURL(r.baseURL, t.From, t.To, t.Query)),
	}

	var b strings.Builder
	if err := fragmentTemplates.ExecuteTemplate(&b, "translation", view); err != nil {
		return `<div class="t-result">` + html.EscapeString(t.Query) + " &rarr; " + html.EscapeString(t.Text) + `</div>`
	}
	return b.String()
}

// RenderFailure produces the fragment shown instead of a translation.
func (r *Renderer) RenderFailure(providerID, sourceURL string, q Query, cause error) string {
	message := genericFailureMessage
	if cause != nil && strings.TrimSpace(cause.Error()) != "" {
		message = cause.Error()
	}
	view := failureView{
		ProviderID: providerID,
		From:       q.From,
		Text:       q.Text,
		Message:    message,
		Source:     r.source(sourceURL),
	}

	var b strings.Builder
	if err := fragmentTemplates.ExecuteTemplate(&b, "failure", view); err != nil {
		return `<div class="t-failure" data-provider="` + html.EscapeString(providerID) + `"><a href="` +
			html.EscapeString(sourceURL) + `">` + html.EscapeString(q.Text) + `</a></div>`
	}
	return b.String()
}

func (r *Renderer) source(url string) sourceView {
	return sourceView{
		URL:  url,
		Icon: r.icon,
		Name: providerMeta.Source,
	}
}
