package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"horse.fit/fanyi/internal/translation"
)

type stubProvider struct {
	name      string
	languages []string
	failure   error
	err       error
	calls     []translation.TranslateRequest
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Info() translation.ProviderInfo {
	return translation.ProviderInfo{Name: p.name, ID: "plugin-" + p.name, DisplayName: strings.ToUpper(p.name)}
}

func (p *stubProvider) SupportedLanguages() []string { return p.languages }

func (p *stubProvider) CanTranslate(req translation.TranslateRequest) bool {
	from, to := false, false
	for _, code := range p.languages {
		from = from || code == req.SourceLang
		to = to || code == req.TargetLang
	}
	return from && to && req.SourceLang != req.TargetLang
}

func (p *stubProvider) Translate(_ context.Context, req translation.TranslateRequest) (*translation.TranslateResponse, error) {
	p.calls = append(p.calls, req)
	if p.err != nil {
		return nil, p.err
	}
	resp := &translation.TranslateResponse{
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: p.name,
		Attempts:     1,
	}
	if p.failure != nil {
		resp.Failure = p.failure
		resp.Fragment = `<div class="t-failure">` + p.failure.Error() + `</div>`
		return resp, nil
	}
	resp.Text = "你好"
	resp.Fragment = `<div class="t-result">你好</div>`
	return resp, nil
}

func newTestServer(t *testing.T, provider *stubProvider, opts Options) *Server {
	t.Helper()

	registry := translation.NewRegistry(provider.name)
	if err := registry.Register(provider); err != nil {
		t.Fatalf("register provider: %v", err)
	}
	return NewServer(registry, zerolog.Nop(), opts)
}

func newStub() *stubProvider {
	return &stubProvider{name: "baidu", languages: []string{"en", "zh-CN", "ja"}}
}

func doRequest(t *testing.T, server *Server, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeJSend(t *testing.T, rec *httptest.ResponseRecorder) (string, map[string]any) {
	t.Helper()

	var resp struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp.Status, resp.Data
}

func TestNewServerDefaults(t *testing.T) {
	t.Parallel()

	server := NewServer(nil, zerolog.Nop(), Options{APIKeyHash: "  "})
	if server.opts.Host != "0.0.0.0" || server.opts.Port != 8090 {
		t.Fatalf("unexpected address defaults: %+v", server.opts)
	}
	if server.opts.ReadTimeout != 10*time.Second || server.opts.WriteTimeout != 30*time.Second || server.opts.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout defaults: %+v", server.opts)
	}
	if len(server.opts.CORSAllowedOrigins) != 1 || server.opts.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors defaults: %v", server.opts.CORSAllowedOrigins)
	}
	if server.opts.APIKeyHash != "" {
		t.Fatalf("expected blank api key hash to be trimmed")
	}
	if err := server.Start(context.Background()); err == nil {
		t.Fatalf("expected start without registry to fail")
	}
}

func TestHealthReportsDependencyChecks(t *testing.T) {
	t.Parallel()

	healthy := newTestServer(t, newStub(), Options{HealthChecks: map[string]HealthCheck{
		"token_store": func(context.Context) error { return nil },
	}})
	rec := doRequest(t, healthy, http.MethodGet, "/api/v1/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	status, data := decodeJSend(t, rec)
	if status != "success" || data["service"] != "fanyi" {
		t.Fatalf("unexpected health payload: %s", rec.Body.String())
	}

	unhealthy := newTestServer(t, newStub(), Options{HealthChecks: map[string]HealthCheck{
		"token_store": func(context.Context) error { return errors.New("connection refused") },
	}})
	rec = doRequest(t, unhealthy, http.MethodGet, "/api/v1/health", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("health response leaked error detail: %s", rec.Body.String())
	}
}

func TestProvidersAndLanguages(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, newStub(), Options{})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/providers", "", nil)
	status, data := decodeJSend(t, rec)
	if rec.Code != http.StatusOK || status != "success" || data["default"] != "baidu" {
		t.Fatalf("unexpected providers response: %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodGet, "/api/v1/languages", "", nil)
	_, data = decodeJSend(t, rec)
	items, ok := data["items"].([]any)
	if rec.Code != http.StatusOK || !ok || len(items) != 3 {
		t.Fatalf("unexpected languages response: %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodGet, "/api/v1/languages?provider=deepl", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected unknown provider to be 404, got %d", rec.Code)
	}
}

func TestCheckReportsPairSupport(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, newStub(), Options{})

	rec := doRequest(t, server, http.MethodGet, "/api/v1/check?from=en&to=zh-CN", "", nil)
	_, data := decodeJSend(t, rec)
	if rec.Code != http.StatusOK || data["eligible"] != true {
		t.Fatalf("expected supported pair: %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodGet, "/api/v1/check?from=en&to=tr", "", nil)
	_, data = decodeJSend(t, rec)
	if rec.Code != http.StatusOK || data["eligible"] != false {
		t.Fatalf("expected unsupported pair: %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodGet, "/api/v1/check?from=en", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected missing target to be rejected, got %d", rec.Code)
	}
}

func TestTranslateReturnsResult(t *testing.T) {
	t.Parallel()

	provider := newStub()
	server := newTestServer(t, provider, Options{})

	rec := doRequest(t, server, http.MethodPost, "/api/v1/translate", `{"from":"en","to":"zh-CN","text":"hello"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	status, data := decodeJSend(t, rec)
	if status != "success" || data["ok"] != true || data["text"] != "你好" || data["provider"] != "baidu" {
		t.Fatalf("unexpected translate payload: %s", rec.Body.String())
	}
	if len(provider.calls) != 1 || provider.calls[0].Text != "hello" || provider.calls[0].TargetLang != "zh-CN" {
		t.Fatalf("unexpected provider calls: %+v", provider.calls)
	}
}

func TestTranslateProviderFailureIsStillSuccessEnvelope(t *testing.T) {
	t.Parallel()

	provider := newStub()
	provider.failure = errors.New("translation not found")
	server := newTestServer(t, provider, Options{})

	rec := doRequest(t, server, http.MethodPost, "/api/v1/translate", `{"from":"en","to":"ja","text":"hello"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	_, data := decodeJSend(t, rec)
	if data["ok"] != false || data["error"] != "translation not found" {
		t.Fatalf("expected failure details: %s", rec.Body.String())
	}
	if fragment, _ := data["fragment"].(string); !strings.Contains(fragment, "t-failure") {
		t.Fatalf("expected failure fragment: %s", rec.Body.String())
	}
}

func TestTranslateRejectsInvalidRequests(t *testing.T) {
	t.Parallel()

	provider := newStub()
	server := newTestServer(t, provider, Options{})

	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "empty body", body: "", want: http.StatusBadRequest},
		{name: "missing target", body: `{"from":"en","text":"hello"}`, want: http.StatusBadRequest},
		{name: "unknown field", body: `{"to":"ja","text":"hello","extra":1}`, want: http.StatusBadRequest},
		{name: "blank text", body: `{"from":"en","to":"ja","text":"   "}`, want: http.StatusBadRequest},
		{name: "trailing content", body: `{"from":"en","to":"ja","text":"a"} {}`, want: http.StatusBadRequest},
		{name: "unknown provider", body: `{"provider":"deepl","from":"en","to":"ja","text":"a"}`, want: http.StatusNotFound},
		{name: "unsupported pair", body: `{"from":"en","to":"tr","text":"a"}`, want: http.StatusUnprocessableEntity},
		{name: "same language", body: `{"from":"en","to":"en","text":"a"}`, want: http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		rec := doRequest(t, server, http.MethodPost, "/api/v1/translate", tc.body, nil)
		if rec.Code != tc.want {
			t.Fatalf("%s: unexpected status: got %d want %d (%s)", tc.name, rec.Code, tc.want, rec.Body.String())
		}
	}
	if len(provider.calls) != 0 {
		t.Fatalf("expected no provider calls, got %+v", provider.calls)
	}
}

func TestTranslateCanceled(t *testing.T) {
	t.Parallel()

	provider := newStub()
	provider.err = context.Canceled
	server := newTestServer(t, provider, Options{})

	rec := doRequest(t, server, http.MethodPost, "/api/v1/translate", `{"from":"en","to":"ja","text":"hello"}`, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
}

func TestTranslateFragmentServesHTML(t *testing.T) {
	t.Parallel()

	provider := newStub()
	server := newTestServer(t, provider, Options{})

	query := url.Values{"from": {"en"}, "to": {"zh-CN"}, "text": {"hello"}}
	rec := doRequest(t, server, http.MethodGet, "/api/v1/translate?"+query.Encode(), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("unexpected content type: %q", got)
	}
	if rec.Header().Get("X-Translation-Ok") != "true" || !strings.Contains(rec.Body.String(), "t-result") {
		t.Fatalf("unexpected fragment response: %v %s", rec.Header(), rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodGet, "/api/v1/translate?to=ja", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected missing text to be rejected, got %d", rec.Code)
	}
}

func TestAPIKeyProtectsRoutes(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash key: %v", err)
	}
	server := newTestServer(t, newStub(), Options{APIKeyHash: string(hash)})

	if rec := doRequest(t, server, http.MethodGet, "/api/v1/providers", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected missing key to be rejected, got %d", rec.Code)
	}
	wrong := http.Header{apiKeyHeader: {"nope"}}
	if rec := doRequest(t, server, http.MethodGet, "/api/v1/providers", "", wrong); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected wrong key to be rejected, got %d", rec.Code)
	}
	right := http.Header{apiKeyHeader: {"secret-key"}}
	if rec := doRequest(t, server, http.MethodGet, "/api/v1/providers", "", right); rec.Code != http.StatusOK {
		t.Fatalf("expected valid key to pass, got %d", rec.Code)
	}
	if rec := doRequest(t, server, http.MethodGet, "/api/v1/health", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected health to stay public, got %d", rec.Code)
	}
}

func TestUnknownAPIRouteUsesJSend(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, newStub(), Options{})
	rec := doRequest(t, server, http.MethodGet, "/api/v1/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if status, _ := decodeJSend(t, rec); status != "fail" {
		t.Fatalf("expected jsend fail envelope: %s", rec.Body.String())
	}
}
