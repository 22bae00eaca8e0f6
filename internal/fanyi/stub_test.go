package fanyi

import (
	"context"
	"sync"
)

type stubResponse struct {
	body string
	err  error
}

type stubRequest struct {
	url     string
	headers map[string]string
	body    string
}

type stubTransport struct {
	mu         sync.Mutex
	page       stubResponse
	responses  []stubResponse
	gets       []stubRequest
	posts      []stubRequest
	beforePost func()
}

func (s *stubTransport) Get(_ context.Context, url string, headers map[string]string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets = append(s.gets, stubRequest{url: url, headers: headers})
	return s.page.body, s.page.err
}

func (s *stubTransport) Post(ctx context.Context, url string, headers map[string]string, body string) (string, error) {
	if s.beforePost != nil {
		s.beforePost()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, stubRequest{url: url, headers: headers, body: body})
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(s.responses) == 0 {
		return "", context.DeadlineExceeded
	}
	next := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return next.body, next.err
}

func (s *stubTransport) postCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

type stubAcquirer struct {
	mu    sync.Mutex
	token Token
	err   error
	calls int
}

func (a *stubAcquirer) Acquire(_ context.Context) (Token, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	return a.token, a.err
}

func (a *stubAcquirer) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

const (
	enZhPayload = `{"trans_result":{"from":"en","to":"zh","data":[{"src":"hello","dst":"你好"}]}}`

	enZhDictPayload = `{
  "trans_result": {"from": "en", "to": "zh", "data": [{"src": "apple", "dst": "苹果"}]},
  "dict_result": {"simple_means": {"symbols": [{
    "ph_am": "ˈæpəl",
    "ph_en": "ˈæpl",
    "parts": [
      {"part": "n.", "means": ["苹果", "苹果树"]},
      {"part": "adj.", "means": ["苹果的"]}
    ]
  }]}}
}`

	zhEnDictPayload = `{
  "trans_result": {"from": "zh", "to": "en", "data": [{"src": "打", "dst": "hit"}]},
  "dict_result": {"simple_means": {"symbols": [{
    "word_symbol": "dǎ",
    "parts": [
      {"part_name": "动词", "means": [{"text": "hit", "part": "verb"}, {"text": "beat", "part": "verb"}]},
      {"part_name": "介词", "means": [{"text": "from", "part": "prep."}]},
      {"part": "verb", "means": ["strike"]}
    ]
  }]}}
}`

	errorPayload = `{"errno":997,"from":"en","to":"zh","query":"hello"}`

	landingPage = `<html><head><script>
window.common = {
    token: '6482f137ca44f07742b2677f5ffd39e1',
    systime: '1576746224463'
};
window.gtk = "320305.131321201";
</script></head><body></body></html>`
)
