package fanyi

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderTranslationWithDetails(t *testing.T) {
	t.Parallel()

	translation, err := ParseTranslation([]byte(enZhDictPayload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fragment := NewRenderer("").Render(translation)

	for _, want := range []string{
		`<div class="t-result">`,
		`<em class="translation-lang">[en]</em><strong>apple</strong>`,
		`https://fanyi.baidu.com/gettts?spd=3&amp;source=web&amp;lan=en&amp;text=apple`,
		`<em class="translation-lang">[zh]</em>苹果`,
		`href="#baiduDetail"`,
		`id="baiduDetail"`,
		`<i class="translation-poc">n.</i><span class="translation-primary">苹果; 苹果树</span>`,
		`<i class="translation-poc">adj.</i>`,
		`href="https://fanyi.baidu.com/#en/zh/apple"`,
		`src="icons/plugin-com-baidu-fanyi.png"`,
	} {
		if !strings.Contains(fragment, want) {
			t.Fatalf("expected fragment to contain %q\n%s", want, fragment)
		}
	}
	if strings.Contains(fragment, "translation-pronunciation") {
		t.Fatalf("expected no pronunciation for a chinese target\n%s", fragment)
	}
}

func TestRenderEnglishTargetPronunciation(t *testing.T) {
	t.Parallel()

	payload := `{
  "trans_result": {"from": "zh", "to": "en", "data": [{"src": "苹果", "dst": "apple"}]},
  "dict_result": {"simple_means": {"symbols": [{"ph_am": "ˈæpəl", "ph_en": "ˈæpl"}]}}
}`
	translation, err := ParseTranslation([]byte(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	fragment := NewRenderer("").Render(translation)
	if !strings.Contains(fragment, `<span class="translation-pronunciation"><em>[ˈæpəl]</em></span>`) {
		t.Fatalf("expected american pronunciation\n%s", fragment)
	}
}

func TestRenderOmitsOptionalSections(t *testing.T) {
	t.Parallel()

	fragment := NewRenderer("").Render(Translation{From: "en", To: "zh", Query: "hello", Text: "你好"})

	if strings.Contains(fragment, "translation-pronunciation") {
		t.Fatalf("expected no pronunciation block\n%s", fragment)
	}
	if strings.Contains(fragment, "baiduDetail") {
		t.Fatalf("expected no detail list\n%s", fragment)
	}
	if !strings.Contains(fragment, "你好") {
		t.Fatalf("expected translated text\n%s", fragment)
	}
}

func TestRenderEscapesUntrustedText(t *testing.T) {
	t.Parallel()

	fragment := NewRenderer("").Render(Translation{
		From:    "en",
		To:      "zh",
		Query:   `<script>alert(1)</script>`,
		Text:    `<b>x</b>`,
		Details: []Details{{PartOfSpeech: "<i>", Meanings: []string{"<u>"}}},
	})

	if strings.Contains(fragment, "<script>") || strings.Contains(fragment, "<b>x</b>") || strings.Contains(fragment, "<u>") {
		t.Fatalf("expected markup to be escaped\n%s", fragment)
	}
	if !strings.Contains(fragment, "&lt;script&gt;") {
		t.Fatalf("expected escaped query\n%s", fragment)
	}
}

func TestRenderUsesConfiguredBaseURL(t *testing.T) {
	t.Parallel()

	fragment := NewRenderer("http://127.0.0.1:9000/").Render(Translation{From: "en", To: "zh", Query: "hi", Text: "嗨"})
	if !strings.Contains(fragment, `href="http://127.0.0.1:9000/#en/zh/hi"`) {
		t.Fatalf("expected deep link on configured host\n%s", fragment)
	}
}

func TestRenderFailureIncludesProviderAndDeepLink(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer("")
	query := Query{From: "en", To: "zh-CN", Text: "hello world"}
	link := SourceURL(DefaultBaseURL, "en", "zh", query.Text)

	for _, cause := range []error{nil, errors.New(""), ErrTranslationNotFound} {
		fragment := renderer.RenderFailure(ID, link, query, cause)
		if !strings.Contains(fragment, ID) {
			t.Fatalf("expected provider id in failure fragment\n%s", fragment)
		}
		if !strings.Contains(fragment, `href="https://fanyi.baidu.com/#en/zh/hello%20world"`) {
			t.Fatalf("expected deep link in failure fragment\n%s", fragment)
		}
		if !strings.Contains(fragment, "hello world") {
			t.Fatalf("expected query text in failure fragment\n%s", fragment)
		}
		if cause == nil || cause.Error() == "" {
			if !strings.Contains(fragment, genericFailureMessage) {
				t.Fatalf("expected generic failure message\n%s", fragment)
			}
			continue
		}
		if !strings.Contains(fragment, cause.Error()) {
			t.Fatalf("expected error text %q\n%s", cause.Error(), fragment)
		}
	}
}
