package translation

import (
	"context"

	"horse.fit/fanyi/internal/fanyi"
	"horse.fit/fanyi/internal/globaltime"
)

const BaiduProviderName = "baidu"

// BaiduProvider exposes the Baidu Fanyi provider through the registry.
type BaiduProvider struct {
	provider *fanyi.Provider
}

func NewBaiduProvider(provider *fanyi.Provider) *BaiduProvider {
	return &BaiduProvider{provider: provider}
}

func (p *BaiduProvider) Name() string {
	return BaiduProviderName
}

func (p *BaiduProvider) Info() ProviderInfo {
	meta := p.provider.Meta()
	return ProviderInfo{
		Name:        BaiduProviderName,
		ID:          p.provider.ID(),
		DisplayName: meta.Name,
		Description: meta.Description,
		Source:      meta.Source,
		SourceURL:   meta.SourceURL,
		Author:      meta.Author,
		AuthorURL:   meta.AuthorURL,
	}
}

func (p *BaiduProvider) SupportedLanguages() []string {
	return p.provider.SupportedLanguages()
}

func (p *BaiduProvider) ProviderCode(code string) (string, bool) {
	return fanyi.BaiduCode(code)
}

func (p *BaiduProvider) CanTranslate(req TranslateRequest) bool {
	return p.provider.CanTranslate(toQuery(req))
}

// Translate only errors on cancellation. Provider failures come back as a
// response carrying the rendered failure fragment.
func (p *BaiduProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	started := globaltime.Now()
	result, err := p.provider.Lookup(ctx, toQuery(req))
	if err != nil {
		return nil, err
	}

	resp := &TranslateResponse{
		Fragment:     result.Fragment,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: BaiduProviderName,
		LatencyMs:    globaltime.Since(started).Milliseconds(),
		Attempts:     result.Attempts,
		Failure:      result.Err,
	}
	if result.Translation != nil {
		resp.Text = result.Translation.Text
		resp.Pronunciation = result.Translation.Pronunciation
		for _, detail := range result.Translation.Details {
			resp.Senses = append(resp.Senses, Sense{
				PartOfSpeech: detail.PartOfSpeech,
				Meanings:     detail.Meanings,
			})
		}
	}
	return resp, nil
}

func toQuery(req TranslateRequest) fanyi.Query {
	return fanyi.Query{
		From: req.SourceLang,
		To:   req.TargetLang,
		Text: req.Text,
	}
}
