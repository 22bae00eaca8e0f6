package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"horse.fit/fanyi/internal/translation"
)

const maxRequestBodyBytes = 64 << 10

type translateResult struct {
	Provider      string              `json:"provider"`
	From          string              `json:"from"`
	To            string              `json:"to"`
	OK            bool                `json:"ok"`
	Text          string              `json:"text,omitempty"`
	Pronunciation string              `json:"pronunciation,omitempty"`
	Senses        []translation.Sense `json:"senses,omitempty"`
	Fragment      string              `json:"fragment"`
	Attempts      int                 `json:"attempts"`
	LatencyMs     int64               `json:"latency_ms"`
	Error         string              `json:"error,omitempty"`
}

type pairCheck struct {
	Provider string `json:"provider"`
	From     string `json:"from"`
	To       string `json:"to"`
	Eligible bool   `json:"eligible"`
}

func (s *Server) handleProviders(c echo.Context) error {
	return success(c, map[string]any{
		"default": s.registry.DefaultProvider(),
		"items":   s.registry.Infos(),
	})
}

func (s *Server) handleLanguages(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("provider"))
	if name == "" {
		return success(c, map[string]any{
			"items": translation.TranslationLanguageOptions(s.registry),
		})
	}

	provider, err := s.registry.Provider(name)
	if err != nil {
		return failNotFound(c, "Translation provider not found")
	}
	return success(c, map[string]any{
		"provider": provider.Name(),
		"items":    translation.ProviderLanguageOptions(provider),
	})
}

func (s *Server) handleCheck(c echo.Context) error {
	provider, err := s.registry.Provider(c.QueryParam("provider"))
	if err != nil {
		return failNotFound(c, "Translation provider not found")
	}

	to := strings.TrimSpace(c.QueryParam("to"))
	if to == "" {
		return failValidation(c, map[string]string{"to": "Target language is required"})
	}
	from, err := translation.ResolveSourceLanguage(c.QueryParam("from"), c.QueryParam("text"))
	if err != nil {
		return failValidation(c, map[string]string{"from": "Source language is required or must be detectable from text"})
	}

	req := translation.TranslateRequest{SourceLang: from, TargetLang: to}
	return success(c, pairCheck{
		Provider: provider.Name(),
		From:     from,
		To:       to,
		Eligible: provider.CanTranslate(req),
	})
}

func (s *Server) handleTranslate(c echo.Context) error {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxRequestBodyBytes+1))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Failed to read request body", nil)
	}
	if len(raw) > maxRequestBodyBytes {
		return fail(c, http.StatusRequestEntityTooLarge, "Request body is too large", nil)
	}

	body, err := decodeTranslateRequest(raw)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	provider, err := s.registry.Provider(body.Provider)
	if err != nil {
		return failNotFound(c, "Translation provider not found")
	}

	from, err := translation.ResolveSourceLanguage(body.From, body.Text)
	if err != nil {
		return failValidation(c, map[string]string{"from": "Source language could not be detected"})
	}

	req := translation.TranslateRequest{
		Text:       body.Text,
		SourceLang: from,
		TargetLang: strings.TrimSpace(body.To),
	}
	if !provider.CanTranslate(req) {
		return fail(c, http.StatusUnprocessableEntity, "Language pair is not supported", pairCheck{
			Provider: provider.Name(),
			From:     req.SourceLang,
			To:       req.TargetLang,
		})
	}

	resp, err := s.translate(c.Request().Context(), provider, req)
	if err != nil {
		return unavailable(c, "Translation was canceled")
	}

	result := translateResult{
		Provider:      resp.ProviderName,
		From:          resp.SourceLang,
		To:            resp.TargetLang,
		OK:            resp.OK(),
		Text:          resp.Text,
		Pronunciation: resp.Pronunciation,
		Senses:        resp.Senses,
		Fragment:      resp.Fragment,
		Attempts:      resp.Attempts,
		LatencyMs:     resp.LatencyMs,
	}
	if resp.Failure != nil {
		result.Error = resp.Failure.Error()
	}
	return success(c, result)
}

// handleTranslateFragment serves the rendered fragment directly. Ineligible
// pairs and provider failures still produce a failure fragment.
func (s *Server) handleTranslateFragment(c echo.Context) error {
	provider, err := s.registry.Provider(c.QueryParam("provider"))
	if err != nil {
		return failNotFound(c, "Translation provider not found")
	}

	text := c.QueryParam("text")
	to := strings.TrimSpace(c.QueryParam("to"))
	fieldErrors := map[string]string{}
	if strings.TrimSpace(text) == "" {
		fieldErrors["text"] = "Text is required"
	}
	if to == "" {
		fieldErrors["to"] = "Target language is required"
	}
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}

	from, err := translation.ResolveSourceLanguage(c.QueryParam("from"), text)
	if err != nil {
		return failValidation(c, map[string]string{"from": "Source language could not be detected"})
	}

	resp, err := s.translate(c.Request().Context(), provider, translation.TranslateRequest{
		Text:       text,
		SourceLang: from,
		TargetLang: to,
	})
	if err != nil {
		return unavailable(c, "Translation was canceled")
	}
	c.Response().Header().Set("X-Translation-Ok", strconv.FormatBool(resp.OK()))
	return c.HTML(http.StatusOK, resp.Fragment)
}

func (s *Server) translate(ctx context.Context, provider translation.Provider, req translation.TranslateRequest) (*translation.TranslateResponse, error) {
	resp, err := provider.Translate(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.Info().Str("provider", provider.Name()).Msg("translation canceled by client")
		} else {
			s.logger.Error().Err(err).Str("provider", provider.Name()).Msg("translation failed")
		}
		return nil, err
	}
	if resp.Failure != nil {
		s.logger.Warn().
			Err(resp.Failure).
			Str("provider", resp.ProviderName).
			Str("from", req.SourceLang).
			Str("to", req.TargetLang).
			Int("attempts", resp.Attempts).
			Msg("translation returned failure fragment")
	}
	return resp, nil
}
