package fanyi

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Transport performs the HTTP calls the provider needs and returns the body text.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (string, error)
	Post(ctx context.Context, url string, headers map[string]string, body string) (string, error)
}

// Acquirer obtains a fresh token from the service.
type Acquirer interface {
	Acquire(ctx context.Context) (Token, error)
}

var (
	pageTokenPattern = regexp.MustCompile(`token\s*:\s*['"]([0-9A-Za-z]+)['"]`)
	pageGTKPattern   = regexp.MustCompile(`gtk\s*[:=]\s*['"](\d+\.\d+)['"]`)
)

// PageAcquirer scrapes the token and gtk seed embedded in the landing page.
type PageAcquirer struct {
	transport Transport
	baseURL   string
	timeout   time.Duration
}

func NewPageAcquirer(transport Transport, baseURL string, timeout time.Duration) *PageAcquirer {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PageAcquirer{
		transport: transport,
		baseURL:   baseURL,
		timeout:   timeout,
	}
}

func (a *PageAcquirer) Acquire(ctx context.Context) (Token, error) {
	if a == nil || a.transport == nil {
		return Token{}, fmt.Errorf("%w: transport is not configured", ErrTokenAcquisition)
	}

	callCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	page, err := a.transport.Get(callCtx, a.baseURL+"/", nil)
	if err != nil {
		return Token{}, fmt.Errorf("%w: fetch landing page: %w", ErrTokenAcquisition, err)
	}
	return extractToken(page)
}

func extractToken(page string) (Token, error) {
	value := pageTokenPattern.FindStringSubmatch(page)
	if len(value) != 2 {
		return Token{}, fmt.Errorf("%w: token not found in landing page", ErrTokenAcquisition)
	}
	gtk := pageGTKPattern.FindStringSubmatch(page)
	if len(gtk) != 2 {
		return Token{}, fmt.Errorf("%w: gtk not found in landing page", ErrTokenAcquisition)
	}
	return Token{Secret: gtk[1], Value: value[1]}, nil
}
