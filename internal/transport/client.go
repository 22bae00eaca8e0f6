// Package transport provides the HTTP client the provider talks to Baidu with.
package transport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

var ErrStatus = errors.New("unexpected http status")

type Options struct {
	UserAgent string
	Timeout   time.Duration
}

// Client wraps a resty client. Cookies set by the server are kept across
// calls, which the translate endpoint requires after the landing page visit.
type Client struct {
	http *resty.Client
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		http: resty.New().
			SetTimeout(opts.Timeout).
			SetHeader("User-Agent", userAgent),
	}
}

func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("GET %s: %w: %s", url, ErrStatus, resp.Status())
	}
	return resp.String(), nil
}

func (c *Client) Post(ctx context.Context, url string, headers map[string]string, body string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(body).
		Post(url)
	if err != nil {
		return "", fmt.Errorf("POST %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("POST %s: %w: %s", url, ErrStatus, resp.Status())
	}
	return resp.String(), nil
}
