package fanyi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const DefaultTimeout = 10 * time.Second

type Options struct {
	BaseURL          string
	TokenTimeout     time.Duration
	TranslateTimeout time.Duration

	// Optional collaborators. Defaults are built from the transport and store.
	Acquirer Acquirer
	Signer   Signer
	Renderer *Renderer
}

// Provider translates queries through the Baidu web API.
type Provider struct {
	transport        Transport
	store            *TokenStore
	acquirer         Acquirer
	signer           Signer
	renderer         *Renderer
	logger           zerolog.Logger
	baseURL          string
	translateTimeout time.Duration
}

func NewProvider(transport Transport, store *TokenStore, logger zerolog.Logger, opts Options) *Provider {
	opts = withDefaults(opts)
	if store == nil {
		store = NewTokenStore(nil)
	}

	acquirer := opts.Acquirer
	if acquirer == nil {
		acquirer = NewPageAcquirer(transport, opts.BaseURL, opts.TokenTimeout)
	}
	signer := opts.Signer
	if signer == nil {
		signer = GTKSigner{}
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = NewRenderer(opts.BaseURL)
	}

	return &Provider{
		transport:        transport,
		store:            store,
		acquirer:         acquirer,
		signer:           signer,
		renderer:         renderer,
		logger:           logger.With().Str("provider", ID).Logger(),
		baseURL:          opts.BaseURL,
		translateTimeout: opts.TranslateTimeout,
	}
}

func withDefaults(opts Options) Options {
	opts.BaseURL = strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.TokenTimeout <= 0 {
		opts.TokenTimeout = DefaultTimeout
	}
	if opts.TranslateTimeout <= 0 {
		opts.TranslateTimeout = DefaultTimeout
	}
	return opts
}

func (p *Provider) ID() string {
	return ID
}

func (p *Provider) Meta() Meta {
	return providerMeta
}

func (p *Provider) SupportedLanguages() []string {
	return SupportedLanguages()
}

// Store exposes the token store so hosts can inspect or refresh the token.
func (p *Provider) Store() *TokenStore {
	return p.store
}

// CanTranslate reports whether both languages are supported and distinct.
func (p *Provider) CanTranslate(q Query) bool {
	_, _, ok := baiduPair(q)
	return ok
}

func baiduPair(q Query) (string, string, bool) {
	from, ok := BaiduCode(q.From)
	if !ok {
		return "", "", false
	}
	to, ok := BaiduCode(q.To)
	if !ok {
		return "", "", false
	}
	if from == to {
		return "", "", false
	}
	return from, to, true
}

// Translate returns the HTML fragment for q. Provider failures are rendered
// into the fragment; the only error returned is ErrCanceled.
func (p *Provider) Translate(ctx context.Context, q Query) (string, error) {
	result, err := p.Lookup(ctx, q)
	if err != nil {
		return "", err
	}
	return result.Fragment, nil
}

// RefreshToken acquires a fresh token and stores it.
func (p *Provider) RefreshToken(ctx context.Context) (Token, error) {
	token, err := p.acquirer.Acquire(ctx)
	if err != nil {
		return Token{}, err
	}
	if err := p.store.Save(ctx, token); err != nil {
		return token, err
	}
	return token, nil
}

type lookupState int

const (
	stateCheckEligibility lookupState = iota
	stateLoadToken
	stateCachedAttempt
	stateFreshAttempt
	stateSuccess
	stateFailure
)

type attempt struct {
	translation Translation
	err         error
}

// Lookup runs one translation and reports how it went. A cached token gets one
// attempt; any failure escalates to a single attempt with a fresh token.
func (p *Provider) Lookup(ctx context.Context, q Query) (Result, error) {
	var (
		state    = stateCheckEligibility
		result   Result
		token    Token
		last     attempt
		from, to string
	)

	for {
		if err := canceled(ctx); err != nil {
			return Result{}, err
		}

		switch state {
		case stateCheckEligibility:
			var ok bool
			from, to, ok = baiduPair(q)
			if !ok {
				last = attempt{err: fmt.Errorf("%w: %q to %q", ErrIneligible, q.From, q.To)}
				state = stateFailure
				continue
			}
			state = stateLoadToken

		case stateLoadToken:
			cached, ok, err := p.store.Load(ctx)
			if err != nil {
				p.logger.Warn().Err(err).Msg("token store read failed")
			}
			if ok {
				p.logger.Debug().Msg("token cache hit")
				token = cached
				state = stateCachedAttempt
				continue
			}
			p.logger.Debug().Msg("token cache miss")
			state = stateFreshAttempt

		case stateCachedAttempt:
			result.Attempts++
			last = p.attempt(ctx, token, from, to, q.Text)
			if last.err == nil {
				state = stateSuccess
				continue
			}
			p.logger.Warn().Err(last.err).Msg("cached token attempt failed")
			state = stateFreshAttempt

		case stateFreshAttempt:
			result.FreshToken = true
			fresh, err := p.acquirer.Acquire(ctx)
			if err != nil {
				last = attempt{err: err}
				state = stateFailure
				continue
			}
			p.logger.Info().Msg("acquired fresh token")
			if err := p.store.Save(ctx, fresh); err != nil {
				p.logger.Warn().Err(err).Msg("token store write failed")
			}
			result.Attempts++
			last = p.attempt(ctx, fresh, from, to, q.Text)
			if last.err == nil {
				state = stateSuccess
			} else {
				state = stateFailure
			}

		case stateSuccess:
			translation := last.translation
			result.Translation = &translation
			result.Fragment = p.renderer.Render(translation)
			return result, nil

		case stateFailure:
			p.logger.Warn().Err(last.err).Str("from", q.From).Str("to", q.To).Msg("translation failed")
			result.Err = last.err
			result.Fragment = p.renderer.RenderFailure(ID, p.sourceURL(q), q, last.err)
			return result, nil
		}
	}
}

func (p *Provider) attempt(ctx context.Context, token Token, from, to, text string) attempt {
	callCtx, cancel := context.WithTimeout(ctx, p.translateTimeout)
	defer cancel()

	body := encodeForm(from, to, text, p.signer.Sign(text, token.Secret), token.Value)
	headers := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	raw, err := p.transport.Post(callCtx, p.baseURL+translatePath, headers, body)
	if err != nil {
		return attempt{err: fmt.Errorf("%w: %w", ErrNetwork, err)}
	}

	translation, err := ParseTranslation([]byte(raw))
	if err != nil {
		return attempt{err: err}
	}
	return attempt{translation: translation}
}

// encodeForm keeps the field order the web client sends.
func encodeForm(from, to, text, sign, token string) string {
	var b strings.Builder
	b.WriteString("from=")
	b.WriteString(url.QueryEscape(from))
	b.WriteString("&to=")
	b.WriteString(url.QueryEscape(to))
	b.WriteString("&query=")
	b.WriteString(url.QueryEscape(text))
	b.WriteString("&simple_means_flag=")
	b.WriteString(simpleMeansFlag)
	b.WriteString("&sign=")
	b.WriteString(url.QueryEscape(sign))
	b.WriteString("&token=")
	b.WriteString(url.QueryEscape(token))
	return b.String()
}

// sourceURL builds the deep link with Baidu codes, falling back to the host
// codes when a language is unknown.
func (p *Provider) sourceURL(q Query) string {
	from, ok := BaiduCode(q.From)
	if !ok {
		from = q.From
	}
	to, ok := BaiduCode(q.To)
	if !ok {
		to = q.To
	}
	return SourceURL(p.baseURL, from, to, q.Text)
}

func canceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	return nil
}
