package fanyi

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

// TokenKey is the durable key holding the serialized token.
const TokenKey = ID + ":token"

// KeyValue is the durable string store backing the token slot.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// TokenStore keeps the single cached token for one provider instance.
// With a durable store every Load reads through to it, so a token saved by
// another instance is seen on the next attempt. The in-memory slot only
// answers when the durable store has nothing usable.
type TokenStore struct {
	kv   KeyValue
	key  string
	slot atomic.Pointer[Token]
}

// NewTokenStore returns a store persisting to kv. A nil kv keeps the token in
// memory only.
func NewTokenStore(kv KeyValue) *TokenStore {
	return &TokenStore{
		kv:  kv,
		key: TokenKey,
	}
}

func (s *TokenStore) Key() string {
	return s.key
}

// Durable reports whether tokens outlive the process.
func (s *TokenStore) Durable() bool {
	return s.kv != nil
}

// Load returns the cached token. Absent and malformed entries report false.
// A durable read error is returned together with the in-memory token, if any.
func (s *TokenStore) Load(ctx context.Context) (Token, bool, error) {
	if s.kv == nil {
		return s.fromSlot()
	}

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		token, warm, _ := s.fromSlot()
		return token, warm, fmt.Errorf("read token %s: %w", s.key, err)
	}
	if ok {
		if token, valid := decodeToken(raw); valid {
			s.slot.Store(&token)
			return token, true, nil
		}
	}
	return s.fromSlot()
}

func (s *TokenStore) fromSlot() (Token, bool, error) {
	if cached := s.slot.Load(); cached != nil {
		return *cached, true, nil
	}
	return Token{}, false, nil
}

// Save replaces the cached token. The in-memory slot is updated before the
// durable write so the token is visible even if persisting fails.
func (s *TokenStore) Save(ctx context.Context, token Token) error {
	if !token.valid() {
		return fmt.Errorf("token value and secret are required")
	}
	s.slot.Store(&token)
	if s.kv == nil {
		return nil
	}
	if err := s.kv.Set(ctx, s.key, encodeToken(token)); err != nil {
		return fmt.Errorf("write token %s: %w", s.key, err)
	}
	return nil
}

func encodeToken(token Token) string {
	return token.Value + ":" + token.Secret
}

func decodeToken(raw string) (Token, bool) {
	value, secret, found := strings.Cut(strings.TrimSpace(raw), ":")
	if !found {
		return Token{}, false
	}
	token := Token{Value: value, Secret: secret}
	if !token.valid() {
		return Token{}, false
	}
	return token, true
}
