package fanyi

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type mapKV struct {
	mu     sync.Mutex
	values map[string]string
	gets   int
	sets   int
	getErr error
	setErr error
}

func newMapKV() *mapKV {
	return &mapKV{values: map[string]string{}}
}

func (m *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return "", false, m.getErr
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *mapKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mapKV) value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

func TestTokenStoreSavePersistsSerializedToken(t *testing.T) {
	t.Parallel()

	kv := newMapKV()
	store := NewTokenStore(kv)
	token := Token{Secret: testSeed, Value: "abc123"}

	if err := store.Save(context.Background(), token); err != nil {
		t.Fatalf("save token: %v", err)
	}
	if got := kv.value(TokenKey); got != "abc123:"+testSeed {
		t.Fatalf("unexpected persisted value: %q", got)
	}

	loaded, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("load token: ok=%v err=%v", ok, err)
	}
	if loaded != token {
		t.Fatalf("unexpected loaded token: %+v", loaded)
	}
	if kv.gets != 1 {
		t.Fatalf("expected load to read the durable store, got %d reads", kv.gets)
	}

	if err := store.Save(context.Background(), token); err != nil {
		t.Fatalf("save token twice: %v", err)
	}
	if got := kv.value(TokenKey); got != "abc123:"+testSeed {
		t.Fatalf("unexpected value after idempotent save: %q", got)
	}
}

func TestTokenStoreLoadsFromDurableStore(t *testing.T) {
	t.Parallel()

	kv := newMapKV()
	kv.values[TokenKey] = "deadbeef:" + testSeed
	store := NewTokenStore(kv)

	token, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("load token: ok=%v err=%v", ok, err)
	}
	if token.Value != "deadbeef" || token.Secret != testSeed {
		t.Fatalf("unexpected token: %+v", token)
	}

	if _, _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if kv.gets != 2 {
		t.Fatalf("unexpected durable reads: got %d want 2", kv.gets)
	}
}

func TestTokenStoreSeesTokenSavedByAnotherInstance(t *testing.T) {
	t.Parallel()

	shared := newMapKV()
	shared.values[TokenKey] = encodeToken(Token{Secret: "1.1", Value: "stale"})
	first := NewTokenStore(shared)
	second := NewTokenStore(shared)

	if token, ok, err := second.Load(context.Background()); err != nil || !ok || token.Value != "stale" {
		t.Fatalf("warm second store: %+v ok=%v err=%v", token, ok, err)
	}

	fresh := Token{Secret: testSeed, Value: "fresh"}
	if err := first.Save(context.Background(), fresh); err != nil {
		t.Fatalf("save fresh token: %v", err)
	}

	token, ok, err := second.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("reload second store: ok=%v err=%v", ok, err)
	}
	if token != fresh {
		t.Fatalf("expected overwrite to be visible, got %+v", token)
	}
}

func TestTokenStoreFallsBackToSlotOnReadError(t *testing.T) {
	t.Parallel()

	kv := newMapKV()
	store := NewTokenStore(kv)
	token := Token{Secret: testSeed, Value: "abc"}
	if err := store.Save(context.Background(), token); err != nil {
		t.Fatalf("save token: %v", err)
	}

	kv.getErr = errors.New("connection refused")
	loaded, ok, err := store.Load(context.Background())
	if err == nil {
		t.Fatalf("expected read error to be reported")
	}
	if !ok || loaded != token {
		t.Fatalf("expected in-memory token on read error, got %+v ok=%v", loaded, ok)
	}
	if !store.Durable() || NewTokenStore(nil).Durable() {
		t.Fatalf("unexpected durability report")
	}
}

func TestTokenStoreTreatsMalformedValuesAsAbsent(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "nocolon", ":" + testSeed, "value:", " : "} {
		kv := newMapKV()
		kv.values[TokenKey] = raw
		store := NewTokenStore(kv)

		_, ok, err := store.Load(context.Background())
		if err != nil {
			t.Fatalf("load %q: %v", raw, err)
		}
		if ok {
			t.Fatalf("expected %q to be treated as absent", raw)
		}
	}
}

func TestTokenStoreReportsReadErrors(t *testing.T) {
	t.Parallel()

	kv := newMapKV()
	kv.getErr = errors.New("connection refused")
	store := NewTokenStore(kv)

	_, ok, err := store.Load(context.Background())
	if err == nil {
		t.Fatalf("expected read error")
	}
	if ok {
		t.Fatalf("expected no token on read error")
	}
}

func TestTokenStoreKeepsSlotWhenWriteFails(t *testing.T) {
	t.Parallel()

	kv := newMapKV()
	kv.setErr = errors.New("read only")
	store := NewTokenStore(kv)
	token := Token{Secret: testSeed, Value: "abc"}

	if err := store.Save(context.Background(), token); err == nil {
		t.Fatalf("expected write error")
	}
	loaded, ok, _ := store.Load(context.Background())
	if !ok || loaded != token {
		t.Fatalf("expected in-memory slot to hold token, got %+v ok=%v", loaded, ok)
	}
}

func TestTokenStoreRejectsIncompleteToken(t *testing.T) {
	t.Parallel()

	store := NewTokenStore(nil)
	if err := store.Save(context.Background(), Token{Value: "abc"}); err == nil {
		t.Fatalf("expected error for token without secret")
	}
	if _, ok, _ := store.Load(context.Background()); ok {
		t.Fatalf("expected empty store")
	}
}
