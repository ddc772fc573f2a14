package suggestcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nexa-app/nexa/internal/db"
	"github.com/nexa-app/nexa/internal/domain/recommend"
)

type mockSuggester struct {
	result []recommend.Suggestion
	err    error
	calls  int
}

func (m *mockSuggester) Suggest(_ context.Context, _ recommend.Prompt) ([]recommend.Suggestion, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedSuggester(t *testing.T, inner *mockSuggester) (*CachedSuggester, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cs := New(inner, ms, 10*time.Minute, nil, zap.NewNop())
	return cs, ms
}
