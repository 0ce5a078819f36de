package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/dmitrijs2005/recipebox/internal/client/storage"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func openStore(t *testing.T) *storage.DB {
	t.Helper()
	s, err := storage.Open(context.Background(), ":memory:", logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func putRaw(t *testing.T, s storage.KV, kv map[string]string) {
	t.Helper()
	values := make(map[string][]byte, len(kv))
	for k, v := range kv {
		values[k] = []byte(v)
	}
	require.NoError(t, s.Put(context.Background(), values))
}

func getRaw(t *testing.T, s storage.KV, key string) []byte {
	t.Helper()
	v, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

func persistedUser(t *testing.T, s storage.KV) *models.User {
	t.Helper()
	raw := getRaw(t, s, common.AuthUserKey)
	if raw == nil {
		return nil
	}
	var u models.User
	require.NoError(t, json.Unmarshal(raw, &u))
	return &u
}

// ---- fake storage ----

// faultyKV wraps a real store and injects errors.
type faultyKV struct {
	storage.KV
	getErr    error
	putErr    error
	deleteErr error
}

func (f *faultyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.KV.Get(ctx, key)
}

func (f *faultyKV) Put(ctx context.Context, values map[string][]byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.KV.Put(ctx, values)
}

func (f *faultyKV) Delete(ctx context.Context, keys ...string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.KV.Delete(ctx, keys...)
}
