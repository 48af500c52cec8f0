package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		parts  KeyParts
		want   string
	}{
		{"prefix only", "index", KeyParts{}, "index"},
		{"slug and page", "category", KeyParts{Slug: "finance", Page: "1"}, "category_finance_1"},
		{"skips empty middle", "authors", KeyParts{Page: "2", Query: "ivan"}, "authors_2_ivan"},
		{"all parts", "x", KeyParts{Slug: "s", Page: "3", Type: "t", Query: "q", Year: "2024"}, "x_s_3_t_q_2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.prefix, tt.parts))
		})
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemoryStore(8)
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "category_finance_1", []byte("body"), 60*time.Second))
	require.NoError(t, s.Set(ctx, "article_x", []byte("forever"), 0))

	got, ok, err := s.Get(ctx, "category_finance_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "body", string(got))

	now = now.Add(60 * time.Second)

	_, ok, err = s.Get(ctx, "category_finance_1")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire at the TTL boundary")

	got, ok, _ = s.Get(ctx, "article_x")
	assert.True(t, ok)
	assert.Equal(t, "forever", string(got))
}

func TestMemoryStore_Eviction(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemoryStore(2)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, s.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, s.Set(ctx, "c", []byte("3"), 0))

	_, ok, _ := s.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemoryStore(2)
	require.NoError(t, err)

	buf := []byte("original")
	require.NoError(t, s.Set(ctx, "k", buf, 0))
	buf[0] = 'X'

	got, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "original", string(got))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	s := NewRedisStore(client)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "tag_war_2", []byte("cached"), time.Minute))
	got, ok, err := s.Get(ctx, "tag_war_2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cached", string(got))

	mr.FastForward(time.Minute)
	_, ok, err = s.Get(ctx, "tag_war_2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	s := NewRedisStore(client)
	_, ok, err := s.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, s.Set(context.Background(), "k", []byte("v"), time.Second))
}

type article struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemoryStore(4)
	require.NoError(t, err)

	require.NoError(t, SetJSON(ctx, s, "article_a", article{Slug: "a", Title: "A"}, 0))

	var got article
	ok, err := GetJSON(ctx, s, "article_a", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A", got.Title)

	ok, err = GetJSON(ctx, s, "article_missing", &got)
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "article_bad", []byte("{not json"), 0))
	ok, err = GetJSON(ctx, s, "article_bad", &got)
	assert.Error(t, err)
	assert.False(t, ok, "undecodable payload must read as a miss")
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("down")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("down")
}

func TestInstrument_PassesThrough(t *testing.T) {
	s := Instrument(failingStore{}, "test")
	_, ok, err := s.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.EqualError(t, err, "down")
	assert.EqualError(t, s.Set(context.Background(), "k", nil, 0), "down")
}

func TestNewStoreWithFallback(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()

	s, err := NewStoreWithFallback(ctx, nil, 16, log)
	require.NoError(t, err)
	_, isMemory := s.(*MemoryStore)
	assert.True(t, isMemory, "nil client should select the memory store")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s, err = NewStoreWithFallback(ctx, client, 16, log)
	require.NoError(t, err)
	_, isRedis := s.(*RedisStore)
	assert.True(t, isRedis, "reachable redis should be used")

	mr.Close()
	s, err = NewStoreWithFallback(ctx, client, 16, log)
	require.NoError(t, err)
	_, isMemory = s.(*MemoryStore)
	assert.True(t, isMemory, "unreachable redis should fall back to memory")
}
