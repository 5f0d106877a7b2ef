package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	s := New(time.Minute)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("seller:profile:1", "payload", TagSeller)
	v, ok := s.Get("seller:profile:1")
	require.True(t, ok)
	assert.Equal(t, "payload", v)
}

func TestStore_Expiry(t *testing.T) {
	s := New(5 * time.Millisecond)
	s.Set("k", 1, TagProduct)

	_, ok := s.Get("k")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = s.Get("k")
	assert.False(t, ok)
}

func TestStore_InvalidateByTag(t *testing.T) {
	s := New(time.Minute)
	s.Set("seller:profile:1", "a", TagSeller)
	s.Set("public:seller:1:", "b", TagSeller, TagProduct)
	s.Set("cart:9", "c", TagCart)

	s.Invalidate(TagProduct)

	_, ok := s.Get("seller:profile:1")
	assert.True(t, ok, "untagged entry must survive")
	_, ok = s.Get("public:seller:1:")
	assert.False(t, ok, "entry with any matching tag must be dropped")
	_, ok = s.Get("cart:9")
	assert.True(t, ok)

	s.Invalidate(TagBuyer, TagSeller, TagAdmin)
	_, ok = s.Get("seller:profile:1")
	assert.False(t, ok)
}

func TestStore_GetOrLoad(t *testing.T) {
	s := New(time.Minute)
	calls := 0
	load := func(ctx context.Context) (interface{}, error) {
		calls++
		return "loaded", nil
	}

	v, src, err := s.GetOrLoad(context.Background(), "k", []string{TagSeller}, load)
	require.NoError(t, err)
	assert.Equal(t, "loaded", v)
	assert.Equal(t, SourceDB, src)

	v, src, err = s.GetOrLoad(context.Background(), "k", []string{TagSeller}, load)
	require.NoError(t, err)
	assert.Equal(t, "loaded", v)
	assert.Equal(t, SourceCache, src)
	assert.Equal(t, 1, calls, "second read must not hit the loader")

	s.Invalidate(TagSeller)
	_, src, err = s.GetOrLoad(context.Background(), "k", []string{TagSeller}, load)
	require.NoError(t, err)
	assert.Equal(t, SourceDB, src)
	assert.Equal(t, 2, calls)
}

func TestStore_GetOrLoadError(t *testing.T) {
	s := New(time.Minute)
	boom := errors.New("db down")

	_, _, err := s.GetOrLoad(context.Background(), "k", nil, func(ctx context.Context) (interface{}, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok := s.Get("k")
	assert.False(t, ok, "failed load must not be cached")
}

type fakeSeller struct {
	Name   string `json:"name"`
	Rating float64 `json:"rating"`
}

func TestUnwrap_WrappedAndRawAreEquivalent(t *testing.T) {
	raw := []byte(`{"name":"Malabar Spice Exports","rating":4.6}`)
	wrapped := []byte(`{"source":"cache","data":{"name":"Malabar Spice Exports","rating":4.6}}`)

	var fromRaw, fromWrapped fakeSeller

	src, err := Unwrap(raw, &fromRaw)
	require.NoError(t, err)
	assert.Equal(t, Source(""), src)

	src, err = Unwrap(wrapped, &fromWrapped)
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)

	assert.Equal(t, fromRaw, fromWrapped)
}

func TestUnwrap_DBSource(t *testing.T) {
	body, err := json.Marshal(Envelope{Source: SourceDB, Data: fakeSeller{Name: "x"}})
	require.NoError(t, err)

	var got fakeSeller
	src, err := Unwrap(body, &got)
	require.NoError(t, err)
	assert.Equal(t, SourceDB, src)
	assert.Equal(t, "x", got.Name)
}

func TestUnwrap_ObjectWithSourceFieldButNoData(t *testing.T) {
	// A payload that happens to carry a "source" key of its own is not an
	// envelope unless "data" is present too.
	raw := []byte(`{"source":"import","name":"y"}`)

	var got struct {
		Source string `json:"source"`
		Name   string `json:"name"`
	}
	src, err := Unwrap(raw, &got)
	require.NoError(t, err)
	assert.Equal(t, Source(""), src)
	assert.Equal(t, "import", got.Source)
}

func TestUnwrap_InvalidJSON(t *testing.T) {
	var got fakeSeller
	_, err := Unwrap([]byte(`{nope`), &got)
	assert.Error(t, err)
}
