package indexcache

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenWith(sqlite.Open(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestHashContent(t *testing.T) {
	h1 := HashContent([]byte("x = 1\n"))
	h2 := HashContent([]byte("x = 2\n"))
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, h1, HashContent([]byte("x = 1\n")))
}

func TestGetMiss(t *testing.T) {
	cache := openTestCache(t)

	_, hit, err := cache.Get("a.py", HashContent([]byte("x = 1\n")))
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestPutThenGet(t *testing.T) {
	cache := openTestCache(t)

	hash := HashContent([]byte("x = 1\n"))
	require.NoError(t, cache.Put("a.py", hash, "python", `{"file_path":"a.py"}`))

	got, hit, err := cache.Get("a.py", hash)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, `{"file_path":"a.py"}`, got)
}

func TestPutReplacesStaleEntry(t *testing.T) {
	cache := openTestCache(t)

	oldHash := HashContent([]byte("x = 1\n"))
	newHash := HashContent([]byte("x = 2\n"))
	require.NoError(t, cache.Put("a.py", oldHash, "python", `{"v":1}`))
	require.NoError(t, cache.Put("a.py", newHash, "python", `{"v":2}`))

	_, hit, err := cache.Get("a.py", oldHash)
	require.NoError(t, err)
	assert.False(t, hit, "stale entry should be evicted")

	got, hit, err := cache.Get("a.py", newHash)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, `{"v":2}`, got)
}

func TestEntriesAreIndependentPerFile(t *testing.T) {
	cache := openTestCache(t)

	hash := HashContent([]byte("shared content"))
	require.NoError(t, cache.Put("a.py", hash, "python", `{"f":"a"}`))
	require.NoError(t, cache.Put("b.py", hash, "python", `{"f":"b"}`))

	got, hit, err := cache.Get("a.py", hash)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, `{"f":"a"}`, got)

	got, hit, err = cache.Get("b.py", hash)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, `{"f":"b"}`, got)
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	cache, err := Open(dir+"/sub/cache.db", false)
	require.NoError(t, err)
	defer cache.Close()

	hash := HashContent([]byte("fn main() {}\n"))
	require.NoError(t, cache.Put("m.rs", hash, "rust", `{}`))

	_, hit, err := cache.Get("m.rs", hash)
	require.NoError(t, err)
	assert.True(t, hit)
}
