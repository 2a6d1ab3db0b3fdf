package costmatrix

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.json")

	matrix := testMatrix()
	require.NoError(t, SaveCache(path, matrix))

	loaded, err := LoadCache(path, DefaultMaxCacheAge)
	require.NoError(t, err)

	assert.Equal(t, matrix.Cities, loaded.Cities)
	assert.Equal(t, matrix.Codes, loaded.Codes)
	assert.Equal(t, matrix.Price, loaded.Price)
	assert.Equal(t, matrix.Duration, loaded.Duration)
	assert.False(t, loaded.Price[1][2].Known, "unreachable marker must survive persistence")
}

func TestLoadCacheMissing(t *testing.T) {
	_, err := LoadCache(filepath.Join(t.TempDir(), "nope.json"), DefaultMaxCacheAge)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestLoadCacheStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.json")

	matrix := testMatrix()
	matrix.Timestamp = time.Now().Add(-400 * 24 * time.Hour)
	require.NoError(t, SaveCache(path, matrix))

	_, err := LoadCache(path, DefaultMaxCacheAge)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestLoadCacheCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadCache(path, DefaultMaxCacheAge)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss, "corrupt cache must not be treated as a miss")
}
