package costmatrix

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultMaxCacheAge = 365 * 24 * time.Hour

// ErrCacheMiss - no usable cached matrix exists (absent or stale). Expected,
// the caller proceeds to a rebuild. An unreadable or undecodable cache file
// is NOT a miss and surfaces as an error instead.
var ErrCacheMiss = errors.New("cost matrix cache miss")

// LoadCache reads a previously built matrix, enforcing the staleness window.
func LoadCache(path string, maxAge time.Duration) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrCacheMiss
	} else if err != nil {
		return nil, fmt.Errorf("read matrix cache: %w", err)
	}

	var matrix Matrix
	if err := json.Unmarshal(data, &matrix); err != nil {
		return nil, fmt.Errorf("corrupt matrix cache %s: %w", path, err)
	}

	age := time.Since(matrix.Timestamp)
	if age > maxAge {
		log.Info().Str("age", age.String()).Msg("Cached cost matrix is stale")
		return nil, ErrCacheMiss
	}

	log.Info().Time("built", matrix.Timestamp).Str("referenceDate", matrix.ReferenceDate).Msg("Using cached cost matrix")

	return &matrix, nil
}

// SaveCache persists a built matrix. The cache is a derived artifact, so a
// concurrent writer losing the race is acceptable.
func SaveCache(path string, matrix *Matrix) error {
	data, err := json.MarshalIndent(matrix, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write matrix cache: %w", err)
	}

	log.Info().Str("path", path).Msg("Cost matrix cached")

	return nil
}
