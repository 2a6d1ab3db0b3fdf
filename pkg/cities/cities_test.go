package cities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	assert.Len(t, registry.All(), 19)
}

func TestDepot(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	depot := registry.Depot()
	assert.Equal(t, "London", depot.Name)
	assert.Equal(t, "LHR", depot.IATA)
	assert.Equal(t, 0, depot.Index)
}

func TestGet(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	bucharest, ok := registry.Get("Bucharest")
	require.True(t, ok)
	assert.Equal(t, "OTP", bucharest.IATA)

	_, ok = registry.Get("Atlantis")
	assert.False(t, ok)
}

func TestCodes(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	codes := registry.Codes()
	assert.Len(t, codes, 19)
	assert.Equal(t, "IST", codes["Istanbul"])
}
