package calculations

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fondsblick/riskengine/internal/domain"
)

func TestKey_Deterministic(t *testing.T) {
	positions := []domain.Position{
		{Name: "SAP SE", ExpectedReturn: 0.08, Volatility: 0.18, Weight: 0.5},
		{Name: "Bund 10Y", ExpectedReturn: 0.03, Volatility: 0.05, Weight: 0.5},
	}

	a, err := Key("risk_metrics", positions)
	require.NoError(t, err)
	b, err := Key("risk_metrics", positions)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestKey_DiscriminatesInputs(t *testing.T) {
	base := []domain.Position{{Name: "SAP SE", Weight: 0.5}}
	changed := []domain.Position{{Name: "SAP SE", Weight: 0.6}}

	a, err := Key("risk_metrics", base)
	require.NoError(t, err)
	b, err := Key("risk_metrics", changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// Same inputs under a different operation must not collide either.
	c, err := Key("look_through", base)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestCache_GetOrCompute(t *testing.T) {
	cache := NewCache()

	calls := 0
	compute := func() any {
		calls++
		return domain.RiskMetrics{ExpectedReturn: 0.05}
	}

	first := cache.GetOrCompute("k1", compute)
	second := cache.GetOrCompute("k1", compute)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_SetOverwrites(t *testing.T) {
	cache := NewCache()

	cache.Set("k", 1)
	cache.Set("k", 2)

	value, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, value)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Racing writers for the same key are fine: the computation is
			// deterministic, so whichever writer wins stores the same value.
			got := cache.GetOrCompute("shared", func() any { return 42 })
			assert.Equal(t, 42, got)
		}()
	}
	wg.Wait()

	value, ok := cache.Get("shared")
	require.True(t, ok)
	assert.Equal(t, 42, value)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache()
	cache.Set("a", 1)
	cache.Set("b", 2)

	cache.Clear()

	assert.Zero(t, cache.Len())
	_, ok := cache.Get("a")
	assert.False(t, ok)
}
