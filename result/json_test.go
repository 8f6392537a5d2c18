package result

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveCyclicReferences(t *testing.T) {
	inner := map[string]any{"name": "inner"}
	outer := map[string]any{"name": "outer", "child": inner}
	inner["parent"] = outer

	pruned := removeCyclicReferences(outer)
	child := pruned["child"].(map[string]any)
	assert.Equal(t, "inner", child["name"])
	assert.Equal(t, cyclicRef, child["parent"])

	// pruning must not touch the original
	assert.NotNil(t, inner["parent"])
}

func TestRemoveCyclicReferences_SharedNotCyclic(t *testing.T) {
	shared := map[string]any{"v": 1}
	m := map[string]any{"a": shared, "b": shared}

	pruned := removeCyclicReferences(m)
	require.Equal(t, map[string]any{"v": 1}, pruned["a"])
	require.Equal(t, map[string]any{"v": 1}, pruned["b"])
}

func TestRemoveCyclicReferences_SliceCycle(t *testing.T) {
	list := []any{"x"}
	m := map[string]any{"list": list}
	list = append(list[:1], m)
	m["list"] = list

	pruned := removeCyclicReferences(m)
	out := pruned["list"].([]any)
	require.Len(t, out, 2)
	assert.Equal(t, "x", out[0])
	assert.Equal(t, cyclicRef, out[1])
}

func TestToPrimitiveMap(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := toPrimitiveMap(map[string]any{
		"str":   "hello",
		"num":   42,
		"float": 1.5,
		"bool":  true,
		"list":  []any{1, "two", time.Second},
		"map":   map[string]any{"nested": now},
	})

	assert.Equal(t, "hello", m["str"])
	assert.Equal(t, 42, m["num"])
	assert.Equal(t, 1.5, m["float"])
	assert.Equal(t, true, m["bool"])
	assert.Equal(t, []any{1, "two", "1s"}, m["list"])
	assert.Equal(t, map[string]any{"nested": now.String()}, m["map"])
}
