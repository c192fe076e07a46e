package skill

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet_TrimsAndDeduplicates(t *testing.T) {
	s := NewSet(" Plumbing", "Plumbing", "", "   ", "Electrician")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("Plumbing"))
	assert.True(t, s.Has(" Electrician "))
	assert.False(t, s.Has("Driving"))
}

func TestSet_IntersectAndDifference(t *testing.T) {
	required := NewSet("Cooking", "Cleaning")
	held := NewSet("Cooking", "Driving")

	assert.Equal(t, []string{"Cooking"}, required.Intersect(held).Sorted())
	assert.Equal(t, []string{"Cleaning"}, required.Difference(held).Sorted())
	assert.Equal(t, 0, NewSet().Difference(held).Len())
}

func TestSet_JSONUsesSortedNames(t *testing.T) {
	b, err := json.Marshal(NewSet("b", "a"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(b))

	var back Set
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, NewSet("a", "b"), back)
}
