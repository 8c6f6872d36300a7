package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWorkoutsArray(t *testing.T) {
	raw := []byte(` [{"id": 1717000000000, "title": "Push"}, {"id": "abc", "title": "Pull"}]`)

	got, err := decodeWorkouts(raw)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1717000000000", got[0].ID)
	assert.Equal(t, "Pull", got[1].Title)
}

func TestDecodeWorkoutsSingle(t *testing.T) {
	got, err := decodeWorkouts([]byte(`{"title": "Legs", "exercises": [{"name": "Squat", "sets": 3}]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Legs", got[0].Title)
	assert.Equal(t, 3, got[0].Exercises[0].Sets)
}

func TestDecodeWorkoutsInvalid(t *testing.T) {
	_, err := decodeWorkouts([]byte(`not json`))
	assert.Error(t, err)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
}

func TestTruncateStringRunes(t *testing.T) {
	assert.Equal(t, "Préparat...", truncateString("Préparation du développé", 11))
	assert.Equal(t, "Épaulé", truncateString("Épaulé", 6))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
	assert.Equal(t, "", truncateString("abcdef", 0))
	assert.Equal(t, "", truncateString("abcdef", -1))
}
