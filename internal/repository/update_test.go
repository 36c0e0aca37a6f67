package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdate(t *testing.T) {
	query, args, err := buildUpdate("profiles", "user_id", int64(7), profileColumns, map[string]any{
		"weight_lbs":     180.0,
		"activity_level": "moderate",
	})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE profiles SET activity_level = ?, weight_lbs = ? WHERE user_id = ?", query)
	assert.Equal(t, []any{"moderate", 180.0, int64(7)}, args)
}

func TestBuildUpdate_Empty(t *testing.T) {
	query, args, err := buildUpdate("profiles", "user_id", int64(7), profileColumns, nil)
	require.NoError(t, err)
	assert.Empty(t, query)
	assert.Nil(t, args)
}

func TestBuildUpdate_RejectsUnknownColumn(t *testing.T) {
	for _, column := range []string{"user_id", "created_at", "bmi", "weight_lbs = 0; DROP TABLE profiles; --"} {
		_, _, err := buildUpdate("profiles", "user_id", int64(7), profileColumns, map[string]any{column: 1})
		assert.Error(t, err, column)
	}
}
