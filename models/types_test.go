// File: /models/types_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice_DatabaseRoundTrip(t *testing.T) {
	original := StringSlice{"user-1", "user-2"}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned StringSlice
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestStringSlice_ScanHandlesNullAndEmpty(t *testing.T) {
	var scanned StringSlice
	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)

	require.NoError(t, scanned.Scan([]byte("[]")))
	assert.Empty(t, scanned)
}

func TestStringSlice_Contains(t *testing.T) {
	badges := StringSlice{"First RSVP"}
	assert.True(t, badges.Contains("First RSVP"))
	assert.False(t, badges.Contains("Socialite"))
	assert.False(t, StringSlice(nil).Contains("anything"))
}
