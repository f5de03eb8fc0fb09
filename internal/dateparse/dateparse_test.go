package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-06-15T10:30:00Z", time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-06-15T10:30:00.123Z", time.Date(2024, 6, 15, 10, 30, 0, 123000000, time.UTC)},
		{"2024-06-15 10:30:00", time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"2024/06/15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"06/15/2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"June 15, 2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"15 June 2024", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.in)
		require.True(t, ok, "expected %q to parse", tc.in)
		assert.True(t, tc.want.Equal(got), "%q: want %v got %v", tc.in, tc.want, got)
	}
}

func TestNormalizeEpoch(t *testing.T) {
	got, ok := Normalize("1718445000")
	require.True(t, ok)
	assert.Equal(t, int64(1718445000), got.Unix())

	got, ok = Normalize("1718445000123")
	require.True(t, ok)
	assert.Equal(t, int64(1718445000123), got.UnixMilli())
}

func TestNormalizeTripleExtraction(t *testing.T) {
	// Year-first triple buried in surrounding text.
	got, ok := Normalize("published 2024.06.15 by desk")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)

	// Ambiguous two-small-field date reads US-style: month first.
	got, ok = Normalize("03-04-2024")
	require.True(t, ok)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 4, got.Day())

	// Month slot out of range forces day/month reading.
	got, ok = Normalize("25-12-2024")
	require.True(t, ok)
	assert.Equal(t, time.December, got.Month())
	assert.Equal(t, 25, got.Day())
}

func TestNormalizeUnparseable(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"not a date",
		"tomorrow",
		"99/99/9999",
		"2024-02-30", // Feb 30 must not normalize to March
		"123456",     // too short for an epoch
	} {
		_, ok := Normalize(in)
		assert.False(t, ok, "expected %q to be unknown", in)
	}
}
