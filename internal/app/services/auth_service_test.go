package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "JoaoSilva", "joaosilva"},
		{"strips inner spaces", "joao silva", "joaosilva"},
		{"trims and strips", "  Joao Da Silva  ", "joaodasilva"},
		{"already normalized", "maria_souza", "maria_souza"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeUsername(tt.input))
		})
	}
}

// Field limits count characters, not bytes, so accented Portuguese input
// gets the full advertised length.
func TestExceedsLimitCountsCharacters(t *testing.T) {
	tests := []struct {
		name  string
		value string
		max   int
		want  bool
	}{
		{"ascii at limit", strings.Repeat("a", 25), 25, false},
		{"ascii over limit", strings.Repeat("a", 26), 25, true},
		{"accented at limit", strings.Repeat("ã", 25), 25, false},
		{"accented over limit", strings.Repeat("ã", 25) + "x", 25, true},
		{"empty", "", 25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exceedsLimit(tt.value, tt.max))
		})
	}
}

func TestParseBirthDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := parseBirthDate("2000-05-20")
		require.NoError(t, err)
		assert.Equal(t, 2000, got.Year())
		assert.Equal(t, time.May, got.Month())
		assert.Equal(t, 20, got.Day())
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := parseBirthDate("20/05/2000")
		assert.Error(t, err)
	})

	t.Run("future date", func(t *testing.T) {
		future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
		_, err := parseBirthDate(future)
		assert.Error(t, err)
	})

	t.Run("implausibly old", func(t *testing.T) {
		_, err := parseBirthDate("1800-01-01")
		assert.Error(t, err)
	})
}
