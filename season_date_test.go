package gameday

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSeasonDate(t *testing.T) {
	eastern, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "plain date in league timezone",
			input:    "2024-09-05",
			expected: time.Date(2024, 9, 5, 0, 0, 0, 0, eastern),
		},
		{
			name:     "RFC3339 keeps its own offset",
			input:    "2024-09-05T20:15:00-04:00",
			expected: time.Date(2024, 9, 6, 0, 15, 0, 0, time.UTC),
		},
		{
			name:     "short format without seconds",
			input:    "2024-09-05T20:15Z",
			expected: time.Date(2024, 9, 5, 20, 15, 0, 0, time.UTC),
		},
		{
			name:  "empty string",
			input: "",
		},
		{
			name:    "invalid format",
			input:   "09/05/2024",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeasonDate(tt.input, eastern)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.input == "" {
				assert.True(t, got.IsZero())
				return
			}
			assert.True(t, tt.expected.Equal(got.Time), "Expected %v, got %v", tt.expected, got.Time)
		})
	}
}

func TestSeasonDate_UnmarshalJSON(t *testing.T) {
	var season struct {
		Start SeasonDate `json:"start"`
		End   SeasonDate `json:"end"`
	}
	err := json.Unmarshal([]byte(`{"start": "2024-09-05", "end": null}`), &season)
	require.NoError(t, err)

	assert.True(t, time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC).Equal(season.Start.Time))
	assert.True(t, season.End.IsZero())

	err = json.Unmarshal([]byte(`{"start": "next tuesday"}`), &season)
	assert.Error(t, err)
}

func TestSeasonDate_UnmarshalYAML(t *testing.T) {
	var season struct {
		Start SeasonDate `yaml:"start"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("start: 2025-01-07\n"), &season))
	assert.True(t, time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC).Equal(season.Start.Time))

	assert.Error(t, yaml.Unmarshal([]byte("start: someday\n"), &season))
}
