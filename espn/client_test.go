package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leagueJSON = `{
	"id": 123456,
	"seasonId": 2024,
	"scoringPeriodId": 3,
	"status": {"currentMatchupPeriod": 3, "isActive": true},
	"settings": {
		"name": "Sunday Scaries",
		"scheduleSettings": {"matchupPeriodCount": 14},
		"rosterSettings": {"lineupSlotCounts": {"0": 1, "2": 2, "20": 6}},
		"acquisitionSettings": {"isUsingAcquisitionBudget": true}
	},
	"teams": [
		{
			"id": 2,
			"abbrev": "BW",
			"location": "Bench",
			"nickname": "Warmers",
			"record": {"overall": {"wins": 1, "losses": 1, "ties": 0, "pointsFor": 201.5, "pointsAgainst": 190.2}}
		},
		{
			"id": 1,
			"abbrev": "GG",
			"name": "Gridiron Gurus",
			"record": {"overall": {"wins": 2, "losses": 0, "ties": 0, "pointsFor": 250.1, "pointsAgainst": 180.0}},
			"currentSimulationResults": {"playoffPct": 0.875, "modeRecord": {"wins": 10, "losses": 4}}
		}
	],
	"schedule": [
		{
			"id": 1,
			"matchupPeriodId": 1,
			"home": {"teamId": 1, "totalPoints": 120.5},
			"away": {"teamId": 2, "totalPoints": 99.25},
			"winner": "HOME"
		},
		{
			"id": 2,
			"matchupPeriodId": 2,
			"home": {"teamId": 2, "totalPoints": 102.25},
			"away": {"teamId": 1, "totalPoints": 129.6},
			"winner": "AWAY"
		},
		{
			"id": 3,
			"matchupPeriodId": 3,
			"home": {"teamId": 1, "totalPoints": 0, "totalPointsLive": 44.3, "totalProjectedPointsLive": 118.9},
			"away": {"teamId": 2, "totalPoints": 0, "totalPointsLive": 51.0, "totalProjectedPointsLive": 110.4},
			"winner": "UNDECIDED"
		}
	]
}`

func TestNormalizeSWID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "ABC-123", expected: "{ABC-123}"},
		{input: "{ABC-123}", expected: "{ABC-123}"},
		{input: "{ABC-123", expected: "{ABC-123}"},
		{input: " ABC-123} ", expected: "{ABC-123}"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSWID(tt.input))
		})
	}
}

func TestClient_League(t *testing.T) {
	tests := []struct {
		name          string
		espnS2        string
		swid          string
		statusCode    int
		body          string
		expectedError bool
		expectCookies bool
	}{
		{
			name:       "public league",
			statusCode: http.StatusOK,
			body:       leagueJSON,
		},
		{
			name:          "private league sends cookies",
			espnS2:        "AEBx%2Fs2",
			swid:          "ABC-123",
			statusCode:    http.StatusOK,
			body:          leagueJSON,
			expectCookies: true,
		},
		{
			name:          "HTTP error",
			statusCode:    http.StatusUnauthorized,
			expectedError: true,
		},
		{
			name:          "invalid JSON response",
			statusCode:    http.StatusOK,
			body:          "invalid json",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/seasons/2024/segments/0/leagues/123456", r.URL.Path)
				assert.ElementsMatch(t, leagueViews, r.URL.Query()["view"])

				s2, err := r.Cookie("espn_s2")
				if tt.expectCookies {
					require.NoError(t, err)
					assert.Equal(t, tt.espnS2, s2.Value)
					swid, err := r.Cookie("SWID")
					require.NoError(t, err)
					assert.Equal(t, "{ABC-123}", swid.Value)
				} else {
					assert.ErrorIs(t, err, http.ErrNoCookie)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(ClientConfig{
				BaseURL:  server.URL,
				LeagueID: 123456,
				Year:     2024,
				EspnS2:   tt.espnS2,
				SWID:     tt.swid,
			})

			league, err := client.League(context.Background())
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, "Sunday Scaries", league.Name)
			assert.Equal(t, 3, league.CurrentWeek)
			assert.Equal(t, 14, league.MatchupPeriodCount)
			assert.Equal(t, map[int]int{SlotQB: 1, SlotRB: 2, SlotBench: 6}, league.LineupSlots)
			assert.True(t, league.FAAB)
			require.Len(t, league.Teams, 2)
			assert.Equal(t, 1, league.Teams[0].ID)
			assert.Equal(t, "Gridiron Gurus", league.Teams[0].Name)
			assert.Equal(t, "Bench Warmers", league.Teams[1].Name)
			require.NotNil(t, league.Teams[0].PlayoffPct)
			assert.InDelta(t, 87.5, *league.Teams[0].PlayoffPct, 1e-9)
			require.NotNil(t, league.Teams[0].SimRecord)
			assert.Equal(t, 10, league.Teams[0].SimRecord.Wins)
			assert.Nil(t, league.Teams[1].PlayoffPct)

			live := league.Week(3)
			require.Len(t, live, 1)
			assert.InDelta(t, 44.3, live[0].Home.Score, 1e-9)
			assert.InDelta(t, 118.9, live[0].Home.ProjectedScore, 1e-9)
			assert.False(t, live[0].Decided())
		})
	}
}

func TestClient_LeagueRequiresID(t *testing.T) {
	client := NewClient(ClientConfig{Year: 2024})
	_, err := client.League(context.Background())
	assert.Error(t, err)
}

func TestLeague_WeeklyScores(t *testing.T) {
	var resp leagueResponse
	require.NoError(t, json.Unmarshal([]byte(leagueJSON), &resp))
	league := resp.toLeague()

	weekly, err := league.WeeklyScores(2)
	require.NoError(t, err)
	require.Len(t, weekly, 2)
	assert.Equal(t, 1, weekly[1][0].TeamID)
	assert.InDelta(t, 120.5, weekly[1][0].Score, 1e-9)
	assert.Equal(t, 2, weekly[2][0].TeamID)
	assert.InDelta(t, 129.6, weekly[2][1].Score, 1e-9)

	_, err = league.WeeklyScores(5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "week 4")
}

func TestLeague_SeasonOver(t *testing.T) {
	league := &League{ScoringPeriodID: 15, MatchupPeriodCount: 14}
	assert.True(t, league.SeasonOver())

	league.ScoringPeriodID = 14
	assert.False(t, league.SeasonOver())
}

func TestClient_Private(t *testing.T) {
	tests := []struct {
		name     string
		espnS2   string
		swid     string
		expected bool
	}{
		{name: "both cookies", espnS2: "AEBx%2Fs2", swid: "ABC-123", expected: true},
		{name: "no cookies"},
		{name: "placeholders", espnS2: "1", swid: "{1}"},
		{name: "placeholder swid", espnS2: "AEBx%2Fs2", swid: "1"},
		{name: "placeholder espn_s2", espnS2: "1", swid: "ABC-123"},
		{name: "missing swid", espnS2: "AEBx%2Fs2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(ClientConfig{LeagueID: 1, Year: 2024, EspnS2: tt.espnS2, SWID: tt.swid})
			assert.Equal(t, tt.expected, client.Private())
		})
	}
}

func TestNewClient_CopiesHTTPClient(t *testing.T) {
	shared := &http.Client{}
	client := NewClient(ClientConfig{HTTPClient: shared, LeagueID: 1, Year: 2024})

	assert.Zero(t, shared.Timeout)
	assert.Equal(t, 20*time.Second, client.httpClient.Timeout)
	assert.NotSame(t, shared, client.httpClient)

	custom := NewClient(ClientConfig{HTTPClient: &http.Client{Timeout: 5 * time.Second}})
	assert.Equal(t, 5*time.Second, custom.httpClient.Timeout)
}
