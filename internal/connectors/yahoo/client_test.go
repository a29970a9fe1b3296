package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := Config{LeagueKey: "nfl.l.123456", TeamKey: "nfl.l.123456.t.7"}
	return NewClient(cfg, WithBaseURL(server.URL), WithHTTPClient(server.Client()))
}

func TestRoster(t *testing.T) {
	var gotPath string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`<?xml version="1.0"?>
<fantasy_content>
  <team>
    <name>Gridiron Gurus</name>
    <roster>
      <players>
        <player><name><full>Derrick Henry</full></name><display_position>RB</display_position></player>
        <player><name><full>Taysom Hill</full></name><display_position>QB,TE</display_position></player>
      </players>
    </roster>
  </team>
</fantasy_content>`))
	})

	roster, err := client.Roster(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/team/nfl.l.123456.t.7/roster", gotPath)
	require.Len(t, roster, 2)
	assert.Equal(t, domain.RosterEntry{Name: "Derrick Henry", Positions: []string{"RB"}}, roster[0])
	assert.Equal(t, domain.RosterEntry{Name: "Taysom Hill", Positions: []string{"QB", "TE"}}, roster[1])
}

func TestWaiverPlayers(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?>
<fantasy_content>
  <league>
    <players>
      <player><name><full>Tyjae Spears</full></name><display_position>RB</display_position></player>
    </players>
  </league>
</fantasy_content>`))
	})

	waivers, err := client.WaiverPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, waivers, 1)
	assert.Equal(t, "Tyjae Spears", waivers[0].Name)
}

func TestLeagueInfo(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?>
<fantasy_content>
  <league>
    <current_week>9</current_week>
    <standings>
      <teams>
        <team>
          <name>Gridiron Gurus</name>
          <team_standings>
            <rank>1</rank>
            <outcome_totals><wins>7</wins><losses>1</losses><ties>0</ties></outcome_totals>
          </team_standings>
        </team>
        <team>
          <name>Waiver Warriors</name>
          <team_standings>
            <rank>2</rank>
            <outcome_totals><wins>6</wins><losses>2</losses><ties>0</ties></outcome_totals>
          </team_standings>
        </team>
      </teams>
    </standings>
  </league>
</fantasy_content>`))
	})

	info, err := client.LeagueInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9, info.CurrentWeek)
	require.Len(t, info.Standings, 2)
	assert.Equal(t, domain.Standing{Rank: 1, TeamName: "Gridiron Gurus", Wins: 7, Losses: 1, Ties: 0}, info.Standings[0])
}

func TestServerErrorIsToolUnavailable(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token_expired", http.StatusUnauthorized)
	})

	_, err := client.Roster(context.Background())
	assert.ErrorIs(t, err, domain.ErrToolUnavailable)
	assert.Contains(t, err.Error(), "401")
}

func TestMalformedBodyIsToolUnavailable(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not xml at all"))
	})

	_, err := client.LeagueInfo(context.Background())
	assert.ErrorIs(t, err, domain.ErrToolUnavailable)
}

func TestSplitPositions(t *testing.T) {
	assert.Equal(t, []string{"RB"}, splitPositions("RB"))
	assert.Equal(t, []string{"WR", "TE"}, splitPositions("WR, TE"))
	assert.Empty(t, splitPositions(""))
}
