package gameday

import (
	"context"
	"fmt"
	"time"

	"github.com/sdvgallardo/fantasy-football-chat-bot-vS/espn"
)

// LeagueSource supplies league snapshots. *espn.Client is the production implementation.
type LeagueSource interface {
	League(ctx context.Context) (*espn.League, error)
}

// RosterSource supplies every team's roster for a scoring period.
type RosterSource interface {
	Rosters(ctx context.Context, scoringPeriod int) (map[int][]espn.Player, error)
}

// TransactionSource supplies the executed roster moves of a scoring period.
type TransactionSource interface {
	Transactions(ctx context.Context, scoringPeriod int) ([]espn.Transaction, error)
}

type privateSource interface {
	TransactionSource
	Private() bool
}

// Reporter builds the text of a report from a fresh league snapshot.
type Reporter struct {
	Source  LeagueSource
	Rosters RosterSource
	// Transactions is nil for public leagues, whose moves ESPN does not share.
	Transactions TransactionSource
	Config       ReportConfig
	Now          func() time.Time
}

// NewReporter uses source for rosters too when it can serve them, and for
// transactions when it holds league cookies.
func NewReporter(source LeagueSource, cfg ReportConfig) *Reporter {
	r := &Reporter{Source: source, Config: cfg, Now: time.Now}
	if rosters, ok := source.(RosterSource); ok {
		r.Rosters = rosters
	}
	if private, ok := source.(privateSource); ok && private.Private() {
		r.Transactions = private
	}
	return r
}

// Build returns the text for fn. An empty string means there is nothing to
// post, e.g. outside the active season or when no scores are close.
func (r *Reporter) Build(ctx context.Context, fn Function) (string, error) {
	if fn == FunctionInit {
		return r.Config.InitMsg, nil
	}
	if !fn.Valid() {
		return "Something happened. HALP", nil
	}

	league, err := r.Source.League(ctx)
	if err != nil {
		return "", err
	}
	if league.SeasonOver() {
		return "", nil
	}

	cfg := r.Config
	week := league.CurrentWeek
	switch fn {
	case FunctionMatchups:
		return Matchups(league, week, cfg) + "\n\n" + ProjectedScoreboard(league, week, cfg), nil
	case FunctionScoreboard:
		return Scoreboard(league, week, cfg) + "\n\n" + ProjectedScoreboard(league, week, cfg), nil
	case FunctionProjectedScoreboard:
		return ProjectedScoreboard(league, week, cfg), nil
	case FunctionCloseScores:
		return CloseScores(league, week, cfg), nil
	case FunctionPowerRankings:
		text, err := PowerRankings(league, cfg)
		if err != nil {
			return "", fmt.Errorf("power rankings: %w", err)
		}
		return text, nil
	case FunctionTrophies:
		return Trophies(league, week, cfg), nil
	case FunctionStandings:
		text, err := Standings(league, cfg)
		if err != nil || !cfg.WaiverReport || r.Transactions == nil {
			return text, err
		}
		waivers, err := r.waivers(ctx, league)
		if err != nil {
			return "", err
		}
		return text + "\n\n" + waivers, nil
	case FunctionFinal:
		// ESPN has already moved on to the next week when the recap runs.
		return Final(league, week-1, cfg), nil
	case FunctionMonitor:
		rosters, err := r.rosters(ctx, league.ScoringPeriodID)
		if err != nil {
			return "", err
		}
		return Monitor(league, rosters, cfg), nil
	case FunctionInactives:
		rosters, err := r.rosters(ctx, league.ScoringPeriodID)
		if err != nil {
			return "", err
		}
		return Inactives(league, rosters, cfg), nil
	case FunctionOptimalScores:
		if league.ScoringPeriodID <= 1 {
			return "", nil
		}
		rosters, err := r.rosters(ctx, league.ScoringPeriodID-1)
		if err != nil {
			return "", err
		}
		return OptimalScores(league, rosters, cfg), nil
	case FunctionExpectedWin:
		text, err := ExpectedWinStandings(league, cfg)
		if err != nil {
			return "", fmt.Errorf("expected wins: %w", err)
		}
		return text, nil
	case FunctionWaiverReport:
		if r.Transactions == nil {
			return "", nil
		}
		return r.waivers(ctx, league)
	}
	return "", fmt.Errorf("unhandled report %q", fn)
}

func (r *Reporter) rosters(ctx context.Context, scoringPeriod int) (map[int][]espn.Player, error) {
	if r.Rosters == nil {
		return nil, fmt.Errorf("no roster source configured")
	}
	return r.Rosters.Rosters(ctx, scoringPeriod)
}

// waivers reports the claims processed today in the configured timezone.
func (r *Reporter) waivers(ctx context.Context, league *espn.League) (string, error) {
	transactions, err := r.Transactions.Transactions(ctx, league.ScoringPeriodID)
	if err != nil {
		return "", err
	}
	loc, err := time.LoadLocation(r.Config.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return WaiverReport(league, transactions, now().In(loc), r.Config), nil
}
