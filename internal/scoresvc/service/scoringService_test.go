package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID  = int64(1)
	readerID = int64(2)
	teamA    = int64(10)
	teamB    = int64(20)
	matchID  = int64(1)

	striker    = int64(101)
	nonStriker = int64(102)
	bowlerX    = int64(201)
	bowlerY    = int64(202)
)

type fixture struct {
	scoring *fakeScoring
	matches *fakeMatches
	players *fakePlayers
	teams   *fakeTeams
	gate    *fakeGate
	feed    *fakeFeed
	svc     *ScoringService
	toss    *TossService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	players := &fakePlayers{m: map[int64]*models.Player{}}
	rosterA := []int64{101, 102, 103, 104}
	rosterB := []int64{201, 202, 203, 204}
	for _, id := range append(append([]int64{}, rosterA...), rosterB...) {
		players.m[id] = &models.Player{ID: id, UserID: ownerID, Name: fmt.Sprintf("player-%d", id)}
	}

	matches := &fakeMatches{m: map[int64]*models.Match{
		matchID: {ID: matchID, UserID: ownerID, MatchNumber: 1, Team1ID: teamA, Team2ID: teamB, TotalOvers: 2},
	}}

	teams := &fakeTeams{
		rosters: map[int64][]int64{teamA: rosterA, teamB: rosterB},
		players: players,
	}

	scoring := newFakeScoring(matches, players)
	gate := &fakeGate{grants: map[int64]models.AccessType{readerID: models.AccessRead}}
	feed := &fakeFeed{}

	return &fixture{
		scoring: scoring,
		matches: matches,
		players: players,
		teams:   teams,
		gate:    gate,
		feed:    feed,
		svc:     NewScoringService(scoring, matches, players, teams, gate, feed),
		toss:    NewTossService(matches, scoring, gate),
	}
}

// startScoring runs the toss and opens the first over: team A bats,
// team B bowls, bowler X at the crease end.
func (f *fixture) startScoring(t *testing.T) *models.Over {
	t.Helper()
	ctx := context.Background()

	_, err := f.toss.ResolveToss(ctx, ownerID, matchID, teamA, "bat")
	require.NoError(t, err)

	over, err := f.svc.StartOver(ctx, ownerID, matchID, StartOverInput{
		BowlerID:     bowlerX,
		StrikerID:    striker,
		NonStrikerID: nonStriker,
	})
	require.NoError(t, err)
	return over
}

func (f *fixture) event(in EventInput) EventInput {
	if in.StrikerID == 0 {
		in.StrikerID = striker
	}
	if in.NonStrikerID == 0 {
		in.NonStrikerID = nonStriker
	}
	if in.BowlerID == 0 {
		in.BowlerID = bowlerX
	}
	return in
}

func TestStartOverSeedsOpeningState(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)

	assert.Equal(t, 1, over.OverNo)
	assert.Equal(t, teamB, over.BowlingTeamID)
	assert.Equal(t, bowlerX, over.BowlerID)

	sess := f.scoring.sessions[matchID]
	require.NotNil(t, sess)
	assert.Equal(t, models.SessionInOver, sess.State)
	assert.Equal(t, striker, sess.StrikerID)
	assert.Equal(t, nonStriker, sess.NonStrikerID)
	assert.Equal(t, []int64{103, 104}, sess.RemainingBatters)
	assert.Empty(t, sess.DismissedBatters)
}

func TestStartOverRejectsBadOverNumber(t *testing.T) {
	f := newFixture(t)
	f.startScoring(t)

	_, err := f.svc.StartOver(context.Background(), ownerID, matchID, StartOverInput{
		BowlerID: bowlerY,
		OverNo:   5,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStartOverRequiresToss(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.StartOver(context.Background(), ownerID, matchID, StartOverInput{
		BowlerID:     bowlerX,
		StrikerID:    striker,
		NonStrikerID: nonStriker,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordEventRuns(t *testing.T) {
	for _, runs := range []int{0, 1, 2, 3, 4, 6} {
		t.Run(fmt.Sprintf("runs=%d", runs), func(t *testing.T) {
			f := newFixture(t)
			over := f.startScoring(t)
			ctx := context.Background()

			result, err := f.svc.RecordEvent(ctx, ownerID, matchID, over.ID, f.event(EventInput{
				Event: fmt.Sprintf("%d", runs),
			}))
			require.NoError(t, err)
			assert.Equal(t, runs, result.Runs)

			strikerStats := f.scoring.stats[statsKey(matchID, striker)]
			require.NotNil(t, strikerStats)
			assert.Equal(t, runs, strikerStats.Runs)
			assert.Equal(t, 1, strikerStats.Balls)

			bowlerStats := f.scoring.stats[statsKey(matchID, bowlerX)]
			require.NotNil(t, bowlerStats)
			assert.Equal(t, runs, bowlerStats.BowlingRuns)
			assert.True(t, bowlerStats.OversBowled.Equal(decimal.RequireFromString("0.1")),
				"overs bowled = %s", bowlerStats.OversBowled)

			assert.Equal(t, runs, f.scoring.overs[over.ID].Runs)
		})
	}
}

func TestOddRunsDoNotRotateStrike(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)

	_, err := f.svc.RecordEvent(context.Background(), ownerID, matchID, over.ID, f.event(EventInput{Event: "1"}))
	require.NoError(t, err)

	sess := f.scoring.sessions[matchID]
	assert.Equal(t, striker, sess.StrikerID)
	assert.Equal(t, nonStriker, sess.NonStrikerID)
}

func TestRecordEventUnknownRunValue(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)

	_, err := f.svc.RecordEvent(context.Background(), ownerID, matchID, over.ID, f.event(EventInput{Event: "5"}))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordEventMissingFields(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)

	_, err := f.svc.RecordEvent(context.Background(), ownerID, matchID, over.ID, EventInput{
		StrikerID: striker, // everything else absent
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordEventWicket(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)
	ctx := context.Background()

	result, err := f.svc.RecordEvent(ctx, ownerID, matchID, over.ID, f.event(EventInput{Event: "W"}))
	require.NoError(t, err)
	assert.True(t, result.Wicket)

	assert.Equal(t, 1, f.scoring.overs[over.ID].Wickets)

	sess := f.scoring.sessions[matchID]
	assert.Equal(t, []int64{striker}, sess.DismissedBatters)

	outedStats := f.scoring.stats[statsKey(matchID, striker)]
	require.NotNil(t, outedStats)
	assert.Equal(t, 1, outedStats.Balls)

	bowlerStats := f.scoring.stats[statsKey(matchID, bowlerX)]
	require.NotNil(t, bowlerStats)
	assert.Equal(t, 1, bowlerStats.Wickets)
}

func TestWicketDismissalIsIdempotent(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.svc.RecordEvent(ctx, ownerID, matchID, over.ID, f.event(EventInput{
			Event:         "W",
			OutedPlayerID: striker,
		}))
		require.NoError(t, err)
	}

	sess := f.scoring.sessions[matchID]
	assert.Equal(t, []int64{striker}, sess.DismissedBatters, "dismissal entry must not duplicate")
}

func TestWicketDefaultsToStriker(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)

	_, err := f.svc.RecordEvent(context.Background(), ownerID, matchID, over.ID, f.event(EventInput{Event: "W"}))
	require.NoError(t, err)

	sess := f.scoring.sessions[matchID]
	assert.True(t, sess.IsDismissed(striker))
	assert.NotContains(t, sess.RemainingBatters, striker)
}

func TestOverCompleteRotatesBowler(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)
	ctx := context.Background()

	result, err := f.svc.RecordEvent(ctx, ownerID, matchID, over.ID, f.event(EventInput{
		Event:       "OVER",
		OverSummary: "tight over",
		NewBowlerID: bowlerY,
	}))
	require.NoError(t, err)
	require.True(t, result.OverComplete)
	require.NotZero(t, result.NewOverID)

	next := f.scoring.overs[result.NewOverID]
	require.NotNil(t, next)
	assert.Equal(t, over.OverNo+1, next.OverNo)
	assert.Equal(t, bowlerY, next.BowlerID)
	assert.Equal(t, teamB, next.BowlingTeamID, "bowling side keeps the innings")
	assert.Zero(t, next.Runs)
	assert.Zero(t, next.Wickets)

	assert.Equal(t, "tight over", f.scoring.overs[over.ID].OverSummary)

	sess := f.scoring.sessions[matchID]
	assert.Equal(t, bowlerY, sess.BowlerID)

	bowlerStats := f.scoring.stats[statsKey(matchID, bowlerX)]
	require.NotNil(t, bowlerStats)
	assert.True(t, bowlerStats.OversBowled.Equal(decimal.NewFromInt(1)))
}

func TestOverCompleteRequiresNewBowler(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)

	_, err := f.svc.RecordEvent(context.Background(), ownerID, matchID, over.ID, f.event(EventInput{
		Event: "OVER",
	}))
	assert.ErrorIs(t, err, ErrInvalidInput)

	// the whole event rolled back: no extra over, no stats residue
	assert.Len(t, f.scoring.overs, 1)
	assert.Nil(t, f.scoring.stats[statsKey(matchID, bowlerX)])
}

func TestRecordEventForbiddenLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)

	for _, event := range []string{"4", "W", "OVER"} {
		_, err := f.svc.RecordEvent(context.Background(), readerID, matchID, over.ID, f.event(EventInput{
			Event:       event,
			NewBowlerID: bowlerY,
		}))
		assert.ErrorIs(t, err, ErrForbidden, "event %s", event)
	}

	assert.Len(t, f.scoring.overs, 1)
	assert.Zero(t, f.scoring.overs[over.ID].Runs)
	assert.Zero(t, f.scoring.overs[over.ID].Wickets)
	assert.Empty(t, f.scoring.stats)
	assert.Empty(t, f.feed.updates)
}

func TestRecordEventUnknownOver(t *testing.T) {
	f := newFixture(t)
	f.startScoring(t)

	_, err := f.svc.RecordEvent(context.Background(), ownerID, matchID, 999, f.event(EventInput{Event: "4"}))
	assert.ErrorIs(t, err, ErrNotFound)
}

// The worked scenario: 2-over match, events [4 1 W 0 2 OVER] with a
// bowler change at the over boundary.
func TestScoringScenario(t *testing.T) {
	f := newFixture(t)
	over1 := f.startScoring(t)
	ctx := context.Background()

	for _, event := range []string{"4", "1", "W", "0", "2"} {
		_, err := f.svc.RecordEvent(ctx, ownerID, matchID, over1.ID, f.event(EventInput{Event: event}))
		require.NoError(t, err, "event %s", event)
	}

	result, err := f.svc.RecordEvent(ctx, ownerID, matchID, over1.ID, f.event(EventInput{
		Event:       "OVER",
		NewBowlerID: bowlerY,
	}))
	require.NoError(t, err)

	final := f.scoring.overs[over1.ID]
	assert.Equal(t, 7, final.Runs)
	assert.Equal(t, 1, final.Wickets)

	sess := f.scoring.sessions[matchID]
	assert.Len(t, sess.DismissedBatters, 1)
	assert.Equal(t, bowlerY, sess.BowlerID)

	over2 := f.scoring.overs[result.NewOverID]
	require.NotNil(t, over2)
	assert.Equal(t, 2, over2.OverNo)
	assert.Equal(t, bowlerY, over2.BowlerID)
	assert.Zero(t, over2.Runs)
	assert.Zero(t, over2.Wickets)
}

func TestFinalOverCompletesMatch(t *testing.T) {
	f := newFixture(t)
	over1 := f.startScoring(t)
	ctx := context.Background()

	_, err := f.svc.RecordEvent(ctx, ownerID, matchID, over1.ID, f.event(EventInput{Event: "4"}))
	require.NoError(t, err)

	result, err := f.svc.RecordEvent(ctx, ownerID, matchID, over1.ID, f.event(EventInput{
		Event:       "OVER",
		NewBowlerID: bowlerY,
	}))
	require.NoError(t, err)
	require.False(t, result.MatchComplete)

	over2ID := result.NewOverID
	_, err = f.svc.RecordEvent(ctx, ownerID, matchID, over2ID, f.event(EventInput{Event: "6", BowlerID: bowlerY}))
	require.NoError(t, err)

	// last scheduled over: completion closes the match, no new bowler needed
	result, err = f.svc.RecordEvent(ctx, ownerID, matchID, over2ID, f.event(EventInput{
		Event:    "OVER",
		BowlerID: bowlerY,
	}))
	require.NoError(t, err)
	assert.True(t, result.MatchComplete)
	assert.Zero(t, result.NewOverID)

	sess := f.scoring.sessions[matchID]
	assert.Equal(t, models.SessionCompleted, sess.State)

	// batting side totals rolled onto the match row
	m := f.matches.m[matchID]
	assert.Equal(t, 10, m.Team1Runs)
	assert.Equal(t, 0, m.Team1Wickets)

	// career counters bumped
	assert.Equal(t, 10, f.players.m[striker].TotalRuns)
	assert.Equal(t, 1, f.players.m[striker].TotalMatches)

	// a completed session takes no further events
	_, err = f.svc.RecordEvent(ctx, ownerID, matchID, over2ID, f.event(EventInput{Event: "1", BowlerID: bowlerY}))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLastBatterDismissedCompletesMatch(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)
	ctx := context.Background()

	// roster of 4: dismiss 103 and 104 (yet to bat) first
	for _, outed := range []int64{103, 104} {
		result, err := f.svc.RecordEvent(ctx, ownerID, matchID, over.ID, f.event(EventInput{
			Event:         "W",
			OutedPlayerID: outed,
		}))
		require.NoError(t, err)
		assert.False(t, result.MatchComplete, "outed %d", outed)
	}

	// a batter at the wicket falls with nobody left to come in
	result, err := f.svc.RecordEvent(ctx, ownerID, matchID, over.ID, f.event(EventInput{
		Event:         "W",
		OutedPlayerID: nonStriker,
	}))
	require.NoError(t, err)
	assert.True(t, result.MatchComplete)
	assert.Equal(t, models.SessionCompleted, f.scoring.sessions[matchID].State)
}

func TestRecordEventPublishesScoreUpdate(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)

	_, err := f.svc.RecordEvent(context.Background(), ownerID, matchID, over.ID, f.event(EventInput{Event: "4"}))
	require.NoError(t, err)

	require.Len(t, f.feed.updates, 1)
	update := f.feed.updates[0]
	assert.Equal(t, matchID, update.MatchId)
	assert.Equal(t, over.ID, update.OverId)
	assert.Equal(t, "4", update.Event)
	assert.Equal(t, 4, update.Runs)
}

func TestViewSnapshot(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)
	ctx := context.Background()

	view, err := f.svc.View(ctx, readerID, matchID, over.ID, striker, nonStriker, bowlerX)
	require.NoError(t, err)

	assert.Equal(t, matchID, view.Match.ID)
	assert.Equal(t, over.ID, view.Over.ID)
	assert.Equal(t, striker, view.Striker.ID)
	assert.Equal(t, 2, view.TotalOvers)

	remaining := make([]int64, 0, len(view.RemainingBatters))
	for _, p := range view.RemainingBatters {
		remaining = append(remaining, p.ID)
	}
	assert.Equal(t, []int64{103, 104}, remaining)
	assert.Len(t, view.BowlerChoices, 4)
	assert.Empty(t, view.DismissedBatters)
}

func TestViewDeniedWithoutReadAccess(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)

	_, err := f.svc.View(context.Background(), int64(99), matchID, over.ID, striker, nonStriker, bowlerX)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestViewUnknownPlayer(t *testing.T) {
	f := newFixture(t)
	over := f.startScoring(t)

	_, err := f.svc.View(context.Background(), ownerID, matchID, over.ID, int64(999), nonStriker, bowlerX)
	assert.ErrorIs(t, err, ErrNotFound)
}
