package service

import (
	"context"
	"fmt"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/comm"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/store"
)

// in-memory store.Scoring with snapshot rollback, so the engine's
// transactional behavior is observable without a database.
type fakeScoring struct {
	sessions map[int64]*models.ScoringSession
	overs    map[int64]*models.Over
	stats    map[string]*models.PlayerMatchStats
	matches  *fakeMatches
	players  *fakePlayers
	nextID   int64
}

func newFakeScoring(matches *fakeMatches, players *fakePlayers) *fakeScoring {
	return &fakeScoring{
		sessions: map[int64]*models.ScoringSession{},
		overs:    map[int64]*models.Over{},
		stats:    map[string]*models.PlayerMatchStats{},
		matches:  matches,
		players:  players,
		nextID:   1,
	}
}

func statsKey(matchID, playerID int64) string {
	return fmt.Sprintf("%d:%d", matchID, playerID)
}

type scoringSnapshot struct {
	sessions map[int64]*models.ScoringSession
	overs    map[int64]*models.Over
	stats    map[string]*models.PlayerMatchStats
	matches  map[int64]*models.Match
	players  map[int64]*models.Player
	nextID   int64
}

func (f *fakeScoring) snapshot() scoringSnapshot {
	snap := scoringSnapshot{
		sessions: map[int64]*models.ScoringSession{},
		overs:    map[int64]*models.Over{},
		stats:    map[string]*models.PlayerMatchStats{},
		matches:  map[int64]*models.Match{},
		players:  map[int64]*models.Player{},
		nextID:   f.nextID,
	}
	for k, v := range f.sessions {
		c := *v
		c.RemainingBatters = append([]int64(nil), v.RemainingBatters...)
		c.DismissedBatters = append([]int64(nil), v.DismissedBatters...)
		snap.sessions[k] = &c
	}
	for k, v := range f.overs {
		c := *v
		snap.overs[k] = &c
	}
	for k, v := range f.stats {
		c := *v
		snap.stats[k] = &c
	}
	for k, v := range f.matches.m {
		c := *v
		snap.matches[k] = &c
	}
	for k, v := range f.players.m {
		c := *v
		snap.players[k] = &c
	}
	return snap
}

func (f *fakeScoring) restore(snap scoringSnapshot) {
	f.sessions = snap.sessions
	f.overs = snap.overs
	f.stats = snap.stats
	f.matches.m = snap.matches
	f.players.m = snap.players
	f.nextID = snap.nextID
}

func (f *fakeScoring) WithTx(ctx context.Context, fn func(store.Scoring) error) error {
	snap := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

func (f *fakeScoring) GetSession(ctx context.Context, matchID int64) (*models.ScoringSession, error) {
	s, ok := f.sessions[matchID]
	if !ok {
		return nil, nil
	}
	c := *s
	c.RemainingBatters = append([]int64(nil), s.RemainingBatters...)
	c.DismissedBatters = append([]int64(nil), s.DismissedBatters...)
	return &c, nil
}

func (f *fakeScoring) UpsertSession(ctx context.Context, s *models.ScoringSession) error {
	c := *s
	c.RemainingBatters = append([]int64(nil), s.RemainingBatters...)
	c.DismissedBatters = append([]int64(nil), s.DismissedBatters...)
	f.sessions[s.MatchID] = &c
	return nil
}

func (f *fakeScoring) GetOver(ctx context.Context, overID int64) (*models.Over, error) {
	o, ok := f.overs[overID]
	if !ok {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (f *fakeScoring) CreateOver(ctx context.Context, o *models.Over) (int64, error) {
	for _, existing := range f.overs {
		if existing.MatchID == o.MatchID && existing.OverNo == o.OverNo {
			return 0, fmt.Errorf("duplicate over %d for match %d", o.OverNo, o.MatchID)
		}
	}
	id := f.nextID
	f.nextID++
	c := *o
	c.ID = id
	f.overs[id] = &c
	return id, nil
}

func (f *fakeScoring) SaveOver(ctx context.Context, o *models.Over) error {
	c := *o
	f.overs[o.ID] = &c
	return nil
}

func (f *fakeScoring) LatestOverNo(ctx context.Context, matchID int64) (int, error) {
	latest := 0
	for _, o := range f.overs {
		if o.MatchID == matchID && o.OverNo > latest {
			latest = o.OverNo
		}
	}
	return latest, nil
}

func (f *fakeScoring) GetOrCreateStats(ctx context.Context, matchID, playerID, ownerID int64) (*models.PlayerMatchStats, error) {
	key := statsKey(matchID, playerID)
	st, ok := f.stats[key]
	if !ok {
		id := f.nextID
		f.nextID++
		st = &models.PlayerMatchStats{ID: id, MatchID: matchID, PlayerID: playerID, UserID: ownerID}
		f.stats[key] = st
	}
	c := *st
	return &c, nil
}

func (f *fakeScoring) SaveStats(ctx context.Context, st *models.PlayerMatchStats) error {
	c := *st
	f.stats[statsKey(st.MatchID, st.PlayerID)] = &c
	return nil
}

func (f *fakeScoring) ListStats(ctx context.Context, matchID int64) ([]*models.PlayerMatchStats, error) {
	var out []*models.PlayerMatchStats
	for _, st := range f.stats {
		if st.MatchID == matchID {
			c := *st
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeScoring) MatchOverTotals(ctx context.Context, matchID int64) (int, int, error) {
	runs, wickets := 0, 0
	for _, o := range f.overs {
		if o.MatchID == matchID {
			runs += o.Runs
			wickets += o.Wickets
		}
	}
	return runs, wickets, nil
}

func (f *fakeScoring) SaveMatchScore(ctx context.Context, m *models.Match) error {
	c := *m
	f.matches.m[m.ID] = &c
	return nil
}

func (f *fakeScoring) AddPlayerTotals(ctx context.Context, playerID int64, runs, balls, wickets, matches int) error {
	p, ok := f.players.m[playerID]
	if !ok {
		return fmt.Errorf("player %d not found", playerID)
	}
	p.TotalRuns += runs
	p.TotalBalls += balls
	p.TotalWickets += wickets
	p.TotalMatches += matches
	return nil
}

type fakeMatches struct {
	m map[int64]*models.Match
}

func (f *fakeMatches) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	m, ok := f.m[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

type fakePlayers struct {
	m map[int64]*models.Player
}

func (f *fakePlayers) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	p, ok := f.m[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

type fakeTeams struct {
	rosters map[int64][]int64
	players *fakePlayers
}

func (f *fakeTeams) PlayerIDs(ctx context.Context, teamID int64) ([]int64, error) {
	return append([]int64(nil), f.rosters[teamID]...), nil
}

func (f *fakeTeams) Players(ctx context.Context, teamID int64) ([]*models.Player, error) {
	var out []*models.Player
	for _, id := range f.rosters[teamID] {
		if p, ok := f.players.m[id]; ok {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

// fakeGate allows exactly the listed (user, type) pairs, plus always
// the resource owner.
type fakeGate struct {
	grants map[int64]models.AccessType
}

func (f *fakeGate) Authorize(ctx context.Context, userID int64, res models.Resource, accessType models.AccessType) (bool, error) {
	if userID == res.OwnerID {
		return true, nil
	}
	return f.grants[userID] == accessType, nil
}

type fakeFeed struct {
	updates []comm.ScoreUpdate
}

func (f *fakeFeed) PublishScore(u comm.ScoreUpdate) error {
	f.updates = append(f.updates, u)
	return nil
}
