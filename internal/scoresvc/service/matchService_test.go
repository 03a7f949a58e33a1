package service

import (
	"context"
	"testing"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMatchRepo struct {
	m      map[int64]*models.Match
	nextID int64
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{m: map[int64]*models.Match{}, nextID: 1}
}

func (f *fakeMatchRepo) Create(ctx context.Context, m *models.Match) (int64, error) {
	id := f.nextID
	f.nextID++
	c := *m
	c.ID = id
	f.m[id] = &c
	return id, nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	m, ok := f.m[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (f *fakeMatchRepo) List(ctx context.Context) ([]*models.Match, error) {
	var out []*models.Match
	for _, m := range f.m {
		c := *m
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeMatchRepo) NextMatchNumber(ctx context.Context) (int, error) {
	next := 1
	for _, m := range f.m {
		if m.MatchNumber >= next {
			next = m.MatchNumber + 1
		}
	}
	return next, nil
}

func (f *fakeMatchRepo) SetWinners(ctx context.Context, id int64, winners string) error {
	if m, ok := f.m[id]; ok {
		m.Winners.String = winners
		m.Winners.Valid = true
	}
	return nil
}

func (f *fakeMatchRepo) Delete(ctx context.Context, id int64) error {
	delete(f.m, id)
	return nil
}

func newMatchFixture(t *testing.T) (*MatchService, *fakeMatchRepo) {
	t.Helper()
	f := newFixture(t)

	teams := &fakeTeamRepo{
		fakeTeams: fakeTeams{rosters: f.teams.rosters, players: f.players},
		m: map[int64]*models.Team{
			teamA: {ID: teamA, UserID: ownerID, Name: "alpha"},
			teamB: {ID: teamB, UserID: ownerID, Name: "bravo"},
		},
	}
	repo := newFakeMatchRepo()

	return NewMatchService(repo, teams, f.gate), repo
}

func TestCreateMatch(t *testing.T) {
	svc, repo := newMatchFixture(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, ownerID, CreateMatchInput{Team1ID: teamA, Team2ID: teamB, TotalOvers: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, m.MatchNumber)
	assert.False(t, m.Date.IsZero())

	m2, err := svc.Create(ctx, ownerID, CreateMatchInput{Team1ID: teamB, Team2ID: teamA, TotalOvers: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, m2.MatchNumber)
	assert.Len(t, repo.m, 2)
}

func TestCreateMatchValidation(t *testing.T) {
	svc, _ := newMatchFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateMatchInput
		want error
	}{
		{"missing team", CreateMatchInput{Team1ID: teamA, TotalOvers: 5}, ErrInvalidInput},
		{"same team twice", CreateMatchInput{Team1ID: teamA, Team2ID: teamA, TotalOvers: 5}, ErrInvalidInput},
		{"no overs", CreateMatchInput{Team1ID: teamA, Team2ID: teamB}, ErrInvalidInput},
		{"unknown team", CreateMatchInput{Team1ID: teamA, Team2ID: 999, TotalOvers: 5}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, ownerID, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeclareWinners(t *testing.T) {
	svc, repo := newMatchFixture(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, ownerID, CreateMatchInput{Team1ID: teamA, Team2ID: teamB, TotalOvers: 5})
	require.NoError(t, err)

	declared, err := svc.DeclareWinners(ctx, ownerID, m.ID, "alpha")
	require.NoError(t, err)
	assert.True(t, declared.Winners.Valid)
	assert.Equal(t, "alpha", declared.Winners.String)
	assert.Equal(t, "alpha", repo.m[m.ID].Winners.String)

	_, err = svc.DeclareWinners(ctx, readerID, m.ID, "alpha")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.DeclareWinners(ctx, ownerID, m.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
