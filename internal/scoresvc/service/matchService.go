package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
)

// MatchRepo is the slice of the match store the service needs.
type MatchRepo interface {
	Create(ctx context.Context, m *models.Match) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	NextMatchNumber(ctx context.Context) (int, error)
	SetWinners(ctx context.Context, id int64, winners string) error
	Delete(ctx context.Context, id int64) error
}

type CreateMatchInput struct {
	Team1ID    int64     `json:"team1_id"`
	Team2ID    int64     `json:"team2_id"`
	TotalOvers int       `json:"total_overs"`
	Date       time.Time `json:"date"`
}

type MatchService struct {
	matches MatchRepo
	teams   TeamRepo
	gate    Authorizer
}

func NewMatchService(matches MatchRepo, teams TeamRepo, gate Authorizer) *MatchService {
	return &MatchService{matches: matches, teams: teams, gate: gate}
}

func (s *MatchService) Create(ctx context.Context, userID int64, in CreateMatchInput) (*models.Match, error) {
	if in.Team1ID == 0 || in.Team2ID == 0 {
		return nil, fmt.Errorf("%w: both teams are required", ErrInvalidInput)
	}
	if in.Team1ID == in.Team2ID {
		return nil, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	if in.TotalOvers <= 0 {
		return nil, fmt.Errorf("%w: total overs must be positive", ErrInvalidInput)
	}

	for _, tid := range []int64{in.Team1ID, in.Team2ID} {
		t, err := s.teams.GetByID(ctx, tid)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, fmt.Errorf("%w: team %d", ErrNotFound, tid)
		}
	}

	number, err := s.matches.NextMatchNumber(ctx)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	m := &models.Match{
		UserID:      userID,
		MatchNumber: number,
		Date:        date,
		Team1ID:     in.Team1ID,
		Team2ID:     in.Team2ID,
		TotalOvers:  in.TotalOvers,
	}

	id, err := s.matches.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id

	return m, nil
}

func (s *MatchService) List(ctx context.Context, userID int64) ([]*models.Match, error) {
	all, err := s.matches.List(ctx)
	if err != nil {
		return nil, err
	}

	readable := make([]*models.Match, 0, len(all))
	for _, m := range all {
		ok, err := s.gate.Authorize(ctx, userID, matchResource(m), models.AccessRead)
		if err != nil {
			return nil, err
		}
		if ok {
			readable = append(readable, m)
		}
	}

	return readable, nil
}

func (s *MatchService) Get(ctx context.Context, userID, matchID int64) (*models.Match, error) {
	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: match %d", ErrNotFound, matchID)
	}

	ok, err := s.gate.Authorize(ctx, userID, matchResource(m), models.AccessRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no read access to match %d", ErrForbidden, matchID)
	}

	return m, nil
}

// DeclareWinners records the winners label. The label stays a manual
// declaration by the scorer; completion does not compute it.
func (s *MatchService) DeclareWinners(ctx context.Context, userID, matchID int64, winners string) (*models.Match, error) {
	if winners == "" {
		return nil, fmt.Errorf("%w: winners label is required", ErrInvalidInput)
	}

	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: match %d", ErrNotFound, matchID)
	}

	ok, err := s.gate.Authorize(ctx, userID, matchResource(m), models.AccessWrite)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no write access to match %d", ErrForbidden, matchID)
	}

	if err := s.matches.SetWinners(ctx, matchID, winners); err != nil {
		return nil, err
	}
	m.Winners = sql.NullString{String: winners, Valid: true}

	return m, nil
}

func (s *MatchService) Delete(ctx context.Context, userID, matchID int64) error {
	m, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("%w: match %d", ErrNotFound, matchID)
	}

	ok, err := s.gate.Authorize(ctx, userID, matchResource(m), models.AccessWrite)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no write access to match %d", ErrForbidden, matchID)
	}

	return s.matches.Delete(ctx, matchID)
}

func matchResource(m *models.Match) models.Resource {
	return models.Resource{Kind: models.ResourceMatch, ID: m.ID, OwnerID: m.UserID}
}
