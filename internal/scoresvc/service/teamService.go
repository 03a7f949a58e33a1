package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
)

// TeamRepo is the slice of the team store the service needs.
type TeamRepo interface {
	Create(ctx context.Context, t *models.Team) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	Delete(ctx context.Context, id int64) error
	Players(ctx context.Context, teamID int64) ([]*models.Player, error)
	ReplacePlayers(ctx context.Context, teamID int64, playerIDs []int64) error
}

type TeamService struct {
	teams   TeamRepo
	players PlayerGetter
	gate    Authorizer
}

func NewTeamService(teams TeamRepo, players PlayerGetter, gate Authorizer) *TeamService {
	return &TeamService{teams: teams, players: players, gate: gate}
}

func (s *TeamService) Create(ctx context.Context, userID int64, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	t := &models.Team{UserID: userID, Name: name}
	id, err := s.teams.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = id

	return t, nil
}

func (s *TeamService) List(ctx context.Context, userID int64) ([]*models.Team, error) {
	all, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}

	readable := make([]*models.Team, 0, len(all))
	for _, t := range all {
		ok, err := s.gate.Authorize(ctx, userID, teamResource(t), models.AccessRead)
		if err != nil {
			return nil, err
		}
		if ok {
			readable = append(readable, t)
		}
	}

	return readable, nil
}

// Get returns the team with its roster populated.
func (s *TeamService) Get(ctx context.Context, userID, teamID int64) (*models.Team, error) {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: team %d", ErrNotFound, teamID)
	}

	ok, err := s.gate.Authorize(ctx, userID, teamResource(t), models.AccessRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no read access to team %d", ErrForbidden, teamID)
	}

	if t.Players, err = s.teams.Players(ctx, teamID); err != nil {
		return nil, err
	}

	return t, nil
}

// SetPlayers replaces the whole roster with the given player ids.
func (s *TeamService) SetPlayers(ctx context.Context, userID, teamID int64, playerIDs []int64) error {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: team %d", ErrNotFound, teamID)
	}

	ok, err := s.gate.Authorize(ctx, userID, teamResource(t), models.AccessWrite)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no write access to team %d", ErrForbidden, teamID)
	}

	for _, pid := range playerIDs {
		p, err := s.players.GetByID(ctx, pid)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: player %d", ErrNotFound, pid)
		}
	}

	return s.teams.ReplacePlayers(ctx, teamID, playerIDs)
}

func (s *TeamService) Delete(ctx context.Context, userID, teamID int64) error {
	t, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: team %d", ErrNotFound, teamID)
	}

	ok, err := s.gate.Authorize(ctx, userID, teamResource(t), models.AccessWrite)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no write access to team %d", ErrForbidden, teamID)
	}

	return s.teams.Delete(ctx, teamID)
}

func teamResource(t *models.Team) models.Resource {
	return models.Resource{Kind: models.ResourceTeam, ID: t.ID, OwnerID: t.UserID}
}
