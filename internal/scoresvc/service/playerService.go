package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
)

// PlayerRepo is the slice of the player store the service needs.
type PlayerRepo interface {
	Create(ctx context.Context, p *models.Player) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	List(ctx context.Context, name string) ([]*models.Player, error)
	Update(ctx context.Context, p *models.Player) error
	Delete(ctx context.Context, id int64) error
}

type PlayerService struct {
	players PlayerRepo
	gate    Authorizer
}

func NewPlayerService(players PlayerRepo, gate Authorizer) *PlayerService {
	return &PlayerService{players: players, gate: gate}
}

func (s *PlayerService) Create(ctx context.Context, userID int64, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	p := &models.Player{UserID: userID, Name: name}
	id, err := s.players.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	return p, nil
}

// List returns the players the user may read, optionally filtered by a
// name substring.
func (s *PlayerService) List(ctx context.Context, userID int64, name string) ([]*models.Player, error) {
	all, err := s.players.List(ctx, name)
	if err != nil {
		return nil, err
	}

	readable := make([]*models.Player, 0, len(all))
	for _, p := range all {
		ok, err := s.gate.Authorize(ctx, userID, playerResource(p), models.AccessRead)
		if err != nil {
			return nil, err
		}
		if ok {
			readable = append(readable, p)
		}
	}

	return readable, nil
}

func (s *PlayerService) Get(ctx context.Context, userID, playerID int64) (*models.Player, error) {
	p, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: player %d", ErrNotFound, playerID)
	}

	ok, err := s.gate.Authorize(ctx, userID, playerResource(p), models.AccessRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no read access to player %d", ErrForbidden, playerID)
	}

	return p, nil
}

func (s *PlayerService) Rename(ctx context.Context, userID, playerID int64, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	p, err := s.requireWrite(ctx, userID, playerID)
	if err != nil {
		return nil, err
	}

	p.Name = name
	if err := s.players.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *PlayerService) Delete(ctx context.Context, userID, playerID int64) error {
	if _, err := s.requireWrite(ctx, userID, playerID); err != nil {
		return err
	}
	return s.players.Delete(ctx, playerID)
}

func (s *PlayerService) requireWrite(ctx context.Context, userID, playerID int64) (*models.Player, error) {
	p, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: player %d", ErrNotFound, playerID)
	}

	ok, err := s.gate.Authorize(ctx, userID, playerResource(p), models.AccessWrite)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no write access to player %d", ErrForbidden, playerID)
	}

	return p, nil
}

func playerResource(p *models.Player) models.Resource {
	return models.Resource{Kind: models.ResourcePlayer, ID: p.ID, OwnerID: p.UserID}
}
