package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const playerColumns = `id, user_id, name, total_runs, total_wickets, total_matches, total_balls, created_at, updated_at`

type PlayerStore struct {
	db *pgxpool.Pool
}

func NewPlayerStore(db *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) Create(ctx context.Context, p *models.Player) (int64, error) {
	var id int64

	query := `
		INSERT INTO players (user_id, name)
		VALUES ($1, $2)
		RETURNING id;
	`

	err := s.db.QueryRow(ctx, query, p.UserID, p.Name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not create player: %w", err)
	}

	return id, nil
}

func (s *PlayerStore) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+playerColumns+`
		FROM players
		WHERE id = $1
	`, id)

	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // player not found
		}
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	return p, nil
}

// List returns all players, optionally filtered by a case-insensitive
// name substring.
func (s *PlayerStore) List(ctx context.Context, name string) ([]*models.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	return players, rows.Err()
}

func (s *PlayerStore) Update(ctx context.Context, p *models.Player) error {
	_, err := s.db.Exec(ctx, `
		UPDATE players
		SET name = $2, updated_at = now()
		WHERE id = $1
	`, p.ID, p.Name)
	if err != nil {
		return fmt.Errorf("could not update player %d: %w", p.ID, err)
	}
	return nil
}

func (s *PlayerStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("could not delete player %d: %w", id, err)
	}
	return nil
}

func scanPlayer(row pgx.Row) (*models.Player, error) {
	p := &models.Player{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.TotalRuns,
		&p.TotalWickets,
		&p.TotalMatches,
		&p.TotalBalls,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
