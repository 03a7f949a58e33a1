package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeamStore struct {
	db *pgxpool.Pool
}

func NewTeamStore(db *pgxpool.Pool) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) Create(ctx context.Context, t *models.Team) (int64, error) {
	var id int64

	query := `
		INSERT INTO teams (user_id, name)
		VALUES ($1, $2)
		RETURNING id;
	`

	err := s.db.QueryRow(ctx, query, t.UserID, t.Name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not create team: %w", err)
	}

	return id, nil
}

func (s *TeamStore) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM teams
		WHERE id = $1
	`, id)

	t := &models.Team{}
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // team not found
		}
		return nil, fmt.Errorf("failed to get team by ID: %w", err)
	}

	return t, nil
}

func (s *TeamStore) List(ctx context.Context) ([]*models.Team, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM teams
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		t := &models.Team{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}

func (s *TeamStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("could not delete team %d: %w", id, err)
	}
	return nil
}

// Players returns the team's roster in insertion order.
func (s *TeamStore) Players(ctx context.Context, teamID int64) ([]*models.Player, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.user_id, p.name, p.total_runs, p.total_wickets, p.total_matches, p.total_balls, p.created_at, p.updated_at
		FROM team_players tp
		JOIN players p ON p.id = tp.player_id
		WHERE tp.team_id = $1
		ORDER BY tp.id
	`, teamID)
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

// PlayerIDs returns the roster as ids only, in insertion order.
func (s *TeamStore) PlayerIDs(ctx context.Context, teamID int64) ([]int64, error) {
	rows, err := s.db.Query(ctx, `
		SELECT player_id FROM team_players
		WHERE team_id = $1
		ORDER BY id
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ReplacePlayers swaps the whole roster for the given set of player
// ids in one transaction.
func (s *TeamStore) ReplacePlayers(ctx context.Context, teamID int64, playerIDs []int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM team_players WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("could not clear roster for team %d: %w", teamID, err)
	}

	for _, pid := range playerIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO team_players (team_id, player_id) VALUES ($1, $2)
		`, teamID, pid); err != nil {
			return fmt.Errorf("could not add player %d to team %d: %w", pid, teamID, err)
		}
	}

	return tx.Commit(ctx)
}
