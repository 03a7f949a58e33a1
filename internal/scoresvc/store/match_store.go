package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const matchColumns = `id, user_id, match_number, date, team1_id, team2_id, total_overs,
		team1_runs, team1_wickets, team2_runs, team2_wickets, winners, created_at, updated_at`

type MatchStore struct {
	db *pgxpool.Pool
}

func NewMatchStore(db *pgxpool.Pool) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) Create(ctx context.Context, m *models.Match) (int64, error) {
	var id int64

	query := `
		INSERT INTO matches (user_id, match_number, date, team1_id, team2_id, total_overs)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`

	err := s.db.QueryRow(ctx, query,
		m.UserID, m.MatchNumber, m.Date, m.Team1ID, m.Team2ID, m.TotalOvers,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not create match: %w", err)
	}

	return id, nil
}

func (s *MatchStore) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE id = $1
	`, id)

	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // match not found
		}
		return nil, fmt.Errorf("failed to get match by ID: %w", err)
	}

	return m, nil
}

func (s *MatchStore) List(ctx context.Context) ([]*models.Match, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		ORDER BY match_number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// NextMatchNumber returns max(match_number)+1, starting at 1.
func (s *MatchStore) NextMatchNumber(ctx context.Context) (int, error) {
	var next int
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(match_number), 0) + 1 FROM matches
	`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("could not compute next match number: %w", err)
	}
	return next, nil
}

func (s *MatchStore) SetWinners(ctx context.Context, id int64, winners string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE matches SET winners = $2, updated_at = now() WHERE id = $1
	`, id, winners)
	if err != nil {
		return fmt.Errorf("could not set winners for match %d: %w", id, err)
	}
	return nil
}

func (s *MatchStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("could not delete match %d: %w", id, err)
	}
	return nil
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	m := &models.Match{}
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.MatchNumber,
		&m.Date,
		&m.Team1ID,
		&m.Team2ID,
		&m.TotalOvers,
		&m.Team1Runs,
		&m.Team1Wickets,
		&m.Team2Runs,
		&m.Team2Wickets,
		&m.Winners,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}
