package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same
// store methods run pooled or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Scoring is everything the over-scoring engine needs from the store.
// WithTx hands the callback a store bound to one transaction; if the
// callback errors, every write made through it is rolled back.
type Scoring interface {
	WithTx(ctx context.Context, fn func(Scoring) error) error

	GetSession(ctx context.Context, matchID int64) (*models.ScoringSession, error)
	UpsertSession(ctx context.Context, s *models.ScoringSession) error

	GetOver(ctx context.Context, overID int64) (*models.Over, error)
	CreateOver(ctx context.Context, o *models.Over) (int64, error)
	SaveOver(ctx context.Context, o *models.Over) error
	LatestOverNo(ctx context.Context, matchID int64) (int, error)

	GetOrCreateStats(ctx context.Context, matchID, playerID, ownerID int64) (*models.PlayerMatchStats, error)
	SaveStats(ctx context.Context, st *models.PlayerMatchStats) error
	ListStats(ctx context.Context, matchID int64) ([]*models.PlayerMatchStats, error)

	MatchOverTotals(ctx context.Context, matchID int64) (runs, wickets int, err error)
	SaveMatchScore(ctx context.Context, m *models.Match) error
	AddPlayerTotals(ctx context.Context, playerID int64, runs, balls, wickets, matches int) error
}

type ScoringStore struct {
	pool *pgxpool.Pool
	q    querier
}

func NewScoringStore(db *pgxpool.Pool) *ScoringStore {
	return &ScoringStore{pool: db, q: db}
}

func (s *ScoringStore) WithTx(ctx context.Context, fn func(Scoring) error) error {
	if _, inTx := s.q.(pgx.Tx); inTx {
		return fn(s) // already transactional
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Errorf("scoring tx rollback failed: %v", err)
		}
	}()

	if err := fn(&ScoringStore{pool: s.pool, q: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *ScoringStore) GetSession(ctx context.Context, matchID int64) (*models.ScoringSession, error) {
	row := s.q.QueryRow(ctx, `
		SELECT match_id, batting_team_id, bowling_team_id, toss_winner_id, toss_decision,
		       total_overs, striker_id, non_striker_id, bowler_id,
		       remaining_batters, dismissed_batters, state, updated_at
		FROM scoring_sessions
		WHERE match_id = $1
	`, matchID)

	sess := &models.ScoringSession{}
	err := row.Scan(
		&sess.MatchID,
		&sess.BattingTeamID,
		&sess.BowlingTeamID,
		&sess.TossWinnerID,
		&sess.TossDecision,
		&sess.TotalOvers,
		&sess.StrikerID,
		&sess.NonStrikerID,
		&sess.BowlerID,
		&sess.RemainingBatters,
		&sess.DismissedBatters,
		&sess.State,
		&sess.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no session for this match yet
		}
		return nil, fmt.Errorf("failed to get scoring session: %w", err)
	}

	return sess, nil
}

func (s *ScoringStore) UpsertSession(ctx context.Context, sess *models.ScoringSession) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO scoring_sessions (match_id, batting_team_id, bowling_team_id, toss_winner_id,
			toss_decision, total_overs, striker_id, non_striker_id, bowler_id,
			remaining_batters, dismissed_batters, state, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
		ON CONFLICT (match_id) DO UPDATE SET
			batting_team_id = EXCLUDED.batting_team_id,
			bowling_team_id = EXCLUDED.bowling_team_id,
			toss_winner_id = EXCLUDED.toss_winner_id,
			toss_decision = EXCLUDED.toss_decision,
			total_overs = EXCLUDED.total_overs,
			striker_id = EXCLUDED.striker_id,
			non_striker_id = EXCLUDED.non_striker_id,
			bowler_id = EXCLUDED.bowler_id,
			remaining_batters = EXCLUDED.remaining_batters,
			dismissed_batters = EXCLUDED.dismissed_batters,
			state = EXCLUDED.state,
			updated_at = now()
	`, sess.MatchID, sess.BattingTeamID, sess.BowlingTeamID, sess.TossWinnerID,
		sess.TossDecision, sess.TotalOvers, sess.StrikerID, sess.NonStrikerID, sess.BowlerID,
		sess.RemainingBatters, sess.DismissedBatters, sess.State)
	if err != nil {
		return fmt.Errorf("could not save scoring session for match %d: %w", sess.MatchID, err)
	}
	return nil
}

func (s *ScoringStore) GetOver(ctx context.Context, overID int64) (*models.Over, error) {
	row := s.q.QueryRow(ctx, `
		SELECT id, match_id, user_id, bowling_team_id, over_no, bowler_id,
		       runs, wickets, over_summary, created_at, updated_at
		FROM overs
		WHERE id = $1
	`, overID)

	o := &models.Over{}
	err := row.Scan(
		&o.ID,
		&o.MatchID,
		&o.UserID,
		&o.BowlingTeamID,
		&o.OverNo,
		&o.BowlerID,
		&o.Runs,
		&o.Wickets,
		&o.OverSummary,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // over not found
		}
		return nil, fmt.Errorf("failed to get over by ID: %w", err)
	}

	return o, nil
}

func (s *ScoringStore) CreateOver(ctx context.Context, o *models.Over) (int64, error) {
	var id int64

	// unique_match_over rejects a duplicate (match_id, over_no) pair
	err := s.q.QueryRow(ctx, `
		INSERT INTO overs (match_id, user_id, bowling_team_id, over_no, bowler_id, runs, wickets, over_summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`, o.MatchID, o.UserID, o.BowlingTeamID, o.OverNo, o.BowlerID, o.Runs, o.Wickets, o.OverSummary).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not create over %d for match %d: %w", o.OverNo, o.MatchID, err)
	}

	return id, nil
}

func (s *ScoringStore) SaveOver(ctx context.Context, o *models.Over) error {
	_, err := s.q.Exec(ctx, `
		UPDATE overs
		SET runs = $2, wickets = $3, over_summary = $4, bowler_id = $5, updated_at = now()
		WHERE id = $1
	`, o.ID, o.Runs, o.Wickets, o.OverSummary, o.BowlerID)
	if err != nil {
		return fmt.Errorf("could not save over %d: %w", o.ID, err)
	}
	return nil
}

func (s *ScoringStore) LatestOverNo(ctx context.Context, matchID int64) (int, error) {
	var overNo int
	err := s.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(over_no), 0) FROM overs WHERE match_id = $1
	`, matchID).Scan(&overNo)
	if err != nil {
		return 0, fmt.Errorf("could not get latest over number: %w", err)
	}
	return overNo, nil
}

// GetOrCreateStats lazily creates the (match, player) stats row on
// first touch, owned by the acting user.
func (s *ScoringStore) GetOrCreateStats(ctx context.Context, matchID, playerID, ownerID int64) (*models.PlayerMatchStats, error) {
	row := s.q.QueryRow(ctx, `
		INSERT INTO player_match_stats (match_id, player_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_id, player_id) DO UPDATE SET match_id = EXCLUDED.match_id
		RETURNING id, match_id, player_id, user_id, runs, balls, wickets, overs_bowled, bowling_runs, created_at, updated_at;
	`, matchID, playerID, ownerID)

	st := &models.PlayerMatchStats{}
	if err := scanStats(row, st); err != nil {
		return nil, fmt.Errorf("could not get or create stats for player %d in match %d: %w", playerID, matchID, err)
	}

	return st, nil
}

func (s *ScoringStore) SaveStats(ctx context.Context, st *models.PlayerMatchStats) error {
	_, err := s.q.Exec(ctx, `
		UPDATE player_match_stats
		SET runs = $2, balls = $3, wickets = $4, overs_bowled = $5, bowling_runs = $6, updated_at = now()
		WHERE id = $1
	`, st.ID, st.Runs, st.Balls, st.Wickets, st.OversBowled, st.BowlingRuns)
	if err != nil {
		return fmt.Errorf("could not save stats %d: %w", st.ID, err)
	}
	return nil
}

func (s *ScoringStore) ListStats(ctx context.Context, matchID int64) ([]*models.PlayerMatchStats, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, match_id, player_id, user_id, runs, balls, wickets, overs_bowled, bowling_runs, created_at, updated_at
		FROM player_match_stats
		WHERE match_id = $1
		ORDER BY id
	`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*models.PlayerMatchStats
	for rows.Next() {
		st := &models.PlayerMatchStats{}
		if err := scanStats(rows, st); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}

	return stats, rows.Err()
}

// MatchOverTotals sums the runs conceded and wickets taken across all
// overs of a match.
func (s *ScoringStore) MatchOverTotals(ctx context.Context, matchID int64) (int, int, error) {
	var runs, wickets int
	err := s.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(runs), 0), COALESCE(SUM(wickets), 0)
		FROM overs
		WHERE match_id = $1
	`, matchID).Scan(&runs, &wickets)
	if err != nil {
		return 0, 0, fmt.Errorf("could not total overs for match %d: %w", matchID, err)
	}
	return runs, wickets, nil
}

// SaveMatchScore persists the per-team totals and winners label.
func (s *ScoringStore) SaveMatchScore(ctx context.Context, m *models.Match) error {
	_, err := s.q.Exec(ctx, `
		UPDATE matches
		SET team1_runs = $2, team1_wickets = $3, team2_runs = $4, team2_wickets = $5,
		    winners = $6, updated_at = now()
		WHERE id = $1
	`, m.ID, m.Team1Runs, m.Team1Wickets, m.Team2Runs, m.Team2Wickets, m.Winners)
	if err != nil {
		return fmt.Errorf("could not save match score %d: %w", m.ID, err)
	}
	return nil
}

// AddPlayerTotals bumps a player's career counters additively.
func (s *ScoringStore) AddPlayerTotals(ctx context.Context, playerID int64, runs, balls, wickets, matches int) error {
	_, err := s.q.Exec(ctx, `
		UPDATE players
		SET total_runs = total_runs + $2,
		    total_balls = total_balls + $3,
		    total_wickets = total_wickets + $4,
		    total_matches = total_matches + $5,
		    updated_at = now()
		WHERE id = $1
	`, playerID, runs, balls, wickets, matches)
	if err != nil {
		return fmt.Errorf("could not update totals for player %d: %w", playerID, err)
	}
	return nil
}

func scanStats(row pgx.Row, st *models.PlayerMatchStats) error {
	return row.Scan(
		&st.ID,
		&st.MatchID,
		&st.PlayerID,
		&st.UserID,
		&st.Runs,
		&st.Balls,
		&st.Wickets,
		&st.OversBowled,
		&st.BowlingRuns,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
}
