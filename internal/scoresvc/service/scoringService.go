package service

import (
	"context"
	"fmt"
	"time"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/comm"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/store"
	log "github.com/sirupsen/logrus"
)

// PlayerGetter resolves a player id; nil player means not found.
type PlayerGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Player, error)
}

// TeamRoster is the slice of the team store the engine needs.
type TeamRoster interface {
	PlayerIDs(ctx context.Context, teamID int64) ([]int64, error)
	Players(ctx context.Context, teamID int64) ([]*models.Player, error)
}

// Publisher pushes applied scoring events to the live feed. A nil
// publisher disables the feed; a publish failure never fails a request.
type Publisher interface {
	PublishScore(u comm.ScoreUpdate) error
}

const (
	EventWicket       = "W"
	EventOverComplete = "OVER"
)

// runsForEvent maps a run event to its value. "5" is not a thing in
// this scoring model.
func runsForEvent(event string) (int, bool) {
	switch event {
	case "0", "1", "2", "3", "4", "6":
		return int(event[0] - '0'), true
	}
	return 0, false
}

type StartOverInput struct {
	BowlerID     int64 `json:"bowler_id"`
	StrikerID    int64 `json:"striker_id"`     // opening over only
	NonStrikerID int64 `json:"non_striker_id"` // opening over only
	OverNo       int   `json:"over_no"`        // optional, must be previous+1 when set
}

type EventInput struct {
	StrikerID     int64  `json:"striker_id"`
	NonStrikerID  int64  `json:"non_striker_id"`
	BowlerID      int64  `json:"bowler_id"`
	Event         string `json:"event"`
	OutedPlayerID int64  `json:"outed_player_id"` // defaults to the striker
	OverSummary   string `json:"over_summary"`
	NewBowlerID   int64  `json:"new_bowler_id"` // required for OVER
}

// EventResult echoes what the event changed so clients can render it
// without refetching.
type EventResult struct {
	Message       string `json:"message"`
	Runs          int    `json:"runs"`
	Wicket        bool   `json:"wicket"`
	OverComplete  bool   `json:"over_complete"`
	MatchComplete bool   `json:"match_complete"`
	NewOverID     int64  `json:"new_over_id,omitempty"`
	NewOverNo     int    `json:"new_over_no,omitempty"`
	NewBowlerID   int64  `json:"new_bowler_id,omitempty"`
}

// SessionView is the presentation snapshot of a scoring session.
type SessionView struct {
	Match            *models.Match          `json:"match"`
	Over             *models.Over           `json:"over"`
	Striker          *models.Player         `json:"striker"`
	NonStriker       *models.Player         `json:"non_striker"`
	Bowler           *models.Player         `json:"bowler"`
	TotalOvers       int                    `json:"total_overs"`
	State            models.SessionState    `json:"state"`
	BowlerChoices    []*models.Player       `json:"bowler_choices"`
	RemainingBatters []*models.Player       `json:"remaining_batters"`
	DismissedBatters []*models.Player       `json:"dismissed_batters"`
}

// ScoringService is the over-scoring engine. All durable writes of a
// single event happen in one transaction through the scoring store.
type ScoringService struct {
	scoring store.Scoring
	matches MatchGetter
	players PlayerGetter
	teams   TeamRoster
	gate    Authorizer
	feed    Publisher
}

func NewScoringService(scoring store.Scoring, matches MatchGetter, players PlayerGetter,
	teams TeamRoster, gate Authorizer, feed Publisher) *ScoringService {
	return &ScoringService{
		scoring: scoring,
		matches: matches,
		players: players,
		teams:   teams,
		gate:    gate,
		feed:    feed,
	}
}

// StartOver opens a new over for the match. The opening over also
// fixes the two batters at the wicket and seeds the batting order from
// the batting team's roster.
func (s *ScoringService) StartOver(ctx context.Context, userID, matchID int64, in StartOverInput) (*models.Over, error) {
	match, err := s.requireMatchWrite(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}

	if in.BowlerID == 0 {
		return nil, fmt.Errorf("%w: bowler is required", ErrInvalidInput)
	}
	if err := s.requirePlayer(ctx, in.BowlerID); err != nil {
		return nil, err
	}

	over := &models.Over{MatchID: match.ID, UserID: userID, BowlerID: in.BowlerID}

	err = s.scoring.WithTx(ctx, func(tx store.Scoring) error {
		sess, err := s.requireLiveSession(ctx, tx, match.ID)
		if err != nil {
			return err
		}

		latest, err := tx.LatestOverNo(ctx, match.ID)
		if err != nil {
			return err
		}
		if in.OverNo != 0 && in.OverNo != latest+1 {
			return fmt.Errorf("%w: over number must be %d, got %d", ErrInvalidInput, latest+1, in.OverNo)
		}
		over.OverNo = latest + 1
		over.BowlingTeamID = sess.BowlingTeamID

		if sess.State == models.SessionAwaitingOpening {
			if in.StrikerID == 0 || in.NonStrikerID == 0 {
				return fmt.Errorf("%w: striker and non-striker are required for the opening over", ErrInvalidInput)
			}
			if err := s.requirePlayer(ctx, in.StrikerID); err != nil {
				return err
			}
			if err := s.requirePlayer(ctx, in.NonStrikerID); err != nil {
				return err
			}
			sess.StrikerID = in.StrikerID
			sess.NonStrikerID = in.NonStrikerID

			roster, err := s.teams.PlayerIDs(ctx, sess.BattingTeamID)
			if err != nil {
				return err
			}
			sess.SeedBatters(roster)
			sess.State = models.SessionInOver
		}

		sess.BowlerID = in.BowlerID

		id, err := tx.CreateOver(ctx, over)
		if err != nil {
			return err
		}
		over.ID = id

		return tx.UpsertSession(ctx, sess)
	})
	if err != nil {
		return nil, err
	}

	return over, nil
}

// RecordEvent applies one ball-by-ball event: a run value, a wicket,
// or an over completion. Everything it writes commits or rolls back
// together.
func (s *ScoringService) RecordEvent(ctx context.Context, userID, matchID, overID int64, in EventInput) (*EventResult, error) {
	match, err := s.requireMatchWrite(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}

	if in.StrikerID == 0 || in.NonStrikerID == 0 || in.BowlerID == 0 || in.Event == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}

	for _, id := range []int64{in.StrikerID, in.NonStrikerID, in.BowlerID} {
		if err := s.requirePlayer(ctx, id); err != nil {
			return nil, err
		}
	}

	result := &EventResult{}

	err = s.scoring.WithTx(ctx, func(tx store.Scoring) error {
		sess, err := s.requireLiveSession(ctx, tx, match.ID)
		if err != nil {
			return err
		}

		over, err := tx.GetOver(ctx, overID)
		if err != nil {
			return err
		}
		if over == nil {
			return fmt.Errorf("%w: over %d", ErrNotFound, overID)
		}
		if over.MatchID != match.ID {
			return fmt.Errorf("%w: over %d does not belong to match %d", ErrInvalidInput, overID, match.ID)
		}

		sess.StrikerID = in.StrikerID
		sess.NonStrikerID = in.NonStrikerID

		switch {
		case in.Event == EventWicket:
			err = s.applyWicket(ctx, tx, match, sess, over, userID, in, result)
		case in.Event == EventOverComplete:
			err = s.applyOverComplete(ctx, tx, match, sess, over, userID, in, result)
		default:
			runs, ok := runsForEvent(in.Event)
			if !ok {
				return fmt.Errorf("%w: unknown event %q", ErrInvalidInput, in.Event)
			}
			err = s.applyRuns(ctx, tx, match, sess, over, userID, runs, result)
		}
		if err != nil {
			return err
		}

		return tx.UpsertSession(ctx, sess)
	})
	if err != nil {
		return nil, err
	}

	s.publish(match.ID, overID, in, result)

	return result, nil
}

func (s *ScoringService) applyRuns(ctx context.Context, tx store.Scoring, match *models.Match,
	sess *models.ScoringSession, over *models.Over, userID int64, runs int, result *EventResult) error {

	strikerStats, err := tx.GetOrCreateStats(ctx, match.ID, sess.StrikerID, userID)
	if err != nil {
		return err
	}
	strikerStats.Runs += runs
	strikerStats.Balls++
	if err := tx.SaveStats(ctx, strikerStats); err != nil {
		return err
	}

	bowlerStats, err := tx.GetOrCreateStats(ctx, match.ID, sess.BowlerID, userID)
	if err != nil {
		return err
	}
	bowlerStats.BowlingRuns += runs
	bowlerStats.OversBowled = bowlerStats.OversBowled.Add(models.BallIncrement)
	if err := tx.SaveStats(ctx, bowlerStats); err != nil {
		return err
	}

	over.Runs += runs
	if err := tx.SaveOver(ctx, over); err != nil {
		return err
	}

	// Odd runs do not swap striker and non-striker; scorers correct
	// the pair in the next submission when they care.
	result.Runs = runs
	result.Message = fmt.Sprintf("%d run(s) added", runs)
	return nil
}

func (s *ScoringService) applyWicket(ctx context.Context, tx store.Scoring, match *models.Match,
	sess *models.ScoringSession, over *models.Over, userID int64, in EventInput, result *EventResult) error {

	outed := in.OutedPlayerID
	if outed == 0 {
		outed = sess.StrikerID
	}
	if err := s.requirePlayer(ctx, outed); err != nil {
		return err
	}

	over.Wickets++
	if err := tx.SaveOver(ctx, over); err != nil {
		return err
	}

	outedStats, err := tx.GetOrCreateStats(ctx, match.ID, outed, userID)
	if err != nil {
		return err
	}
	outedStats.Balls++
	if err := tx.SaveStats(ctx, outedStats); err != nil {
		return err
	}

	bowlerStats, err := tx.GetOrCreateStats(ctx, match.ID, sess.BowlerID, userID)
	if err != nil {
		return err
	}
	bowlerStats.Wickets++
	if err := tx.SaveStats(ctx, bowlerStats); err != nil {
		return err
	}

	wasAtWicket := outed == sess.StrikerID || outed == sess.NonStrikerID
	sess.Dismiss(outed) // idempotent

	result.Wicket = true
	result.Message = "Wicket updated"

	// No replacement batter left: the innings is done.
	if wasAtWicket && len(sess.RemainingBatters) == 0 {
		if err := s.finalize(ctx, tx, match, sess); err != nil {
			return err
		}
		result.MatchComplete = true
		result.Message = "Wicket updated, innings complete"
	}

	return nil
}

func (s *ScoringService) applyOverComplete(ctx context.Context, tx store.Scoring, match *models.Match,
	sess *models.ScoringSession, over *models.Over, userID int64, in EventInput, result *EventResult) error {

	bowlerStats, err := tx.GetOrCreateStats(ctx, match.ID, sess.BowlerID, userID)
	if err != nil {
		return err
	}
	bowlerStats.OversBowled = bowlerStats.OversBowled.Add(models.OverIncrement)
	if err := tx.SaveStats(ctx, bowlerStats); err != nil {
		return err
	}

	over.OverSummary = in.OverSummary
	if err := tx.SaveOver(ctx, over); err != nil {
		return err
	}

	result.OverComplete = true

	// Last scheduled over: close out the match instead of rotating.
	if over.OverNo >= sess.TotalOvers {
		if err := s.finalize(ctx, tx, match, sess); err != nil {
			return err
		}
		result.MatchComplete = true
		result.Message = "Over submitted, match complete"
		return nil
	}

	if in.NewBowlerID == 0 {
		return fmt.Errorf("%w: new bowler not specified", ErrInvalidInput)
	}
	if err := s.requirePlayer(ctx, in.NewBowlerID); err != nil {
		return err
	}

	// The new over stays with the side currently bowling; the innings
	// does not change hands on an over boundary.
	next := &models.Over{
		MatchID:       match.ID,
		UserID:        userID,
		BowlingTeamID: sess.BowlingTeamID,
		OverNo:        over.OverNo + 1,
		BowlerID:      in.NewBowlerID,
	}
	nextID, err := tx.CreateOver(ctx, next)
	if err != nil {
		return err
	}

	sess.BowlerID = in.NewBowlerID

	result.Message = "Over submitted successfully"
	result.NewOverID = nextID
	result.NewOverNo = next.OverNo
	result.NewBowlerID = in.NewBowlerID
	return nil
}

// finalize closes the scoring session and rolls the match's stats up:
// over totals onto the batting side's match columns, per-match stats
// onto each involved player's career counters. The winners label stays
// a manual declaration.
func (s *ScoringService) finalize(ctx context.Context, tx store.Scoring, match *models.Match, sess *models.ScoringSession) error {
	runs, wickets, err := tx.MatchOverTotals(ctx, match.ID)
	if err != nil {
		return err
	}

	if sess.BattingTeamID == match.Team1ID {
		match.Team1Runs, match.Team1Wickets = runs, wickets
	} else {
		match.Team2Runs, match.Team2Wickets = runs, wickets
	}
	if err := tx.SaveMatchScore(ctx, match); err != nil {
		return err
	}

	stats, err := tx.ListStats(ctx, match.ID)
	if err != nil {
		return err
	}
	for _, st := range stats {
		if err := tx.AddPlayerTotals(ctx, st.PlayerID, st.Runs, st.Balls, st.Wickets, 1); err != nil {
			return err
		}
	}

	sess.State = models.SessionCompleted
	return nil
}

// View builds the presentation snapshot for the scoring screen,
// lazily seeding the remaining-batters list on the first read of a
// session whose batting order was never initialized.
func (s *ScoringService) View(ctx context.Context, userID, matchID, overID, strikerID, nonStrikerID, bowlerID int64) (*SessionView, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, fmt.Errorf("%w: match %d", ErrNotFound, matchID)
	}

	ok, err := s.gate.Authorize(ctx, userID, models.Resource{Kind: models.ResourceMatch, ID: match.ID, OwnerID: match.UserID}, models.AccessRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no read access to match %d", ErrForbidden, matchID)
	}

	over, err := s.scoring.GetOver(ctx, overID)
	if err != nil {
		return nil, err
	}
	if over == nil || over.MatchID != match.ID {
		return nil, fmt.Errorf("%w: over %d", ErrNotFound, overID)
	}

	sess, err := s.scoring.GetSession(ctx, match.ID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: no scoring session for match %d, resolve the toss first", ErrInvalidInput, matchID)
	}

	view := &SessionView{
		Match:      match,
		Over:       over,
		TotalOvers: sess.TotalOvers,
		State:      sess.State,
	}

	if view.Striker, err = s.getPlayer(ctx, strikerID); err != nil {
		return nil, err
	}
	if view.NonStriker, err = s.getPlayer(ctx, nonStrikerID); err != nil {
		return nil, err
	}
	if view.Bowler, err = s.getPlayer(ctx, bowlerID); err != nil {
		return nil, err
	}

	if sess.RemainingBatters == nil && sess.State != models.SessionCompleted {
		sess.StrikerID = strikerID
		sess.NonStrikerID = nonStrikerID
		roster, err := s.teams.PlayerIDs(ctx, sess.BattingTeamID)
		if err != nil {
			return nil, err
		}
		sess.SeedBatters(roster)
		if err := s.scoring.UpsertSession(ctx, sess); err != nil {
			return nil, err
		}
	}

	if view.BowlerChoices, err = s.teams.Players(ctx, sess.BowlingTeamID); err != nil {
		return nil, err
	}
	if view.RemainingBatters, err = s.resolvePlayers(ctx, sess.RemainingBatters); err != nil {
		return nil, err
	}
	if view.DismissedBatters, err = s.resolvePlayers(ctx, sess.DismissedBatters); err != nil {
		return nil, err
	}

	return view, nil
}

func (s *ScoringService) requireMatchWrite(ctx context.Context, userID, matchID int64) (*models.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, fmt.Errorf("%w: match %d", ErrNotFound, matchID)
	}

	ok, err := s.gate.Authorize(ctx, userID, models.Resource{Kind: models.ResourceMatch, ID: match.ID, OwnerID: match.UserID}, models.AccessWrite)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no write access to match %d", ErrForbidden, matchID)
	}

	return match, nil
}

func (s *ScoringService) requireLiveSession(ctx context.Context, tx store.Scoring, matchID int64) (*models.ScoringSession, error) {
	sess, err := tx.GetSession(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: no scoring session for match %d, resolve the toss first", ErrInvalidInput, matchID)
	}
	if sess.State == models.SessionCompleted {
		return nil, fmt.Errorf("%w: match %d scoring is already complete", ErrInvalidInput, matchID)
	}
	return sess, nil
}

func (s *ScoringService) getPlayer(ctx context.Context, id int64) (*models.Player, error) {
	p, err := s.players.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: player %d", ErrNotFound, id)
	}
	return p, nil
}

func (s *ScoringService) requirePlayer(ctx context.Context, id int64) error {
	_, err := s.getPlayer(ctx, id)
	return err
}

func (s *ScoringService) resolvePlayers(ctx context.Context, ids []int64) ([]*models.Player, error) {
	players := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		p, err := s.players.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			players = append(players, p)
		}
	}
	return players, nil
}

func (s *ScoringService) publish(matchID, overID int64, in EventInput, result *EventResult) {
	if s.feed == nil {
		return
	}

	update := comm.ScoreUpdate{
		MatchId:     matchID,
		OverId:      overID,
		Event:       in.Event,
		Runs:        result.Runs,
		StrikerId:   in.StrikerID,
		BowlerId:    in.BowlerID,
		NewOverId:   result.NewOverID,
		NewBowlerId: result.NewBowlerID,
		Message:     result.Message,
		At:          time.Now(),
	}
	if result.Wicket {
		update.Wickets = 1
	}
	if result.NewOverNo > 0 {
		update.OverNo = result.NewOverNo - 1
	}

	if err := s.feed.PublishScore(update); err != nil {
		log.Errorf("score feed publish failed for match %d: %v", matchID, err)
	}
}
