package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/store"
)

// MatchGetter resolves a match id; nil match means not found.
type MatchGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Match, error)
}

// TossService resolves the toss into batting/bowling roles and seeds
// the match's scoring session with them.
type TossService struct {
	matches MatchGetter
	scoring store.Scoring
	gate    Authorizer
}

func NewTossService(matches MatchGetter, scoring store.Scoring, gate Authorizer) *TossService {
	return &TossService{matches: matches, scoring: scoring, gate: gate}
}

// ResolveToss assigns batting and bowling teams for the match. A
// decision of "bat" (any case) seats the toss winner first; anything
// else is treated as electing to bowl, so the opponent bats.
func (s *TossService) ResolveToss(ctx context.Context, userID, matchID, tossWinnerID int64, decision string) (*models.ScoringSession, error) {
	if tossWinnerID == 0 || decision == "" {
		return nil, fmt.Errorf("%w: toss winner and decision are required", ErrInvalidInput)
	}

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

	if !match.HasTeam(tossWinnerID) {
		return nil, fmt.Errorf("%w: team %d is not playing match %d", ErrInvalidInput, tossWinnerID, matchID)
	}
	opponent := match.OtherTeam(tossWinnerID)

	var battingTeam, bowlingTeam int64
	if strings.EqualFold(decision, "bat") {
		battingTeam = tossWinnerID
		bowlingTeam = opponent
	} else { // bowl first
		battingTeam = opponent
		bowlingTeam = tossWinnerID
	}

	sess := &models.ScoringSession{
		MatchID:       match.ID,
		BattingTeamID: battingTeam,
		BowlingTeamID: bowlingTeam,
		TossWinnerID:  tossWinnerID,
		TossDecision:  decision,
		TotalOvers:    match.TotalOvers,
		State:         models.SessionAwaitingOpening,
	}

	if err := s.scoring.UpsertSession(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}
