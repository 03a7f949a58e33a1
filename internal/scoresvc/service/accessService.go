package service

import (
	"context"
	"fmt"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
)

// AccessRepo is the slice of the access store the workflow needs.
type AccessRepo interface {
	AccessReader
	CreatePermission(ctx context.Context, p *models.AccessPermission) (int64, error)
	RequestExists(ctx context.Context, requesterID int64, kind models.ResourceKind, resourceID int64) (bool, error)
	CreateRequest(ctx context.Context, r *models.AccessRequest) (int64, error)
	GetRequestByID(ctx context.Context, id int64) (*models.AccessRequest, error)
	ListPendingRequests(ctx context.Context, kind models.ResourceKind, resourceID int64) ([]*models.AccessRequest, error)
	UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus) error
}

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// AccessService runs the grant-request workflow: users ask for access
// to someone else's match/player/team, owners approve or reject.
type AccessService struct {
	access  AccessRepo
	matches MatchGetter
	players PlayerGetter
	teams   TeamRepo
	gate    Authorizer
}

func NewAccessService(access AccessRepo, matches MatchGetter, players PlayerGetter,
	teams TeamRepo, gate Authorizer) *AccessService {
	return &AccessService{
		access:  access,
		matches: matches,
		players: players,
		teams:   teams,
		gate:    gate,
	}
}

// Request files an access request for a resource. Filing twice is a
// no-op; the first request, whatever its status, stands.
func (s *AccessService) Request(ctx context.Context, requesterID int64, kind models.ResourceKind, resourceID int64) (*models.AccessRequest, bool, error) {
	if _, err := s.resolveResource(ctx, kind, resourceID); err != nil {
		return nil, false, err
	}

	exists, err := s.access.RequestExists(ctx, requesterID, kind, resourceID)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, nil
	}

	req := &models.AccessRequest{
		RequesterID:  requesterID,
		ResourceKind: kind,
		ResourceID:   resourceID,
		Status:       models.RequestPending,
	}
	id, err := s.access.CreateRequest(ctx, req)
	if err != nil {
		return nil, false, err
	}
	req.ID = id

	return req, true, nil
}

// ListPending returns the pending requests against one resource; only
// someone with Write capability on it may see them.
func (s *AccessService) ListPending(ctx context.Context, userID int64, kind models.ResourceKind, resourceID int64) ([]*models.AccessRequest, error) {
	res, err := s.resolveResource(ctx, kind, resourceID)
	if err != nil {
		return nil, err
	}

	ok, err := s.gate.Authorize(ctx, userID, res, models.AccessWrite)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no write access to %s %d", ErrForbidden, kind, resourceID)
	}

	return s.access.ListPendingRequests(ctx, kind, resourceID)
}

// Decide approves or rejects a pending request. Approval grants the
// requester an active read-only permission; owners escalate to Write
// separately when they want to.
func (s *AccessService) Decide(ctx context.Context, userID, requestID int64, action string) (*models.AccessRequest, error) {
	if action != DecisionApprove && action != DecisionReject {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action)
	}

	req, err := s.access.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: access request %d", ErrNotFound, requestID)
	}

	res, err := s.resolveResource(ctx, req.ResourceKind, req.ResourceID)
	if err != nil {
		return nil, err
	}

	ok, err := s.gate.Authorize(ctx, userID, res, models.AccessWrite)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: not allowed to decide requests on %s %d", ErrForbidden, req.ResourceKind, req.ResourceID)
	}

	if action == DecisionApprove {
		_, err := s.access.CreatePermission(ctx, &models.AccessPermission{
			MainUserID:   res.OwnerID,
			UserID:       req.RequesterID,
			ResourceKind: req.ResourceKind,
			ResourceID:   req.ResourceID,
			AccessType:   models.AccessRead, // default read-only
			Active:       true,
		})
		if err != nil {
			return nil, err
		}
		req.Status = models.RequestApproved
	} else {
		req.Status = models.RequestRejected
	}

	if err := s.access.UpdateRequestStatus(ctx, req.ID, req.Status); err != nil {
		return nil, err
	}

	return req, nil
}

// Grant lets a resource owner hand out a permission directly, Write
// included.
func (s *AccessService) Grant(ctx context.Context, userID, granteeID int64, kind models.ResourceKind, resourceID int64, accessType models.AccessType) (*models.AccessPermission, error) {
	if accessType != models.AccessRead && accessType != models.AccessWrite {
		return nil, fmt.Errorf("%w: unknown access type %q", ErrInvalidInput, accessType)
	}

	res, err := s.resolveResource(ctx, kind, resourceID)
	if err != nil {
		return nil, err
	}

	ok, err := s.gate.Authorize(ctx, userID, res, models.AccessWrite)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: not allowed to grant access on %s %d", ErrForbidden, kind, resourceID)
	}

	perm := &models.AccessPermission{
		MainUserID:   res.OwnerID,
		UserID:       granteeID,
		ResourceKind: kind,
		ResourceID:   resourceID,
		AccessType:   accessType,
		Active:       true,
	}
	id, err := s.access.CreatePermission(ctx, perm)
	if err != nil {
		return nil, err
	}
	perm.ID = id

	return perm, nil
}

// resolveResource looks the resource up by its kind tag and returns it
// with the owner filled in.
func (s *AccessService) resolveResource(ctx context.Context, kind models.ResourceKind, id int64) (models.Resource, error) {
	res := models.Resource{Kind: kind, ID: id}

	switch kind {
	case models.ResourceMatch:
		m, err := s.matches.GetByID(ctx, id)
		if err != nil {
			return res, err
		}
		if m == nil {
			return res, fmt.Errorf("%w: match %d", ErrNotFound, id)
		}
		res.OwnerID = m.UserID
	case models.ResourcePlayer:
		p, err := s.players.GetByID(ctx, id)
		if err != nil {
			return res, err
		}
		if p == nil {
			return res, fmt.Errorf("%w: player %d", ErrNotFound, id)
		}
		res.OwnerID = p.UserID
	case models.ResourceTeam:
		t, err := s.teams.GetByID(ctx, id)
		if err != nil {
			return res, err
		}
		if t == nil {
			return res, fmt.Errorf("%w: team %d", ErrNotFound, id)
		}
		res.OwnerID = t.UserID
	default:
		return res, fmt.Errorf("%w: unknown resource kind %q", ErrInvalidInput, kind)
	}

	return res, nil
}
