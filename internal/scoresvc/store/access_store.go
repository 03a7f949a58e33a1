package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccessStore struct {
	db *pgxpool.Pool
}

func NewAccessStore(db *pgxpool.Pool) *AccessStore {
	return &AccessStore{db: db}
}

// HasActive reports whether user holds an active grant of the given
// type on the resource.
func (s *AccessStore) HasActive(ctx context.Context, userID int64, kind models.ResourceKind, resourceID int64, accessType models.AccessType) (bool, error) {
	var exists bool

	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM access_permissions
			WHERE user_id = $1 AND resource_kind = $2 AND resource_id = $3
			  AND access_type = $4 AND active
		)
	`, userID, kind, resourceID, accessType).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("permission lookup failed: %w", err)
	}

	return exists, nil
}

func (s *AccessStore) CreatePermission(ctx context.Context, p *models.AccessPermission) (int64, error) {
	var id int64

	err := s.db.QueryRow(ctx, `
		INSERT INTO access_permissions (main_user_id, user_id, resource_kind, resource_id, access_type, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`, p.MainUserID, p.UserID, p.ResourceKind, p.ResourceID, p.AccessType, p.Active).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not create permission: %w", err)
	}

	return id, nil
}

// RequestExists reports whether the requester already has any request
// (whatever its status) for the resource.
func (s *AccessStore) RequestExists(ctx context.Context, requesterID int64, kind models.ResourceKind, resourceID int64) (bool, error) {
	var exists bool

	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM access_requests
			WHERE requester_id = $1 AND resource_kind = $2 AND resource_id = $3
		)
	`, requesterID, kind, resourceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("request lookup failed: %w", err)
	}

	return exists, nil
}

func (s *AccessStore) CreateRequest(ctx context.Context, r *models.AccessRequest) (int64, error) {
	var id int64

	err := s.db.QueryRow(ctx, `
		INSERT INTO access_requests (requester_id, resource_kind, resource_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`, r.RequesterID, r.ResourceKind, r.ResourceID, r.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not create access request: %w", err)
	}

	return id, nil
}

func (s *AccessStore) GetRequestByID(ctx context.Context, id int64) (*models.AccessRequest, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, requester_id, resource_kind, resource_id, status, requested_at
		FROM access_requests
		WHERE id = $1
	`, id)

	r := &models.AccessRequest{}
	err := row.Scan(&r.ID, &r.RequesterID, &r.ResourceKind, &r.ResourceID, &r.Status, &r.RequestedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // request not found
		}
		return nil, fmt.Errorf("failed to get access request: %w", err)
	}

	return r, nil
}

// ListPendingRequests returns pending requests against one resource.
func (s *AccessStore) ListPendingRequests(ctx context.Context, kind models.ResourceKind, resourceID int64) ([]*models.AccessRequest, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, requester_id, resource_kind, resource_id, status, requested_at
		FROM access_requests
		WHERE resource_kind = $1 AND resource_id = $2 AND status = $3
		ORDER BY requested_at
	`, kind, resourceID, models.RequestPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.AccessRequest
	for rows.Next() {
		r := &models.AccessRequest{}
		if err := rows.Scan(&r.ID, &r.RequesterID, &r.ResourceKind, &r.ResourceID, &r.Status, &r.RequestedAt); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}

	return requests, rows.Err()
}

func (s *AccessStore) UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus) error {
	_, err := s.db.Exec(ctx, `
		UPDATE access_requests SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("could not update access request %d: %w", id, err)
	}
	return nil
}
