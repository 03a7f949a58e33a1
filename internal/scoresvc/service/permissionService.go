package service

import (
	"context"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
)

// AccessReader is the slice of the access store the gate needs.
type AccessReader interface {
	HasActive(ctx context.Context, userID int64, kind models.ResourceKind, resourceID int64, accessType models.AccessType) (bool, error)
}

// UserGetter resolves a user id; nil user means not found.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Authorizer is the permission-check capability consumed by the
// scoring engine and the CRUD services.
type Authorizer interface {
	Authorize(ctx context.Context, userID int64, res models.Resource, accessType models.AccessType) (bool, error)
}

// PermissionService is the permission gate: owner and superuser pass,
// anyone else needs an active grant of exactly the requested type.
// Pure query, no side effects.
type PermissionService struct {
	access AccessReader
	users  UserGetter
}

func NewPermissionService(access AccessReader, users UserGetter) *PermissionService {
	return &PermissionService{access: access, users: users}
}

func (s *PermissionService) Authorize(ctx context.Context, userID int64, res models.Resource, accessType models.AccessType) (bool, error) {
	if userID == res.OwnerID {
		return true, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user != nil && user.Superuser {
		return true, nil
	}

	// Read never implies Write, so the lookup matches the exact type.
	return s.access.HasActive(ctx, userID, res.Kind, res.ID, accessType)
}
