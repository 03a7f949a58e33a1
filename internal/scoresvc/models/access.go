package models

import "time"

// ResourceKind tags which table a permission or request points at.
type ResourceKind string

const (
	ResourceMatch  ResourceKind = "match"
	ResourcePlayer ResourceKind = "player"
	ResourceTeam   ResourceKind = "team"
)

// AccessType is the capability granted by a permission row. Read never
// implies Write.
type AccessType string

const (
	AccessRead  AccessType = "R"
	AccessWrite AccessType = "W"
)

// Resource is what the permission gate authorizes against: an explicit
// kind tag plus the owner, so the gate never inspects runtime types.
type Resource struct {
	Kind    ResourceKind `json:"kind"`
	ID      int64        `json:"id"`
	OwnerID int64        `json:"owner_id"`
}

// AccessPermission grants one user a capability on one resource owned
// by another user.
type AccessPermission struct {
	ID           int64        `json:"id"`           // Primary key
	MainUserID   int64        `json:"main_user_id"` // owner of the resource
	UserID       int64        `json:"user_id"`      // user holding the grant
	ResourceKind ResourceKind `json:"resource_kind"`
	ResourceID   int64        `json:"resource_id"`
	AccessType   AccessType   `json:"access_type"`
	Active       bool         `json:"active"`
	GrantedAt    time.Time    `json:"granted_at"`
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "P"
	RequestApproved RequestStatus = "A"
	RequestRejected RequestStatus = "R"
)

type AccessRequest struct {
	ID           int64         `json:"id"` // Primary key
	RequesterID  int64         `json:"requester_id"`
	ResourceKind ResourceKind  `json:"resource_kind"`
	ResourceID   int64         `json:"resource_id"`
	Status       RequestStatus `json:"status"`
	RequestedAt  time.Time     `json:"requested_at"`
}
