package handlers

import (
	"net/http"
	"strconv"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/models"
)

// accessTarget names one resource by exactly one of the three id
// fields.
type accessTarget struct {
	MatchID  int64 `json:"match_id"`
	PlayerID int64 `json:"player_id"`
	TeamID   int64 `json:"team_id"`
}

func (t accessTarget) resolve() (models.ResourceKind, int64, bool) {
	switch {
	case t.MatchID != 0 && t.PlayerID == 0 && t.TeamID == 0:
		return models.ResourceMatch, t.MatchID, true
	case t.PlayerID != 0 && t.MatchID == 0 && t.TeamID == 0:
		return models.ResourcePlayer, t.PlayerID, true
	case t.TeamID != 0 && t.MatchID == 0 && t.PlayerID == 0:
		return models.ResourceTeam, t.TeamID, true
	}
	return "", 0, false
}

type grantPayload struct {
	accessTarget
	UserID     int64             `json:"user_id"`
	AccessType models.AccessType `json:"access_type"`
}

type decisionPayload struct {
	Action string `json:"action"`
}

func (h *Handler) CreateAccessRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	var in accessTarget
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	kind, resourceID, ok := in.resolve()
	if !ok {
		h.badRequest(w, "exactly one of match_id, player_id, team_id is required")
		return
	}

	req, created, err := h.access.Request(r.Context(), userID, kind, resourceID)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	if !created {
		h.ok(w, "request already filed", nil)
		return
	}

	h.created(w, "access requested", req)
}

func (h *Handler) ListAccessRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	q := r.URL.Query()
	target := accessTarget{}
	target.MatchID, _ = strconv.ParseInt(q.Get("match_id"), 10, 64)
	target.PlayerID, _ = strconv.ParseInt(q.Get("player_id"), 10, 64)
	target.TeamID, _ = strconv.ParseInt(q.Get("team_id"), 10, 64)

	kind, resourceID, ok := target.resolve()
	if !ok {
		h.badRequest(w, "exactly one of match_id, player_id, team_id is required")
		return
	}

	requests, err := h.access.ListPending(r.Context(), userID, kind, resourceID)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "pending requests", requests)
}

func (h *Handler) DecideAccessRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid request id")
		return
	}

	var in decisionPayload
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	req, err := h.access.Decide(r.Context(), userID, id, in.Action)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "decision recorded", req)
}

func (h *Handler) GrantAccessHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	var in grantPayload
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	kind, resourceID, ok := in.resolve()
	if !ok {
		h.badRequest(w, "exactly one of match_id, player_id, team_id is required")
		return
	}

	perm, err := h.access.Grant(r.Context(), userID, in.UserID, kind, resourceID, in.AccessType)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.created(w, "access granted", perm)
}
