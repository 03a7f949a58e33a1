package handlers

import (
	"net/http"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/service"
)

type tossPayload struct {
	TossWinnerTeamID int64  `json:"toss_winner_team_id"`
	Decision         string `json:"decision"`
}

func (h *Handler) CreateMatchHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	var in service.CreateMatchInput
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	match, err := h.matches.Create(r.Context(), userID, in)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.created(w, "match created", match)
}

func (h *Handler) ListMatchesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	matches, err := h.matches.List(r.Context(), userID)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "matches", matches)
}

func (h *Handler) GetMatchHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid match id")
		return
	}

	match, err := h.matches.Get(r.Context(), userID, id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "match", match)
}

func (h *Handler) DeleteMatchHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid match id")
		return
	}

	if err := h.matches.Delete(r.Context(), userID, id); err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "match deleted", nil)
}

func (h *Handler) DeclareWinnersHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid match id")
		return
	}

	var in struct {
		Winners string `json:"winners"`
	}
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	match, err := h.matches.DeclareWinners(r.Context(), userID, id, in.Winners)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "winners declared", match)
}

func (h *Handler) TossHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid match id")
		return
	}

	var in tossPayload
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	sess, err := h.toss.ResolveToss(r.Context(), userID, id, in.TossWinnerTeamID, in.Decision)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "toss resolved", sess)
}
