package handlers

import (
	"net/http"
	"strconv"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/service"
)

// eventPayload is the wire shape of a ball event. The outed player may
// come either flat or as a nested object; older clients send the
// latter.
type eventPayload struct {
	service.EventInput
	OutedPlayer *struct {
		PlayerID int64 `json:"player_id"`
	} `json:"outed_player"`
}

func (h *Handler) StartOverHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	matchID, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid match id")
		return
	}

	var in service.StartOverInput
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	over, err := h.scoring.StartOver(r.Context(), userID, matchID, in)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.created(w, "over started", over)
}

func (h *Handler) RecordEventHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	matchID, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid match id")
		return
	}
	overID, err := urlID(r, "overID")
	if err != nil {
		h.badRequest(w, "invalid over id")
		return
	}

	var in eventPayload
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	if in.OutedPlayerID == 0 && in.OutedPlayer != nil {
		in.OutedPlayerID = in.OutedPlayer.PlayerID
	}

	result, err := h.scoring.RecordEvent(r.Context(), userID, matchID, overID, in.EventInput)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, result.Message, result)
}

func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	matchID, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid match id")
		return
	}
	overID, err := urlID(r, "overID")
	if err != nil {
		h.badRequest(w, "invalid over id")
		return
	}

	q := r.URL.Query()
	strikerID, _ := strconv.ParseInt(q.Get("striker_id"), 10, 64)
	nonStrikerID, _ := strconv.ParseInt(q.Get("non_striker_id"), 10, 64)
	bowlerID, _ := strconv.ParseInt(q.Get("bowler_id"), 10, 64)

	view, err := h.scoring.View(r.Context(), userID, matchID, overID, strikerID, nonStrikerID, bowlerID)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "scoring session", view)
}
