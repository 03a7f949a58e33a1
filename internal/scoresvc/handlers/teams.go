package handlers

import (
	"net/http"
)

type teamPayload struct {
	Name string `json:"name"`
}

type teamPlayersPayload struct {
	PlayerIDs []int64 `json:"player_ids"`
}

func (h *Handler) CreateTeamHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	var in teamPayload
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	team, err := h.teams.Create(r.Context(), userID, in.Name)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.created(w, "team created", team)
}

func (h *Handler) ListTeamsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	teams, err := h.teams.List(r.Context(), userID)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "teams", teams)
}

func (h *Handler) GetTeamHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid team id")
		return
	}

	team, err := h.teams.Get(r.Context(), userID, id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "team", team)
}

func (h *Handler) SetTeamPlayersHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid team id")
		return
	}

	var in teamPlayersPayload
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	if err := h.teams.SetPlayers(r.Context(), userID, id, in.PlayerIDs); err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "team players updated", nil)
}

func (h *Handler) DeleteTeamHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid team id")
		return
	}

	if err := h.teams.Delete(r.Context(), userID, id); err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "team deleted", nil)
}
