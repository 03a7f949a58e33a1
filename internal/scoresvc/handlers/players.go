package handlers

import (
	"net/http"
)

type playerPayload struct {
	Name string `json:"name"`
}

func (h *Handler) CreatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	var in playerPayload
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	player, err := h.players.Create(r.Context(), userID, in.Name)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.created(w, "player created", player)
}

func (h *Handler) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	players, err := h.players.List(r.Context(), userID, r.URL.Query().Get("name"))
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "players", players)
}

func (h *Handler) GetPlayerHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid player id")
		return
	}

	player, err := h.players.Get(r.Context(), userID, id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "player", player)
}

func (h *Handler) RenamePlayerHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid player id")
		return
	}

	var in playerPayload
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	player, err := h.players.Rename(r.Context(), userID, id, in.Name)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "player updated", player)
}

func (h *Handler) DeletePlayerHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userID(r)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		h.badRequest(w, "invalid player id")
		return
	}

	if err := h.players.Delete(r.Context(), userID, id); err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "player deleted", nil)
}
