package handlers

import (
	"net/http"
)

type credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type authData struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), in.Name, in.Password)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	token, err := h.issueToken(user.UserId)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.created(w, "user registered", authData{Token: token, User: user})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decode(r, &in); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	user, err := h.users.Login(r.Context(), in.Name, in.Password)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	token, err := h.issueToken(user.UserId)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	h.ok(w, "login successful", authData{Token: token, User: user})
}
