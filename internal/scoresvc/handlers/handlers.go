package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/service"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	users     *service.UserService
	players   *service.PlayerService
	teams     *service.TeamService
	matches   *service.MatchService
	toss      *service.TossService
	scoring   *service.ScoringService
	access    *service.AccessService
}

func NewHandler(users *service.UserService, players *service.PlayerService,
	teams *service.TeamService, matches *service.MatchService,
	toss *service.TossService, scoring *service.ScoringService,
	access *service.AccessService) *Handler {
	return &Handler{
		users:   users,
		players: players,
		teams:   teams,
		matches: matches,
		toss:    toss,
		scoring: scoring,
		access:  access,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "score service is running at port " + os.Getenv("SCORE_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}

// issueToken mints the login token a client sends back on every
// secured request.
func (h *Handler) issueToken(userID int64) (string, error) {
	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expirationTime,
	})
	return tokenString, err
}

// userID pulls the authenticated user id out of the verified JWT.
func (h *Handler) userID(r *http.Request) (int64, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, err
	}
	raw, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("user_id claim missing")
	}
	return int64(raw), nil
}

// urlID parses a numeric chi URL parameter.
func urlID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}

// Fail maps the service error taxonomy to HTTP statuses and writes the
// error envelope. Anything outside the taxonomy is a 500 and gets
// logged; the client only sees a generic message.
func (h *Handler) Fail(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidInput):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	default:
		log.Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
		msg = "internal error"
	}

	h.CreateResponse(w, Response{Code: code, Error: msg})
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: msg})
}

func (h *Handler) ok(w http.ResponseWriter, message string, data interface{}) {
	h.CreateResponse(w, Response{Message: message, Code: http.StatusOK, Data: data})
}

func (h *Handler) created(w http.ResponseWriter, message string, data interface{}) {
	h.CreateResponse(w, Response{Message: message, Code: http.StatusCreated, Data: data})
}

func decode(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
