package handlers

import (
	"net"
	"net/http"

	"github.com/minhvu-dev/crm-backend/internal/auth"
	"github.com/minhvu-dev/crm-backend/internal/middleware"
	"github.com/minhvu-dev/crm-backend/internal/models"
	"github.com/minhvu-dev/crm-backend/internal/utils"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// ----------- response DTOs -------------

// Embedding flattens the user fields next to the token, matching the
// data shape clients already consume.
type registerData struct {
	*models.PublicUser
	Token string `json:"token"`
}

type loginData struct {
	*models.PublicUser
	Token      string `json:"token"`
	RememberMe bool   `json:"rememberMe"`
}

// -------------- REGISTER ----------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterInput
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	user, tok, err := h.svc.Register(r.Context(), req)
	if err != nil {
		utils.Fail(w, auth.HTTPStatus(err), auth.Message(err))
		return
	}

	utils.Respond(w, http.StatusCreated, "account created",
		registerData{PublicUser: user, Token: tok})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginInput
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	user, tok, err := h.svc.Login(r.Context(), req, remoteIP(r))
	if err != nil {
		utils.Fail(w, auth.HTTPStatus(err), auth.Message(err))
		return
	}

	utils.Respond(w, http.StatusOK, "logged in",
		loginData{PublicUser: user, Token: tok, RememberMe: req.RememberMe})
}

// -------------- ME (protected) ----------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		utils.Fail(w, http.StatusUnauthorized, "missing token")
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), uid)
	if err != nil {
		utils.Fail(w, auth.HTTPStatus(err), auth.Message(err))
		return
	}

	utils.Respond(w, http.StatusOK, "", user)
}

// -------------- LOGOUT -----------------------

// Logout is a stateless no-op: tokens are not tracked server-side, so
// there is nothing to invalidate.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.Respond(w, http.StatusOK, "logged out", nil)
}

// remoteIP returns the caller's origin address without the port. RealIP
// middleware has already resolved forwarding headers upstream.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
