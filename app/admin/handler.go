package admin

import (
	"context"
	"net/http"

	"github.com/burgerhub/menu-ordering/app/api"
	"go.uber.org/zap"
)

const invalidCredentialsMessage = "Credenciais inválidas. Tente novamente."

type SessionStore interface {
	Login(ctx context.Context, identifier, secret string) (bool, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

type AdminHandler struct {
	session SessionStore
	logger  *zap.Logger
}

func NewAdminHandler(s SessionStore, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{session: s, logger: logger}
}

func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ok, err := h.session.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		h.logger.Error("login failed", zap.Error(err))
		api.ErrorResponse(w, api.StorageErrorStatus(err), "Failed to start session")
		return
	}
	if !ok {
		h.logger.Warn("rejected admin credentials", zap.String("email", input.Email))
		api.ErrorResponse(w, http.StatusUnauthorized, invalidCredentialsMessage)
		return
	}

	h.logger.Info("admin logged in")
	api.OKResponse(w, SessionResponse{Authenticated: true})
}

func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		api.ErrorResponse(w, api.StorageErrorStatus(err), "Failed to end session")
		return
	}
	api.OKResponse(w, SessionResponse{Authenticated: false})
}

func (h *AdminHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	ok, err := h.session.IsAuthenticated(r.Context())
	if err != nil {
		h.logger.Error("read session failed", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to read session")
		return
	}
	api.OKResponse(w, SessionResponse{Authenticated: ok})
}

// RequireSession rejects requests with 401 unless the admin flag is set.
func (h *AdminHandler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := h.session.IsAuthenticated(r.Context())
		if err != nil {
			h.logger.Error("read session failed", zap.Error(err))
			api.ErrorResponse(w, http.StatusInternalServerError, "Failed to read session")
			return
		}
		if !ok {
			api.ErrorResponse(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
