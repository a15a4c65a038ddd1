package handlers

import (
	"EmployeeManager/internal/config"
	"EmployeeManager/internal/middleware"
	"EmployeeManager/internal/service"
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type UserHandler struct {
	Service *service.UserService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{Service: userService, Logger: logger, Config: cfg}
}

// TokenResponse — ответ на успешный вход.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Token — вход по форме username/password, выдаёт bearer-токен и ставит cookie.
func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Logger.Warnw("Token: invalid form", "error", err)
		badRequest(w, "invalid form")
		return
	}
	login := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if login == "" || password == "" {
		badRequest(w, "username and password are required")
		return
	}

	user, err := h.Service.Login(r.Context(), login, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserDisabled) {
			h.Logger.Warnw("Token: login rejected", "login", login)
		}
		writeServiceError(w, h.Logger, "Token", err)
		return
	}

	ttl := time.Duration(h.Config.TokenTTLMinutes) * time.Minute
	token, exp, err := middleware.SetLoginCookie(w, user.Login, h.Config.AuthSecret, ttl)
	if err != nil {
		h.Logger.Errorw("Token: failed to sign token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.Logger.Infow("user logged in", "login", user.Login)
	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer", ExpiresAt: exp.UTC()})
}

// Me возвращает текущего пользователя.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	login, _ := middleware.GetLoginFromContext(r.Context())
	user, err := h.Service.GetActive(r.Context(), login)
	if err != nil {
		writeServiceError(w, h.Logger, "Me", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// activeUser — проверка субъекта токена для middleware.RequireUser.
func (h *UserHandler) activeUser(ctx context.Context, login string) (bool, error) {
	_, err := h.Service.GetActive(ctx, login)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserDisabled):
		return false, nil
	default:
		return false, err
	}
}
