package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"rising-bms/internal/dto/request"
	"rising-bms/internal/usecase"
	"rising-bms/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	config  *utils.Config
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
		log:     log,
	}
}

// Register handles POST /api/auth/register. Open while no account
// exists yet; admin-only afterwards.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	callerRole, _ := utils.GetRoleFromContext(r.Context())
	response, err := h.service.Register(r.Context(), &req, callerRole)
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Account created", response)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Login(r.Context(), &req, r.UserAgent(), clientIP(r))
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	// Session logins also get a cookie so browser clients work without
	// an Authorization header
	if response.TokenType == "session" {
		http.SetCookie(w, &http.Cookie{
			Name:     h.config.Session.CookieName,
			Value:    response.Token,
			Path:     "/",
			Expires:  response.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	utils.ResponseSuccess(w, "Login successful", response)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok || token == "" {
		utils.ResponseBadRequest(w, "No token provided", nil)
		return
	}

	if kind, _ := utils.GetAuthKindFromContext(r.Context()); kind == "jwt" {
		// JWTs are stateless; nothing to revoke server-side
		utils.ResponseSuccess(w, "Logout successful", nil)
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req request.RefreshRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Refresh(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "refresh")
		return
	}

	utils.ResponseSuccess(w, "Token refreshed", response)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	response, err := h.service.Me(r.Context(), userID.String())
	if err != nil {
		handleServiceError(w, h.log, err, "load profile")
		return
	}

	utils.ResponseSuccess(w, "Profile loaded", response)
}

// ChangePassword handles POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Not authenticated")
		return
	}

	var req request.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID.String(), &req); err != nil {
		handleServiceError(w, h.log, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password changed", nil)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return r.RemoteAddr
}
