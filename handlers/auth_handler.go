package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/soccer-mvp/soccer-api/middleware"
	"github.com/soccer-mvp/soccer-api/services"
)

type AuthHandler struct {
	authService  services.AuthService
	tokenService *services.TokenService
	cookieSecure bool
}

func NewAuthHandler(authService services.AuthService, tokenService *services.TokenService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		cookieSecure: cookieSecure,
	}
}

// Login authenticates a user and issues a signed token.
// @Summary Log in
// @Description Checks credentials, returns a signed token and sets it as an HTTP-only cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginInput true "Login credentials ('user' is the account email)"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 400 {object} map[string]interface{} "Missing fields"
// @Failure 403 {object} map[string]interface{} "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := h.tokenService.Generate(user)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("failed to issue token: %w", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(services.TokenTTL),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})

	response := jsonResponse{
		"message": "Login successful",
		"token":   token,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Protected is a token-guarded endpoint demonstrating the auth guard.
// @Summary Protected example
// @Description Returns the authenticated user's id
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Access granted"
// @Failure 401 {object} map[string]interface{} "Missing, expired or invalid token"
// @Security CookieAuth
// @Router /auth/protected [get]
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	response := jsonResponse{
		"message": "Access granted",
		"user_id": userID,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
