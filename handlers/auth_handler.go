package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/utdisa/isa-portal/middleware"
	"github.com/utdisa/isa-portal/models"
	"github.com/utdisa/isa-portal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type authUserResponse struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	Role             models.UserRole `json:"role"`
	EmailConfirmedAt *time.Time      `json:"email_confirmed_at"`
	CreatedAt        time.Time       `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresIn   int              `json:"expires_in"`
	ExpiresAt   int64            `json:"expires_at"`
	User        authUserResponse `json:"user"`
}

func newAuthUserResponse(u *models.User) authUserResponse {
	return authUserResponse{
		ID:               u.ID.String(),
		Email:            u.Email,
		Role:             u.Role,
		EmailConfirmedAt: u.EmailConfirmedAt,
		CreatedAt:        u.CreatedAt,
	}
}

func newTokenResponse(res *services.AuthResult) tokenResponse {
	return tokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(time.Until(res.ExpiresAt).Seconds()),
		ExpiresAt:   res.ExpiresAt.Unix(),
		User:        newAuthUserResponse(res.User),
	}
}

// SignUp godoc
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body services.CredentialsInput true "Email and password"
// @Success      200 {object} tokenResponse
// @Failure      400,409 {object} map[string]string
// @Router       /auth/v1/signup [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input services.CredentialsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	res, err := h.authService.SignUp(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, newTokenResponse(res))
}

// Token godoc
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        grant_type query string true "must be password"
// @Param        input body services.CredentialsInput true "Email and password"
// @Success      200 {object} tokenResponse
// @Failure      400,401 {object} map[string]string
// @Router       /auth/v1/token [post]
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if grant := r.URL.Query().Get("grant_type"); grant != "password" {
		badRequestResponse(w, r, errors.New("unsupported grant_type, expected password"))
		return
	}

	var input services.CredentialsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	res, err := h.authService.SignIn(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, newTokenResponse(res))
}

// Logout godoc
// @Summary      End the current session
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/v1/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.GetClaimsFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	if err := h.authService.SignOut(r.Context(), claims); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// User godoc
// @Summary      Current user
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} authUserResponse
// @Failure      401 {object} map[string]string
// @Router       /auth/v1/user [get]
func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, newAuthUserResponse(user))
}

// Recover godoc
// @Summary      Email a password reset link
// @Tags         auth
// @Accept       json
// @Param        input body object true "{\"email\": \"...\"}"
// @Success      200 {object} map[string]string
// @Router       /auth/v1/recover [post]
func (h *AuthHandler) Recover(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Email == "" {
		badRequestResponse(w, r, errors.New("email is required"))
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), input.Email); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{})
}

// Reset godoc
// @Summary      Set a new password with a reset token
// @Tags         auth
// @Accept       json
// @Param        input body object true "{\"token\": \"...\", \"password\": \"...\"}"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Router       /auth/v1/reset [post]
func (h *AuthHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Token == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("token and password are required"))
		return
	}

	if err := h.authService.ResetPassword(r.Context(), input.Token, input.Password); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"message": "password updated"})
}

// Verify godoc
// @Summary      Confirm an email address
// @Tags         auth
// @Param        token query string true "confirmation token"
// @Success      200 {string} string
// @Failure      400 {object} map[string]string
// @Router       /auth/v1/verify [get]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		badRequestResponse(w, r, errors.New("confirmation token is required"))
		return
	}

	if err := h.authService.ConfirmEmail(r.Context(), token); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Email confirmed. You can return to the app."))
}
