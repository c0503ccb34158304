package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/api/middleware"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/models"
)

// AuthProvider is what the account endpoints need from the auth service.
type AuthProvider interface {
	SignUp(ctx context.Context, name, username, email, password string) (string, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	ResendConfirmation(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (models.TokenSet, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenSet, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error
	GetUser(ctx context.Context, accessToken string) (models.UserProfile, error)
	UpdateProfile(ctx context.Context, accessToken, name, preferredUsername string) error
	DeleteUser(ctx context.Context, accessToken string) error
}

// AuthHandler serves the account endpoints. Every handler validates the
// request shape, forwards to the provider and reshapes the result.
type AuthHandler struct {
	provider AuthProvider
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(provider AuthProvider, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, logger: logger}
}

// SignUp registers a new user.
// POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	userID, err := h.provider.SignUp(r.Context(), req.Name, req.Username, req.Email, req.Password)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusCreated, map[string]string{
		"message": "Sign-up successful. Please check your e-mail for the confirmation code.",
		"userSub": userID,
	})
}

// ConfirmSignUp confirms a registration with the emailed code.
// POST /api/auth/confirm
func (h *AuthHandler) ConfirmSignUp(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmSignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.ConfirmationCode == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Missing email or confirmation code")
		return
	}

	if err := h.provider.ConfirmSignUp(r.Context(), req.Email, req.ConfirmationCode); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "User confirmed successfully"})
}

// ResendConfirmation re-sends the confirmation code.
// POST /api/auth/resend-confirmation
func (h *AuthHandler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req models.ResendConfirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Missing username")
		return
	}

	if err := h.provider.ResendConfirmation(r.Context(), req.Username); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Confirmation code resent successfully"})
}

// Login authenticates a user and returns a token set.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	tokens, err := h.provider.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusOK, tokens)
}

// Refresh exchanges a refresh token for a new token set.
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Missing refresh token")
		return
	}

	tokens, err := h.provider.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusOK, tokens)
}

// ForgotPassword starts the password reset flow.
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Missing email")
		return
	}

	if err := h.provider.ForgotPassword(r.Context(), req.Email); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Password reset code sent successfully"})
}

// ResetPassword completes the password reset flow.
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Missing email, code, or new password")
		return
	}

	if err := h.provider.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// ChangePassword changes the password of the authenticated user.
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.AccessTokenFromContext(r.Context())
	if !ok {
		WriteErrorResponse(w, http.StatusUnauthorized, "Missing access token")
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Missing old password or new password")
		return
	}

	if err := h.provider.ChangePassword(r.Context(), token, req.OldPassword, req.NewPassword); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// GetUser returns the profile of the authenticated user.
// GET /api/auth/user
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.AccessTokenFromContext(r.Context())
	if !ok {
		WriteErrorResponse(w, http.StatusUnauthorized, "Missing access token")
		return
	}

	profile, err := h.provider.GetUser(r.Context(), token)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusOK, profile)
}

// UpdateProfile updates the display attributes of the authenticated user.
// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.AccessTokenFromContext(r.Context())
	if !ok {
		WriteErrorResponse(w, http.StatusUnauthorized, "Missing access token")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.PreferredUsername == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Missing preferred_username or name")
		return
	}

	if err := h.provider.UpdateProfile(r.Context(), token, req.Name, req.PreferredUsername); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}

// DeleteUser removes the authenticated user's account. Existing score
// records are kept.
// DELETE /api/auth/user
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.AccessTokenFromContext(r.Context())
	if !ok {
		WriteErrorResponse(w, http.StatusUnauthorized, "Missing access token")
		return
	}

	if err := h.provider.DeleteUser(r.Context(), token); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
