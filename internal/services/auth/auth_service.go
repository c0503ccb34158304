// Package auth adapts the application's account operations onto the
// managed auth provider. Every method is a thin pass-through: validate,
// forward, reshape the response. No account state is kept locally.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/apperrors"
	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/models"
)

// ErrNoAdminClient is returned by DeleteUser when no service-role key was
// configured, since user deletion requires an admin call on this provider.
var ErrNoAdminClient = errors.New("service role key not configured, cannot delete users")

// Service wraps the auth provider client.
type Service struct {
	client gotrue.Client
	admin  gotrue.Client // authenticated with the service-role key; may be nil
}

// NewService creates the auth service. serviceRoleKey is optional; without
// it every operation except DeleteUser still works.
func NewService(client gotrue.Client, serviceRoleKey string) *Service {
	s := &Service{client: client}
	if serviceRoleKey != "" {
		s.admin = client.WithToken(serviceRoleKey)
	}
	return s
}

// SignUp registers a new user. The chosen username and full name are kept
// as user metadata under the standard preferred_username / name keys, the
// same attributes the resolver later reads the display name from.
// Returns the provider-assigned user ID.
func (s *Service) SignUp(ctx context.Context, name, username, email, password string) (string, error) {
	resp, err := s.client.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data: map[string]interface{}{
			"name":               name,
			"preferred_username": username,
		},
	})
	if err != nil {
		return "", fmt.Errorf("signing up user: %w", err)
	}
	return resp.ID.String(), nil
}

// ConfirmSignUp confirms a registration with the code the user received.
func (s *Service) ConfirmSignUp(ctx context.Context, email, code string) error {
	resp, err := s.client.VerifyForUser(types.VerifyForUserRequest{
		Type:  types.VerificationTypeSignup,
		Email: email,
		Token: code,
	})
	if err != nil {
		return apperrors.Identity("confirmation rejected by auth provider", err)
	}
	// A successful verification always carries a session.
	if resp.AccessToken == "" {
		return apperrors.Identity("confirmation code rejected", nil)
	}
	return nil
}

// ResendConfirmation asks the provider to send a fresh sign-in code to a
// registered address.
func (s *Service) ResendConfirmation(ctx context.Context, email string) error {
	err := s.client.OTP(types.OTPRequest{
		Email:      email,
		CreateUser: false,
	})
	if err != nil {
		return fmt.Errorf("resending confirmation code: %w", err)
	}
	return nil
}

// Login authenticates with email and password and returns the token set.
func (s *Service) Login(ctx context.Context, email, password string) (models.TokenSet, error) {
	resp, err := s.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return models.TokenSet{}, apperrors.Identity("invalid email or password", err)
	}
	return tokenSetFromSession(resp.Session), nil
}

// Refresh exchanges a refresh token for a new token set.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (models.TokenSet, error) {
	resp, err := s.client.RefreshToken(refreshToken)
	if err != nil {
		return models.TokenSet{}, apperrors.Identity("refresh token rejected by auth provider", err)
	}
	return tokenSetFromSession(resp.Session), nil
}

// ForgotPassword triggers the provider's password recovery flow, which
// emails a reset code to the user.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if err := s.client.Recover(types.RecoverRequest{Email: email}); err != nil {
		return fmt.Errorf("sending password reset code: %w", err)
	}
	return nil
}

// ResetPassword completes the recovery flow: the emailed code buys a
// short-lived session, which is then used to set the new password.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	resp, err := s.client.VerifyForUser(types.VerifyForUserRequest{
		Type:  types.VerificationTypeRecovery,
		Email: email,
		Token: code,
	})
	if err != nil {
		return apperrors.Identity("reset code rejected by auth provider", err)
	}
	if resp.AccessToken == "" {
		return apperrors.Identity("reset code rejected", nil)
	}

	_, err = s.client.WithToken(resp.AccessToken).UpdateUser(types.UpdateUserRequest{
		Password: &newPassword,
	})
	if err != nil {
		return fmt.Errorf("setting new password: %w", err)
	}
	return nil
}

// ChangePassword changes the password of a signed-in user. The provider
// has no "verify old password" call, so the old password is checked by
// re-authenticating before the update.
func (s *Service) ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error {
	authed := s.client.WithToken(accessToken)
	user, err := authed.GetUser()
	if err != nil {
		return apperrors.Identity("access token rejected by auth provider", err)
	}

	if _, err := s.client.SignInWithEmailPassword(user.Email, oldPassword); err != nil {
		return apperrors.Validation("old password is incorrect")
	}

	if _, err := authed.UpdateUser(types.UpdateUserRequest{Password: &newPassword}); err != nil {
		return fmt.Errorf("changing password: %w", err)
	}
	return nil
}

// GetUser fetches the profile of the user behind the token.
func (s *Service) GetUser(ctx context.Context, accessToken string) (models.UserProfile, error) {
	user, err := s.client.WithToken(accessToken).GetUser()
	if err != nil {
		return models.UserProfile{}, apperrors.Identity("access token rejected by auth provider", err)
	}

	attrs := map[string]string{
		"sub":   user.ID.String(),
		"email": user.Email,
	}
	if user.Phone != "" {
		attrs["phone"] = user.Phone
	}
	for key, value := range user.UserMetadata {
		if str, ok := value.(string); ok && str != "" {
			attrs[key] = str
		}
	}

	return models.UserProfile{
		Username:   user.Email,
		Attributes: attrs,
	}, nil
}

// UpdateProfile updates the display attributes of a signed-in user.
func (s *Service) UpdateProfile(ctx context.Context, accessToken, name, preferredUsername string) error {
	_, err := s.client.WithToken(accessToken).UpdateUser(types.UpdateUserRequest{
		Data: map[string]interface{}{
			"name":               name,
			"preferred_username": preferredUsername,
		},
	})
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

// DeleteUser removes the account behind the token. Score records are not
// cascaded; the leaderboard keeps the user's past submissions.
func (s *Service) DeleteUser(ctx context.Context, accessToken string) error {
	if s.admin == nil {
		return ErrNoAdminClient
	}

	user, err := s.client.WithToken(accessToken).GetUser()
	if err != nil {
		return apperrors.Identity("access token rejected by auth provider", err)
	}

	if err := s.admin.AdminDeleteUser(types.AdminDeleteUserRequest{UserID: user.ID}); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

func tokenSetFromSession(session types.Session) models.TokenSet {
	return models.TokenSet{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    session.ExpiresIn,
		TokenType:    session.TokenType,
	}
}
