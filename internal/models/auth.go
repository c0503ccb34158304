package models

// TokenSet is the token bundle returned by login and refresh.
type TokenSet struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// UserProfile mirrors the auth provider's view of a user: the login
// identifier plus a flat attribute map.
type UserProfile struct {
	Username   string            `json:"username"`
	Attributes map[string]string `json:"attributes"`
}

// SignUpRequest is the request body for user registration.
type SignUpRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ConfirmSignUpRequest confirms a registration with the emailed code.
type ConfirmSignUpRequest struct {
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmationCode"`
}

// ResendConfirmationRequest asks for the confirmation code to be re-sent.
type ResendConfirmationRequest struct {
	Username string `json:"username"`
}

// LoginRequest carries the credentials for a password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a new token set.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes the password reset flow.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// ChangePasswordRequest changes the password of a signed-in user.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfileRequest updates the display attributes of a signed-in user.
type UpdateProfileRequest struct {
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
}
