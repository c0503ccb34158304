// Package identity maps opaque bearer tokens to the user identity that
// score submissions are attributed to.
package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/apperrors"
)

// Identity is the result of resolving an access token.
type Identity struct {
	UserID      string
	DisplayName string
}

// Resolver resolves an access token to a stable user identity. Any failure
// is an IdentityError and means the caller must re-authenticate.
type Resolver interface {
	Resolve(ctx context.Context, accessToken string) (Identity, error)
}

// GoTrueResolver resolves tokens by asking the auth provider for the user
// behind the token. It holds no state and performs a read-only lookup.
type GoTrueResolver struct {
	client gotrue.Client
}

// NewGoTrueResolver creates a resolver over a GoTrue client.
func NewGoTrueResolver(client gotrue.Client) *GoTrueResolver {
	return &GoTrueResolver{client: client}
}

// Resolve looks up the user behind the token.
func (r *GoTrueResolver) Resolve(ctx context.Context, accessToken string) (Identity, error) {
	if accessToken == "" {
		return Identity{}, apperrors.Identity("missing access token", nil)
	}

	user, err := r.client.WithToken(accessToken).GetUser()
	if err != nil {
		return Identity{}, apperrors.Identity("access token rejected by auth provider", err)
	}

	id := FromUser(user.User)
	if id.UserID == "" || id.DisplayName == "" {
		return Identity{}, apperrors.Identity("unable to determine user identity from token", nil)
	}
	return id, nil
}

// FromUser derives the identity from a provider user object. The user ID
// is the provider-issued subject, falling back to the login identifier.
// The display name is the first non-empty of: chosen preferred username,
// full name, e-mail address, login identifier.
func FromUser(u types.User) Identity {
	userID := ""
	if u.ID != uuid.Nil {
		userID = u.ID.String()
	} else {
		userID = u.Email
	}

	displayName := firstNonEmpty(
		metadataString(u.UserMetadata, "preferred_username"),
		metadataString(u.UserMetadata, "name"),
		u.Email,
		u.Phone,
	)

	return Identity{UserID: userID, DisplayName: displayName}
}

func metadataString(metadata map[string]interface{}, key string) string {
	if metadata == nil {
		return ""
	}
	value, _ := metadata[key].(string)
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
