// Package auth verifies Google sign-in identities and enforces the
// single-allowed-account gate. Access is restricted to one configured email;
// any other verified identity is turned away.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"
)

// Identity is the verified user as reported by the identity provider.
type Identity struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

var (
	ErrInvalidToken = errors.New("invalid identity token")
	ErrAccessDenied = errors.New("access denied")
)

// Verifier checks a provider-issued ID token and extracts the identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// GoogleVerifier validates Google ID tokens against an OAuth client ID.
type GoogleVerifier struct {
	audience string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{audience: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := Identity{
		Email:   claimString(payload.Claims, "email"),
		Name:    claimString(payload.Claims, "name"),
		Picture: claimString(payload.Claims, "picture"),
	}
	if id.Email == "" {
		return Identity{}, fmt.Errorf("%w: token carries no email claim", ErrInvalidToken)
	}
	return id, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// Gate enforces the allowed-email restriction.
type Gate struct {
	allowedEmail string
}

func NewGate(allowedEmail string) *Gate {
	return &Gate{allowedEmail: strings.ToLower(strings.TrimSpace(allowedEmail))}
}

// Check returns ErrAccessDenied for any identity other than the configured
// one. The error message surfaces to the user.
func (g *Gate) Check(id Identity) error {
	if strings.ToLower(id.Email) != g.allowedEmail {
		return fmt.Errorf("%w: %s is not authorized", ErrAccessDenied, id.Email)
	}
	return nil
}
