package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Имена JWT claims
const (
	jwtClaimSessionID = "sid"
	jwtClaimRole      = "role"

	RoleAdmin = "admin"
)

// IssueToken signs a session token that expires with the session.
func IssueToken(jwtSecret []byte, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		jwtClaimSessionID: sessionID,
		jwtClaimRole:      RoleAdmin,
		"exp":             expiresAt.Unix(),
		"iat":             time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func GetSessionIDFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(claimsContextKey).(jwt.MapClaims)
	if !ok {
		return "", errNoClaims
	}
	raw, ok := claims[jwtClaimSessionID]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimSessionID)
	}
	sid, ok := raw.(string)
	if !ok || sid == "" {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimSessionID, raw)
	}
	return sid, nil
}

// WithSessionID stores claims for sessionID in ctx, as Authenticate would.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, claimsContextKey, jwt.MapClaims{jwtClaimSessionID: sessionID, jwtClaimRole: RoleAdmin})
}
