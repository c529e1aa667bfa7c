package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type editorTokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseEditorToken validates a bearer token signed with JWT_SECRET and
// returns the editor claims embedded in it.
func ParseEditorToken(tokenString string) (*EditorClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}

	claims := &editorTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &EditorClaims{
		EditorUUID: claims.Subject,
		RoleValue:  claims.Role,
	}, nil
}
