package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret, subject, role string) string {
	t.Helper()
	claims := editorTokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestParseEditorToken_Valid(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, "test-secret", "editor-1", "steward")
	claims, err := ParseEditorToken(tokenString)
	if err != nil {
		t.Fatalf("ParseEditorToken failed: %v", err)
	}

	if claims.UserID() != "editor-1" {
		t.Errorf("Expected editor-1, got %s", claims.UserID())
	}
	if !claims.CanEdit() {
		t.Error("Steward claims must be able to edit")
	}
}

func TestParseEditorToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "real-secret")

	tokenString := signToken(t, "other-secret", "editor-1", "admin")
	if _, err := ParseEditorToken(tokenString); err == nil {
		t.Fatal("Expected error for token signed with wrong secret")
	}
}

func TestParseEditorToken_MissingSubject(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString := signToken(t, "test-secret", "", "admin")
	if _, err := ParseEditorToken(tokenString); err == nil {
		t.Fatal("Expected error for token without subject")
	}
}

func TestClaims_Roles(t *testing.T) {
	viewer := &EditorClaims{EditorUUID: "u1", RoleValue: "viewer"}
	if viewer.CanEdit() {
		t.Error("Viewer must not be able to edit")
	}

	apiKey := &APIKeyClaims{KeyID: "k1", KeyName: "telemetry"}
	if apiKey.CanEdit() {
		t.Error("Ingest keys must never edit")
	}
	if apiKey.Role() != "ingest" {
		t.Errorf("Expected ingest role, got %s", apiKey.Role())
	}
}
