package auth

import (
	"testing"

	"expofloor/middleware"
	"expofloor/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	user := models.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Role:     models.RoleAdmin,
	}

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := middleware.ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("UserID: got %q, want %q", claims.UserID, user.ID.Hex())
	}
	if claims.Username != "alice" {
		t.Errorf("Username: got %q", claims.Username)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Role: got %q", claims.Role)
	}
	if claims.ID == "" {
		t.Error("expected a jti claim")
	}
}
