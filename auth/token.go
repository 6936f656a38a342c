package auth

import (
	"time"

	"expofloor/globals"
	"expofloor/middleware"
	"expofloor/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenTTL = 12 * time.Hour

// GenerateToken signs an access token carrying the user's id, username and
// role. The policy layer trusts these claims without re-reading the user.
func GenerateToken(user models.User) (string, error) {
	now := time.Now()
	claims := &middleware.Claims{
		Username: user.Username,
		UserID:   user.ID.Hex(),
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
