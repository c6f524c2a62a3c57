package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/soraien/raidhall/config"
)

// Claims identifies the member a session token was issued to. Nothing
// server-side validates these tokens yet; clients carry them for a future
// authorization layer.
type Claims struct {
	ProfileID string `json:"profile_id"`
	Nickname  string `json:"nickname"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed session token for the given profile.
func GenerateToken(profileID, nickname string, duration time.Duration) (string, error) {
	cfg := config.Get()

	claims := Claims{
		ProfileID: profileID,
		Nickname:  nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
