package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// GenerateRoomToken mints an HS256 join token carrying the caller's identity
// and a room-join grant, valid for six hours.
func GenerateRoomToken(secret, room, identity string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  identity,
		"room": room,
		"video": map[string]any{
			"roomJoin": true,
			"room":     room,
		},
		"iat": now.Unix(),
		"exp": now.Add(6 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}
