package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// loginTokenTTL bounds how long a login link stays valid.
const loginTokenTTL = 15 * time.Minute

// createLoginToken generates a short-lived, single-use JWT for a login link.
// The jti is recorded so the token can be consumed exactly once.
func createLoginToken(secret []byte, userID, jti string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"jti": jti,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(loginTokenTTL).Unix(),
		"aud": "login",
	})
	return token.SignedString(secret)
}

// parseLoginToken validates the signature and expiry and returns the user id
// and jti claims.
func parseLoginToken(secret []byte, tokenStr string) (userID, jti string, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithAudience("login"), jwt.WithExpirationRequired())
	if err != nil {
		return "", "", fmt.Errorf("invalid login token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid login token claims")
	}

	userID, _ = claims["sub"].(string)
	jti, _ = claims["jti"].(string)
	if userID == "" || jti == "" {
		return "", "", fmt.Errorf("login token missing sub or jti")
	}
	return userID, jti, nil
}
