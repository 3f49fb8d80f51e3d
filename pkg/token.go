package pkg

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func secret() ([]byte, error) {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s), nil
	}
	return nil, errors.New("missing JWT_SECRET")
}

// CreateToken issues a 24h HS256 session token for an admin account.
func CreateToken(email, role string) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// VerifyToken validates a session token and returns the subject email and role.
func VerifyToken(tokenStr string) (string, string, error) {
	key, err := secret()
	if err != nil {
		return "", "", err
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil || !parsed.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || claims.Subject == "" {
		return "", "", errors.New("invalid claims")
	}
	return claims.Subject, claims.Role, nil
}
