package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Overridden from env at startup; the defaults only matter for local runs.
var (
	AdminSecret = []byte("almacen-admin-secret")
	UserSecret  = []byte("almacen-user-secret")
)

func GenerateAdminToken(adminID uint, username string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": adminID,
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(AdminSecret)
}

func GenerateUserToken(userID uint, username string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(UserSecret)
}

func VerifyAdminToken(tokenString string) (jwt.MapClaims, error) {
	return verify(tokenString, AdminSecret)
}

func VerifyUserToken(tokenString string) (jwt.MapClaims, error) {
	return verify(tokenString, UserSecret)
}

func verify(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
