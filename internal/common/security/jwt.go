package security

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"fittrack/internal/common"
	"fittrack/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

func GenerateToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(config.AppConfig.JWTExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// VerifyToken validates signature and expiry and returns the subject user ID.
// Any failure mode other than expiry collapses into common.ErrTokenInvalid.
func VerifyToken(tokenString string) (int64, error) {
	token, err := jwtauth.VerifyToken(TokenAuth, tokenString)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrTokenInvalid
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return 0, common.ErrTokenInvalid
	}
	return GetUserIDFromClaims(claims)
}

// GetUserIDFromClaims extracts the numeric user_id claim. Claims decoded
// from the wire arrive as float64, claims built in-process may still be
// int64, so both encodings are accepted.
func GetUserIDFromClaims(claims map[string]interface{}) (int64, error) {
	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, common.ErrTokenInvalid
		}
		return id, nil
	}
	return 0, common.ErrTokenInvalid
}

// TokenFromAuthHeader reads the Authorization header, accepting the raw
// token as well as the conventional "Bearer <token>" form.
func TokenFromAuthHeader(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
