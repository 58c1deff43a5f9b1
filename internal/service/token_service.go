package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/quizmind/quizmind-api/config"
	"github.com/quizmind/quizmind-api/internal/apperror"
	"github.com/quizmind/quizmind-api/internal/model"
)

// TokenClaims is what a verified token carries: just the user identity and
// role. Everything else is resolved from the user record per request.
type TokenClaims struct {
	UserID uint
	Role   model.Role
}

// TokenService issues and verifies the signed bearer tokens used by the
// access control gate. Verification fails closed: any signature mismatch,
// malformed payload or past expiry yields ErrUnauthenticated.
type TokenService interface {
	Issue(userID uint, role model.Role) (string, error)
	Verify(token string) (*TokenClaims, error)
}

type tokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(cfg *config.Config) TokenService {
	return &tokenService{
		secret: []byte(cfg.JWT.Secret),
		expiry: time.Duration(cfg.JWT.ExpiryDays) * 24 * time.Hour,
	}
}

func (s *tokenService) Issue(userID uint, role model.Role) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"role": string(role),
		"exp":  time.Now().Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", apperror.ErrUnauthenticated)
	}

	idFloat, ok := claims["id"].(float64)
	if !ok || idFloat <= 0 {
		return nil, fmt.Errorf("%w: invalid user id in token", apperror.ErrUnauthenticated)
	}
	roleStr, _ := claims["role"].(string)
	role, err := model.ParseRole(roleStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid role in token", apperror.ErrUnauthenticated)
	}

	return &TokenClaims{UserID: uint(idFloat), Role: role}, nil
}
