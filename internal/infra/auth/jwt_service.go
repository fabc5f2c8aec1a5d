// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gatekeeper/config"
	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/errors"
)

const defaultAccessTTL = time.Hour

// jwtService is a concrete implementation of the TokenService interface using
// the JWT standard. The signing key is loaded once at construction and never
// rotated at runtime.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := defaultAccessTTL
	if cfg.Auth != nil && cfg.Auth.AccessTokenTTL > 0 {
		ttl = cfg.Auth.AccessTokenTTL
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
	}, nil
}

// Issue creates a signed token whose claims are a snapshot of the account at
// this moment. The signature covers claims and expiry.
func (s *jwtService) Issue(account *entity.Account) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Name:     account.Name,
		Email:    account.Email,
		ImageURL: account.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate verifies signature integrity and expiry, and classifies failures
// into the domain's subtypes. Any failure means the token carries no trust.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Reject any token not signed with the expected HMAC family.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, errors.Wrap(service.ErrTokenExpired, err.Error())
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, errors.Wrap(service.ErrTokenSignature, err.Error())
		default:
			return nil, errors.Wrap(service.ErrTokenMalformed, err.Error())
		}
	}

	if !token.Valid {
		return nil, service.ErrTokenSignature
	}

	return claims, nil
}
