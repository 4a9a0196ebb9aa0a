package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openjournal/diary-system/internal/core/domain"
	"github.com/openjournal/diary-system/internal/core/ports"
)

const minRevocationTTL = time.Minute

// sessionClaims are the claims carried by a session token.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues, validates, and revokes HS256-signed session tokens.
// The signing secret is process-wide configuration, so tokens issued before a
// restart keep verifying afterwards.
type TokenService struct {
	secret   []byte
	tokenTTL time.Duration
	ledger   ports.RevocationLedger
	now      func() time.Time
}

func NewTokenService(secret string, tokenTTL time.Duration, ledger ports.RevocationLedger) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenService{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		ledger:   ledger,
		now:      time.Now,
	}
}

// Issue mints a token binding the user id and an absolute expiry.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate returns the subject user id, or the applicable rejection reason.
// Reason precedence when several conditions hold: malformed > signature
// mismatch > expired > revoked. The ledger lookup runs last, so a forged or
// expired token never touches storage.
func (s *TokenService) Validate(ctx context.Context, token string) (string, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", domain.ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		default:
			return "", domain.ErrTokenMalformed
		}
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrTokenMalformed
	}

	revoked, err := s.ledger.Contains(ctx, token)
	if err != nil {
		return "", fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return "", domain.ErrTokenRevoked
	}

	return claims.Subject, nil
}

// Revoke records the token in the ledger. The ledger entry carries a TTL
// equal to the token's remaining lifetime: once the token has expired on its
// own the entry may lapse, since expiry is checked before revocation.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	ttl := s.tokenTTL

	claims := &sessionClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	); err == nil && claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}

	if err := s.ledger.Add(ctx, token, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *TokenService) keyFunc(*jwt.Token) (interface{}, error) {
	return s.secret, nil
}
