package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	accessTTL  = time.Hour
	refreshTTL = 24 * time.Hour
)

// ErrInvalidToken is returned when a token fails verification, has expired,
// or is of the wrong type.
var ErrInvalidToken = errors.New("token is invalid or expired")

type tokenClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HMAC-signed bearer tokens bound to a user id.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue creates a fresh access/refresh pair for the given user.
func (t *TokenIssuer) Issue(userID uuid.UUID) (*TokenPair, error) {
	access, err := t.sign(userID, tokenTypeAccess, accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := t.sign(userID, tokenTypeRefresh, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (t *TokenIssuer) sign(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// VerifyAccess validates an access token and returns the bound user id.
func (t *TokenIssuer) VerifyAccess(token string) (uuid.UUID, error) {
	return t.verify(token, tokenTypeAccess)
}

// VerifyRefresh validates a refresh token and returns the bound user id.
func (t *TokenIssuer) VerifyRefresh(token string) (uuid.UUID, error) {
	return t.verify(token, tokenTypeRefresh)
}

func (t *TokenIssuer) verify(token, wantType string) (uuid.UUID, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid || claims.TokenType != wantType {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
