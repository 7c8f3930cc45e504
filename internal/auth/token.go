// Package auth issues and verifies the bearer tokens handed out at login.
package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims is the identity carried by a verified token.
type Claims struct {
	UserID    uint
	Role      string
	ExpiresAt time.Time
}

type roleClaims struct {
	Role string `json:"role"`
}

// TokenManager signs HS256 JWTs for a single issuer.
type TokenManager struct {
	key    []byte
	issuer string
	ttl    time.Duration
	signer jose.Signer
	now    func() time.Time
}

// NewTokenManager derives a 256-bit HMAC key from secret.
func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	sum := sha256.Sum256([]byte(secret))
	key := sum[:]

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}

	return &TokenManager{
		key:    key,
		issuer: issuer,
		ttl:    ttl,
		signer: signer,
		now:    time.Now,
	}, nil
}

// Issue returns a signed token for the user and its expiry time.
func (m *TokenManager) Issue(userID uint, role string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	registered := jwt.Claims{
		ID:        uuid.NewString(),
		Issuer:    m.issuer,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Expiry:    jwt.NewNumericDate(expiresAt),
	}

	raw, err := jwt.Signed(m.signer).Claims(registered).Claims(roleClaims{Role: role}).Serialize()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return raw, expiresAt, nil
}

// Parse verifies the signature, issuer and time window of raw.
func (m *TokenManager) Parse(raw string) (Claims, error) {
	token, err := jwt.ParseSigned(strings.TrimSpace(raw), []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return Claims{}, ErrTokenInvalid
	}

	var registered jwt.Claims
	var custom roleClaims
	if err := token.Claims(m.key, &registered, &custom); err != nil {
		return Claims{}, ErrTokenInvalid
	}

	if err := registered.ValidateWithLeeway(jwt.Expected{Issuer: m.issuer, Time: m.now()}, 0); err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}

	id, err := strconv.ParseUint(registered.Subject, 10, 32)
	if err != nil || id == 0 {
		return Claims{}, ErrTokenInvalid
	}

	claims := Claims{UserID: uint(id), Role: custom.Role}
	if registered.Expiry != nil {
		claims.ExpiresAt = registered.Expiry.Time()
	}
	return claims, nil
}
