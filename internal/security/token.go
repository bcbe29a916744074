package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stokvel-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// IdentityClaims carries the per-call identity context issued by the auth
// collaborator.
type IdentityClaims struct {
	MemberID int64  `json:"member_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager validates bearer tokens into the identity context the core
// consumes. Generate exists for tooling and tests; issuing sessions is the
// auth collaborator's job.
type TokenManager interface {
	Generate(memberID int64, role domain.MembershipRole, ttl time.Duration) (string, error)
	Validate(tokenString string) (domain.Identity, error)
}

type tokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{secret: []byte(secret)}
}

func (m *tokenManager) Generate(memberID int64, role domain.MembershipRole, ttl time.Duration) (string, error) {
	claims := IdentityClaims{
		MemberID: memberID,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) Validate(tokenString string) (domain.Identity, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, ErrExpiredToken
		}
		return domain.Identity{}, ErrInvalidToken
	}
	if !token.Valid {
		return domain.Identity{}, ErrInvalidToken
	}
	return domain.Identity{
		MemberID: claims.MemberID,
		Role:     domain.MembershipRole(claims.Role),
	}, nil
}
