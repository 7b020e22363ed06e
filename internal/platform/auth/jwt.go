package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 bearer tokens issued by the account service.
type TokenVerifier struct {
	secret []byte
	issuer string
}

func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *TokenVerifier) Verify(tokenString string) (domain.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, domain.NewUnauthenticated("token expired")
		}
		return domain.Principal{}, domain.NewUnauthenticated("invalid token")
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Principal{}, domain.NewUnauthenticated("invalid token subject")
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.Principal{}, domain.NewUnauthenticated("invalid token role")
	}

	return domain.Principal{AccountID: accountID, Role: role}, nil
}

// Issue signs a token for p. Login lives elsewhere; this is used by tests
// and local tooling.
func (v *TokenVerifier) Issue(p domain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.AccountID.String(),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
