package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the verified identity of the caller for one request. It lives
// only for the request; nothing here is persisted.
type Principal struct {
	UserID int64
	Email  string
}

var (
	// ErrCredentialMissing: no Authorization header, or not the Bearer scheme.
	ErrCredentialMissing = errors.New("authorization token is missing or invalid")
	// ErrCredentialInvalid: signature, claim or expiry check failed.
	ErrCredentialInvalid = errors.New("invalid or expired token")
)

// Claims is the token payload the issuer and the verifier agree on.
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs tokens for signed-in users.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed HS256 token carrying the user's id and email,
// valid for the issuer's ttl (one hour in production).
func (i *Issuer) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("Issuer.Issue: %w", err)
	}
	return signed, nil
}

// Verifier turns a bearer credential into a Principal. It trusts the
// signature: claims are not re-checked against storage. Stateless and safe
// for concurrent use.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// FromAuthorizationHeader extracts the raw token from an
// "Authorization: Bearer <token>" header value.
func FromAuthorizationHeader(header string) (string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrCredentialMissing
	}
	return strings.TrimPrefix(header, "Bearer "), nil
}

// Verify checks the credential's signature and expiry and returns the
// Principal embedded at issuance. Callers get ErrCredentialInvalid for every
// failure mode; no claim-level detail leaks out.
func (v *Verifier) Verify(credential string) (Principal, error) {
	var claims Claims
	token, err := v.parser.ParseWithClaims(credential, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrCredentialInvalid
	}
	return Principal{UserID: claims.UserID, Email: claims.Email}, nil
}
