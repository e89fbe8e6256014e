package identity

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrCannotSign   = errors.New("verifier has no signing secret")
)

// Claims carries what the identity provider asserts about the caller.
// Subject is the provider's stable user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks bearer tokens either against a shared HS256 secret
// (local development, tests) or against the provider's published RS256 keys.
type Verifier struct {
	keyfunc  jwt.Keyfunc
	methods  []string
	secret   []byte
	issuer   string
	audience string
}

// Options selects the verification mode. A JWKS URL wins, then a shared
// secret; with neither, the JWKS URL is discovered from the issuer.
type Options struct {
	Secret   string
	Issuer   string
	Audience string
	JWKSURL  string
}

func New(ctx context.Context, o Options) (*Verifier, error) {
	switch {
	case o.JWKSURL != "":
		return NewJWKSVerifier(o.JWKSURL, o.Issuer, o.Audience), nil
	case o.Secret != "":
		return NewVerifier(o.Secret, o.Issuer, o.Audience), nil
	case o.Issuer != "":
		jwksURL, err := DiscoverJWKS(ctx, o.Issuer)
		if err != nil {
			return nil, err
		}
		return NewJWKSVerifier(jwksURL, o.Issuer, o.Audience), nil
	default:
		return nil, errors.New("identity: a secret, issuer or JWKS URL is required")
	}
}

// NewVerifier accepts HS256 tokens signed with secret.
func NewVerifier(secret, issuer, audience string) *Verifier {
	key := []byte(secret)
	return &Verifier{
		keyfunc:  func(*jwt.Token) (interface{}, error) { return key, nil },
		methods:  []string{jwt.SigningMethodHS256.Alg()},
		secret:   key,
		issuer:   issuer,
		audience: audience,
	}
}

// NewJWKSVerifier accepts RS256 tokens whose kid is published at jwksURL.
func NewJWKSVerifier(jwksURL, issuer, audience string) *Verifier {
	keys := newKeySet(jwksURL)
	return &Verifier{
		keyfunc:  keys.keyfunc,
		methods:  []string{jwt.SigningMethodRS256.Alg()},
		issuer:   issuer,
		audience: audience,
	}
}

func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, v.keyfunc, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Sign issues a token the Verifier accepts. Used by local tooling and tests;
// only available in shared-secret mode.
func (v *Verifier) Sign(subject, email, name string, ttl time.Duration) (string, error) {
	if len(v.secret) == 0 {
		return "", ErrCannotSign
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
