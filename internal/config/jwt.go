package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrSessionMismatch = errors.New("token was issued for another session")

type SessionClaims struct {
	SessionId string `json:"sid"`
	jwt.RegisteredClaims
}

type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	TokenLifetime time.Duration
}

func NewJWT(c JWTConfig) (*JWT, error) {
	if c.Secret == "" {
		return nil, fmt.Errorf("no jwt secret set")
	}
	j := &JWT{
		secret:        []byte(c.Secret),
		signingMethod: jwt.SigningMethodHS256,
		TokenLifetime: c.TokenLifetime,
	}
	return j, nil
}

func (j *JWT) Sign(sessionId string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		SessionId: sessionId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

func (j *JWT) keyFunc(t *jwt.Token) (any, error) {
	return j.secret, nil
}

func (j *JWT) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString, &SessionClaims{}, j.keyFunc,
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}

// Verify checks that tokenString is a valid token for sessionId.
func (j *JWT) Verify(tokenString string, sessionId string) error {
	claims, err := j.Parse(tokenString)
	if err != nil {
		return err
	}
	if claims.SessionId != sessionId {
		return ErrSessionMismatch
	}
	return nil
}
