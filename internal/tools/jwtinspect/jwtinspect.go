// Package jwtinspect decodes and optionally verifies JSON Web Tokens for the
// hub's admin tooling. Inspection never requires a key; verification is
// limited to HMAC-signed tokens.
package jwtinspect

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotHMAC = errors.New("token is not HMAC-signed")

// Info is the decoded view of a token.
type Info struct {
	Algorithm string
	Header    map[string]any
	Claims    map[string]any
	ExpiresAt *time.Time
	IssuedAt  *time.Time
	Subject   string
	Expired   bool
}

// Decode parses a token without verifying its signature. The result is
// untrusted; use Verify when authenticity matters.
func Decode(tokenString string) (*Info, error) {
	claims := jwt.MapClaims{}
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	info := &Info{
		Algorithm: token.Method.Alg(),
		Header:    token.Header,
		Claims:    claims,
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
		info.Expired = time.Now().After(t)
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		info.IssuedAt = &t
	}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}

	return info, nil
}

// Verify parses a token and checks its HMAC signature with secretKey.
func Verify(tokenString string, secretKey []byte) (*Info, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotHMAC, t.Method.Alg())
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	info := &Info{
		Algorithm: token.Method.Alg(),
		Header:    token.Header,
		Claims:    claims,
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}

	return info, nil
}
