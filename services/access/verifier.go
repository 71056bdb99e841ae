package access

import (
	"context"
	"strings"

	"petcare/models"
	"petcare/utils"
)

// CredentialVerifier checks a bearer credential and decodes its principal.
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) (*models.Principal, error)
}

// JWTVerifier verifies HS256 access tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify has no side effects. An empty credential is Missing; anything that
// fails parsing, signature or expiry checks is Invalid.
func (v *JWTVerifier) Verify(_ context.Context, credential string) (*models.Principal, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, ErrCredentialMissing
	}
	if len(v.secret) == 0 {
		return nil, &AuthenticationError{Reason: CredentialInvalid}
	}

	claims, err := utils.ParseToken(v.secret, credential)
	if err != nil {
		return nil, &AuthenticationError{Reason: CredentialInvalid, Err: err}
	}
	return &models.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  models.Role(claims.Role),
	}, nil
}

// BearerCredential extracts the token from an Authorization header value.
// An absent header yields "" (Missing); a malformed one is returned as-is so
// verification reports it as Invalid.
func BearerCredential(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return header
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return header
	}
	return token
}
