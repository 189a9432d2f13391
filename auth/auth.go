package auth

import (
	"context"
	"errors"

	"github.com/burgerhub/menu-ordering/storage"
)

// CredentialChecker decides whether an identifier/secret pair grants admin access.
type CredentialChecker interface {
	CheckCredentials(identifier, secret string) bool
}

// StaticCredentials accepts exactly one configured pair.
type StaticCredentials struct {
	Identifier string
	Secret     string
}

func (c StaticCredentials) CheckCredentials(identifier, secret string) bool {
	return identifier == c.Identifier && secret == c.Secret
}

// Session keeps the admin flag in the document store. The flag is the only
// authorization gate: it has no expiry and is trusted as stored.
type Session struct {
	docs    storage.Documents
	checker CredentialChecker
}

func NewSession(docs storage.Documents, checker CredentialChecker) *Session {
	return &Session{
		docs:    docs,
		checker: checker,
	}
}

// Login sets the admin flag when the credentials are accepted.
func (s *Session) Login(ctx context.Context, identifier, secret string) (bool, error) {
	if !s.checker.CheckCredentials(identifier, secret) {
		return false, nil
	}
	if err := s.docs.Put(ctx, storage.KeyAdminAuth, []byte("true")); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) Logout(ctx context.Context) error {
	return s.docs.Delete(ctx, storage.KeyAdminAuth)
}

func (s *Session) IsAuthenticated(ctx context.Context) (bool, error) {
	body, err := s.docs.Get(ctx, storage.KeyAdminAuth)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(body) == "true", nil
}
