package usecase

import (
	"fmt"

	domainErrors "github.com/tradux/backend/internal/domain/errors"
	"github.com/tradux/backend/internal/pkg/auth"
)

const operatorSubject = "operator"

// AuthUseCase authenticates the single operator account. The password comes
// from configuration and is hashed once at startup; only the hash is kept in
// memory afterwards.
type AuthUseCase struct {
	hasher       auth.PasswordHasher
	strategy     auth.Strategy
	passwordHash string
}

// NewAuthUseCase constructs AuthUseCase. An empty password disables operator
// login entirely.
func NewAuthUseCase(hasher auth.PasswordHasher, strategy auth.Strategy, operatorPassword string) (*AuthUseCase, error) {
	u := &AuthUseCase{hasher: hasher, strategy: strategy}
	if operatorPassword != "" {
		hash, err := hasher.Hash(operatorPassword)
		if err != nil {
			return nil, fmt.Errorf("hash operator password: %w", err)
		}
		u.passwordHash = hash
	}
	return u, nil
}

// Login verifies the operator password and issues a bearer token.
func (u *AuthUseCase) Login(password string) (string, error) {
	if u.passwordHash == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(u.passwordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.strategy.IssueToken(operatorSubject)
}

// ParseToken validates a bearer token and confirms it names the operator.
func (u *AuthUseCase) ParseToken(token string) error {
	subject, err := u.strategy.ParseToken(token)
	if err != nil {
		return domainErrors.ErrInvalidCredentials
	}
	if subject != operatorSubject {
		return domainErrors.ErrInvalidCredentials
	}
	return nil
}
