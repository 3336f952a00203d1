package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mindful/internal/modules/identity/domain"
	identityout "mindful/internal/modules/identity/port/out"
	"mindful/internal/platform/clock"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/platform/id"
)

type IdentityService struct {
	clock  clock.Clock
	idGen  id.Generator
	users  identityout.UserStore
	hasher identityout.PasswordHasher
}

func NewIdentityService(clock clock.Clock, idGen id.Generator, users identityout.UserStore, hasher identityout.PasswordHasher) *IdentityService {
	return &IdentityService{clock: clock, idGen: idGen, users: users, hasher: hasher}
}

func (s *IdentityService) SignUp(ctx context.Context, email, password, fullName string) (domain.User, error) {
	email = domain.NormalizeEmail(email)
	if err := domain.ValidateSignUp(email, password); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.User{}, apperrors.ErrUserExists
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.User{}, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	now := s.clock.Now()
	user := domain.User{
		ID:           s.idGen.New(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Authenticate returns the identity for valid credentials. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (domain.Identity, error) {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Identity{}, apperrors.ErrInvalidCredentials
		}
		return domain.Identity{}, err
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return domain.Identity{}, apperrors.ErrInvalidCredentials
	}
	return domain.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		FullName:   user.FullName,
		SignedInAt: s.clock.Now(),
	}, nil
}

// Exists reports whether the identity still refers to a stored user.
func (s *IdentityService) Exists(ctx context.Context, identity domain.Identity) (bool, error) {
	if _, err := s.users.FindByID(ctx, identity.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
