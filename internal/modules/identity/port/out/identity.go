package out

import (
	"context"

	"mindful/internal/modules/identity/domain"
)

type UserStore interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// IdentityStore persists who is signed in on this machine.
type IdentityStore interface {
	Save(ctx context.Context, identity domain.Identity) error
	Load(ctx context.Context) (domain.Identity, error)
	Clear(ctx context.Context) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
