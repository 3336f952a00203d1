package in

import (
	"context"

	"mindful/internal/modules/identity/dto"
)

type Usecase interface {
	SignUp(ctx context.Context, input dto.SignUpInput) (dto.UserOutput, error)
	SignIn(ctx context.Context, input dto.SignInInput) (dto.IdentityOutput, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) (dto.IdentityOutput, error)
	// Authenticate checks credentials without changing the current identity.
	Authenticate(ctx context.Context, input dto.SignInInput) (dto.IdentityOutput, error)
}
