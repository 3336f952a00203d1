package usecase

import (
	"context"

	"mindful/internal/modules/identity/domain"
	identitydto "mindful/internal/modules/identity/dto"
	identityout "mindful/internal/modules/identity/port/out"
	"mindful/internal/modules/identity/service"
	apperrors "mindful/internal/platform/errors"
)

type Interactor struct {
	svc     *service.IdentityService
	current identityout.IdentityStore
}

func NewInteractor(svc *service.IdentityService, current identityout.IdentityStore) *Interactor {
	return &Interactor{svc: svc, current: current}
}

func (i *Interactor) SignUp(ctx context.Context, input identitydto.SignUpInput) (identitydto.UserOutput, error) {
	user, err := i.svc.SignUp(ctx, input.Email, input.Password, input.FullName)
	if err != nil {
		return identitydto.UserOutput{}, err
	}
	return identitydto.UserOutput{ID: user.ID, Email: user.Email, FullName: user.FullName, CreatedAt: user.CreatedAt}, nil
}

func (i *Interactor) SignIn(ctx context.Context, input identitydto.SignInInput) (identitydto.IdentityOutput, error) {
	identity, err := i.svc.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return identitydto.IdentityOutput{}, err
	}
	if err := i.current.Save(ctx, identity); err != nil {
		return identitydto.IdentityOutput{}, err
	}
	return toOutput(identity), nil
}

func (i *Interactor) Authenticate(ctx context.Context, input identitydto.SignInInput) (identitydto.IdentityOutput, error) {
	identity, err := i.svc.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return identitydto.IdentityOutput{}, err
	}
	return toOutput(identity), nil
}

func (i *Interactor) SignOut(ctx context.Context) error {
	return i.current.Clear(ctx)
}

func (i *Interactor) Current(ctx context.Context) (identitydto.IdentityOutput, error) {
	identity, err := i.current.Load(ctx)
	if err != nil {
		return identitydto.IdentityOutput{}, err
	}
	ok, err := i.svc.Exists(ctx, identity)
	if err != nil {
		return identitydto.IdentityOutput{}, err
	}
	if !ok {
		if err := i.current.Clear(ctx); err != nil {
			return identitydto.IdentityOutput{}, err
		}
		return identitydto.IdentityOutput{}, apperrors.ErrNotSignedIn
	}
	return toOutput(identity), nil
}

func toOutput(identity domain.Identity) identitydto.IdentityOutput {
	return identitydto.IdentityOutput{
		UserID:      identity.UserID,
		Email:       identity.Email,
		FullName:    identity.FullName,
		DisplayName: identity.DisplayName(),
		SignedInAt:  identity.SignedInAt,
	}
}
