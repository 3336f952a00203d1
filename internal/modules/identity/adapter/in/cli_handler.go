package in

import (
	"context"

	identitydto "mindful/internal/modules/identity/dto"
	identityin "mindful/internal/modules/identity/port/in"
)

type CLIHandler struct {
	usecase identityin.Usecase
}

func NewCLIHandler(usecase identityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SignUp(ctx context.Context, email, password, fullName string) (identitydto.UserOutput, error) {
	return h.usecase.SignUp(ctx, identitydto.SignUpInput{Email: email, Password: password, FullName: fullName})
}

func (h CLIHandler) SignIn(ctx context.Context, email, password string) (identitydto.IdentityOutput, error) {
	return h.usecase.SignIn(ctx, identitydto.SignInInput{Email: email, Password: password})
}

func (h CLIHandler) SignOut(ctx context.Context) error {
	return h.usecase.SignOut(ctx)
}

func (h CLIHandler) WhoAmI(ctx context.Context) (identitydto.IdentityOutput, error) {
	return h.usecase.Current(ctx)
}
