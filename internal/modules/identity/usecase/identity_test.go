package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	identityout "mindful/internal/modules/identity/adapter/out"
	identitydto "mindful/internal/modules/identity/dto"
	"mindful/internal/modules/identity/service"
	"mindful/internal/modules/identity/usecase"
	"mindful/internal/platform/clock"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/platform/id"
	"mindful/internal/platform/sqlitedb"
)

type fixture struct {
	uc    *usecase.Interactor
	users *identityout.SQLiteUserStore
	path  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlitedb.Open(context.Background(), filepath.Join(dir, "mindful.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	users, err := identityout.NewSQLiteUserStore(context.Background(), db)
	require.NoError(t, err)
	clk := clock.NewManual(time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC))
	svc := service.NewIdentityService(clk, id.UUID{}, users, identityout.NewBcryptHasher(bcrypt.MinCost))
	path := filepath.Join(dir, "identity.json")
	return fixture{uc: usecase.NewInteractor(svc, identityout.NewFileIdentityStore(path)), users: users, path: path}
}

func TestSignUpSignInAndCurrent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Current(ctx)
	require.ErrorIs(t, err, apperrors.ErrNotSignedIn)

	user, err := f.uc.SignUp(ctx, identitydto.SignUpInput{Email: " Ada@Example.com ", Password: "secret1", FullName: "Ada Lovelace"})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", user.Email)

	identity, err := f.uc.SignIn(ctx, identitydto.SignInInput{Email: "ADA@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, user.ID, identity.UserID)
	require.Equal(t, "Ada Lovelace", identity.DisplayName)
	require.FileExists(t, f.path)

	current, err := f.uc.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, identity.UserID, current.UserID)

	require.NoError(t, f.uc.SignOut(ctx))
	require.NoError(t, f.uc.SignOut(ctx))
	_, err = f.uc.Current(ctx)
	require.ErrorIs(t, err, apperrors.ErrNotSignedIn)
}

func TestSignUpRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.SignUp(ctx, identitydto.SignUpInput{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = f.uc.SignUp(ctx, identitydto.SignUpInput{Email: "ADA@example.com", Password: "another1"})
	require.ErrorIs(t, err, apperrors.ErrUserExists)
	_, err = f.uc.SignUp(ctx, identitydto.SignUpInput{Email: "bob@example.com", Password: "12345"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSignInFailuresDoNotChangeIdentity(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.SignUp(ctx, identitydto.SignUpInput{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.uc.SignIn(ctx, identitydto.SignInInput{Email: "ada@example.com", Password: "wrong-pw"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = f.uc.SignIn(ctx, identitydto.SignInInput{Email: "nobody@example.com", Password: "secret1"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	require.NoFileExists(t, f.path)

	checked, err := f.uc.Authenticate(ctx, identitydto.SignInInput{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "ada", checked.DisplayName)
	require.NoFileExists(t, f.path)
}

func TestCurrentClearsStaleIdentity(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.SignUp(ctx, identitydto.SignUpInput{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	identity, err := f.uc.SignIn(ctx, identitydto.SignInInput{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(ctx, identity.UserID))
	_, err = f.uc.Current(ctx)
	require.ErrorIs(t, err, apperrors.ErrNotSignedIn)
	require.NoFileExists(t, f.path)
}
