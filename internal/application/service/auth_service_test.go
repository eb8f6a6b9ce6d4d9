package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webdev26/facture-api/internal/domain/entity"
	"github.com/webdev26/facture-api/pkg/apperror"
	"github.com/webdev26/facture-api/pkg/email"
	"github.com/webdev26/facture-api/pkg/oauth"
	"github.com/webdev26/facture-api/pkg/pagination"
	"github.com/webdev26/facture-api/pkg/utils"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.User, int64, error) {
	var out []entity.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

type fakePasswordResetRepo struct {
	tokens map[string]*entity.PasswordResetToken
}

func newFakePasswordResetRepo() *fakePasswordResetRepo {
	return &fakePasswordResetRepo{tokens: make(map[string]*entity.PasswordResetToken)}
}

func (r *fakePasswordResetRepo) Create(_ context.Context, t *entity.PasswordResetToken) error {
	r.tokens[t.Token] = t
	return nil
}

func (r *fakePasswordResetRepo) GetByToken(_ context.Context, token string) (*entity.PasswordResetToken, error) {
	return r.tokens[token], nil
}

func (r *fakePasswordResetRepo) MarkAsUsed(_ context.Context, token string) error {
	if t, ok := r.tokens[token]; ok {
		t.Used = true
	}
	return nil
}

func (r *fakePasswordResetRepo) DeleteByEmail(_ context.Context, email string) error {
	for token, t := range r.tokens {
		if t.Email == email {
			delete(r.tokens, token)
		}
	}
	return nil
}

func (r *fakePasswordResetRepo) DeleteExpired(_ context.Context) error {
	return nil
}

func newAuthService(userRepo *fakeUserRepo) *AuthService {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	emailService := email.NewEmailService(email.EmailConfig{})
	googleOAuth := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{})
	return NewAuthService(userRepo, newFakePasswordResetRepo(), jwtManager, emailService, googleOAuth)
}

func registerUser(t *testing.T, svc *AuthService) *entity.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &RegisterInput{
		FirstName: "Yassine",
		LastName:  "Benali",
		Email:     "yassine@webdev26.ma",
		Password:  "motdepasse",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	user := registerUser(t, svc)

	assert.Equal(t, "local", user.Provider)
	assert.NotEqual(t, "motdepasse", user.Password)

	output, err := svc.Login(context.Background(), &LoginInput{
		Email:    "yassine@webdev26.ma",
		Password: "motdepasse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)
	assert.Equal(t, user.ID, output.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	registerUser(t, svc)

	_, err := svc.Register(context.Background(), &RegisterInput{
		FirstName: "Autre",
		LastName:  "Personne",
		Email:     "yassine@webdev26.ma",
		Password:  "secret123",
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	registerUser(t, svc)

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "yassine@webdev26.ma",
		Password: "mauvais",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "inconnu@webdev26.ma",
		Password: "motdepasse",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	registerUser(t, svc)

	output, err := svc.Login(context.Background(), &LoginInput{
		Email:    "yassine@webdev26.ma",
		Password: "motdepasse",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), output.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), "not-a-token")
	require.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())
	user := registerUser(t, svc)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "mauvais",
		NewPassword:     "nouveau-mdp",
	})
	require.Error(t, err)

	err = svc.ChangePassword(ctx, &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "motdepasse",
		NewPassword:     "nouveau-mdp",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{
		Email:    "yassine@webdev26.ma",
		Password: "nouveau-mdp",
	})
	require.NoError(t, err)
}

func TestGoogleAuthURL_NotConfigured(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	_, err := svc.GoogleAuthURL("state")
	assert.ErrorIs(t, err, oauth.ErrOAuthNotConfigured)
}
