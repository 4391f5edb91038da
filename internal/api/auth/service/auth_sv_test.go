package authService

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"YojanaSetu/internal/api/auth"
	authRepository "YojanaSetu/internal/api/auth/repository"
	schemeRepository "YojanaSetu/internal/api/scheme/repository"
	"YojanaSetu/internal/entity"
)

type fakeUserStore struct {
	users map[string]entity.User // keyed by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]entity.User{}}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user entity.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (entity.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	user, ok := f.users[email]
	if !ok {
		return entity.User{}, auth.ErrUserWithEmailNotFound
	}
	return user, nil
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, user entity.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id string) error {
	for email, user := range f.users {
		if user.ID == id {
			delete(f.users, email)
			return nil
		}
	}
	return auth.ErrUserNotFound
}

type fakeAuthRepo struct {
	users *fakeUserStore
}

func (f *fakeAuthRepo) NewClient(tx bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    f.users,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakePrefStore struct {
	profiles map[string]entity.PreferenceProfile
}

func (f *fakePrefStore) GetPreferenceProfile(ctx context.Context, userID string) (entity.PreferenceProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return entity.PreferenceProfile{}, schemeRepository.ErrPreferenceProfileNotFound
	}
	return profile, nil
}

func (f *fakePrefStore) UpsertPreferenceProfile(ctx context.Context, profile entity.PreferenceProfile) error {
	if f.profiles == nil {
		f.profiles = map[string]entity.PreferenceProfile{}
	}
	f.profiles[profile.UserID] = profile
	return nil
}

type fakeSchemeRepo struct {
	prefs *fakePrefStore
}

func (f *fakeSchemeRepo) NewClient(tx bool) (schemeRepository.Client, error) {
	return schemeRepository.Client{
		Preferences: f.prefs,
		Commit:      func() error { return nil },
		Rollback:    func() error { return nil },
	}, nil
}

type fakeBcrypt struct{}

func (fakeBcrypt) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeBcrypt) ComparePassword(hashPassword, password string) error {
	if hashPassword != "hashed:"+password {
		return fmt.Errorf("crypto/bcrypt: hashedPassword is not the hash of the given password")
	}
	return nil
}

type fakeIDGen struct {
	n int
}

func (f *fakeIDGen) NewULIDFromTimestamp(t time.Time) (string, error) {
	f.n++
	return fmt.Sprintf("user-%04d", f.n), nil
}

func (f *fakeIDGen) ValidateAudioFile(file *multipart.FileHeader) error {
	return nil
}

type authHarness struct {
	svc   IAuthService
	users *fakeUserStore
	prefs *fakePrefStore
}

func newAuthHarness() *authHarness {
	log := logrus.New()
	log.SetOutput(io.Discard)

	users := newFakeUserStore()
	prefs := &fakePrefStore{}

	return &authHarness{
		svc:   New(log, &fakeAuthRepo{users: users}, &fakeSchemeRepo{prefs: prefs}, nil, fakeBcrypt{}, &fakeIDGen{}),
		users: users,
		prefs: prefs,
	}
}

func registerRequest() auth.CreateUserRequest {
	return auth.CreateUserRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "s3cret-pass",
		State:    "Kerala",
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates the user with a hashed password", func(t *testing.T) {
		h := newAuthHarness()

		require.NoError(t, h.svc.Register(context.Background(), registerRequest()))

		user, err := h.users.GetByEmail(context.Background(), "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, "hashed:s3cret-pass", user.Password)
		assert.Equal(t, "Kerala", user.State)
	})

	t.Run("seeds an empty preference profile", func(t *testing.T) {
		h := newAuthHarness()

		require.NoError(t, h.svc.Register(context.Background(), registerRequest()))

		user, err := h.users.GetByEmail(context.Background(), "asha@example.com")
		require.NoError(t, err)

		profile, err := h.prefs.GetPreferenceProfile(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kerala", profile.Location)
		assert.Empty(t, profile.Categories)
	})

	t.Run("duplicate email is refused", func(t *testing.T) {
		h := newAuthHarness()

		require.NoError(t, h.svc.Register(context.Background(), registerRequest()))
		err := h.svc.Register(context.Background(), registerRequest())
		assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		h := newAuthHarness()
		require.NoError(t, h.svc.Register(context.Background(), registerRequest()))

		resp, err := h.svc.Login(context.Background(), auth.LoginUserRequest{
			Email:    "asha@example.com",
			Password: "s3cret-pass",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Greater(t, resp.ExpiresInMinutes, float64(0))
	})

	t.Run("unknown email and bad password fail identically", func(t *testing.T) {
		h := newAuthHarness()
		require.NoError(t, h.svc.Register(context.Background(), registerRequest()))

		_, unknownErr := h.svc.Login(context.Background(), auth.LoginUserRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		_, badPassErr := h.svc.Login(context.Background(), auth.LoginUserRequest{
			Email:    "asha@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, unknownErr, auth.ErrInvalidEmailOrPassword)
		assert.ErrorIs(t, badPassErr, auth.ErrInvalidEmailOrPassword)
	})
}

func TestGoogleLogin(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	t.Run("first contact creates the account and seeds preferences", func(t *testing.T) {
		h := newAuthHarness()

		resp, err := h.svc.GoogleLogin(context.Background(), auth.UserGoogle{Email: "ravi@example.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)

		user, err := h.users.GetByEmail(context.Background(), "ravi@example.com")
		require.NoError(t, err)
		assert.True(t, user.IsGoogle)

		_, err = h.prefs.GetPreferenceProfile(context.Background(), user.ID)
		assert.NoError(t, err)
	})

	t.Run("returning user is not recreated", func(t *testing.T) {
		h := newAuthHarness()

		_, err := h.svc.GoogleLogin(context.Background(), auth.UserGoogle{Email: "ravi@example.com"})
		require.NoError(t, err)
		first, err := h.users.GetByEmail(context.Background(), "ravi@example.com")
		require.NoError(t, err)

		_, err = h.svc.GoogleLogin(context.Background(), auth.UserGoogle{Email: "ravi@example.com"})
		require.NoError(t, err)
		second, err := h.users.GetByEmail(context.Background(), "ravi@example.com")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
	})
}

func TestUpdateProfile(t *testing.T) {
	h := newAuthHarness()
	require.NoError(t, h.svc.Register(context.Background(), registerRequest()))
	user, err := h.users.GetByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)

	loginData := entity.UserLoginData{ID: user.ID, Email: user.Email, Name: user.Name}

	t.Run("non-empty fields are merged", func(t *testing.T) {
		resp, err := h.svc.UpdateProfile(context.Background(), loginData, auth.UpdateUserRequest{State: "Goa"})
		require.NoError(t, err)
		assert.Equal(t, "Goa", resp.State)
		assert.Equal(t, "Asha", resp.Name)
	})
}

func TestDeleteUser(t *testing.T) {
	h := newAuthHarness()
	require.NoError(t, h.svc.Register(context.Background(), registerRequest()))
	user, err := h.users.GetByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)

	require.NoError(t, h.svc.DeleteUser(context.Background(), user.ID))

	_, err = h.svc.GetProfile(context.Background(), user.ID)
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
