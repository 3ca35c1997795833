package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	domainerrors "taskops/internal/domain/errors"
	"taskops/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type userServiceFixture struct {
	store    *memoryStore
	userRepo *fakeUserRepository
	hasher   *fakeHasher
	tokens   *fakeTokenService
	service  usecase.UserUsecase
}

func newUserServiceFixture() *userServiceFixture {
	store := newMemoryStore()
	userRepo := &fakeUserRepository{store: store}
	taskRepo := &fakeTaskRepository{store: store}
	hasher := &fakeHasher{}
	tokens := &fakeTokenService{}
	txManager := &fakeTxManager{factory: &fakeRepositoryFactory{userRepo: userRepo, taskRepo: taskRepo}}

	return &userServiceFixture{
		store:    store,
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		service:  NewUserService(txManager, hasher, tokens, discardLogger()),
	}
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	t.Run("stores the hash, never the raw password", func(t *testing.T) {
		t.Parallel()

		fixture := newUserServiceFixture()

		output, err := fixture.service.Register(context.Background(), &usecase.RegisterInput{
			Email:    "alice@example.com",
			Password: "s3cret-password",
		})
		require.NoError(t, err)
		require.NotNil(t, output.User)
		assert.Equal(t, "alice@example.com", output.User.Email)
		assert.True(t, output.User.IsActive)
		assert.NotEqual(t, uuid.Nil, output.User.ID)

		stored := fixture.store.users[output.User.ID]
		require.NotNil(t, stored)
		assert.Equal(t, "hashed:s3cret-password", stored.PasswordHash)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		t.Parallel()

		fixture := newUserServiceFixture()
		input := &usecase.RegisterInput{Email: "bob@example.com", Password: "pw"}

		_, err := fixture.service.Register(context.Background(), input)
		require.NoError(t, err)

		_, err = fixture.service.Register(context.Background(), input)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrUserAlreadyExists.ErrorCode(), appErr.ErrorCode())
	})

	t.Run("maps hashing failures to the hash error", func(t *testing.T) {
		t.Parallel()

		fixture := newUserServiceFixture()
		fixture.hasher.hashErr = errors.New("boom")

		_, err := fixture.service.Register(context.Background(), &usecase.RegisterInput{
			Email:    "carol@example.com",
			Password: "pw",
		})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrPasswordHashFailed.ErrorCode(), appErr.ErrorCode())
	})
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	register := func(t *testing.T, fixture *userServiceFixture, email, password string) {
		t.Helper()

		_, err := fixture.service.Register(context.Background(), &usecase.RegisterInput{
			Email:    email,
			Password: password,
		})
		require.NoError(t, err)
	}

	t.Run("issues a bearer token for valid credentials", func(t *testing.T) {
		t.Parallel()

		fixture := newUserServiceFixture()
		register(t, fixture, "dave@example.com", "correct-horse")

		output, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
			Email:    "dave@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, "bearer", output.TokenType)
		assert.Contains(t, output.AccessToken, "token-for-")
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		t.Parallel()

		fixture := newUserServiceFixture()
		register(t, fixture, "erin@example.com", "right-password")

		_, wrongPassErr := fixture.service.Login(context.Background(), &usecase.LoginInput{
			Email:    "erin@example.com",
			Password: "wrong-password",
		})
		require.Error(t, wrongPassErr)

		_, unknownErr := fixture.service.Login(context.Background(), &usecase.LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		require.Error(t, unknownErr)

		var wrongPassApp, unknownApp domainerrors.AppError
		require.ErrorAs(t, wrongPassErr, &wrongPassApp)
		require.ErrorAs(t, unknownErr, &unknownApp)
		assert.Equal(t, domainerrors.ErrInvalidCredentials.ErrorCode(), wrongPassApp.ErrorCode())
		assert.Equal(t, wrongPassApp.ErrorCode(), unknownApp.ErrorCode())
		assert.Equal(t, wrongPassApp.Message(), unknownApp.Message())
	})

	t.Run("token issuance failure surfaces as an error", func(t *testing.T) {
		t.Parallel()

		fixture := newUserServiceFixture()
		register(t, fixture, "frank@example.com", "pw")
		fixture.tokens.issueErr = errors.New("signer offline")

		_, err := fixture.service.Login(context.Background(), &usecase.LoginInput{
			Email:    "frank@example.com",
			Password: "pw",
		})
		require.Error(t, err)
	})
}
