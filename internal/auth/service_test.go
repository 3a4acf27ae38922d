package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tubehub/tubehub-api/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) SetRefreshToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *mockUserRepo) RotateRefreshToken(ctx context.Context, userID, current, next string) (bool, error) {
	args := m.Called(ctx, userID, current, next)
	return args.Bool(0), args.Error(1)
}

type fixture struct {
	repo   *mockUserRepo
	tokens *TokenManager
	svc    Service
	alice  *domain.User
}

func newFixture(t *testing.T, cacheSize int) *fixture {
	t.Helper()
	hasher := NewPasswordHasher(bcrypt.MinCost)
	digest, err := hasher.Hash("p1")
	require.NoError(t, err)

	repo := new(mockUserRepo)
	tokens := newTestTokens(t)
	return &fixture{
		repo:   repo,
		tokens: tokens,
		svc:    NewService(repo, tokens, hasher, CacheConfig{Size: cacheSize, TTL: time.Minute}),
		alice: &domain.User{
			ID:           domain.NewID(),
			Username:     "alice",
			Email:        "alice@x.com",
			Fullname:     "Alice",
			PasswordHash: digest,
			RefreshToken: "stored",
		},
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves subject without secrets", func(t *testing.T) {
		f := newFixture(t, 0)
		token, err := f.tokens.IssueAccess(f.alice.Identity())
		require.NoError(t, err)
		f.repo.On("GetUserByID", ctx, f.alice.ID).Return(f.alice, nil)

		identity, err := f.svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, f.alice.ID, identity.ID)
		assert.Equal(t, []string{}, identity.WatchHistory)
	})

	t.Run("unknown subject", func(t *testing.T) {
		f := newFixture(t, 0)
		token, err := f.tokens.IssueAccess(f.alice.Identity())
		require.NoError(t, err)
		f.repo.On("GetUserByID", ctx, f.alice.ID).Return(nil, domain.ErrUserNotFound)

		_, err = f.svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("store failure is not unauthorized", func(t *testing.T) {
		f := newFixture(t, 0)
		token, err := f.tokens.IssueAccess(f.alice.Identity())
		require.NoError(t, err)
		f.repo.On("GetUserByID", ctx, f.alice.ID).Return(nil, errors.New("connection reset"))

		_, err = f.svc.Authenticate(ctx, token)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("missing token", func(t *testing.T) {
		f := newFixture(t, 0)
		_, err := f.svc.Authenticate(ctx, "")
		assert.ErrorIs(t, err, domain.ErrInvalidAccessToken)
		f.repo.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})

	t.Run("cache hit skips the store until invalidated", func(t *testing.T) {
		f := newFixture(t, 10)
		token, err := f.tokens.IssueAccess(f.alice.Identity())
		require.NoError(t, err)
		f.repo.On("GetUserByID", ctx, f.alice.ID).Return(f.alice, nil)

		for i := 0; i < 3; i++ {
			_, err := f.svc.Authenticate(ctx, token)
			require.NoError(t, err)
		}
		f.repo.AssertNumberOfCalls(t, "GetUserByID", 1)

		f.svc.Invalidate(f.alice.ID)
		_, err = f.svc.Authenticate(ctx, token)
		require.NoError(t, err)
		f.repo.AssertNumberOfCalls(t, "GetUserByID", 2)
	})

	t.Run("callers cannot mutate the cached identity", func(t *testing.T) {
		f := newFixture(t, 10)
		token, err := f.tokens.IssueAccess(f.alice.Identity())
		require.NoError(t, err)
		f.alice.WatchHistory = []string{"v1"}
		f.repo.On("GetUserByID", ctx, f.alice.ID).Return(f.alice, nil)

		first, err := f.svc.Authenticate(ctx, token)
		require.NoError(t, err)
		first.Username = "mallory"
		first.WatchHistory[0] = "tampered"

		second, err := f.svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "alice", second.Username)
		assert.Equal(t, []string{"v1"}, second.WatchHistory)
		f.repo.AssertNumberOfCalls(t, "GetUserByID", 1)
	})
}

func TestReissue(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the stored token", func(t *testing.T) {
		f := newFixture(t, 0)
		refresh, err := f.tokens.IssueRefresh(f.alice.ID)
		require.NoError(t, err)
		f.alice.RefreshToken = refresh
		f.repo.On("GetUserByID", ctx, f.alice.ID).Return(f.alice, nil)
		f.repo.On("RotateRefreshToken", ctx, f.alice.ID, refresh, mock.AnythingOfType("string")).Return(true, nil)

		pair, err := f.svc.Reissue(ctx, refresh)
		require.NoError(t, err)
		assert.NotEqual(t, refresh, pair.RefreshToken)

		claims, err := f.tokens.VerifyAccess(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, f.alice.ID, claims.Subject)
	})

	t.Run("mismatch with stored token", func(t *testing.T) {
		f := newFixture(t, 0)
		refresh, err := f.tokens.IssueRefresh(f.alice.ID)
		require.NoError(t, err)
		f.repo.On("GetUserByID", ctx, f.alice.ID).Return(f.alice, nil)

		_, err = f.svc.Reissue(ctx, refresh)
		assert.ErrorIs(t, err, domain.ErrRefreshTokenUsed)
		f.repo.AssertNotCalled(t, "RotateRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost rotation race", func(t *testing.T) {
		f := newFixture(t, 0)
		refresh, err := f.tokens.IssueRefresh(f.alice.ID)
		require.NoError(t, err)
		f.alice.RefreshToken = refresh
		f.repo.On("GetUserByID", ctx, f.alice.ID).Return(f.alice, nil)
		f.repo.On("RotateRefreshToken", ctx, f.alice.ID, refresh, mock.Anything).Return(false, nil)

		_, err = f.svc.Reissue(ctx, refresh)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("access token presented as refresh", func(t *testing.T) {
		f := newFixture(t, 0)
		access, err := f.tokens.IssueAccess(f.alice.Identity())
		require.NoError(t, err)

		_, err = f.svc.Reissue(ctx, access)
		assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
	})

	t.Run("deleted user", func(t *testing.T) {
		f := newFixture(t, 0)
		refresh, err := f.tokens.IssueRefresh(f.alice.ID)
		require.NoError(t, err)
		f.repo.On("GetUserByID", ctx, f.alice.ID).Return(nil, domain.ErrUserNotFound)

		_, err = f.svc.Reissue(ctx, refresh)
		assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("username and password", func(t *testing.T) {
		f := newFixture(t, 0)
		f.repo.On("GetUserByUsername", ctx, "alice").Return(f.alice, nil)
		f.repo.On("SetRefreshToken", ctx, f.alice.ID, mock.AnythingOfType("string")).Return(nil)

		session, err := f.svc.Login(ctx, LoginInput{Username: " Alice ", Password: "p1"})
		require.NoError(t, err)
		assert.Equal(t, f.alice.ID, session.User.ID)
		assert.NotEmpty(t, session.Tokens.AccessToken)
		assert.NotEmpty(t, session.Tokens.RefreshToken)

		stored := f.repo.Calls[1].Arguments.String(2)
		assert.Equal(t, session.Tokens.RefreshToken, stored)
	})

	t.Run("email fallback", func(t *testing.T) {
		f := newFixture(t, 0)
		f.repo.On("GetUserByUsername", ctx, "bob").Return(nil, domain.ErrUserNotFound)
		f.repo.On("GetUserByEmail", ctx, "alice@x.com").Return(f.alice, nil)
		f.repo.On("SetRefreshToken", ctx, f.alice.ID, mock.Anything).Return(nil)

		_, err := f.svc.Login(ctx, LoginInput{Username: "bob", Email: "ALICE@x.com", Password: "p1"})
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t, 0)
		f.repo.On("GetUserByUsername", ctx, "alice").Return(f.alice, nil)

		_, err := f.svc.Login(ctx, LoginInput{Username: "alice", Password: "nope"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		f.repo.AssertNotCalled(t, "SetRefreshToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t, 0)
		f.repo.On("GetUserByUsername", ctx, "ghost").Return(nil, domain.ErrUserNotFound)

		_, err := f.svc.Login(ctx, LoginInput{Username: "ghost", Password: "p1"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("neither username nor email", func(t *testing.T) {
		f := newFixture(t, 0)
		_, err := f.svc.Login(ctx, LoginInput{Username: "  ", Password: "p1"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	f.repo.On("SetRefreshToken", ctx, f.alice.ID, "").Return(nil)

	require.NoError(t, f.svc.Logout(ctx, f.alice.Identity()))
	f.repo.AssertExpectations(t)

	assert.ErrorIs(t, f.svc.Logout(ctx, nil), domain.ErrUnauthorized)
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, IdentityFromContext(ctx))

	identity := &domain.Identity{ID: "u1"}
	assert.Same(t, identity, IdentityFromContext(WithIdentity(ctx, identity)))
}
