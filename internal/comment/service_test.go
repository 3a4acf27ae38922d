package comment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tubehub/tubehub-api/internal/domain"
)

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) CreateComment(ctx context.Context, c *domain.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCommentRepo) GetCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) CommentExists(ctx context.Context, commentID string) (bool, error) {
	args := m.Called(ctx, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCommentRepo) UpdateCommentContent(ctx context.Context, commentID, content string) (*domain.Comment, error) {
	args := m.Called(ctx, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) DeleteComment(ctx context.Context, commentID string) error {
	return m.Called(ctx, commentID).Error(0)
}

type mockVideos struct {
	mock.Mock
}

func (m *mockVideos) VideoExists(ctx context.Context, videoID string) (bool, error) {
	args := m.Called(ctx, videoID)
	return args.Bool(0), args.Error(1)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	alice := &domain.Identity{ID: domain.NewID()}
	videoID := domain.NewID()

	t.Run("trims and stores", func(t *testing.T) {
		repo, videos := new(mockCommentRepo), new(mockVideos)
		videos.On("VideoExists", ctx, videoID).Return(true, nil)
		repo.On("CreateComment", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.Content == "nice" && c.OwnerID == alice.ID && c.VideoID == videoID
		})).Return(nil)

		c, err := NewService(repo, videos).Create(ctx, alice, videoID, "  nice  ")
		require.NoError(t, err)
		assert.Equal(t, "nice", c.Content)
		repo.AssertExpectations(t)
	})

	t.Run("whitespace content is rejected and never stored", func(t *testing.T) {
		repo, videos := new(mockCommentRepo), new(mockVideos)

		_, err := NewService(repo, videos).Create(ctx, alice, videoID, "   ")
		assert.ErrorIs(t, err, domain.ErrContentRequired)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		repo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
	})

	t.Run("missing video", func(t *testing.T) {
		repo, videos := new(mockCommentRepo), new(mockVideos)
		videos.On("VideoExists", ctx, videoID).Return(false, nil)

		_, err := NewService(repo, videos).Create(ctx, alice, videoID, "hi")
		assert.ErrorIs(t, err, domain.ErrVideoNotFound)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := NewService(new(mockCommentRepo), new(mockVideos)).Create(ctx, nil, videoID, "hi")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestUpdateAndDeleteOwnership(t *testing.T) {
	ctx := context.Background()
	owner := &domain.Identity{ID: domain.NewID()}
	intruder := &domain.Identity{ID: domain.NewID()}
	c := &domain.Comment{ID: domain.NewID(), OwnerID: owner.ID, Content: "original"}

	t.Run("non-owner is forbidden and nothing changes", func(t *testing.T) {
		repo := new(mockCommentRepo)
		repo.On("GetCommentByID", ctx, c.ID).Return(c, nil)
		svc := NewService(repo, new(mockVideos))

		_, err := svc.Update(ctx, intruder, c.ID, "hacked")
		assert.ErrorIs(t, err, domain.ErrForbidden)

		err = svc.Delete(ctx, intruder, c.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		repo.AssertNotCalled(t, "UpdateCommentContent", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "DeleteComment", mock.Anything, mock.Anything)
	})

	t.Run("owner updates", func(t *testing.T) {
		repo := new(mockCommentRepo)
		repo.On("GetCommentByID", ctx, c.ID).Return(c, nil)
		repo.On("UpdateCommentContent", ctx, c.ID, "edited").Return(&domain.Comment{ID: c.ID, Content: "edited"}, nil)

		got, err := NewService(repo, new(mockVideos)).Update(ctx, owner, c.ID, " edited ")
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Content)
	})

	t.Run("owner deletes", func(t *testing.T) {
		repo := new(mockCommentRepo)
		repo.On("GetCommentByID", ctx, c.ID).Return(c, nil)
		repo.On("DeleteComment", ctx, c.ID).Return(nil)

		require.NoError(t, NewService(repo, new(mockVideos)).Delete(ctx, owner, c.ID))
		repo.AssertExpectations(t)
	})

	t.Run("missing comment", func(t *testing.T) {
		repo := new(mockCommentRepo)
		id := domain.NewID()
		repo.On("GetCommentByID", ctx, id).Return(nil, domain.ErrCommentNotFound)

		err := NewService(repo, new(mockVideos)).Delete(ctx, owner, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty update content", func(t *testing.T) {
		repo := new(mockCommentRepo)
		_, err := NewService(repo, new(mockVideos)).Update(ctx, owner, c.ID, "\t\n")
		assert.ErrorIs(t, err, domain.ErrContentRequired)
		repo.AssertNotCalled(t, "GetCommentByID", mock.Anything, mock.Anything)
	})
}
