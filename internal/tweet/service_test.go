package tweet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// fakeTweetRepo is an in-memory repository.Tweet
type fakeTweetRepo struct {
	tweets map[string]*domain.Tweet
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: map[string]*domain.Tweet{}}
}

func (f *fakeTweetRepo) CreateTweet(ctx context.Context, t *domain.Tweet) error {
	cp := *t
	f.tweets[t.ID] = &cp
	return nil
}

func (f *fakeTweetRepo) GetTweetByID(ctx context.Context, tweetID string) (*domain.Tweet, error) {
	t, ok := f.tweets[tweetID]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTweetRepo) TweetExists(ctx context.Context, tweetID string) (bool, error) {
	_, ok := f.tweets[tweetID]
	return ok, nil
}

func (f *fakeTweetRepo) UpdateTweetContent(ctx context.Context, tweetID, content string) (*domain.Tweet, error) {
	t, ok := f.tweets[tweetID]
	if !ok {
		return nil, domain.ErrTweetNotFound
	}
	t.Content = content
	cp := *t
	return &cp, nil
}

func (f *fakeTweetRepo) DeleteTweet(ctx context.Context, tweetID string) error {
	if _, ok := f.tweets[tweetID]; !ok {
		return domain.ErrTweetNotFound
	}
	delete(f.tweets, tweetID)
	return nil
}

func TestTweetLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTweetRepo()
	svc := NewService(repo)
	owner := &domain.Identity{ID: domain.NewID()}
	intruder := &domain.Identity{ID: domain.NewID()}

	created, err := svc.Create(ctx, owner, " first ")
	require.NoError(t, err)
	assert.Equal(t, "first", created.Content)

	_, err = svc.Update(ctx, intruder, created.ID, "mine now")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "first", repo.tweets[created.ID].Content)

	assert.ErrorIs(t, svc.Delete(ctx, intruder, created.ID), domain.ErrForbidden)
	assert.Contains(t, repo.tweets, created.ID)

	updated, err := svc.Update(ctx, owner, created.ID, "second")
	require.NoError(t, err)
	assert.Equal(t, "second", updated.Content)

	require.NoError(t, svc.Delete(ctx, owner, created.ID))
	assert.Empty(t, repo.tweets)

	assert.ErrorIs(t, svc.Delete(ctx, owner, created.ID), domain.ErrTweetNotFound)
}

func TestTweetValidation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTweetRepo()
	svc := NewService(repo)
	owner := &domain.Identity{ID: domain.NewID()}

	_, err := svc.Create(ctx, owner, "   ")
	assert.ErrorIs(t, err, domain.ErrContentRequired)
	assert.Empty(t, repo.tweets)

	_, err = svc.Create(ctx, nil, "hi")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Update(ctx, owner, "bad-id", "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
