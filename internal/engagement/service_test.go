package engagement

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// memoryEdges is an in-memory like and subscription store with unique keys
type memoryEdges struct {
	mu       sync.Mutex
	likes    map[string]bool
	subs     map[string]bool
	targets  map[string]bool
	channels map[string]bool
}

func newMemoryEdges() *memoryEdges {
	return &memoryEdges{
		likes:    map[string]bool{},
		subs:     map[string]bool{},
		targets:  map[string]bool{},
		channels: map[string]bool{},
	}
}

func likeKey(userID string, t domain.Target) string { return userID + "|" + string(t.Kind) + "|" + t.ID }

func (m *memoryEdges) DeleteLike(ctx context.Context, userID string, target domain.Target) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := likeKey(userID, target)
	existed := m.likes[k]
	delete(m.likes, k)
	return existed, nil
}

func (m *memoryEdges) InsertLike(ctx context.Context, like *domain.Like) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := likeKey(like.LikedBy, like.Target)
	if m.likes[k] {
		return false, nil
	}
	m.likes[k] = true
	return true, nil
}

func (m *memoryEdges) TargetExists(ctx context.Context, target domain.Target) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.targets[string(target.Kind)+"|"+target.ID], nil
}

func (m *memoryEdges) DeleteSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := subscriberID + "|" + channelID
	existed := m.subs[k]
	delete(m.subs, k)
	return existed, nil
}

func (m *memoryEdges) InsertSubscription(ctx context.Context, sub *domain.Subscription) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := sub.SubscriberID + "|" + sub.ChannelID
	if m.subs[k] {
		return false, nil
	}
	m.subs[k] = true
	return true, nil
}

func (m *memoryEdges) UserExists(ctx context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channels[userID], nil
}

func TestToggleLike_TwiceReturnsToZero(t *testing.T) {
	ctx := context.Background()
	store := newMemoryEdges()
	svc := NewService(store, store, store)
	alice := &domain.Identity{ID: domain.NewID()}

	for _, kind := range []domain.TargetKind{domain.TargetVideo, domain.TargetComment, domain.TargetTweet} {
		t.Run(string(kind), func(t *testing.T) {
			target := domain.Target{Kind: kind, ID: domain.NewID()}
			store.targets[string(kind)+"|"+target.ID] = true

			first, err := svc.ToggleLike(ctx, alice, target)
			require.NoError(t, err)
			assert.True(t, first.Active)

			second, err := svc.ToggleLike(ctx, alice, target)
			require.NoError(t, err)
			assert.False(t, second.Active)

			assert.False(t, store.likes[likeKey(alice.ID, target)])
		})
	}
}

func TestToggleLike_Validation(t *testing.T) {
	ctx := context.Background()
	store := newMemoryEdges()
	svc := NewService(store, store, store)
	alice := &domain.Identity{ID: domain.NewID()}

	_, err := svc.ToggleLike(ctx, nil, domain.Target{Kind: domain.TargetVideo, ID: domain.NewID()})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.ToggleLike(ctx, alice, domain.Target{Kind: "playlist", ID: domain.NewID()})
	assert.ErrorIs(t, err, domain.ErrInvalidTargetKind)

	_, err = svc.ToggleLike(ctx, alice, domain.Target{Kind: domain.TargetVideo, ID: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.ToggleLike(ctx, alice, domain.Target{Kind: domain.TargetComment, ID: domain.NewID()})
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	assert.Empty(t, store.likes)
}

type racingLikes struct {
	mock.Mock
}

func (m *racingLikes) DeleteLike(ctx context.Context, userID string, target domain.Target) (bool, error) {
	args := m.Called(ctx, userID, target)
	return args.Bool(0), args.Error(1)
}

func (m *racingLikes) InsertLike(ctx context.Context, like *domain.Like) (bool, error) {
	args := m.Called(ctx, like)
	return args.Bool(0), args.Error(1)
}

func (m *racingLikes) TargetExists(ctx context.Context, target domain.Target) (bool, error) {
	args := m.Called(ctx, target)
	return args.Bool(0), args.Error(1)
}

func TestToggleLike_LostInsertRaceIsSuccess(t *testing.T) {
	ctx := context.Background()
	likes := new(racingLikes)
	store := newMemoryEdges()
	svc := NewService(likes, store, store)
	alice := &domain.Identity{ID: domain.NewID()}
	target := domain.Target{Kind: domain.TargetVideo, ID: domain.NewID()}

	likes.On("TargetExists", ctx, target).Return(true, nil)
	likes.On("DeleteLike", ctx, alice.ID, target).Return(false, nil)
	likes.On("InsertLike", ctx, mock.MatchedBy(func(l *domain.Like) bool {
		return l.LikedBy == alice.ID && l.Target == target
	})).Return(false, nil)

	result, err := svc.ToggleLike(ctx, alice, target)
	require.NoError(t, err)
	assert.True(t, result.Active)
	likes.AssertExpectations(t)
}

func TestToggleSubscription(t *testing.T) {
	ctx := context.Background()
	store := newMemoryEdges()
	svc := NewService(store, store, store)
	alice := &domain.Identity{ID: domain.NewID()}
	channel := domain.NewID()
	store.channels[channel] = true

	on, err := svc.ToggleSubscription(ctx, alice, channel)
	require.NoError(t, err)
	assert.True(t, on.Active)

	off, err := svc.ToggleSubscription(ctx, alice, channel)
	require.NoError(t, err)
	assert.False(t, off.Active)
	assert.Empty(t, store.subs)

	_, err = svc.ToggleSubscription(ctx, alice, domain.NewID())
	assert.ErrorIs(t, err, domain.ErrChannelNotFound)

	_, err = svc.ToggleSubscription(ctx, alice, "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToggleSubscription_SelfAllowed(t *testing.T) {
	ctx := context.Background()
	store := newMemoryEdges()
	svc := NewService(store, store, store)
	alice := &domain.Identity{ID: domain.NewID()}
	store.channels[alice.ID] = true

	result, err := svc.ToggleSubscription(ctx, alice, alice.ID)
	require.NoError(t, err)
	assert.True(t, result.Active)
}
