package video

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/media"
)

type fakeMedia struct {
	uploaded  []string
	deleted   []string
	failPath  string
	failID    string
	uploadErr error
	deleteErr error
}

func (f *fakeMedia) Upload(ctx context.Context, path string) (*media.Asset, error) {
	if path == f.failPath {
		return nil, f.uploadErr
	}
	id := fmt.Sprintf("asset-%d", len(f.uploaded)+1)
	f.uploaded = append(f.uploaded, path)
	return &media.Asset{URL: "http://media/" + id, ID: id, Duration: 42.5}, nil
}

func (f *fakeMedia) Delete(ctx context.Context, id string) error {
	if id == f.failID {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeVideoRepo doubles as watch history and identity cache
type fakeVideoRepo struct {
	videos      map[string]*domain.Video
	history     map[string][]string
	invalidated []string
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[string]*domain.Video{}, history: map[string][]string{}}
}

func (f *fakeVideoRepo) CreateVideo(ctx context.Context, v *domain.Video) error {
	cp := *v
	f.videos[v.ID] = &cp
	return nil
}

func (f *fakeVideoRepo) GetVideoByID(ctx context.Context, videoID string) (*domain.Video, error) {
	v, ok := f.videos[videoID]
	if !ok {
		return nil, domain.ErrVideoNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) VideoExists(ctx context.Context, videoID string) (bool, error) {
	_, ok := f.videos[videoID]
	return ok, nil
}

func (f *fakeVideoRepo) UpdateVideo(ctx context.Context, v *domain.Video) error {
	if _, ok := f.videos[v.ID]; !ok {
		return domain.ErrVideoNotFound
	}
	cp := *v
	f.videos[v.ID] = &cp
	return nil
}

func (f *fakeVideoRepo) DeleteVideo(ctx context.Context, videoID string) error {
	delete(f.videos, videoID)
	return nil
}

func (f *fakeVideoRepo) IncrementViews(ctx context.Context, videoID string) error {
	f.videos[videoID].Views++
	return nil
}

func (f *fakeVideoRepo) AppendWatchHistory(ctx context.Context, userID, videoID string) error {
	h := f.history[userID]
	out := h[:0]
	for _, id := range h {
		if id != videoID {
			out = append(out, id)
		}
	}
	f.history[userID] = append(out, videoID)
	return nil
}

func (f *fakeVideoRepo) Invalidate(userID string) {
	f.invalidated = append(f.invalidated, userID)
}

func publish(t *testing.T, svc Service, owner *domain.Identity) *domain.Video {
	t.Helper()
	v, err := svc.Publish(context.Background(), owner, PublishInput{
		Title: "title", Description: "desc", VideoPath: "/tmp/v.mp4", ThumbnailPath: "/tmp/t.png",
	})
	require.NoError(t, err)
	return v
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	owner := &domain.Identity{ID: domain.NewID()}

	t.Run("uploads both assets and stores duration", func(t *testing.T) {
		repo, store := newFakeVideoRepo(), &fakeMedia{}
		v := publish(t, NewService(repo, repo, store, repo), owner)

		assert.Equal(t, []string{"/tmp/v.mp4", "/tmp/t.png"}, store.uploaded)
		assert.Equal(t, 42.5, v.Duration)
		assert.Equal(t, "asset-1", v.VideoFileID)
		assert.Equal(t, "asset-2", v.ThumbnailID)
		assert.True(t, v.IsPublished)
		assert.Contains(t, repo.videos, v.ID)
	})

	t.Run("missing fields", func(t *testing.T) {
		repo, store := newFakeVideoRepo(), &fakeMedia{}
		svc := NewService(repo, repo, store, repo)

		cases := []struct {
			in   PublishInput
			want error
		}{
			{PublishInput{Description: "d", VideoPath: "v", ThumbnailPath: "t"}, domain.ErrTitleRequired},
			{PublishInput{Title: "t", Description: "d", ThumbnailPath: "t"}, domain.ErrVideoFileRequired},
			{PublishInput{Title: "t", Description: "d", VideoPath: "v"}, domain.ErrThumbnailRequired},
		}
		for _, c := range cases {
			_, err := svc.Publish(ctx, owner, c.in)
			assert.ErrorIs(t, err, c.want)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		}
		assert.Empty(t, store.uploaded)
	})

	t.Run("thumbnail upload failure discards the video asset", func(t *testing.T) {
		repo := newFakeVideoRepo()
		store := &fakeMedia{failPath: "/tmp/t.png", uploadErr: fmt.Errorf("%w: boom", domain.ErrMediaUpload)}

		_, err := NewService(repo, repo, store, repo).Publish(ctx, owner, PublishInput{
			Title: "t", Description: "d", VideoPath: "/tmp/v.mp4", ThumbnailPath: "/tmp/t.png",
		})
		assert.ErrorIs(t, err, domain.ErrInternal)
		assert.Equal(t, []string{"asset-1"}, store.deleted)
		assert.Empty(t, repo.videos)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	owner := &domain.Identity{ID: domain.NewID()}
	viewer := &domain.Identity{ID: domain.NewID()}
	repo, store := newFakeVideoRepo(), &fakeMedia{}
	svc := NewService(repo, repo, store, repo)
	v := publish(t, svc, owner)

	got, err := svc.Get(ctx, v.ID, viewer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)

	_, err = svc.Get(ctx, v.ID, viewer)
	require.NoError(t, err)
	assert.Equal(t, []string{v.ID}, repo.history[viewer.ID], "history holds each video once")
	assert.Equal(t, []string{viewer.ID, viewer.ID}, repo.invalidated)

	_, err = svc.Get(ctx, v.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), repo.videos[v.ID].Views)
	assert.Len(t, repo.invalidated, 2, "anonymous views leave the cache alone")

	_, err = svc.TogglePublish(ctx, owner, v.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, v.ID, viewer)
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)
	_, err = svc.Get(ctx, v.ID, owner)
	assert.NoError(t, err)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	owner := &domain.Identity{ID: domain.NewID()}
	intruder := &domain.Identity{ID: domain.NewID()}

	t.Run("new thumbnail replaces and discards the old one", func(t *testing.T) {
		repo, store := newFakeVideoRepo(), &fakeMedia{}
		svc := NewService(repo, repo, store, repo)
		v := publish(t, svc, owner)
		title := "new title"

		got, err := svc.Update(ctx, owner, v.ID, UpdateInput{Title: &title, ThumbnailPath: "/tmp/t2.png"})
		require.NoError(t, err)
		assert.Equal(t, "new title", got.Title)
		assert.Equal(t, "asset-3", got.ThumbnailID)
		assert.Equal(t, []string{"asset-2"}, store.deleted)
		assert.Equal(t, "desc", repo.videos[v.ID].Description)
	})

	t.Run("non-owner is forbidden and nothing changes", func(t *testing.T) {
		repo, store := newFakeVideoRepo(), &fakeMedia{}
		svc := NewService(repo, repo, store, repo)
		v := publish(t, svc, owner)
		title := "hijack"

		_, err := svc.Update(ctx, intruder, v.ID, UpdateInput{Title: &title, ThumbnailPath: "/tmp/x.png"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, "title", repo.videos[v.ID].Title)
		assert.Len(t, store.uploaded, 2)
	})

	t.Run("blank description", func(t *testing.T) {
		repo, store := newFakeVideoRepo(), &fakeMedia{}
		svc := NewService(repo, repo, store, repo)
		v := publish(t, svc, owner)
		blank := "  "

		_, err := svc.Update(ctx, owner, v.ID, UpdateInput{Description: &blank})
		assert.ErrorIs(t, err, domain.ErrDescriptionRequired)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.Update(ctx, owner, v.ID, UpdateInput{Title: &blank})
		assert.ErrorIs(t, err, domain.ErrTitleRequired)
		assert.Equal(t, "desc", repo.videos[v.ID].Description)
	})

	t.Run("nothing to update", func(t *testing.T) {
		repo, store := newFakeVideoRepo(), &fakeMedia{}
		svc := NewService(repo, repo, store, repo)
		v := publish(t, svc, owner)

		_, err := svc.Update(ctx, owner, v.ID, UpdateInput{})
		assert.ErrorIs(t, err, domain.ErrNothingToUpdate)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	owner := &domain.Identity{ID: domain.NewID()}

	t.Run("removes both assets then the record", func(t *testing.T) {
		repo, store := newFakeVideoRepo(), &fakeMedia{}
		svc := NewService(repo, repo, store, repo)
		v := publish(t, svc, owner)

		require.NoError(t, svc.Delete(ctx, owner, v.ID))
		assert.ElementsMatch(t, []string{"asset-1", "asset-2"}, store.deleted)
		assert.NotContains(t, repo.videos, v.ID)
	})

	t.Run("remote failure keeps the record", func(t *testing.T) {
		repo := newFakeVideoRepo()
		store := &fakeMedia{failID: "asset-2", deleteErr: fmt.Errorf("%w: %w", domain.ErrMediaDelete, errors.New("503"))}
		svc := NewService(repo, repo, store, repo)
		v := publish(t, svc, owner)

		err := svc.Delete(ctx, owner, v.ID)
		assert.ErrorIs(t, err, domain.ErrMediaDelete)
		assert.Contains(t, repo.videos, v.ID)
	})

	t.Run("non-owner", func(t *testing.T) {
		repo, store := newFakeVideoRepo(), &fakeMedia{}
		svc := NewService(repo, repo, store, repo)
		v := publish(t, svc, owner)

		err := svc.Delete(ctx, &domain.Identity{ID: domain.NewID()}, v.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, store.deleted)
		assert.Contains(t, repo.videos, v.ID)
	})
}

func TestTogglePublish(t *testing.T) {
	ctx := context.Background()
	owner := &domain.Identity{ID: domain.NewID()}
	repo, store := newFakeVideoRepo(), &fakeMedia{}
	svc := NewService(repo, repo, store, repo)
	v := publish(t, svc, owner)

	got, err := svc.TogglePublish(ctx, owner, v.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	_, err = svc.TogglePublish(ctx, &domain.Identity{ID: "other"}, v.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.False(t, repo.videos[v.ID].IsPublished)
}
