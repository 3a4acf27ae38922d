package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// Summary column lists shared by the projection queries. Owner columns are
// COALESCEd so a missing owner row scans into an empty OwnerSummary.
const (
	videoSummaryColumns = `v.id, v.video_file, v.thumbnail, v.title, v.description,
		v.duration, v.views, v.is_published, v.created_at`
	ownerColumns = `COALESCE(o.id::text, ''), COALESCE(o.username, ''),
		COALESCE(o.fullname, ''), COALESCE(o.avatar, '')`
)

var videoSortColumns = map[string]string{
	domain.SortByCreatedAt: "v.created_at",
	domain.SortByViews:     "v.views",
	domain.SortByDuration:  "v.duration",
	domain.SortByTitle:     "v.title",
}

// ProjectionRepository runs the cross-entity read queries for PostgreSQL
type ProjectionRepository struct {
	db *pgxpool.Pool
}

// NewProjectionRepository creates a new ProjectionRepository
func NewProjectionRepository(db *pgxpool.Pool) *ProjectionRepository {
	return &ProjectionRepository{db: db}
}

func videoWithOwnerDest(v *domain.VideoWithOwner) []any {
	return []any{
		&v.ID, &v.VideoFile, &v.Thumbnail, &v.Title, &v.Description,
		&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt,
		&v.Owner.ID, &v.Owner.Username, &v.Owner.Fullname, &v.Owner.Avatar,
	}
}

func queryVideosWithOwner(ctx context.Context, q querier, op, query string, args ...any) ([]domain.VideoWithOwner, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", op, err)
	}
	defer rows.Close()

	out := []domain.VideoWithOwner{}
	for rows.Next() {
		var v domain.VideoWithOwner
		if err := rows.Scan(videoWithOwnerDest(&v)...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", op, err)
	}
	return out, nil
}

func (r *ProjectionRepository) queryUserSummaries(ctx context.Context, op, query string, args ...any) ([]domain.OwnerSummary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", op, err)
	}
	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OwnerSummary, error) {
		var s domain.OwnerSummary
		err := row.Scan(&s.ID, &s.Username, &s.Fullname, &s.Avatar)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", op, err)
	}
	return nonNil(summaries), nil
}

// ChannelProfile joins a user with both subscription counts and the viewer's subscription flag
func (r *ProjectionRepository) ChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	query := `
		SELECT u.id, u.username, u.fullname, u.email, u.avatar, u.cover_image,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id),
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id),
			EXISTS (
				SELECT 1 FROM subscriptions s
				WHERE s.channel_id = u.id AND s.subscriber_id = NULLIF($2::text, '')::uuid
			)
		FROM users u
		WHERE u.username = $1
	`
	var p domain.ChannelProfile
	err := r.db.QueryRow(ctx, query, username, viewerID).Scan(&p.ID, &p.Username, &p.Fullname, &p.Email,
		&p.Avatar, &p.CoverImage, &p.SubscriberCount, &p.ChannelsSubscribedToCount, &p.IsSubscribed)
	if err != nil {
		return nil, wrapErr(err, domain.ErrChannelNotFound, "failed to get channel profile")
	}
	return &p, nil
}

// WatchHistory returns the user's watched videos in history order.
// History entries pointing at deleted videos are skipped.
func (r *ProjectionRepository) WatchHistory(ctx context.Context, userID string) ([]domain.VideoWithOwner, error) {
	query := `
		SELECT ` + videoSummaryColumns + `, ` + ownerColumns + `
		FROM users u
		CROSS JOIN LATERAL unnest(u.watch_history) WITH ORDINALITY AS h(video_id, pos)
		JOIN videos v ON v.id = h.video_id
		LEFT JOIN users o ON o.id = v.owner_id
		WHERE u.id = $1
		ORDER BY h.pos
	`
	return queryVideosWithOwner(ctx, r.db, "watch history", query, userID)
}

// VideosInOrder resolves ids keeping their order and duplicates
func (r *ProjectionRepository) VideosInOrder(ctx context.Context, videoIDs []string) ([]domain.VideoWithOwner, error) {
	if len(videoIDs) == 0 {
		return []domain.VideoWithOwner{}, nil
	}
	query := `
		SELECT ` + videoSummaryColumns + `, ` + ownerColumns + `
		FROM unnest($1::uuid[]) WITH ORDINALITY AS ids(video_id, pos)
		JOIN videos v ON v.id = ids.video_id
		LEFT JOIN users o ON o.id = v.owner_id
		ORDER BY ids.pos
	`
	return queryVideosWithOwner(ctx, r.db, "videos in order", query, videoIDs)
}

// LikedVideos returns one row per video like. Likes whose video or owner is gone are dropped.
func (r *ProjectionRepository) LikedVideos(ctx context.Context, userID string) ([]domain.LikedVideo, error) {
	query := `
		SELECT l.id, ` + videoSummaryColumns + `, o.id, o.username, o.fullname, o.avatar
		FROM likes l
		JOIN videos v ON v.id = l.target_id
		JOIN users o ON o.id = v.owner_id
		WHERE l.liked_by = $1 AND l.target_kind = 'video'
		ORDER BY l.created_at DESC, l.id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query liked videos: %w", err)
	}
	liked, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LikedVideo, error) {
		var lv domain.LikedVideo
		v := &lv.Video
		err := row.Scan(&lv.LikeID, &v.ID, &v.VideoFile, &v.Thumbnail, &v.Title, &v.Description,
			&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt,
			&lv.Owner.ID, &lv.Owner.Username, &lv.Owner.Fullname, &lv.Owner.Avatar)
		return lv, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan liked videos: %w", err)
	}
	return nonNil(liked), nil
}

// VideoComments returns one page of comments newest first plus the total count.
// Both queries read the same snapshot.
func (r *ProjectionRepository) VideoComments(ctx context.Context, videoID string, limit, offset int) ([]domain.CommentView, int64, error) {
	query := `
		SELECT c.id, c.content, c.created_at, ` + ownerColumns + `
		FROM comments c
		LEFT JOIN users o ON o.id = c.owner_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`

	var (
		total    int64
		comments []domain.CommentView
	)
	err := readSnapshot(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID).Scan(&total); err != nil {
			return fmt.Errorf("failed to count comments: %w", err)
		}
		rows, err := tx.Query(ctx, query, videoID, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to query comments: %w", err)
		}
		comments, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CommentView, error) {
			var c domain.CommentView
			err := row.Scan(&c.ID, &c.Content, &c.CreatedAt,
				&c.Owner.ID, &c.Owner.Username, &c.Owner.Fullname, &c.Owner.Avatar)
			return c, err
		})
		if err != nil {
			return fmt.Errorf("failed to scan comments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return nonNil(comments), total, nil
}

// ChannelStats counts a channel's videos, views, subscribers and the likes on anything it owns
func (r *ProjectionRepository) ChannelStats(ctx context.Context, userID string) (*domain.ChannelStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM videos WHERE owner_id = $1),
			(SELECT COALESCE(SUM(views), 0)::bigint FROM videos WHERE owner_id = $1),
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1),
			(SELECT COUNT(*) FROM likes l
				WHERE (l.target_kind = 'video' AND l.target_id IN (SELECT id FROM videos WHERE owner_id = $1))
				   OR (l.target_kind = 'comment' AND l.target_id IN (SELECT id FROM comments WHERE owner_id = $1))
				   OR (l.target_kind = 'tweet' AND l.target_id IN (SELECT id FROM tweets WHERE owner_id = $1)))
	`
	var s domain.ChannelStats
	if err := r.db.QueryRow(ctx, query, userID).Scan(&s.TotalVideos, &s.TotalViews, &s.TotalSubscribers, &s.TotalLikes); err != nil {
		return nil, fmt.Errorf("failed to get channel stats: %w", err)
	}
	return &s, nil
}

// ChannelVideos returns every video of the channel newest first
func (r *ProjectionRepository) ChannelVideos(ctx context.Context, channelID string) ([]domain.VideoWithOwner, error) {
	query := `
		SELECT ` + videoSummaryColumns + `, ` + ownerColumns + `
		FROM videos v
		LEFT JOIN users o ON o.id = v.owner_id
		WHERE v.owner_id = $1
		ORDER BY v.created_at DESC, v.id DESC
	`
	return queryVideosWithOwner(ctx, r.db, "channel videos", query, channelID)
}

// ChannelSubscribers lists the users subscribed to channelID
func (r *ProjectionRepository) ChannelSubscribers(ctx context.Context, channelID string) ([]domain.OwnerSummary, error) {
	query := `
		SELECT u.id, u.username, u.fullname, u.avatar
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC, s.id DESC
	`
	return r.queryUserSummaries(ctx, "channel subscribers", query, channelID)
}

// SubscribedChannels lists the channels subscriberID follows
func (r *ProjectionRepository) SubscribedChannels(ctx context.Context, subscriberID string) ([]domain.OwnerSummary, error) {
	query := `
		SELECT u.id, u.username, u.fullname, u.avatar
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC, s.id DESC
	`
	return r.queryUserSummaries(ctx, "subscribed channels", query, subscriberID)
}

// ListVideos pages through videos filtered by title and owner.
// q must already be normalized.
func (r *ProjectionRepository) ListVideos(ctx context.Context, q domain.VideoQuery) ([]domain.VideoWithOwner, int64, error) {
	var (
		conds []string
		args  []any
	)
	if !q.IncludeUnpublished {
		conds = append(conds, "v.is_published")
	}
	if q.Query != "" {
		args = append(args, "%"+escapeLike(q.Query)+"%")
		conds = append(conds, "v.title ILIKE $"+strconv.Itoa(len(args)))
	}
	if q.OwnerID != "" {
		args = append(args, q.OwnerID)
		conds = append(conds, "v.owner_id = $"+strconv.Itoa(len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	countArgs := append([]any(nil), args...)

	sortCol, ok := videoSortColumns[q.SortBy]
	if !ok {
		sortCol = videoSortColumns[domain.SortByCreatedAt]
	}
	dir := "DESC"
	if q.SortType == domain.SortAsc {
		dir = "ASC"
	}

	args = append(args, q.Limit, domain.Offset(q.Page, q.Limit))
	query := `
		SELECT ` + videoSummaryColumns + `, ` + ownerColumns + `
		FROM videos v
		LEFT JOIN users o ON o.id = v.owner_id
		` + where + `
		ORDER BY ` + sortCol + ` ` + dir + `, v.id ` + dir + `
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	var (
		total  int64
		videos []domain.VideoWithOwner
	)
	err := readSnapshot(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM videos v `+where, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count videos: %w", err)
		}
		var err error
		videos, err = queryVideosWithOwner(ctx, tx, "videos", query, args...)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// OwnerSummary returns the public summary of a user; a missing user yields an empty summary
func (r *ProjectionRepository) OwnerSummary(ctx context.Context, userID string) (domain.OwnerSummary, error) {
	var s domain.OwnerSummary
	err := r.db.QueryRow(ctx, `SELECT id, username, fullname, avatar FROM users WHERE id = $1`, userID).
		Scan(&s.ID, &s.Username, &s.Fullname, &s.Avatar)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OwnerSummary{}, nil
		}
		return domain.OwnerSummary{}, fmt.Errorf("failed to get owner summary: %w", err)
	}
	return s, nil
}

// UserPlaylists returns the user's playlists newest first
func (r *ProjectionRepository) UserPlaylists(ctx context.Context, userID string) ([]domain.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	playlists, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Playlist, error) {
		p, err := scanPlaylist(row)
		if err != nil {
			return domain.Playlist{}, err
		}
		return *p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlists: %w", err)
	}
	return nonNil(playlists), nil
}

// UserTweets returns the user's tweets newest first
func (r *ProjectionRepository) UserTweets(ctx context.Context, userID string) ([]domain.Tweet, error) {
	query := `SELECT ` + tweetColumns + ` FROM tweets WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tweets: %w", err)
	}
	tweets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Tweet, error) {
		t, err := scanTweet(row)
		if err != nil {
			return domain.Tweet{}, err
		}
		return *t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tweets: %w", err)
	}
	return nonNil(tweets), nil
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
