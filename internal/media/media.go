// Package media stores uploaded files in an S3-compatible object store.
package media

import "context"

// Asset is a file held by the media store.
type Asset struct {
	URL string
	ID  string
	// Duration in seconds; zero for non-video files or when probing failed.
	Duration float64
}

// Store uploads and deletes remote assets.
type Store interface {
	Upload(ctx context.Context, path string) (*Asset, error)
	Delete(ctx context.Context, id string) error
}

// Prober reads the playback duration of a local video file.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}
