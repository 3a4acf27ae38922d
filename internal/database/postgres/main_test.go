package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tubehub/tubehub-api/internal/database"
	"github.com/tubehub/tubehub-api/internal/domain"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testPool, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (*pgxpool.Pool, func()) {
	// Handle potential panics from testcontainers when Docker is missing
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil, func() {}
	}
	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return nil, terminate
	}

	pool, err := database.NewPool(connStr, 20, 2, time.Minute, 5*time.Minute)
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return nil, terminate
	}
	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return nil, terminate
	}
	return pool, terminate
}

// requireDB skips the test unless the shared container is up, then empties every table
func requireDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE users, videos, comments, tweets, likes, subscriptions, playlists`)
	require.NoError(t, err)
	return testPool
}

func seedUser(t *testing.T, repo *UserRepository, name string) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:     name,
		Email:        name + "@x.com",
		Fullname:     "Full " + name,
		PasswordHash: "hash",
		Avatar:       "https://media.test/" + name + ".png",
	}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func seedVideo(t *testing.T, repo *VideoRepository, ownerID, title string, views int64) *domain.Video {
	t.Helper()
	v := &domain.Video{
		OwnerID:     ownerID,
		VideoFile:   "https://media.test/v/" + title,
		VideoFileID: "v/" + title,
		Thumbnail:   "https://media.test/t/" + title,
		ThumbnailID: "t/" + title,
		Title:       title,
		Description: "about " + title,
		Duration:    12.5,
		IsPublished: true,
	}
	ctx := context.Background()
	require.NoError(t, repo.CreateVideo(ctx, v))
	if views > 0 {
		_, err := testPool.Exec(ctx, `UPDATE videos SET views = $2 WHERE id = $1`, v.ID, views)
		require.NoError(t, err)
	}
	return v
}
