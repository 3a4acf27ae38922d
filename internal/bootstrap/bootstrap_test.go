package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubehub/tubehub-api/internal/config"
)

type fakePool struct{ closed bool }

func (p *fakePool) Ping(context.Context) error { return nil }
func (p *fakePool) Close()                     { p.closed = true }

func TestServerConfig(t *testing.T) {
	cfg := &config.Config{
		Port:           9000,
		CORSOrigins:    []string{"https://app.example"},
		MaxBodyBytes:   1024,
		MaxUploadBytes: 4096,
		AuthRateLimit:  7,
		TrustedProxies: []string{"10.0.0.1"},
		WriteTimeout:   time.Minute,
	}

	got := ServerConfig(cfg)

	assert.Equal(t, 9000, got.Port)
	assert.Equal(t, cfg.CORSOrigins, got.CORSOrigins)
	assert.Equal(t, int64(1024), got.MaxBodyBytes)
	assert.Equal(t, int64(4096), got.MaxUploadBytes)
	assert.Equal(t, 7, got.AuthRateLimit)
	assert.Equal(t, cfg.TrustedProxies, got.TrustedProxies)
	assert.Equal(t, time.Minute, got.WriteTimeout)
}

func TestInitializeServices_RejectsEmptySecrets(t *testing.T) {
	_, err := InitializeServices(&config.Config{}, &Repositories{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgTokenManagerFailed)
}

func TestInitializeHandlers_CreatesUploadDir(t *testing.T) {
	dir := t.TempDir() + "/uploads"
	h, err := InitializeHandlers(&config.Config{UploadDir: dir}, &Services{})
	require.NoError(t, err)
	assert.NotNil(t, h.Users)
	assert.NotNil(t, h.Dashboard)
	assert.DirExists(t, dir)
}

func TestGracefulShutdown_ClosesPool(t *testing.T) {
	pool := &fakePool{}
	GracefulShutdown(context.Background(), ShutdownComponents{DB: pool})
	assert.True(t, pool.closed)
}
