package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/tubehub/tubehub-api/internal/auth"
	"github.com/tubehub/tubehub-api/internal/database"
	"github.com/tubehub/tubehub-api/internal/handler"
	"github.com/tubehub/tubehub-api/internal/logger"
	"github.com/tubehub/tubehub-api/internal/metrics"
	"github.com/tubehub/tubehub-api/internal/middleware"
)

// Config controls the HTTP surface
type Config struct {
	Port           int
	CORSOrigins    []string
	MaxBodyBytes   int64
	MaxUploadBytes int64
	AuthRateLimit  int
	TrustedProxies []string
	// WriteTimeout bounds a whole request, media uploads included
	WriteTimeout time.Duration
}

// Handlers groups every route handler the server mounts
type Handlers struct {
	Users         *handler.UserHandlers
	Videos        *handler.VideoHandlers
	Comments      *handler.CommentHandlers
	Likes         *handler.LikeHandlers
	Tweets        *handler.TweetHandlers
	Subscriptions *handler.SubscriptionHandlers
	Playlists     *handler.PlaylistHandlers
	Dashboard     *handler.DashboardHandlers
}

type Server struct {
	httpServer *http.Server
	router     http.Handler
}

// NewServer creates a new Server instance
func NewServer(cfg Config, dbPool database.Pool, authenticator middleware.Authenticator, h Handlers) *Server {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector(DefaultDetectorMaxRequests)
	gate := middleware.NewAccessGate(authenticator, rejectRecorder(cfg.TrustedProxies, detector))
	authLimit := AuthRateLimit(cfg.AuthRateLimit, cfg.TrustedProxies)

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(SecurityHeadersMiddleware())
	r.Use(CORSMiddleware(cfg.CORSOrigins))
	r.Use(ActivityGuardMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes, cfg.MaxUploadBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.RespondStatus(w, http.StatusNotFound, ErrMsgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.RespondStatus(w, http.StatusMethodNotAllowed, ErrMsgMethodNotAllowed)
	})

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Get("/healthcheck", handler.HandleHealthcheck())

		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authLimit)
				r.Post("/register", h.Users.HandleRegister())
				r.Post("/login", h.Users.HandleLogin())
				r.Post("/refresh-token", h.Users.HandleRefresh())
			})
			r.With(gate.Optional).Get("/c/{username}", h.Users.HandleChannelProfile())
			r.Group(func(r chi.Router) {
				r.Use(gate.Require)
				r.Post("/logout", h.Users.HandleLogout())
				r.Post("/change-password", h.Users.HandleChangePassword())
				r.Get("/current-user", h.Users.HandleCurrentUser())
				r.Patch("/update-account", h.Users.HandleUpdateAccount())
				r.Patch("/avatar", h.Users.HandleUpdateAvatar())
				r.Patch("/cover-image", h.Users.HandleUpdateCoverImage())
				r.Get("/history", h.Users.HandleWatchHistory())
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(gate.Optional)
				r.Get("/", h.Videos.HandleListVideos())
				r.Get("/{videoId}", h.Videos.HandleGetVideo())
			})
			r.Group(func(r chi.Router) {
				r.Use(gate.Require)
				r.Post("/", h.Videos.HandlePublish())
				r.Patch("/{videoId}", h.Videos.HandleUpdateVideo())
				r.Delete("/{videoId}", h.Videos.HandleDeleteVideo())
				r.Patch("/toggle/publish/{videoId}", h.Videos.HandleTogglePublish())
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/{videoId}", h.Comments.HandleListComments())
			r.Group(func(r chi.Router) {
				r.Use(gate.Require)
				r.Post("/{videoId}", h.Comments.HandleAddComment())
				r.Patch("/c/{commentId}", h.Comments.HandleUpdateComment())
				r.Delete("/c/{commentId}", h.Comments.HandleDeleteComment())
			})
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(gate.Require)
			r.Post("/toggle/v/{videoId}", h.Likes.HandleToggleVideoLike())
			r.Post("/toggle/c/{commentId}", h.Likes.HandleToggleCommentLike())
			r.Post("/toggle/t/{tweetId}", h.Likes.HandleToggleTweetLike())
			r.Get("/videos", h.Likes.HandleLikedVideos())
		})

		r.Route("/tweets", func(r chi.Router) {
			r.Get("/user/{userId}", h.Tweets.HandleUserTweets())
			r.Group(func(r chi.Router) {
				r.Use(gate.Require)
				r.Post("/", h.Tweets.HandleCreateTweet())
				r.Patch("/{tweetId}", h.Tweets.HandleUpdateTweet())
				r.Delete("/{tweetId}", h.Tweets.HandleDeleteTweet())
			})
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/c/{channelId}", h.Subscriptions.HandleChannelSubscribers())
			r.Get("/u/{subscriberId}", h.Subscriptions.HandleSubscribedChannels())
			r.With(gate.Require).Post("/c/{channelId}", h.Subscriptions.HandleToggleSubscription())
		})

		r.Route("/playlist", func(r chi.Router) {
			r.Get("/{playlistId}", h.Playlists.HandleGetPlaylist())
			r.Get("/user/{userId}", h.Playlists.HandleUserPlaylists())
			r.Group(func(r chi.Router) {
				r.Use(gate.Require)
				r.Post("/", h.Playlists.HandleCreatePlaylist())
				r.Patch("/{playlistId}", h.Playlists.HandleUpdatePlaylist())
				r.Delete("/{playlistId}", h.Playlists.HandleDeletePlaylist())
				r.Patch("/add/{videoId}/{playlistId}", h.Playlists.HandleAddVideo())
				r.Patch("/remove/{videoId}/{playlistId}", h.Playlists.HandleRemoveVideo())
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(gate.Require)
			r.Get("/stats", h.Dashboard.HandleChannelStats())
			r.Get("/videos", h.Dashboard.HandleChannelVideos())
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       IdleTimeout,
		},
		router: r,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func isQuietPath(path string) bool {
	for _, p := range quietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// loggingMiddleware assigns the request id and logs each request with
// credentials redacted
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, HeaderCookie) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
		}
		if identity := auth.IdentityFromContext(r.Context()); identity != nil {
			attrs = append(attrs, logger.AttrKeyUserID, identity.ID)
		}
		log.Info(LogMsgRequestCompleted, attrs...)
	})
}

// Start starts the server
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
