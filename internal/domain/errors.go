package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Categories
	ErrMsgInvalidInput     = "invalid input"
	ErrMsgUnauthorized     = "unauthorized request"
	ErrMsgForbidden        = "forbidden"
	ErrMsgNotFound         = "not found"
	ErrMsgConflict         = "conflict"
	ErrMsgMediaUnavailable = "media store unavailable"

	// Access errors
	ErrMsgInvalidAccessToken  = "invalid access token"
	ErrMsgInvalidRefreshToken = "invalid refresh token"
	ErrMsgRefreshTokenUsed    = "refresh token is expired or used"
	ErrMsgInvalidCredentials  = "invalid user credentials"
	ErrMsgUsernameOrEmail     = "username or email is required"
	ErrMsgUsernameRequired    = "username is missing"
	ErrMsgIncorrectPassword   = "incorrect old password"
	ErrMsgPasswordTooLong     = "password must be at most 72 bytes"

	// User errors
	ErrMsgUserNotFound     = "user does not exist"
	ErrMsgChannelNotFound  = "channel does not exist"
	ErrMsgUserExists       = "user with email or username already exists"
	ErrMsgAllFieldsMissing = "all fields are required"
	ErrMsgAvatarRequired   = "avatar file is required"
	ErrMsgCoverRequired    = "cover image file is required"

	// Content errors
	ErrMsgInvalidID             = "invalid id"
	ErrMsgContentRequired       = "content is required"
	ErrMsgVideoNotFound         = "video not found"
	ErrMsgCommentNotFound       = "comment not found"
	ErrMsgTweetNotFound         = "tweet not found"
	ErrMsgPlaylistNotFound      = "playlist not found"
	ErrMsgNoVideos              = "no videos found"
	ErrMsgNoTweets              = "no tweets found"
	ErrMsgNoPlaylists           = "no playlists found"
	ErrMsgVideoNotInPlaylist    = "video is not in the playlist"
	ErrMsgPlaylistExists        = "playlist with this name already exists"
	ErrMsgTitleRequired         = "title and description are required"
	ErrMsgDescriptionRequired   = "description is required"
	ErrMsgVideoFileRequired     = "video file is required"
	ErrMsgThumbnailRequired     = "thumbnail file is required"
	ErrMsgInvalidTargetKind     = "invalid like target"
	ErrMsgNotOwner              = "you are not the owner of this resource"
	ErrMsgPlaylistFieldsMissing = "name and description are required"
	ErrMsgNothingToUpdate       = "at least one field is required"

	// Media errors
	ErrMsgMediaUpload = "failed to upload file to media store"
	ErrMsgMediaDelete = "failed to delete file from media store"
)

// Error is a domain error carrying a client-safe message and the category it belongs to.
// errors.Is(err, ErrNotFound) holds for every not-found flavour.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Categories. Handlers map these to HTTP status codes.
var (
	ErrInvalidInput     = errors.New(ErrMsgInvalidInput)
	ErrUnauthorized     = errors.New(ErrMsgUnauthorized)
	ErrForbidden        = errors.New(ErrMsgForbidden)
	ErrNotFound         = errors.New(ErrMsgNotFound)
	ErrConflict         = errors.New(ErrMsgConflict)
	ErrInternal         = errors.New("internal error")
	ErrMediaUnavailable = errors.New(ErrMsgMediaUnavailable)
)

// Common domain errors
// Wrap these errors with fmt.Errorf("...: %w", domain.ErrXxx) for additional context.
var (
	ErrInvalidAccessToken  = newError(ErrUnauthorized, ErrMsgInvalidAccessToken)
	ErrInvalidRefreshToken = newError(ErrUnauthorized, ErrMsgInvalidRefreshToken)
	ErrRefreshTokenUsed    = newError(ErrUnauthorized, ErrMsgRefreshTokenUsed)
	ErrInvalidCredentials  = newError(ErrUnauthorized, ErrMsgInvalidCredentials)
	ErrMissingIdentity     = newError(ErrUnauthorized, ErrMsgUnauthorized)
	ErrUsernameOrEmail     = newError(ErrInvalidInput, ErrMsgUsernameOrEmail)
	ErrUsernameRequired    = newError(ErrInvalidInput, ErrMsgUsernameRequired)
	ErrIncorrectPassword   = newError(ErrInvalidInput, ErrMsgIncorrectPassword)
	ErrPasswordTooLong     = newError(ErrInvalidInput, ErrMsgPasswordTooLong)

	ErrUserNotFound     = newError(ErrNotFound, ErrMsgUserNotFound)
	ErrChannelNotFound  = newError(ErrNotFound, ErrMsgChannelNotFound)
	ErrUserExists       = newError(ErrConflict, ErrMsgUserExists)
	ErrAllFieldsMissing = newError(ErrInvalidInput, ErrMsgAllFieldsMissing)
	ErrAvatarRequired   = newError(ErrInvalidInput, ErrMsgAvatarRequired)
	ErrCoverRequired    = newError(ErrInvalidInput, ErrMsgCoverRequired)

	ErrInvalidID             = newError(ErrInvalidInput, ErrMsgInvalidID)
	ErrContentRequired       = newError(ErrInvalidInput, ErrMsgContentRequired)
	ErrVideoNotFound         = newError(ErrNotFound, ErrMsgVideoNotFound)
	ErrCommentNotFound       = newError(ErrNotFound, ErrMsgCommentNotFound)
	ErrTweetNotFound         = newError(ErrNotFound, ErrMsgTweetNotFound)
	ErrPlaylistNotFound      = newError(ErrNotFound, ErrMsgPlaylistNotFound)
	ErrNoVideos              = newError(ErrNotFound, ErrMsgNoVideos)
	ErrNoTweets              = newError(ErrNotFound, ErrMsgNoTweets)
	ErrNoPlaylists           = newError(ErrNotFound, ErrMsgNoPlaylists)
	ErrVideoNotInPlaylist    = newError(ErrNotFound, ErrMsgVideoNotInPlaylist)
	ErrPlaylistExists        = newError(ErrConflict, ErrMsgPlaylistExists)
	ErrTitleRequired         = newError(ErrInvalidInput, ErrMsgTitleRequired)
	ErrDescriptionRequired   = newError(ErrInvalidInput, ErrMsgDescriptionRequired)
	ErrVideoFileRequired     = newError(ErrInvalidInput, ErrMsgVideoFileRequired)
	ErrThumbnailRequired     = newError(ErrInvalidInput, ErrMsgThumbnailRequired)
	ErrInvalidTargetKind     = newError(ErrInvalidInput, ErrMsgInvalidTargetKind)
	ErrNotOwner              = newError(ErrForbidden, ErrMsgNotOwner)
	ErrPlaylistFieldsMissing = newError(ErrInvalidInput, ErrMsgPlaylistFieldsMissing)
	ErrNothingToUpdate       = newError(ErrInvalidInput, ErrMsgNothingToUpdate)

	ErrMediaUpload = newError(ErrInternal, ErrMsgMediaUpload)
	ErrMediaDelete = newError(ErrInternal, ErrMsgMediaDelete)
)
