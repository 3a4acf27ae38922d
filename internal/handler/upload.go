package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tubehub/tubehub-api/internal/logger"
)

const (
	// formMemory is how much of a multipart body is held in memory before
	// net/http spills parts to disk
	formMemory = 1 << 20
	// maxExtLen bounds the client supplied extension kept on staged files
	maxExtLen = 8
)

// Uploads stages multipart files under one directory for the length of a request
type Uploads struct {
	dir string
}

// NewUploads creates the stager. dir is created if missing.
func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Uploads{dir: dir}, nil
}

// StagedForm is a parsed multipart form whose files live on local disk.
// Close removes every staged file.
type StagedForm struct {
	form  *multipart.Form
	paths map[string]string
}

// Path is the staged location of field, or "" when the client sent no file
func (f *StagedForm) Path(field string) string {
	return f.paths[field]
}

// Value returns the first text value of field
func (f *StagedForm) Value(field string) string {
	if f.form == nil {
		return ""
	}
	if v := f.form.Value[field]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Has reports whether the client sent field as a text value
func (f *StagedForm) Has(field string) bool {
	if f.form == nil {
		return false
	}
	_, ok := f.form.Value[field]
	return ok
}

// Close drops the staged files and any parts net/http spilled to disk
func (f *StagedForm) Close(log *slog.Logger) {
	for field, path := range f.paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn(LogMsgCleanupFailed, "field", field, "error", err)
		}
	}
	if f.form != nil {
		_ = f.form.RemoveAll()
	}
}

// Stage parses the request as multipart and copies each of fields to disk.
// Missing files are not an error; the service decides which ones are required.
// On failure the error envelope has been written and the handler should return.
func (u *Uploads) Stage(w http.ResponseWriter, r *http.Request, fields ...string) (*StagedForm, bool) {
	log := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondFailure(w, http.StatusRequestEntityTooLarge, ErrMsgInvalidForm, nil)
			return nil, false
		}
		log.Debug(LogMsgDecodeFailed, "error", err)
		respondFailure(w, http.StatusBadRequest, ErrMsgInvalidForm, nil)
		return nil, false
	}

	staged := &StagedForm{form: r.MultipartForm, paths: make(map[string]string, len(fields))}
	for _, field := range fields {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			continue
		}
		path, err := u.stageOne(headers[0])
		if err != nil {
			log.Error(LogMsgStageFailed, "field", field, "error", err)
			staged.Close(log)
			respondFailure(w, http.StatusInternalServerError, ErrMsgUploadFailed, nil)
			return nil, false
		}
		staged.paths[field] = path
	}
	return staged, true
}

func (u *Uploads) stageOne(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp(u.dir, "upload-*"+safeExt(header.Filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

// safeExt keeps a short alphanumeric extension so the media store can pick a content type
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
