// Package media stores uploaded project videos and cover images.
package media

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// RefPrefix is the URL path prefix under which stored media is served.
const RefPrefix = "/media/"

// Errors returned by stores.
var (
	ErrNotFound   = errors.New("media not found")
	ErrTooLarge   = errors.New("media exceeds size limit")
	ErrInvalidKey = errors.New("invalid media key")
)

// Info describes a stored object.
type Info struct {
	Key     string
	Size    int64
	MIME    string
	ModTime time.Time
}

// Store persists media objects under generated keys.
type Store interface {
	Save(ctx context.Context, name, mimeType string, r io.Reader, limit int64) (key string, size int64, err error)
	Open(ctx context.Context, key string) (io.ReadSeekCloser, *Info, error)
	Delete(ctx context.Context, key string) error
}

// Ref returns the public reference for key.
func Ref(key string) string {
	return RefPrefix + key
}

// KeyFromRef extracts the key from a reference produced by Ref. It reports
// false for references that point elsewhere, such as bundled static assets.
func KeyFromRef(ref string) (string, bool) {
	key, ok := strings.CutPrefix(ref, RefPrefix)
	if !ok || key == "" || strings.ContainsAny(key, `/\`) {
		return "", false
	}
	return key, true
}

// knownExts are the extensions a stored key may carry.
var knownExts = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".webm": true, ".mkv": true,
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// extFor picks a file extension. The uploaded name's own is kept only when
// it is a known media extension; otherwise it comes from mimeType.
func extFor(name, mimeType string) string {
	if ext := strings.ToLower(filepath.Ext(name)); knownExts[ext] {
		return ext
	}
	base, _, _ := strings.Cut(mimeType, ";")
	switch strings.TrimSpace(base) {
	case "video/mp4":
		return ".mp4"
	case "video/quicktime", "video/mov":
		return ".mov"
	case "video/x-msvideo", "video/avi":
		return ".avi"
	case "video/webm":
		return ".webm"
	case "video/mkv", "video/x-matroska":
		return ".mkv"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	return ".bin"
}

// typeFor maps a key's extension back to a content type.
func typeFor(key string) string {
	switch ext := strings.ToLower(filepath.Ext(key)); ext {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mkv":
		return "video/x-matroska"
	case ".mov":
		return "video/quicktime"
	case ".avi":
		return "video/x-msvideo"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
