package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps media as files in a single directory.
type LocalStore struct {
	basePath string
	logger   *slog.Logger
}

// NewLocalStore creates basePath if needed.
func NewLocalStore(basePath string, logger *slog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("creating media directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalStore{basePath: basePath, logger: logger}, nil
}

// Save streams r to a new file named by a random UUID plus an extension taken
// from name or mimeType. A positive limit caps the number of bytes accepted.
// Partial files are removed on failure.
func (s *LocalStore) Save(ctx context.Context, name, mimeType string, r io.Reader, limit int64) (string, int64, error) {
	key := uuid.NewString() + extFor(name, mimeType)

	tmp, err := os.CreateTemp(s.basePath, ".upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("creating temp file: %w", err)
	}
	cleanup := func() {
		if cerr := tmp.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) {
			s.logger.Error("failed to close temp file", "error", cerr)
		}
		if rerr := os.Remove(tmp.Name()); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			s.logger.Error("failed to remove temp file", "path", tmp.Name(), "error", rerr)
		}
	}

	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}
	n, err := io.Copy(tmp, readerWithContext(ctx, src))
	if err != nil {
		cleanup()
		return "", 0, fmt.Errorf("writing media: %w", err)
	}
	if limit > 0 && n > limit {
		cleanup()
		return "", 0, ErrTooLarge
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", 0, fmt.Errorf("closing media file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.basePath, key)); err != nil {
		cleanup()
		return "", 0, fmt.Errorf("storing media: %w", err)
	}

	s.logger.Info("media stored", "key", key, "bytes", n)
	return key, n, nil
}

// Open returns the stored file and its metadata.
func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadSeekCloser, *Info, error) {
	path, err := s.safeJoin(key)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("opening media: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat media: %w", err)
	}
	if st.IsDir() {
		f.Close()
		return nil, nil, ErrNotFound
	}

	return f, &Info{Key: key, Size: st.Size(), MIME: typeFor(key), ModTime: st.ModTime()}, nil
}

// Delete removes the file for key.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	path, err := s.safeJoin(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting media: %w", err)
	}
	return nil
}

// Release deletes the media behind ref. References outside the store and
// already-missing files are not errors.
func (s *LocalStore) Release(ctx context.Context, ref string) error {
	key, ok := KeyFromRef(ref)
	if !ok {
		return nil
	}
	if err := s.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	s.logger.Info("media released", "key", key)
	return nil
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (s *LocalStore) safeJoin(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, ".") {
		return "", ErrInvalidKey
	}
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if filepath.Dir(absPath) != absBase {
		return "", ErrInvalidKey
	}
	return absPath, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
