package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/finance-flow/internal/logger"
)

// localAvatarStorage writes avatars into a directory that the HTTP server
// exposes under publicPrefix.
type localAvatarStorage struct {
	dir          string
	publicPrefix string
	logger       *logger.Logger
}

// NewLocalAvatarStorage creates dir if needed and returns an [AvatarStorage]
// writing into it.
func NewLocalAvatarStorage(dir, publicPrefix string, logger *logger.Logger) (AvatarStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating avatar directory: %w", err)
	}

	logger.Debug().Str("dir", dir).Msg("creating local avatar storage")
	return &localAvatarStorage{
		dir:          dir,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
		logger:       logger,
	}, nil
}

// Save stores r under name and returns "<publicPrefix>/<name>".
func (s *localAvatarStorage) Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", ErrInvalidFile
	}

	target := filepath.Join(s.dir, name)
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		log.Err(err).Str("func", "*localAvatarStorage.Save").Str("file", target).Msg("error creating avatar file")
		return "", fmt.Errorf("error creating avatar file: %w", err)
	}

	if _, err = io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(target)
		log.Err(err).Str("func", "*localAvatarStorage.Save").Str("file", target).Msg("error writing avatar file")
		return "", fmt.Errorf("error writing avatar file: %w", err)
	}

	if err = f.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("error closing avatar file: %w", err)
	}

	return path.Join(s.publicPrefix, name), nil
}

// Delete removes a file previously returned by Save. Paths outside the
// public prefix are ignored.
func (s *localAvatarStorage) Delete(ctx context.Context, publicPath string) error {
	if !strings.HasPrefix(publicPath, s.publicPrefix+"/") {
		return nil
	}

	name := filepath.Base(publicPath)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		logger.FromContext(ctx).Err(err).Str("func", "*localAvatarStorage.Delete").Str("file", name).Msg("error removing avatar file")
		return fmt.Errorf("error removing avatar file: %w", err)
	}

	return nil
}
