package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAvatarStorage_SaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "avatars")
	storage, err := NewLocalAvatarStorage(dir, "uploads/avatars/", logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	publicPath, err := storage.Save(ctx, "avatar-1.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/avatars/avatar-1.png", publicPath)

	content, err := os.ReadFile(filepath.Join(dir, "avatar-1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))

	_, err = storage.Save(ctx, "avatar-1.png", "image/png", strings.NewReader("again"))
	assert.Error(t, err, "existing files are never overwritten")

	require.NoError(t, storage.Delete(ctx, publicPath))
	_, err = os.Stat(filepath.Join(dir, "avatar-1.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.Delete(ctx, publicPath), "deleting twice is fine")
	assert.NoError(t, storage.Delete(ctx, "https://elsewhere/x.png"))
}

func TestLocalAvatarStorage_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalAvatarStorage(dir, "/uploads/avatars", logger.Nop())
	require.NoError(t, err)

	publicPath, err := storage.Save(context.Background(), "../../etc/evil.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/avatars/evil.png", publicPath)

	_, err = os.Stat(filepath.Join(dir, "evil.png"))
	assert.NoError(t, err)
}

type fakeS3 struct {
	puts    map[string]string
	deletes []string
	putErr  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, _ := io.ReadAll(in.Body)
	f.puts[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3AvatarStorage(t *testing.T) {
	fake := &fakeS3{puts: map[string]string{}}
	storage := newS3AvatarStorage(fake, "media", "https://cdn.example.com/media/", logger.Nop())
	ctx := context.Background()

	url, err := storage.Save(ctx, "avatar-7.jpg", "image/jpeg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media/avatars/avatar-7.jpg", url)
	assert.Equal(t, "jpeg", fake.puts["media/avatars/avatar-7.jpg"])

	require.NoError(t, storage.Delete(ctx, url))
	require.NoError(t, storage.Delete(ctx, "/uploads/avatars/local.png"))
	assert.Equal(t, []string{"avatars/avatar-7.jpg"}, fake.deletes)

	fake.putErr = errors.New("access denied")
	_, err = storage.Save(ctx, "avatar-8.jpg", "image/jpeg", strings.NewReader("jpeg"))
	assert.Error(t, err)
}

func TestNewStorages_LocalWithoutBucket(t *testing.T) {
	cfg := config.Storage{Files: config.Files{AvatarDir: t.TempDir(), PublicPrefix: "/uploads/avatars"}}

	storages, err := NewStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &localAvatarStorage{}, storages.AvatarStorage)
}
