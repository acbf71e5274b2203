package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskLifecycle(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d := NewLocalDisk(root, "http://cdn.test/storage/")

	require.NoError(t, d.Put(ctx, "banners/3.png", []byte("png"), "image/png"))
	assert.True(t, d.Exists(ctx, "banners/3.png"))

	data, err := d.Get(ctx, "banners/3.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	_, err = os.Stat(filepath.Join(root, "banners", "3.png.tmp"))
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, "http://cdn.test/storage/banners/3.png", d.URL("banners/3.png"))

	require.NoError(t, d.Delete(ctx, "banners/3.png"))
	assert.False(t, d.Exists(ctx, "banners/3.png"))
	assert.NoError(t, d.Delete(ctx, "banners/3.png"))

	_, err = d.Get(ctx, "banners/3.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalDiskRejectsEscape(t *testing.T) {
	d := NewLocalDisk(t.TempDir(), "")
	assert.Error(t, d.Put(context.Background(), "../outside.png", []byte("x"), ""))
}

func TestManager(t *testing.T) {
	m := NewManager("local")
	_, err := m.Default()
	assert.Error(t, err)

	disk := NewLocalDisk(t.TempDir(), "")
	m.Register("local", disk)

	got, err := m.Default()
	require.NoError(t, err)
	assert.Same(t, disk, got)

	_, err = m.Use("s3")
	assert.Error(t, err)
}

func TestNewS3DiskRequiresBucket(t *testing.T) {
	_, err := NewS3Disk(context.Background(), S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}
