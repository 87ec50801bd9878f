package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edeon_enerji/internal/domain"
)

type recordingStore struct {
	puts map[string][]byte
}

func (s *recordingStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if s.puts == nil {
		s.puts = map[string][]byte{}
	}
	s.puts[key] = data
	return "/files/" + key, nil
}

func (s *recordingStore) Delete(_ context.Context, key string) error {
	delete(s.puts, key)
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, h/2, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fileOf(name, contentType string, data []byte) File {
	return File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("image/png", 100))
	assert.ErrorIs(t, Validate("application/pdf", 100), domain.ErrValidation)
	assert.ErrorIs(t, Validate("image/jpeg", MaxUploadBytes+1), domain.ErrValidation)
}

func TestUpload_RejectsNonImageBeforeStore(t *testing.T) {
	store := &recordingStore{}
	u := NewUploader(store)

	opened := false
	f := File{Name: "rapor.pdf", ContentType: "application/pdf", Size: 10, Open: func() (io.ReadCloser, error) {
		opened = true
		return io.NopCloser(bytes.NewReader(nil)), nil
	}}

	_, err := u.Upload(context.Background(), "arizalar", f)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, opened)
	assert.Empty(t, store.puts)
}

func TestUpload_RejectsOversizeBeforeStore(t *testing.T) {
	store := &recordingStore{}
	u := NewUploader(store)

	f := fileOf("x.jpg", "image/jpeg", []byte("x"))
	f.Size = MaxUploadBytes + 1
	_, err := u.Upload(context.Background(), "arizalar", f)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, store.puts)
}

func TestUpload_DownscalesAndKeys(t *testing.T) {
	store := &recordingStore{}
	u := NewUploader(store)
	u.now = func() time.Time { return time.UnixMilli(1700000000123) }

	up, err := u.Upload(context.Background(), "arizalar", fileOf("Panel Foto (1).png", "image/png", pngBytes(t, 3840, 1200)))
	require.NoError(t, err)

	assert.Equal(t, "arizalar/1700000000123_Panel_Foto__1_.png", up.Key)
	assert.Equal(t, "/files/"+up.Key, up.URL)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(store.puts[up.Key]))
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
}

func TestUpload_SmallImageKeepsSize(t *testing.T) {
	store := &recordingStore{}
	u := NewUploader(store)

	up, err := u.Upload(context.Background(), "profil", fileOf("a.png", "image/png", pngBytes(t, 640, 480)))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(store.puts[up.Key]))
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
}

func TestUpload_UndecodableImage(t *testing.T) {
	u := NewUploader(&recordingStore{})
	_, err := u.Upload(context.Background(), "arizalar", fileOf("a.png", "image/png", []byte("not an image")))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// withPNGSize rewrites the IHDR dimensions of an encoded PNG.
func withPNGSize(raw []byte, w, h uint32) []byte {
	out := append([]byte(nil), raw...)
	binary.BigEndian.PutUint32(out[16:20], w)
	binary.BigEndian.PutUint32(out[20:24], h)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestDownscale_RejectsHugePixelArea(t *testing.T) {
	huge := withPNGSize(pngBytes(t, 1, 1), 100_000, 100_000)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(huge))
	require.NoError(t, err)
	require.Equal(t, 100_000, cfg.Width)

	_, err = Downscale(huge)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpload_InvalidCategory(t *testing.T) {
	u := NewUploader(&recordingStore{})
	_, err := u.Upload(context.Background(), "../etc", fileOf("a.png", "image/png", pngBytes(t, 2, 2)))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUploadMany_PartialAndTotalFailure(t *testing.T) {
	store := &recordingStore{}
	u := NewUploader(store)

	res, err := u.UploadMany(context.Background(), "bakimlar", []File{
		fileOf("ok.png", "image/png", pngBytes(t, 10, 10)),
		fileOf("bad.txt", "text/plain", []byte("x")),
	})
	require.NoError(t, err)
	assert.Len(t, res.Uploaded, 1)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "Sadece resim dosyaları yüklenebilir", res.Failed[0].Error)

	_, err = u.UploadMany(context.Background(), "bakimlar", []File{fileOf("bad.txt", "text/plain", []byte("x"))})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFitWithin(t *testing.T) {
	w, h := fitWithin(4000, 3000, MaxWidth, MaxHeight)
	assert.Equal(t, 1440, w)
	assert.Equal(t, 1080, h)

	w, h = fitWithin(100, 50, MaxWidth, MaxHeight)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/files/")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "arizalar/1_a.jpg", []byte("data"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/files/arizalar/1_a.jpg", url)

	got, err := os.ReadFile(filepath.Join(dir, "arizalar", "1_a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	require.NoError(t, s.Delete(context.Background(), "arizalar/1_a.jpg"))
	assert.ErrorIs(t, s.Delete(context.Background(), "arizalar/1_a.jpg"), domain.ErrNotFound)

	_, err = s.Put(context.Background(), "../escape.jpg", []byte("x"), "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
