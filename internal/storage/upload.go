package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"regexp"
	"strings"
	"time"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"edeon_enerji/internal/domain"
	"edeon_enerji/pkg/logger"
)

const (
	MaxUploadBytes = 10 << 20
	MaxWidth       = 1920
	MaxHeight      = 1080
	JPEGQuality    = 80
	MaxPixels      = 50_000_000
)

// File is one uploaded file before processing.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Uploaded is a stored photo.
type Uploaded struct {
	Name string `json:"ad"`
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int    `json:"boyut"`
}

// Failure is a file that could not be stored.
type Failure struct {
	Name  string `json:"ad"`
	Error string `json:"hata"`
}

// Result of a multi file upload.
type Result struct {
	Uploaded []Uploaded `json:"yuklenen"`
	Failed   []Failure  `json:"hatali"`
}

// Uploader validates, downscales and stores photos.
type Uploader struct {
	store ObjectStore
	now   func() time.Time
}

// NewUploader creates an uploader on store.
func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{store: store, now: time.Now}
}

// Validate checks size and content type. It runs before the store is
// touched.
func Validate(contentType string, size int64) error {
	if size > MaxUploadBytes {
		return domain.NewValidationError("dosya", "Dosya boyutu 10MB'dan büyük olamaz")
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return domain.NewValidationError("dosya", "Sadece resim dosyaları yüklenebilir")
	}
	return nil
}

var (
	unsafeChars   = regexp.MustCompile(`[^a-zA-Z0-9.]`)
	validCategory = regexp.MustCompile(`^[a-zA-Z0-9_-]+(/[a-zA-Z0-9_-]+)*$`)
)

// SanitizeName replaces every character outside [a-zA-Z0-9.] with "_".
func SanitizeName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// Key is "{category}/{unix millis}_{sanitized name}".
func Key(category, name string, at time.Time) string {
	return fmt.Sprintf("%s/%d_%s", category, at.UnixMilli(), SanitizeName(name))
}

// Upload stores a single file under category.
func (u *Uploader) Upload(ctx context.Context, category string, f File) (*Uploaded, error) {
	if !validCategory.MatchString(category) {
		return nil, domain.NewValidationError("kategori", "Geçersiz kategori")
	}
	if err := Validate(f.ContentType, f.Size); err != nil {
		return nil, err
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	if len(raw) > MaxUploadBytes {
		return nil, domain.NewValidationError("dosya", "Dosya boyutu 10MB'dan büyük olamaz")
	}

	data, err := Downscale(raw)
	if err != nil {
		return nil, err
	}

	key := Key(category, f.Name, u.now())
	url, err := u.store.Put(ctx, key, data, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", key, err)
	}

	logger.Debug(fmt.Sprintf("✓ Uploaded %s (%d -> %d bytes)", key, len(raw), len(data)))
	return &Uploaded{Name: f.Name, Key: key, URL: url, Size: len(data)}, nil
}

// UploadMany stores every file it can. It fails only when no file was
// stored.
func (u *Uploader) UploadMany(ctx context.Context, category string, files []File) (*Result, error) {
	if len(files) == 0 {
		return nil, domain.NewValidationError("dosya", "En az bir dosya seçilmelidir")
	}

	res := &Result{Uploaded: []Uploaded{}, Failed: []Failure{}}
	var lastErr error
	for _, f := range files {
		up, err := u.Upload(ctx, category, f)
		if err != nil {
			lastErr = err
			res.Failed = append(res.Failed, Failure{Name: f.Name, Error: userMessage(err)})
			logger.Warn(fmt.Sprintf("upload %s failed: %v", f.Name, err))
			continue
		}
		res.Uploaded = append(res.Uploaded, *up)
	}

	if len(res.Uploaded) == 0 {
		return res, fmt.Errorf("all %d uploads failed: %w", len(files), lastErr)
	}
	return res, nil
}

// Delete removes a stored photo.
func (u *Uploader) Delete(ctx context.Context, key string) error {
	return u.store.Delete(ctx, key)
}

// Downscale decodes an image of at most MaxPixels, shrinks it to fit
// MaxWidth×MaxHeight keeping the aspect ratio and re-encodes it as JPEG.
func Downscale(raw []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.NewValidationError("dosya", "Görsel okunamadı")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, domain.NewValidationError("dosya", "Görsel çözünürlüğü çok yüksek")
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.NewValidationError("dosya", "Görsel okunamadı")
	}

	b := src.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), MaxWidth, MaxHeight)

	var img image.Image = src
	if w != b.Dx() || h != b.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin scales w×h down to fit maxW×maxH. Smaller images keep their
// size.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := float64(maxW) / float64(w)
	if r := float64(maxH) / float64(h); r < ratio {
		ratio = r
	}
	nw := int(float64(w)*ratio + 0.5)
	nh := int(float64(h)*ratio + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

func userMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.First()
	}
	return "Dosya yüklenemedi"
}
