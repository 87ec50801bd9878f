package api

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"edeon_enerji/internal/storage"
)

// UploadPhotos handles POST /api/uploads/:kategori. The multipart form
// carries one or more "dosyalar" parts; a single "dosya" is accepted too.
func (h *Handler) UploadPhotos(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Dosya yükleme kapalı"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "Geçersiz form verisi")
		return
	}
	headers := form.File["dosyalar"]
	headers = append(headers, form.File["dosya"]...)

	files := make([]storage.File, 0, len(headers))
	for _, fh := range headers {
		files = append(files, fileOf(fh))
	}

	res, err := h.uploader.UploadMany(c.Request.Context(), c.Param("kategori"), files)
	if err != nil {
		status, msg := statusOf(err)
		body := gin.H{"error": msg}
		if res != nil {
			body["hatali"] = res.Failed
		}
		c.JSON(status, body)
		return
	}

	status := http.StatusCreated
	if len(res.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, res)
}

// DeletePhoto handles DELETE /api/uploads?key=
func (h *Handler) DeletePhoto(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Dosya yükleme kapalı"})
		return
	}
	key := c.Query("key")
	if key == "" {
		badRequest(c, "Dosya anahtarı gerekli")
		return
	}

	if err := h.uploader.Delete(c.Request.Context(), key); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Dosya silindi"})
}

func fileOf(fh *multipart.FileHeader) storage.File {
	return storage.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
