package handlers

import (
	"encoding/base64"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kevinaaaquil/myb/backend/apperr"
	"github.com/kevinaaaquil/myb/backend/metrics"
	"github.com/kevinaaaquil/myb/backend/service"
	"github.com/kevinaaaquil/myb/backend/utils"
	"go.uber.org/zap"
)

var (
	dataURIPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)
	whitespace     = regexp.MustCompile(`\s+`)
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

var allowedUploadTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"application/pdf": true,
}

const (
	maxSanitizedName   = 200
	defaultUploadLimit = 50 << 20
)

// UploadHandler accepts base64 data URIs from the admin UI and serves the stored files back.
type UploadHandler struct {
	Store    service.ContentStore
	MaxBytes int64
	Logger   *zap.Logger
	Now      func() time.Time
}

type UploadRequest struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxBytes
	if limit <= 0 {
		limit = defaultUploadLimit
	}
	var req UploadRequest
	if err := decodeJSON(w, r, &req, limit, nil); err != nil {
		failWith(h.Logger, w, r, err)
		return
	}
	if req.Filename == "" || req.Data == "" {
		utils.Error(w, apperr.MissingField("filename and data required"))
		return
	}
	m := dataURIPattern.FindStringSubmatch(req.Data)
	if m == nil {
		utils.Error(w, apperr.ErrInvalidPayload)
		return
	}
	mimeType := m[1]
	if !allowedUploadTypes[mimeType] {
		utils.Error(w, apperr.ErrUnsupportedType)
		return
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		utils.Error(w, apperr.ErrInvalidPayload.WithCause(err))
		return
	}

	name := h.storedName(req.Filename)
	if err := h.Store.Put(r.Context(), name, data, mimeType); err != nil {
		failWith(h.Logger, w, r, err)
		return
	}
	metrics.AddUploadBytes(len(data))
	h.Logger.Info("file uploaded",
		zap.String("name", name),
		zap.String("mime", mimeType),
		zap.Int("bytes", len(data)))
	utils.JSON(w, http.StatusOK, UploadResponse{URL: "/uploads/" + name})
}

// storedName prefixes the sanitized client filename with the current unix millis.
func (h *UploadHandler) storedName(filename string) string {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return strconv.FormatInt(now().UnixMilli(), 10) + "-" + SanitizeFilename(filename)
}

// SanitizeFilename turns whitespace runs into "_" and drops everything outside [A-Za-z0-9._-].
func SanitizeFilename(name string) string {
	name = whitespace.ReplaceAllString(name, "_")
	name = unsafeChars.ReplaceAllString(name, "")
	if len(name) > maxSanitizedName {
		name = name[len(name)-maxSanitizedName:]
	}
	return name
}

// Serve streams a previously uploaded file.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	body, contentType, err := h.Store.Open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		failWith(h.Logger, w, r, err)
		return
	}
	defer body.Close()
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, body); err != nil {
		h.Logger.Warn("serve upload interrupted", zap.Error(err))
	}
}
