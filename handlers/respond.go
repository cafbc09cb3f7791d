package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/kevinaaaquil/myb/backend/apperr"
	"github.com/kevinaaaquil/myb/backend/store"
	"github.com/kevinaaaquil/myb/backend/utils"
	"github.com/kevinaaaquil/myb/backend/validation"
	"go.uber.org/zap"
)

// maxJSONBody caps every JSON body except uploads, which carry their own limit.
const maxJSONBody = 1 << 20

// Base carries what every entity handler needs.
type Base struct {
	DB       *store.DB
	Validate *validation.Validator
	Logger   *zap.Logger
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// fail writes err and logs it when the client only sees a generic 500.
func (b *Base) fail(w http.ResponseWriter, r *http.Request, err error) {
	failWith(b.Logger, w, r, err)
}

func failWith(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if apperr.Status(err) >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	utils.Error(w, err)
}

// decode reads a JSON body into v and validates it. An empty body decodes as {}.
func (b *Base) decode(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeJSON(w, r, v, maxJSONBody, b.Validate)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any, limit int64, val *validation.Validator) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.ErrTooLarge
		}
		return apperr.InvalidPayload("invalid JSON body").WithCause(err)
	}
	if val == nil {
		return nil
	}
	return val.Validate(v)
}

// requireBook rejects writes that point at a book id that does not exist.
func (b *Base) requireBook(r *http.Request, bookID string) error {
	ok, err := b.DB.BookExists(r.Context(), bookID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("book_id does not reference an existing book",
			map[string]string{"book_id": "unknown book"})
	}
	return nil
}

func newIDAndTime() (string, string, error) {
	id, err := utils.NewID()
	if err != nil {
		return "", "", err
	}
	return id, utils.NowISO(), nil
}
