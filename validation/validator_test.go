package validation_test

import (
	"net/http"
	"testing"

	"github.com/kevinaaaquil/myb/backend/apperr"
	"github.com/kevinaaaquil/myb/backend/models"
	"github.com/kevinaaaquil/myb/backend/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_OK(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Validate(models.SignupRequest{Username: "ann", Email: "ann@example.com", Password: "pw"}))
	assert.NoError(t, v.Validate(&models.BookInput{Title: "Dune", Price: 4.5}))
}

func TestValidate_MissingField(t *testing.T) {
	v := validation.New()

	err := v.Validate(models.BookInput{Author: "Herbert"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrMissingField)
	assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	assert.Equal(t, "title required", apperr.Message(err))

	err = v.Validate(models.CommentInput{})
	require.Error(t, err)
	assert.Equal(t, "book_id, comment required", apperr.Message(err))
}

func TestValidate_Rules(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name  string
		in    any
		field string
		msg   string
	}{
		{"bad email", models.SignupRequest{Username: "a", Email: "nope", Password: "x"}, "email", "must be a valid email address"},
		{"negative price", models.BookInput{Title: "t", Price: -1}, "price", "must be greater than or equal to 0"},
		{"negative chapter", models.ProgressInput{BookID: "b", CurrentChapter: -2}, "current_chapter", "must be greater than or equal to 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrValidation)

			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.msg, ae.Details[tt.field])
		})
	}
}

func TestValidate_EmptyTitlePatch(t *testing.T) {
	v := validation.New()
	empty := ""
	err := v.Validate(models.BookPatch{Title: &empty})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.NoError(t, v.Validate(models.BookPatch{}))
}
