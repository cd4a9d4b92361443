package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrom(t *testing.T) {
	notFound := NewNoteNotFoundError(7)
	assert.Same(t, notFound, From(fmt.Errorf("wrapped: %w", notFound)))
	assert.Equal(t, "Note with id 7 not found", notFound.Error())

	resp := From(errors.New("pq: password authentication failed"))
	assert.Equal(t, http.StatusInternalServerError, resp.Code())
	assert.Equal(t, "Internal server error", resp.Error())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNoteNotFoundError(1)))
	assert.False(t, IsNotFound(MalformedJSONError))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestFromValidationError(t *testing.T) {
	type body struct {
		Text      *string `validate:"required,max=3"`
		Completed *bool   `validate:"required"`
	}
	long := "abcd"
	err := validator.New().Struct(body{Text: &long})

	s := FromValidationError(err)
	require.NotNil(t, s)
	assert.Equal(t, http.StatusBadRequest, s.Code())
	assert.Equal(t, []string{"Value is too long, max: 3"}, s.Errors["text"])
	assert.Equal(t, []string{"This field is required"}, s.Errors["completed"])
	assert.Equal(t, "validation failed: completed: This field is required; text: Value is too long, max: 3", s.Error())

	assert.Nil(t, FromValidationError(errors.New("not a validation error")))
}
