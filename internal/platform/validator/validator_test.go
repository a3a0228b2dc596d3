package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string `json:"name" validate:"required,max=10"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
	Note    string `validate:"omitempty,min=3"`
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(contactForm{Name: "Asha", Email: "asha@example.com", Message: "hi"}))

	err := v.Struct(contactForm{Name: "A very long name", Email: "nope", Note: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must be at most 10 characters")
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "message is required")
	assert.Contains(t, err.Error(), "Note must be at least 3 characters")
}

func TestValidator_Var(t *testing.T) {
	v := New()
	assert.NoError(t, v.Var("https://example.com/map", "url"))
	assert.Error(t, v.Var("not a url", "url"))
}
