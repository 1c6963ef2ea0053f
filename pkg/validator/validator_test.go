package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sampleInput struct {
	Email         string `validate:"required,email"`
	ProgressScore int    `validate:"min=1,max=10"`
	Status        string `validate:"oneof=open done"`
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New()

	err := v.Struct(sampleInput{Email: "nope", ProgressScore: 11, Status: "closed"})

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Email must be a valid email")
	assert.Contains(t, msg, "Progress score must be at most 10")
	assert.Contains(t, msg, "Status must be one of [open done]")
}

func TestFormatValidationErrorPassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, "EOF", FormatValidationError(errors.New("EOF")))
}
