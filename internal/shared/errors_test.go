package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Name   string  `json:"name" validate:"required"`
	Status string  `json:"status" validate:"omitempty,oneof=draft sent"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

func TestValidateCollectsFields(t *testing.T) {
	err := Validate(sampleInput{Status: "lost", Amount: -1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["name"])
	assert.Equal(t, "must be one of draft sent", verr.Fields["status"])
	assert.Equal(t, "must be at least 0", verr.Fields["amount"])
	assert.Equal(t, "validation failed: amount: must be at least 0; name: is required; status: must be one of draft sent", verr.Error())
}

func TestValidatePasses(t *testing.T) {
	assert.NoError(t, Validate(sampleInput{Name: "ok", Status: "sent"}))
}

func TestFieldError(t *testing.T) {
	err := FieldError("orders", "must be an array")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation failed: orders: must be an array", err.Error())
}
