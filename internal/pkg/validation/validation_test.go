package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutInput struct {
	ProductID    string `validate:"required,uuid"`
	DurationDays int    `validate:"oneof=7 14 30"`
	Locale       string `validate:"omitempty,oneof=en bg"`
}

func TestStruct(t *testing.T) {
	ok := checkoutInput{ProductID: "7a1f6d2c-4c1e-4c55-9a57-0d3c0f4d5e6f", DurationDays: 14}
	require.NoError(t, Struct(ok))

	bad := ok
	bad.DurationDays = 10
	err := Struct(bad)
	require.Error(t, err)
	assert.Equal(t, "DurationDays", FailedField(err))

	bad = ok
	bad.ProductID = "not-a-uuid"
	assert.Equal(t, "ProductID", FailedField(Struct(bad)))

	bad = ok
	bad.Locale = "de"
	assert.Equal(t, "Locale", FailedField(Struct(bad)))
}

func TestFailedFieldIgnoresOtherErrors(t *testing.T) {
	assert.Equal(t, "", FailedField(errors.New("x")))
	assert.Equal(t, "", FailedField(nil))
}
