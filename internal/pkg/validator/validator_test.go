package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string `json:"name" validate:"required"`
	Interval int    `json:"maintenance_interval" validate:"gt=0"`
}

func TestValidateUsesJSONNames(t *testing.T) {
	errs := Validate(sample{})
	assert.Equal(t, "required", errs["name"])
	assert.Equal(t, "gt=0", errs["maintenance_interval"])

	assert.Nil(t, Validate(sample{Name: "Pump", Interval: 30}))
}

func TestDescribeNonValidationError(t *testing.T) {
	errs := Describe(errors.New("unexpected EOF"))
	assert.Equal(t, "unexpected EOF", errs["body"])
}
