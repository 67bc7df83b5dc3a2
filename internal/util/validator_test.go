package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `binding:"required,max=5"`
	Count int    `binding:"min=0"`
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(&sample{Name: "abc", Count: 1}))

	err := ValidateStruct(&sample{Count: -1})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "sample.Name failed required")
	assert.Contains(t, err.Error(), "sample.Count failed min=0")
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("abc", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}
