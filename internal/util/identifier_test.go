package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalID(t *testing.T) {
	cases := map[string]string{
		"507F1F77BCF86CD799439011":             "507f1f77bcf86cd799439011",
		" 507f1f77bcf86cd799439011 ":           "507f1f77bcf86cd799439011",
		"550E8400-E29B-41D4-A716-446655440000": "550e8400-e29b-41d4-a716-446655440000",
		"550e8400e29b41d4a716446655440000":     "550e8400-e29b-41d4-a716-446655440000",
		"course-basic-1":                       "course-basic-1",
		"":                                     "",
	}
	for raw, want := range cases {
		assert.Equal(t, want, CanonicalID(raw), "raw=%q", raw)
	}
}

func TestIDVariantsObjectID(t *testing.T) {
	variants := IDVariants("507F1F77BCF86CD799439011")

	assert.Equal(t, "507f1f77bcf86cd799439011", variants[0])
	assert.Contains(t, variants, "507F1F77BCF86CD799439011")
	assert.Len(t, variants, 2)
}

func TestIDVariantsUUID(t *testing.T) {
	variants := IDVariants("550e8400-e29b-41d4-a716-446655440000")

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", variants[0])
	assert.Contains(t, variants, "550E8400-E29B-41D4-A716-446655440000")
	assert.Contains(t, variants, "550e8400e29b41d4a716446655440000")
	assert.Contains(t, variants, "550E8400E29B41D4A716446655440000")
}

func TestIDVariantsPlainString(t *testing.T) {
	assert.Equal(t, []string{"learner-1"}, IDVariants("learner-1"))
	assert.Equal(t, []string{"learner-1", " learner-1"}, IDVariants(" learner-1"))
	assert.Empty(t, IDVariants(""))
}
