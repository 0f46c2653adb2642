package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("CG_STR", "value")
	t.Setenv("CG_BLANK", "  ")
	t.Setenv("CG_NUM", " 42 ")
	t.Setenv("CG_BADNUM", "forty")
	t.Setenv("CG_BOOL", "yes")
	t.Setenv("CG_BADBOOL", "maybe")

	assert.Equal(t, "value", GetEnv("CG_STR"))
	assert.Equal(t, "", GetEnv("CG_UNSET"))
	assert.Equal(t, "value", GetEnvString("CG_STR", "def"))
	assert.Equal(t, "def", GetEnvString("CG_BLANK", "def"))
	assert.Equal(t, "def", GetEnvString("CG_UNSET", "def"))
	assert.Equal(t, 42, GetEnvNumeric("CG_NUM", 1))
	assert.Equal(t, 1, GetEnvNumeric("CG_BADNUM", 1))
	assert.Equal(t, 7, GetEnvNumeric("CG_UNSET", 7))
	assert.True(t, GetEnvBool("CG_BOOL", false))
	assert.True(t, GetEnvBool("CG_BADBOOL", true))
	assert.False(t, GetEnvBool("CG_UNSET", false))
}
