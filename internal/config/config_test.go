package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	assert.True(t, envBool("MISSING_BOOL", true))
	assert.False(t, envBool("MISSING_BOOL", false))

	t.Setenv("SOME_BOOL", "false")
	assert.False(t, envBool("SOME_BOOL", true))

	t.Setenv("SOME_BOOL", "1")
	assert.True(t, envBool("SOME_BOOL", false))

	t.Setenv("SOME_BOOL", "not-a-bool")
	assert.True(t, envBool("SOME_BOOL", true))
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("SOME_DURATION", "90m")
	assert.Equal(t, 90*time.Minute, envDuration("SOME_DURATION", 0))

	t.Setenv("SOME_DURATION", "bogus")
	assert.Equal(t, time.Hour, envDuration("SOME_DURATION", time.Hour))
}
