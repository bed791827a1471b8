package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInit_Level(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Init("production", "debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Init("production", "loud")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Init("production", "")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
