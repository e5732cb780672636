package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel_AcceptsGinModes(t *testing.T) {
	defer SetLevel("info")

	SetLevel("release")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	SetLevel("test")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLevel("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	SetLevel("nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetOutput_RedirectsPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	log.Info().Msg("janela calculada")
	assert.Contains(t, buf.String(), "janela calculada")
}
