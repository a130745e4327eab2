package logger_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/carteira/internal/logger"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	log := logger.New(logger.Options{Level: "warn", JSON: true, Out: &buf})

	log.Info().Msg("hidden")
	log.Warn().Str("owner", "u1").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"shown"`)
	assert.Contains(t, out, `"owner":"u1"`)
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	log := logger.New(logger.Options{Level: "loud", JSON: true, Out: &bytes.Buffer{}})

	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer

	stored := logger.New(logger.Options{JSON: true, Out: &buf})
	ctx := logger.WithContext(context.Background(), stored)

	log := logger.FromContext(ctx, logger.Nop())
	log.Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	fallback := logger.FromContext(context.Background(), logger.Nop())
	assert.Equal(t, zerolog.Disabled, fallback.GetLevel())
}
