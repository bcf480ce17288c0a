package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTracedLogsEvaluation(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	p := Then(Digit.Traced("digit"), Letter.Traced("letter"))
	_, err := p.Parse(StringStream("5x"), WithTrace[rune](logger))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "parser enter", entries[0].Message)
	assert.Equal(t, "digit", entries[0].ContextMap()["parser"])
	assert.Equal(t, "parser match", entries[1].Message)
	assert.Equal(t, "parser enter", entries[2].Message)
	assert.Equal(t, "letter", entries[2].ContextMap()["parser"])
	assert.Equal(t, "parser match", entries[3].Message)
}

func TestTracedLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	_, err := Digit.Traced("digit").Parse(StringStream("x"), WithTrace[rune](logger))
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "parser fail", entries[1].Message)
	assert.EqualValues(t, 0, entries[1].ContextMap()["errorOffset"])
}

func TestTracedWithoutLoggerIsSilent(t *testing.T) {
	got, err := Digit.Traced("digit").Parse(StringStream("5"))
	require.NoError(t, err)
	assert.Equal(t, '5', got)
}
