package logger

import (
	"testing"

	"konsulin-assessment-engine/internal/app/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, levelFor("debug"))
	assert.Equal(t, zap.WarnLevel, levelFor("warn"))
	assert.Equal(t, zap.InfoLevel, levelFor("verbose"))
}

func TestOutputPathsFor(t *testing.T) {
	loggerConfig := config.Logger{OutputFileName: "app.log", OutputErrorFileName: "app_error.log"}

	outputs, errorOutputs := outputPathsFor("production", loggerConfig)
	assert.Equal(t, []string{"app.log"}, outputs)
	assert.Equal(t, []string{"stderr", "app_error.log"}, errorOutputs)

	outputs, errorOutputs = outputPathsFor("development", loggerConfig)
	assert.Equal(t, []string{"stdout"}, outputs)
	assert.Equal(t, []string{"stderr"}, errorOutputs)
}
