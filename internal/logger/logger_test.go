package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestDebug_SilentWithoutVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("indexed %d records", 3)

	assert.Empty(t, buf.String())
}

func TestDebug_PrintsWithVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("indexed %d records", 3)

	assert.Equal(t, "[DEBUG] indexed 3 records\n", buf.String())
}

func TestError_PrintsWithoutVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("dataset unavailable: %s", "data.json")

	assert.Equal(t, "[ERROR] dataset unavailable: data.json\n", buf.String())
}

func TestSection_FormatsHeader(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Filter Recompute")

	assert.Equal(t, "\n=== Filter Recompute ===\n", buf.String())
}
