package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_PrintsVersion(t *testing.T) {
	SetVersion("1.2.3")
	defer SetVersion("dev")

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "lapidarium version 1.2.3")
}

func TestVersionCmd_DefaultIsDev(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "lapidarium version dev")
}
