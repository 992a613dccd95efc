package clipboard

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsFor(t *testing.T) {
	tools, err := toolsFor("linux")
	require.NoError(t, err)
	assert.Equal(t, "wl-copy", tools[0][0])

	tools, err = toolsFor("darwin")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"pbcopy"}}, tools)

	_, err = toolsFor("plan9")
	assert.EqualError(t, err, "unsupported platform: plan9")
}

func TestCopyTextWithoutTools(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	defer func() { lookPath = orig }()

	if _, err := toolsFor(runtime.GOOS); err != nil {
		t.Skip("platform has no clipboard tools")
	}
	err := CopyText("HDAG-1\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no suitable clipboard tool found")
}
