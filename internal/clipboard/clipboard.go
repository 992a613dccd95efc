// Package clipboard provides platform-specific clipboard operations.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// CopyText copies plain text to the system clipboard.
func CopyText(text string) error {
	tools, err := toolsFor(runtime.GOOS)
	if err != nil {
		return err
	}

	var tried []string
	for _, tool := range tools {
		tried = append(tried, tool[0])
		if _, err := lookPath(tool[0]); err != nil {
			continue
		}
		cmd := exec.Command(tool[0], tool[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no suitable clipboard tool found (tried: %s)", strings.Join(tried, ", "))
}

// toolsFor returns the clipboard commands to try, in order of preference.
func toolsFor(goos string) ([][]string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd":
		return [][]string{
			{"wl-copy"},                          // Wayland
			{"xclip", "-selection", "clipboard"}, // X11
			{"xsel", "--clipboard", "--input"},   // X11 alternative
		}, nil
	case "darwin":
		return [][]string{{"pbcopy"}}, nil
	case "windows":
		return [][]string{{"clip.exe"}}, nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
