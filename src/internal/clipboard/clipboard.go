// Package clipboard copies text to the system clipboard through the platform's
// command-line helpers.
package clipboard

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when no clipboard helper is installed.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

var lookPath = exec.LookPath

// command picks the helper for goos, trying candidates in order.
func command(goos string) ([]string, error) {
	var candidates [][]string
	switch goos {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "linux", "freebsd", "openbsd":
		candidates = [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	case "windows":
		candidates = [][]string{{"clip"}}
	}
	for _, c := range candidates {
		if _, err := lookPath(c[0]); err == nil {
			return c, nil
		}
	}
	return nil, ErrClipboardUnavailable
}

// IsAvailable reports whether Copy can work on this system.
func IsAvailable() bool {
	_, err := command(runtime.GOOS)
	return err == nil
}

// Copy places text on the clipboard.
func Copy(text string) error {
	argv, err := command(runtime.GOOS)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
