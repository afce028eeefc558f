// Package browser opens URLs in the user's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// command returns the launcher for goos.
func command(goos, target string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", target), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", target), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

// Validate accepts only absolute http(s) URLs, so a record field can never
// make the launcher open a local file or another handler.
func Validate(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) url", raw)
	}
	return nil
}

// Open opens the specified URL in the user's default browser.
func Open(raw string) error {
	if err := Validate(raw); err != nil {
		return err
	}
	cmd, err := command(runtime.GOOS, raw)
	if err != nil {
		return err
	}
	return cmd.Start()
}
