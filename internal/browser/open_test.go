package browser

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		url string
		ok  bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/rose.jpg", true},
		{"http://localhost:3000/uploads/a.png", true},
		{"file:///etc/passwd", false},
		{"javascript:alert(1)", false},
		{"/relative/path.jpg", false},
		{"https://", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := Validate(tt.url)
			if (err == nil) != tt.ok {
				t.Errorf("Validate(%q) = %v, want ok=%v", tt.url, err, tt.ok)
			}
		})
	}
}

func TestOpenRejectsBeforeLaunching(t *testing.T) {
	if err := Open("file:///tmp/x"); err == nil || !strings.Contains(err.Error(), "refusing") {
		t.Errorf("Open(file url) = %v", err)
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		goos string
		bin  string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"windows", "rundll32"},
	}
	for _, tt := range tests {
		cmd, err := command(tt.goos, "https://example.com")
		if err != nil {
			t.Fatalf("%s: %v", tt.goos, err)
		}
		if !strings.HasSuffix(cmd.Args[0], tt.bin) || cmd.Args[len(cmd.Args)-1] != "https://example.com" {
			t.Errorf("%s: args = %v", tt.goos, cmd.Args)
		}
	}
	if _, err := command("plan9", "https://example.com"); err == nil {
		t.Error("expected unsupported OS error")
	}
}
