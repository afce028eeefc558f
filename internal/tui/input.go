package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen caps search and form inputs, in runes.
const maxInputLen = 2000

// editText applies one key event to a single-line input. Typed and pasted
// runes are appended up to maxInputLen; control characters such as pasted
// newlines are dropped. Backspace removes a whole rune. Other keys leave the
// text alone.
func editText(text string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		if text == "" {
			return text
		}
		_, size := utf8.DecodeLastRuneInString(text)
		return text[:len(text)-size]
	case tea.KeySpace:
		return appendClamped(text, " ")
	case tea.KeyRunes:
		if msg.Alt {
			return text
		}
		return appendClamped(text, string(msg.Runes))
	}
	return text
}

func appendClamped(text, add string) string {
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	var b strings.Builder
	b.WriteString(text)
	for _, r := range add {
		if room == 0 {
			break
		}
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
		room--
	}
	return b.String()
}

// truncateToHeight keeps at most maxLines lines of s. maxLines <= 0 keeps all.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
