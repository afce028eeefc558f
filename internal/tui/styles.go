package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/backoffice/pkg/domain"
)

// Shimmer animation for the header logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "BACKOFFICE" with a slow amber wave moving
// left to right. Dark bronze (#5c3d12) to bright amber (#fbbf24).
func renderShimmerLogo(frame int) string {
	const text = "BACKOFFICE"
	n := len(text)
	t := float64(frame)

	var b strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		v := math.Sin(t*0.08-x*2.5)*0.5 + 0.5
		v = math.Pow(v, 1.4)*0.8 + 0.2

		r := clampByte(92 + v*(251-92))
		g := clampByte(61 + v*(191-61))
		bl := clampByte(18 + v*(36-18))
		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(text[i])))
		if i < n-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#facc15"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))

	headerCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0")).
			Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e4e4ec")).
				Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fbbf24")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#505868")).
				Italic(true)

	expiredBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#f87171")).
			Padding(1, 3)
)

func newSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(accentStyle))
}

// loadingLine renders the loading placeholder, prefixed by the spinner frame
// when one is running.
func loadingLine(frame string) string {
	if frame == "" {
		return dimStyle.Render("loading...")
	}
	return frame + " " + dimStyle.Render("loading...")
}

// statusStyle colours a workflow status (delivery, occasion, payment,
// withdrawal) by how settled it is.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case domain.DeliveryDelivered, domain.OccasionCompleted, domain.OccasionConfirmed,
		domain.WithdrawalApproved, "succeeded", "paid":
		return okStyle
	case domain.DeliveryFailed, domain.DeliveryCancelled, domain.WithdrawalRejected, "refunded":
		return errorStyle
	case domain.DeliveryPending, domain.DeliveryAssigned, domain.DeliveryInTransit:
		return warnStyle
	}
	return dimStyle
}

// activeBadge renders an is-active flag.
func activeBadge(active bool) string {
	if active {
		return okStyle.Render("active")
	}
	return metaStyle.Render("inactive")
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpEntries joins pairs of key, label.
func helpEntries(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

type helpItem struct {
	key  string
	desc string
}

var helpItems = []helpItem{
	{"1-6", "switch tab"},
	{"tab / shift+tab", "next / previous resource in the tab"},
	{"j / k", "move the cursor"},
	{"[ / ]", "previous / next page"},
	{"/", "search the current list"},
	{"r", "reload, bypassing the cache"},
	{"n / e", "new record / edit selected"},
	{"d", "delete selected (asks first)"},
	{"c", "copy the selected id"},
	{"o", "open the selected image in the browser"},
	{"ctrl+s", "submit a form"},
	{"esc", "close a form or this help"},
	{"q", "quit"},
}

func helpView() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fbbf24"))
	keyStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n", title.Render("Keys"))
	for _, it := range helpItems {
		fmt.Fprintf(&b, "    %s  %s\n", keyStyle.Render(fmt.Sprintf("%-18s", it.key)), descStyle.Render(it.desc))
	}
	b.WriteString("\n    " + dimStyle.Render("CLI: backoffice login | logout | status | categories tree | upload <file>") + "\n")
	return b.String()
}
