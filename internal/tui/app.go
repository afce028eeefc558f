package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/backoffice/internal/querycache"
	"github.com/naveenspark/backoffice/pkg/client"
	"github.com/naveenspark/backoffice/pkg/domain"
)

// Options tune the TUI.
type Options struct {
	PageSize  int
	CacheSize int
	CacheTTL  time.Duration
}

// failureMsg is implemented by every async result that can carry an error.
type failureMsg interface {
	failure() error
}

// App is the root Bubbletea model.
type App struct {
	client   *client.Client
	tab      int
	sub      [numTabs]int
	lists    map[string]listModel
	tree     treeModel
	counters []counter
	stats    []statCount
	statsErr string
	admin    *domain.Admin
	spin     spinner.Model
	helpOpen bool
	expired  bool
	width    int
	height   int
	frame    int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(c *client.Client, opts Options) App {
	cache := querycache.New[listPage](opts.CacheSize, opts.CacheTTL)
	lists := make(map[string]listModel)
	for name, res := range buildResources(c) {
		lists[name] = newListModel(res, cache, opts.PageSize)
	}
	a := App{
		client:   c,
		lists:    lists,
		tree:     newTreeModel(c),
		counters: dashboardCounters(c),
		spin:     newSpinner(),
	}
	a.tree.loading = true
	if admin, err := c.Me(); err == nil {
		a.admin = admin
	}
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.spin.Tick, loadStats(a.counters), a.initCurrent())
}

func (a App) current() string {
	return tabEntries[a.tab][a.sub[a.tab]]
}

func (a App) initCurrent() tea.Cmd {
	if a.current() == treeEntry {
		return a.tree.Init()
	}
	return a.lists[a.current()].Init()
}

// currentEditing reports whether the active screen is capturing keys.
func (a App) currentEditing() bool {
	if a.current() == treeEntry {
		return false
	}
	return a.lists[a.current()].editing()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if fm, ok := msg.(failureMsg); ok && client.Classify(fm.failure()) == client.KindSessionExpired {
		a.expired = true
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + entries(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		for name, l := range a.lists {
			a.lists[name], _ = l.Update(bodyMsg)
		}
		a.tree, _ = a.tree.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case statsLoadedMsg:
		if msg.err != nil {
			a.statsErr = client.UserMessage(msg.err)
		} else {
			a.stats = msg.counts
			a.statsErr = ""
		}
		return a, nil

	case listLoadedMsg:
		return a.routeList(msg.resource, msg)
	case formSubmittedMsg:
		model, cmd := a.routeList(msg.resource, msg)
		if msg.err == nil {
			return model.(App).afterMutation(msg.resource, cmd)
		}
		return model, cmd
	case actionDoneMsg:
		model, cmd := a.routeList(msg.resource, msg)
		if msg.err == nil {
			return model.(App).afterMutation(msg.resource, cmd)
		}
		return model, cmd

	case treeLoadedMsg:
		var cmd tea.Cmd
		a.tree, cmd = a.tree.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.routeCurrent(msg)
}

// afterMutation reloads the header counts and, when a category changed,
// the category tree. The tree refetches now if visible, else on next visit.
func (a App) afterMutation(resource string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{cmd, loadStats(a.counters)}
	if resource == categoriesEntry {
		a.tree = a.tree.invalidate()
		if a.current() == treeEntry {
			cmds = append(cmds, a.tree.fetch())
		}
	}
	return a, tea.Batch(cmds...)
}

func (a App) routeList(name string, msg tea.Msg) (tea.Model, tea.Cmd) {
	l, ok := a.lists[name]
	if !ok {
		return a, nil
	}
	var cmd tea.Cmd
	a.lists[name], cmd = l.Update(msg)
	return a, cmd
}

func (a App) routeCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.current() == treeEntry {
		var cmd tea.Cmd
		a.tree, cmd = a.tree.Update(msg)
		return a, cmd
	}
	return a.routeList(a.current(), msg)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.expired {
		if msg.String() == "q" || msg.String() == "esc" {
			return a, tea.Quit
		}
		return a, nil
	}

	// Help overlay captures all keys when open
	if a.helpOpen {
		switch msg.String() {
		case "h", "?", "esc":
			a.helpOpen = false
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	// Forms, search and confirm prompts own the keyboard.
	if a.currentEditing() {
		return a.routeCurrent(msg)
	}

	switch key := msg.String(); key {
	case "q":
		return a, tea.Quit
	case "h", "?":
		a.helpOpen = true
		return a, nil
	case "1", "2", "3", "4", "5", "6":
		t := int(key[0] - '1')
		if t != a.tab {
			a.tab = t
			return a, a.initCurrent()
		}
		return a, nil
	case "tab", "l", "right":
		n := len(tabEntries[a.tab])
		a.sub[a.tab] = (a.sub[a.tab] + 1) % n
		return a, a.initCurrent()
	case "shift+tab", "left":
		n := len(tabEntries[a.tab])
		a.sub[a.tab] = (a.sub[a.tab] - 1 + n) % n
		return a, a.initCurrent()
	}
	return a.routeCurrent(msg)
}

func centered(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func (a App) View() string {
	if a.expired {
		return a.expiredView()
	}

	// Header: logo, then who is signed in and the summary counts
	header := centered(renderShimmerLogo(a.frame), a.width)
	var info []string
	if a.admin != nil {
		who := a.admin.Email
		if a.admin.Role != "" {
			who += " (" + a.admin.Role + ")"
		}
		info = append(info, dimStyle.Render(who))
	}
	switch {
	case a.statsErr != "":
		info = append(info, errorStyle.Render(a.statsErr))
	case len(a.stats) > 0:
		info = append(info, renderStats(a.stats))
	default:
		info = append(info, a.spin.View()+" "+metaStyle.Render("counting"))
	}
	header += "\n" + centered(strings.Join(info, metaStyle.Render("  |  ")), a.width)

	// Tab bar: equal-width columns spread across the terminal
	colWidth := a.width / numTabs
	var tabBar strings.Builder
	for i, name := range tabNames {
		key := fmt.Sprintf("%d", i+1)
		var label string
		if i == a.tab {
			label = accentStyle.Render(key) + " " + selectedStyle.Underline(true).Render(name)
		} else {
			label = metaStyle.Render(key) + " " + dimStyle.Render(name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max((colWidth-labelWidth)/2, 0)
		rightPad := max(colWidth-labelWidth-leftPad, 0)
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	// Entries of the current tab
	var entries []string
	for i, e := range tabEntries[a.tab] {
		if i == a.sub[a.tab] {
			entries = append(entries, searchStyle.Render(e))
		} else {
			entries = append(entries, dimStyle.Render(e))
		}
	}
	entryBar := " " + strings.Join(entries, metaStyle.Render("  ·  "))

	var body, help string
	if a.current() == treeEntry {
		t := a.tree
		t.spin = a.spin.View()
		body = t.View()
		help = a.tree.helpKeys()
	} else {
		l := a.lists[a.current()]
		l.spin = a.spin.View()
		body = l.View()
		help = l.helpKeys()
	}
	if !a.currentEditing() {
		help = helpEntries("1-6", "tabs", "tab", "next") + "  " + help + "  " + helpEntries("h", "help", "q", "quit")
	}

	if a.helpOpen {
		body = helpView()
		help = helpEntries("esc", "close", "q", "quit")
	}

	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n %s", header, tabBar.String(), entryBar, body, help)
}

func (a App) expiredView() string {
	msg := errorStyle.Bold(true).Render("Session expired") + "\n\n" +
		normalStyle.Render("Your refresh token was rejected and the saved session was cleared.") + "\n" +
		normalStyle.Render("Run ") + accentStyle.Render("backoffice login") + normalStyle.Render(" and start again.") + "\n\n" +
		dimStyle.Render("q to quit")
	box := expiredBoxStyle.Render(msg)
	if a.width > 0 && a.height > 0 {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
