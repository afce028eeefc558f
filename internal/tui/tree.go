package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/backoffice/pkg/client"
	"github.com/naveenspark/backoffice/pkg/domain"
)

type treeLoadedMsg struct {
	categories []domain.Category
	err        error
}

func (m treeLoadedMsg) failure() error { return m.err }

// treeModel shows product categories as an indented hierarchy. Categories
// whose parent is missing are listed separately so they are not lost.
type treeModel struct {
	load    func(ctx context.Context) ([]domain.Category, error)
	nodes   []*domain.CategoryNode
	orphans []domain.Category
	count   int
	cursor  int
	loading bool
	stale   bool // a category changed since the last load
	err     string
	status  string
	spin    string
	width   int
	height  int
}

func newTreeModel(c *client.Client) treeModel {
	return treeModel{load: c.Categories.All}
}

func (m treeModel) Init() tea.Cmd {
	if m.nodes != nil && !m.stale {
		return nil
	}
	return m.fetch()
}

// invalidate marks the hierarchy out of date after a category mutation. The
// old nodes stay on screen until the reload lands.
func (m treeModel) invalidate() treeModel {
	m.stale = true
	m.loading = true
	return m
}

func (m treeModel) fetch() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		cats, err := load(context.Background())
		return treeLoadedMsg{categories: cats, err: err}
	}
}

func (m treeModel) Update(msg tea.Msg) (treeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case treeLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = client.UserMessage(msg.err)
			return m, nil
		}
		m.err = ""
		m.stale = false
		m.count = len(msg.categories)
		m.nodes = domain.FlattenCategoryTree(domain.BuildCategoryTree(msg.categories))
		m.orphans = domain.OrphanCategories(msg.categories)
		if m.cursor >= len(m.nodes) {
			m.cursor = max(len(m.nodes)-1, 0)
		}

	case copyResultMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied " + msg.id
		}

	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			m.loading = true
			return m, m.fetch()
		case "c":
			if m.cursor < len(m.nodes) {
				id := m.nodes[m.cursor].ID
				return m, func() tea.Msg {
					return copyResultMsg{id: id, err: clipboard.WriteAll(id)}
				}
			}
		}
	}
	return m, nil
}

func (m treeModel) View() string {
	var b strings.Builder
	title := sectionHeaderStyle.Render("categories")
	if m.count > 0 {
		title += " " + metaStyle.Render(fmt.Sprintf("%d total", m.count))
	}
	b.WriteString(" " + title + "\n")

	switch {
	case m.loading && m.nodes == nil:
		b.WriteString(" " + loadingLine(m.spin) + "\n")
		return b.String()
	case m.err != "":
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
		return b.String()
	case len(m.nodes) == 0 && len(m.orphans) == 0:
		b.WriteString("\n " + dimStyle.Render("no categories yet") + "\n")
		return b.String()
	}

	for i, n := range m.nodes {
		cursor := " "
		name := normalStyle.Render(n.Name)
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			name = selectedStyle.Render(n.Name)
		}
		branch := ""
		if n.Level > 0 {
			branch = strings.Repeat("  ", n.Level-1) + metaStyle.Render("└ ")
		}
		meta := metaStyle.Render(fmt.Sprintf("#%d", n.SortOrder))
		if !n.IsActive {
			meta += " " + activeBadge(false)
		}
		if len(n.Children) > 0 {
			meta += " " + dimStyle.Render(fmt.Sprintf("(%d)", len(n.Children)))
		}
		fmt.Fprintf(&b, " %s %s%s  %s\n", cursor, branch, name, meta)
	}

	if len(m.orphans) > 0 {
		b.WriteString("\n " + warnStyle.Render(fmt.Sprintf("%d orphaned (parent missing):", len(m.orphans))) + "\n")
		for _, o := range m.orphans {
			parent := ""
			if o.ParentID != nil {
				parent = *o.ParentID
			}
			fmt.Fprintf(&b, "   %s %s\n", dimStyle.Render(o.Name), metaStyle.Render("→ "+parent))
		}
	}
	if m.status != "" {
		b.WriteString("\n " + okStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m treeModel) helpKeys() string {
	return helpEntries("j/k", "nav", "r", "refresh", "c", "copy id")
}
