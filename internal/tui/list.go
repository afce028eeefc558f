package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/backoffice/internal/browser"
	"github.com/naveenspark/backoffice/internal/querycache"
	"github.com/naveenspark/backoffice/pkg/client"
)

// -- messages --

type listLoadedMsg struct {
	resource string
	key      string
	page     int
	rows     []row
	total    int
	cached   bool
	err      error
}

func (m listLoadedMsg) failure() error { return m.err }

type actionDoneMsg struct {
	resource string
	status   string
	err      error
}

func (m actionDoneMsg) failure() error { return m.err }

type copyResultMsg struct {
	id  string
	err error
}

type openResultMsg struct {
	err error
}

// listPage is what the query cache stores for one list request.
type listPage struct {
	rows  []row
	total int
}

// pendingConfirm is a destructive action waiting for y/n.
type pendingConfirm struct {
	prompt string
	run    func(ctx context.Context) (string, error)
}

// -- model --

type listModel struct {
	res      *resource
	cache    *querycache.Cache[listPage]
	pageSize int

	rows    []row
	total   int
	page    int
	cursor  int
	loading bool
	err     string

	query     string // applied search
	searching bool
	draft     string // search being typed

	confirm  *pendingConfirm
	form     formModel
	formOpen bool

	status    string
	statusErr bool
	spin      string // spinner frame, set by the app before View
	width     int
	height    int
}

func newListModel(res *resource, cache *querycache.Cache[listPage], pageSize int) listModel {
	if pageSize <= 0 {
		pageSize = 50
	}
	return listModel{res: res, cache: cache, pageSize: pageSize, page: 1, loading: true}
}

func (m listModel) Init() tea.Cmd {
	if len(m.rows) > 0 {
		return nil
	}
	return m.load(false)
}

func (m listModel) params() client.ListParams {
	return client.ListParams{Page: m.page, Limit: m.pageSize, Search: m.query}
}

func (m listModel) key() string {
	return querycache.Key(m.res.path, m.params().Values())
}

// load fetches the current page, serving from the cache unless force is set.
func (m listModel) load(force bool) tea.Cmd {
	res, cache, page := m.res, m.cache, m.page
	p := m.params()
	key := m.key()
	if !force && cache != nil {
		if hit, ok := cache.Get(key); ok {
			return func() tea.Msg {
				return listLoadedMsg{resource: res.name, key: key, page: page, rows: hit.rows, total: hit.total, cached: true}
			}
		}
	}
	return func() tea.Msg {
		rows, total, err := res.load(context.Background(), p)
		if err == nil && cache != nil {
			cache.Put(key, listPage{rows: rows, total: total})
		}
		return listLoadedMsg{resource: res.name, key: key, page: page, rows: rows, total: total, err: err}
	}
}

func (m listModel) editing() bool {
	return m.searching || m.formOpen || m.confirm != nil
}

func (m listModel) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m listModel) lastPage() int {
	if m.total <= 0 {
		return 1
	}
	return (m.total + m.pageSize - 1) / m.pageSize
}

func (m *listModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// invalidate drops every cached page of this resource.
func (m listModel) invalidate() {
	if m.cache != nil {
		m.cache.InvalidatePath(m.res.path)
	}
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case listLoadedMsg:
		if msg.key != m.key() {
			return m, nil // superseded by a later page or search
		}
		m.loading = false
		if msg.err != nil {
			m.err = client.UserMessage(msg.err)
			return m, nil
		}
		m.err = ""
		m.rows = msg.rows
		m.total = msg.total
		if m.cursor >= len(m.rows) {
			m.cursor = max(len(m.rows)-1, 0)
		}

	case formSubmittedMsg:
		m.form, _ = m.form.Update(msg)
		if msg.err != nil {
			return m, nil
		}
		m.formOpen = false
		m.setStatus(msg.done, false)
		m.invalidate()
		m.loading = true
		return m, m.load(true)

	case actionDoneMsg:
		if msg.err != nil {
			m.setStatus(client.UserMessage(msg.err), true)
			return m, nil
		}
		m.setStatus(msg.status, false)
		m.invalidate()
		m.loading = true
		return m, m.load(true)

	case copyResultMsg:
		if msg.err != nil {
			m.setStatus("copy failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("copied "+msg.id, false)
		}

	case openResultMsg:
		if msg.err != nil {
			m.setStatus("open failed: "+msg.err.Error(), true)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if m.formOpen {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		if m.form.closed {
			m.formOpen = false
		}
		return m, cmd
	}
	if m.confirm != nil {
		return m.handleConfirm(msg)
	}
	if m.searching {
		return m.handleSearch(msg)
	}

	m.status = ""
	switch key := msg.String(); key {
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(m.rows)-1, 0)
	case "]":
		if m.page < m.lastPage() {
			m.page++
			m.cursor = 0
			m.loading = true
			return m, m.load(false)
		}
	case "[":
		if m.page > 1 {
			m.page--
			m.cursor = 0
			m.loading = true
			return m, m.load(false)
		}
	case "r":
		m.invalidate()
		m.loading = true
		return m, m.load(true)
	case "/":
		m.searching = true
		m.draft = m.query
	case "esc":
		if m.query != "" {
			m.query = ""
			m.page = 1
			m.loading = true
			return m, m.load(false)
		}
	case "n":
		if m.res.create != nil {
			m.form = newFormModel(m.res.name, "New "+singular(m.res.name), m.res.fields, nil, "created", m.res.create)
			m.formOpen = true
		}
	case "e":
		if r, ok := m.selected(); ok && m.res.update != nil {
			id, update := r.id, m.res.update
			m.form = newFormModel(m.res.name, "Edit "+singular(m.res.name)+" "+id, m.res.fields, r.values, "saved", func(ctx context.Context, v formValues) error {
				return update(ctx, id, v)
			})
			m.formOpen = true
		}
	case "d":
		if r, ok := m.selected(); ok && m.res.remove != nil {
			id, remove := r.id, m.res.remove
			m.confirm = &pendingConfirm{
				prompt: fmt.Sprintf("delete %s %s?", singular(m.res.name), id),
				run: func(ctx context.Context) (string, error) {
					return "deleted " + id, remove(ctx, id)
				},
			}
		}
	case "c":
		if r, ok := m.selected(); ok {
			id := r.id
			return m, func() tea.Msg {
				return copyResultMsg{id: id, err: clipboard.WriteAll(id)}
			}
		}
	case "o":
		if r, ok := m.selected(); ok {
			if r.image == "" {
				m.setStatus("no image", true)
				return m, nil
			}
			url := r.image
			return m, func() tea.Msg {
				return openResultMsg{err: browser.Open(url)}
			}
		}
	default:
		if a, ok := m.res.action(key); ok {
			return m.runAction(a)
		}
	}
	return m, nil
}

func (m listModel) runAction(a rowAction) (listModel, tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		return m, nil
	}
	if a.form != nil {
		if f := a.form(r); f != nil {
			m.form = *f
			m.formOpen = true
		}
		return m, nil
	}
	run := func(ctx context.Context) (string, error) { return a.run(ctx, r) }
	if a.confirm != "" {
		m.confirm = &pendingConfirm{prompt: fmt.Sprintf("%s %s?", a.confirm, r.id), run: run}
		return m, nil
	}
	return m, m.runCmd(run)
}

func (m listModel) runCmd(run func(ctx context.Context) (string, error)) tea.Cmd {
	name := m.res.name
	return func() tea.Msg {
		status, err := run(context.Background())
		return actionDoneMsg{resource: name, status: status, err: err}
	}
}

func (m listModel) handleConfirm(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		run := m.confirm.run
		m.confirm = nil
		return m, m.runCmd(run)
	case "n", "N", "esc":
		m.confirm = nil
		m.setStatus("cancelled", false)
	}
	return m, nil
}

func (m listModel) handleSearch(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.query = strings.TrimSpace(m.draft)
		m.page = 1
		m.cursor = 0
		m.loading = true
		return m, m.load(false)
	case "esc":
		m.searching = false
		m.draft = ""
	default:
		m.draft = editText(m.draft, msg)
	}
	return m, nil
}

func (m listModel) View() string {
	if m.formOpen {
		return m.form.View()
	}

	var b strings.Builder

	// Title line: name, count, page, search
	title := sectionHeaderStyle.Render(m.res.name)
	if m.total > 0 {
		title += " " + metaStyle.Render(fmt.Sprintf("%d total · page %d/%d", m.total, m.page, m.lastPage()))
	}
	if m.query != "" && !m.searching {
		title += "  " + searchStyle.Render("/"+m.query)
	}
	if m.res.readOnly() {
		title += "  " + metaStyle.Render("read-only")
	}
	b.WriteString(" " + title + "\n")

	if m.searching {
		b.WriteString(" " + inputPromptStyle.Render("/ ") + m.draft + "█\n")
	}

	switch {
	case m.loading && len(m.rows) == 0:
		b.WriteString(" " + loadingLine(m.spin) + "\n")
		return b.String()
	case m.err != "":
		b.WriteString(" " + errorStyle.Render("error: "+m.err) + "\n")
		return b.String()
	case len(m.rows) == 0:
		empty := "nothing here yet"
		if m.query != "" {
			empty = fmt.Sprintf("no %s match %q", m.res.name, m.query)
		}
		b.WriteString("\n " + dimStyle.Render(empty) + "\n")
		return b.String()
	}

	// Header
	var header strings.Builder
	header.WriteString("   ")
	for _, c := range m.res.columns {
		header.WriteString(padRight(c.title, c.width) + "  ")
	}
	b.WriteString(headerCellStyle.Render(strings.TrimRight(header.String(), " ")) + "\n")

	for i, r := range m.rows {
		isActive := i == m.cursor
		cursor := " "
		if isActive {
			cursor = accentStyle.Render("▸")
		}
		var line strings.Builder
		for j, c := range m.res.columns {
			cell := ""
			if j < len(r.cells) {
				cell = r.cells[j]
			}
			cell = padRight(cell, c.width)
			switch {
			case r.status != "" && strings.TrimSpace(cell) == r.status:
				cell = statusStyle(r.status).Render(cell)
			case isActive:
				cell = selectedStyle.Render(cell)
			default:
				cell = normalStyle.Render(cell)
			}
			line.WriteString(cell + "  ")
		}
		text := " " + cursor + " " + strings.TrimRight(line.String(), " ")
		if isActive {
			text = selectedRowBg.Render(text)
		}
		b.WriteString(text + "\n")
	}

	if m.confirm != nil {
		b.WriteString("\n " + warnStyle.Render(m.confirm.prompt) + " " + dimStyle.Render("y/n") + "\n")
	} else if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString("\n " + style.Render(m.status) + "\n")
	}
	return b.String()
}

func (m listModel) helpKeys() string {
	switch {
	case m.formOpen:
		return helpEntries("tab", "next", "←/→", "toggle", "ctrl+s", "save", "esc", "cancel")
	case m.confirm != nil:
		return helpEntries("y", "confirm", "n", "cancel")
	case m.searching:
		return helpEntries("enter", "search", "esc", "cancel")
	}
	pairs := []string{"j/k", "nav", "[/]", "page", "/", "search", "r", "refresh"}
	if m.res.readOnly() && len(m.res.actions) == 0 {
		return helpEntries(append(pairs, "c", "copy id")...)
	}
	if m.res.create != nil {
		pairs = append(pairs, "n", "new")
	}
	if m.res.update != nil {
		pairs = append(pairs, "e", "edit")
	}
	if m.res.remove != nil {
		pairs = append(pairs, "d", "delete")
	}
	for _, a := range m.res.actions {
		pairs = append(pairs, a.key, a.label)
	}
	pairs = append(pairs, "c", "copy id")
	return helpEntries(pairs...)
}

// singular turns a resource name like "delivery partners" into "delivery partner".
func singular(name string) string {
	switch {
	case strings.HasSuffix(name, "ies"):
		return strings.TrimSuffix(name, "ies") + "y"
	case strings.HasSuffix(name, "xes"):
		return strings.TrimSuffix(name, "es")
	case strings.HasSuffix(name, "s"):
		return strings.TrimSuffix(name, "s")
	}
	return name
}
