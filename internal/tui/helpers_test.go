package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/backoffice/internal/querycache"
	"github.com/naveenspark/backoffice/pkg/client"
	"github.com/naveenspark/backoffice/pkg/domain"
)

// keyMsg builds a key message from its String() form.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m formModel, text string) formModel {
	for _, r := range text {
		m, _ = m.Update(keyMsg(string(r)))
	}
	return m
}

// fakeResource is an in-memory resource that records calls.
type fakeResource struct {
	mu      sync.Mutex
	rows    []row
	total   int
	loads   int
	deleted []string
	created []formValues
}

func (f *fakeResource) resource() *resource {
	return &resource{
		name:    "products",
		path:    "/products",
		columns: []column{{"name", 16}, {"status", 8}},
		fields: []formField{
			{key: "name", label: "name", required: true},
			{key: "price", label: "price", kind: kindNumber},
		},
		load: func(_ context.Context, p client.ListParams) ([]row, int, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.loads++
			return f.rows, f.total, nil
		},
		create: func(_ context.Context, v formValues) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.created = append(f.created, v)
			return nil
		},
		update: func(context.Context, string, formValues) error { return nil },
		remove: func(_ context.Context, id string) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.deleted = append(f.deleted, id)
			return nil
		},
	}
}

func (f *fakeResource) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

func testRows() []row {
	return []row{
		{id: "p1", cells: []string{"Rose Box", "active"}, image: "https://img.example.com/p1.jpg", values: formValues{"name": "Rose Box"}},
		{id: "p2", cells: []string{"Tulip Vase", "inactive"}, values: formValues{"name": "Tulip Vase"}},
	}
}

func newTestList(f *fakeResource) listModel {
	m := newListModel(f.resource(), querycache.New[listPage](16, 0), 50)
	m.width = 100
	m.height = 30
	return m
}

// loaded feeds m a successful load for its current page.
func loaded(m listModel, rows []row, total int) listModel {
	m, _ = m.Update(listLoadedMsg{resource: m.res.name, key: m.key(), page: m.page, rows: rows, total: total})
	return m
}

// newAPIServer answers every list endpoint with an empty page and records
// request bodies by method and path.
type apiServer struct {
	*httptest.Server
	mu     sync.Mutex
	bodies map[string]map[string]any
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()
	s := &apiServer{bodies: make(map[string]map[string]any)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && r.Method != http.MethodGet {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
			s.mu.Lock()
			s.bodies[r.Method+" "+r.URL.Path] = body
			s.mu.Unlock()
		}
		if r.Method == http.MethodGet && !strings.Contains(strings.TrimPrefix(r.URL.Path, "/"), "/") {
			json.NewEncoder(w).Encode(map[string]any{"data": []any{}, "meta": map[string]int{"total": 7}}) //nolint:errcheck
			return
		}
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *apiServer) body(key string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[key]
}

func newTestClient(url string) *client.Client {
	return client.New(url, client.NewMemoryTokenStore(domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))
}
