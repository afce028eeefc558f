package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/naveenspark/backoffice/pkg/domain"
)

func strPtr(s string) *string { return &s }

func testCategories() []domain.Category {
	return []domain.Category{
		{ID: "c2", Name: "Gifts", SortOrder: 2, IsActive: true},
		{ID: "c1", Name: "Flowers", SortOrder: 1, IsActive: true},
		{ID: "c3", Name: "Roses", ParentID: strPtr("c1"), SortOrder: 1, IsActive: true},
		{ID: "c4", Name: "Lost", ParentID: strPtr("gone"), IsActive: true},
	}
}

func newTestTree() treeModel {
	m := treeModel{load: func(context.Context) ([]domain.Category, error) { return testCategories(), nil }}
	m.width = 80
	m.height = 30
	return m
}

func TestTreeRendersHierarchy(t *testing.T) {
	m := newTestTree()
	m, _ = m.Update(m.fetch()())

	view := m.View()
	flowers := strings.Index(view, "Flowers")
	roses := strings.Index(view, "Roses")
	gifts := strings.Index(view, "Gifts")
	if flowers < 0 || roses < 0 || gifts < 0 {
		t.Fatalf("missing categories in view:\n%s", view)
	}
	if !(flowers < roses && roses < gifts) {
		t.Errorf("expected Flowers, Roses, Gifts in order, got:\n%s", view)
	}
	if !strings.Contains(view, "└ Roses") {
		t.Errorf("expected Roses nested under Flowers, got:\n%s", view)
	}
	if !strings.Contains(view, "4 total") {
		t.Errorf("expected total count, got:\n%s", view)
	}
}

func TestTreeListsOrphans(t *testing.T) {
	m := newTestTree()
	m, _ = m.Update(m.fetch()())

	if len(m.nodes) != 3 {
		t.Errorf("placed nodes = %d, want 3", len(m.nodes))
	}
	view := m.View()
	if !strings.Contains(view, "1 orphaned") || !strings.Contains(view, "Lost") {
		t.Errorf("expected orphan section, got:\n%s", view)
	}
}

func TestTreeCursorAndCopy(t *testing.T) {
	m := newTestTree()
	m, _ = m.Update(m.fetch()())

	m, _ = m.Update(keyMsg("j"))
	if m.nodes[m.cursor].ID != "c3" {
		t.Errorf("cursor on %s, want c3", m.nodes[m.cursor].ID)
	}
	_, cmd := m.Update(keyMsg("c"))
	if cmd == nil {
		t.Error("expected copy command")
	}
	_, cmd = m.Update(keyMsg("r"))
	if cmd == nil {
		t.Error("expected reload command")
	}
}

func TestTreeEmpty(t *testing.T) {
	m := newTestTree()
	m, _ = m.Update(treeLoadedMsg{})
	if !strings.Contains(m.View(), "no categories yet") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}
}
