package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/naveenspark/backoffice/pkg/client"
)

// column is one table column of a resource list.
type column struct {
	title string
	width int
}

// row is one rendered record. values pre-fills the edit form.
type row struct {
	id     string
	cells  []string
	image  string
	status string // coloured with statusStyle when set
	values formValues
}

// fieldKind controls how a form field is edited and parsed.
type fieldKind int

const (
	kindText fieldKind = iota
	kindNumber
	kindInt
	kindBool
	kindChoice
)

// formField describes one input of a create/edit form.
type formField struct {
	key      string
	label    string
	kind     fieldKind
	required bool
	choices  []string // kindChoice only
}

// formValues holds raw form input keyed by formField.key.
type formValues map[string]string

func (v formValues) str(key string) string {
	return strings.TrimSpace(v[key])
}

func (v formValues) float(key string) (float64, error) {
	s := v.str(key)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number", key)
	}
	return f, nil
}

func (v formValues) int(key string) (int, error) {
	s := v.str(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: not a whole number", key)
	}
	return n, nil
}

func (v formValues) bool(key string) bool {
	switch strings.ToLower(v.str(key)) {
	case "yes", "true", "1", "y":
		return true
	}
	return false
}

// list splits a comma-separated field.
func (v formValues) list(key string) []string {
	var out []string
	for _, p := range strings.Split(v.str(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// optional returns nil for an empty field.
func (v formValues) optional(key string) *string {
	s := v.str(key)
	if s == "" {
		return nil
	}
	return &s
}

// rowAction is an extra key binding on a list, such as approve or block.
type rowAction struct {
	key     string
	label   string
	confirm string // when set, ask "<confirm> <id>?" first
	run     func(ctx context.Context, r row) (string, error)
	// form, when set, opens a form for the selected row instead of run.
	form func(r row) *formModel
}

// resource describes one back-office collection for the generic list screen.
type resource struct {
	name    string
	path    string // cache key prefix, matches the API collection path
	columns []column
	load    func(ctx context.Context, p client.ListParams) ([]row, int, error)

	// fields and create/update are nil for read-only resources.
	fields  []formField
	create  func(ctx context.Context, v formValues) error
	update  func(ctx context.Context, id string, v formValues) error
	remove  func(ctx context.Context, id string) error
	actions []rowAction
}

func (r *resource) readOnly() bool { return r.create == nil && r.update == nil && r.remove == nil }

func (r *resource) action(key string) (rowAction, bool) {
	for _, a := range r.actions {
		if a.key == key {
			return a, true
		}
	}
	return rowAction{}, false
}

// listLoader adapts a client listing to the list screen.
func listLoader[T any](l *client.Listing[T], toRow func(T) row) func(context.Context, client.ListParams) ([]row, int, error) {
	return func(ctx context.Context, p client.ListParams) ([]row, int, error) {
		page, err := l.List(ctx, p)
		if err != nil {
			return nil, 0, err
		}
		rows := make([]row, 0, len(page.Items))
		for _, it := range page.Items {
			rows = append(rows, toRow(it))
		}
		return rows, page.Total, nil
	}
}

// crud wires list, create, update and delete of a collection. parse turns
// form input into the typed request body.
func crud[T, In any](r *resource, col *client.Collection[T, In], toRow func(T) row, parse func(formValues) (In, error)) {
	r.load = listLoader(&col.Listing, toRow)
	r.create = func(ctx context.Context, v formValues) error {
		in, err := parse(v)
		if err != nil {
			return err
		}
		_, err = col.Create(ctx, in)
		return err
	}
	r.update = func(ctx context.Context, id string, v formValues) error {
		in, err := parse(v)
		if err != nil {
			return err
		}
		_, err = col.Update(ctx, id, in)
		return err
	}
	r.remove = col.Delete
}
