package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

// allLimit is the page size used when a caller needs the whole collection
// (category trees, pickers).
const allLimit = 1000

// ListParams are the common list query parameters.
type ListParams struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
}

// Values encodes p as a query string. Zero fields are omitted.
func (p ListParams) Values() url.Values {
	params := url.Values{}
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		params.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		params.Set("search", p.Search)
	}
	for k, v := range p.Filters {
		if v != "" {
			params.Set(k, v)
		}
	}
	return params
}

// Page is one page of a list endpoint.
type Page[T any] struct {
	Items []T
	// Total is the server-side count when reported, else len(Items).
	Total int
	// TotalReported is false when Total fell back to len(Items).
	TotalReported bool
}

// decodeBody accepts a bare array, {"data": [...], "meta": {"total": n}},
// or {"items": [...], "total": n}.
func (p *Page[T]) decodeBody(data []byte) error {
	res := gjson.ParseBytes(data)
	var raw string
	switch {
	case res.IsArray():
		raw = res.Raw
	case res.Get("data").IsArray():
		raw = res.Get("data").Raw
	case res.Get("items").IsArray():
		raw = res.Get("items").Raw
	case res.Get("data.items").IsArray():
		raw = res.Get("data.items").Raw
	default:
		p.Items = nil
		p.Total = 0
		p.TotalReported = false
		return nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return err
	}
	p.Items = items
	p.Total = len(items)
	p.TotalReported = false
	for _, key := range []string{"meta.total", "total", "pagination.total", "data.total"} {
		if v := res.Get(key); v.Type == gjson.Number {
			p.Total = int(v.Int())
			p.TotalReported = true
			break
		}
	}
	return nil
}

// Listing is a read-only REST collection.
type Listing[T any] struct {
	c    *Client
	name string
	path string
}

func newListing[T any](c *Client, name, path string) *Listing[T] {
	return &Listing[T]{c: c, name: name, path: path}
}

// Path returns the collection's base path.
func (l *Listing[T]) Path() string { return l.path }

// List fetches one page.
func (l *Listing[T]) List(ctx context.Context, p ListParams) (*Page[T], error) {
	path := l.path
	if q := p.Values().Encode(); q != "" {
		path += "?" + q
	}
	var page Page[T]
	if err := l.c.get(ctx, path, &page); err != nil {
		return nil, fmt.Errorf("client.%s.List: %w", l.name, err)
	}
	return &page, nil
}

// All fetches up to allLimit records in one call.
func (l *Listing[T]) All(ctx context.Context) ([]T, error) {
	page, err := l.List(ctx, ListParams{Limit: allLimit})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// Get fetches a single record by ID.
func (l *Listing[T]) Get(ctx context.Context, id string) (*T, error) {
	var v T
	if err := l.c.get(ctx, l.itemPath(id), &v); err != nil {
		return nil, fmt.Errorf("client.%s.Get: %w", l.name, err)
	}
	return &v, nil
}

func (l *Listing[T]) itemPath(id string) string {
	return l.path + "/" + url.PathEscape(id)
}

// Collection is a REST collection with full CRUD. In is the typed request
// body for create and update.
type Collection[T any, In any] struct {
	Listing[T]
}

func newCollection[T any, In any](c *Client, name, path string) *Collection[T, In] {
	return &Collection[T, In]{Listing: Listing[T]{c: c, name: name, path: path}}
}

// Create posts a new record.
func (r *Collection[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var created T
	if err := r.c.post(ctx, r.path, in, &created); err != nil {
		return nil, fmt.Errorf("client.%s.Create: %w", r.name, err)
	}
	return &created, nil
}

// Update patches the record with the given ID.
func (r *Collection[T, In]) Update(ctx context.Context, id string, in In) (*T, error) {
	var updated T
	if err := r.c.patch(ctx, r.itemPath(id), in, &updated); err != nil {
		return nil, fmt.Errorf("client.%s.Update: %w", r.name, err)
	}
	return &updated, nil
}

// Delete removes the record with the given ID.
func (r *Collection[T, In]) Delete(ctx context.Context, id string) error {
	if err := r.c.doRequest(ctx, http.MethodDelete, r.itemPath(id), nil, nil); err != nil {
		return fmt.Errorf("client.%s.Delete: %w", r.name, err)
	}
	return nil
}
