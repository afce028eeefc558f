package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/naveenspark/backoffice/pkg/client"
)

func testFields() []formField {
	return []formField{
		{key: "name", label: "name", required: true},
		{key: "price", label: "price", kind: kindNumber},
		{key: "stock", label: "stock", kind: kindInt},
		{key: "isActive", label: "active", kind: kindBool},
		{key: "channel", label: "channel", kind: kindChoice, choices: []string{"push", "email", "sms"}},
	}
}

func TestFormDefaults(t *testing.T) {
	m := newFormModel("products", "New product", testFields(), nil, "created", nil)
	if m.values["isActive"] != "yes" {
		t.Errorf("bool default = %q, want yes", m.values["isActive"])
	}
	if m.values["channel"] != "push" {
		t.Errorf("choice default = %q, want first choice", m.values["channel"])
	}
}

func TestFormRequiredField(t *testing.T) {
	called := false
	m := newFormModel("products", "New product", testFields(), nil, "created", func(context.Context, formValues) error {
		called = true
		return nil
	})

	m, cmd := m.Update(keyMsg("ctrl+s"))
	if cmd != nil {
		t.Fatal("submit with a missing required field should not run")
	}
	if !strings.Contains(m.View(), "name is required") {
		t.Errorf("expected validation message, got:\n%s", m.View())
	}
	if called {
		t.Error("submit func was called")
	}
}

func TestFormNumberValidation(t *testing.T) {
	m := newFormModel("products", "New product", testFields(), nil, "created", func(context.Context, formValues) error { return nil })
	m = typeText(m, "Rose")
	m, _ = m.Update(keyMsg("tab"))
	m = typeText(m, "12,5")

	m, cmd := m.Update(keyMsg("ctrl+s"))
	if cmd != nil {
		t.Fatal("invalid number should block submit")
	}
	if !strings.Contains(m.View(), "price must be a number") {
		t.Errorf("expected number error, got:\n%s", m.View())
	}

	m.values["price"] = "12.5"
	m, _ = m.Update(keyMsg("tab"))
	m = typeText(m, "1.5")
	m, cmd = m.Update(keyMsg("ctrl+s"))
	if cmd != nil {
		t.Error("fractional stock should be rejected")
	}
	if !strings.Contains(m.View(), "stock must be a whole number") {
		t.Errorf("expected whole number error, got:\n%s", m.View())
	}
}

func TestFormToggleAndCycle(t *testing.T) {
	m := newFormModel("x", "t", testFields(), nil, "", nil)
	m.focus = 3 // isActive
	m, _ = m.Update(keyMsg("right"))
	if m.values["isActive"] != "no" {
		t.Errorf("toggle = %q, want no", m.values["isActive"])
	}
	m, _ = m.Update(keyMsg("a"))
	if m.values["isActive"] != "no" {
		t.Error("typing into a bool field should be ignored")
	}

	m.focus = 4 // channel
	m, _ = m.Update(keyMsg("right"))
	if m.values["channel"] != "email" {
		t.Errorf("cycle right = %q, want email", m.values["channel"])
	}
	m, _ = m.Update(keyMsg("left"))
	m, _ = m.Update(keyMsg("left"))
	if m.values["channel"] != "sms" {
		t.Errorf("cycle left wraps = %q, want sms", m.values["channel"])
	}
}

func TestFormFocusWraps(t *testing.T) {
	m := newFormModel("x", "t", testFields(), nil, "", nil)
	m, _ = m.Update(keyMsg("shift+tab"))
	if m.focus != len(testFields())-1 {
		t.Errorf("shift+tab from first field: focus=%d", m.focus)
	}
	m, _ = m.Update(keyMsg("tab"))
	if m.focus != 0 {
		t.Errorf("tab from last field: focus=%d", m.focus)
	}
}

func TestFormSubmit(t *testing.T) {
	var got formValues
	m := newFormModel("products", "New product", testFields(), formValues{"name": "Rose"}, "created",
		func(_ context.Context, v formValues) error {
			got = v
			return nil
		})
	m, _ = m.Update(keyMsg("tab"))
	m = typeText(m, "9.99")

	m, cmd := m.Update(keyMsg("ctrl+s"))
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	if !strings.Contains(m.View(), "saving...") {
		t.Errorf("expected saving state, got:\n%s", m.View())
	}
	msg := cmd().(formSubmittedMsg)
	if msg.err != nil || msg.done != "created" || msg.resource != "products" {
		t.Fatalf("unexpected msg %+v", msg)
	}
	if got["name"] != "Rose" || got["price"] != "9.99" || got["isActive"] != "yes" {
		t.Errorf("submitted values = %v", got)
	}

	m, _ = m.Update(msg)
	if !m.closed {
		t.Error("form should close after success")
	}
}

func TestFormSubmitErrorKeepsFormOpen(t *testing.T) {
	m := newFormModel("products", "New product", testFields(), formValues{"name": "Rose"}, "created",
		func(context.Context, formValues) error { return errors.New("sku already exists") })
	m, cmd := m.Update(keyMsg("ctrl+s"))
	m, _ = m.Update(cmd())
	if m.closed {
		t.Fatal("form closed after a failed submit")
	}
	if !strings.Contains(m.View(), "sku already exists") {
		t.Errorf("expected server error in view, got:\n%s", m.View())
	}
}

func TestFormSubmitErrorShowsUserMessage(t *testing.T) {
	m := newFormModel("products", "New product", testFields(), formValues{"name": "Rose"}, "created",
		func(context.Context, formValues) error {
			return fmt.Errorf("client.Products.Create: %w", &client.ValidationError{
				HTTPError: client.HTTPError{StatusCode: 400, Message: "price must be positive; name is taken"},
				Messages:  []string{"price must be positive", "name is taken"},
			})
		})
	m, cmd := m.Update(keyMsg("ctrl+s"))
	m, _ = m.Update(cmd())
	view := m.View()
	if !strings.Contains(view, "price must be positive; name is taken") {
		t.Errorf("expected validation messages, got:\n%s", view)
	}
	if strings.Contains(view, "client.Products.Create") || strings.Contains(view, "HTTP 400") {
		t.Errorf("form leaked the wrapped error chain:\n%s", view)
	}
}

func TestFormEscCloses(t *testing.T) {
	m := newFormModel("x", "t", testFields(), nil, "", nil)
	m, _ = m.Update(keyMsg("esc"))
	if !m.closed {
		t.Error("esc should close the form")
	}
}
