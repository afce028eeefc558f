package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/backoffice/pkg/client"
)

// formSubmittedMsg reports the outcome of a form submit.
type formSubmittedMsg struct {
	resource string
	done     string // status line on success
	err      error
}

func (m formSubmittedMsg) failure() error { return m.err }

// formModel is a create/edit form over a list of fields.
type formModel struct {
	resource string
	title    string
	fields   []formField
	values   formValues
	focus    int
	submit   func(ctx context.Context, v formValues) error
	done     string

	statusMsg string
	submitted bool
	closed    bool
}

func newFormModel(resource, title string, fields []formField, initial formValues, done string, submit func(context.Context, formValues) error) formModel {
	values := formValues{}
	for _, f := range fields {
		values[f.key] = initial[f.key]
		if values[f.key] == "" {
			switch f.kind {
			case kindBool:
				values[f.key] = "yes"
			case kindChoice:
				if len(f.choices) > 0 {
					values[f.key] = f.choices[0]
				}
			}
		}
	}
	return formModel{
		resource: resource,
		title:    title,
		fields:   fields,
		values:   values,
		submit:   submit,
		done:     done,
	}
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	switch msg := msg.(type) {
	case formSubmittedMsg:
		m.submitted = false
		if msg.err != nil {
			m.statusMsg = client.UserMessage(msg.err)
			return m, nil
		}
		m.closed = true
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m formModel) updateKeys(msg tea.KeyMsg) (formModel, tea.Cmd) {
	if m.submitted {
		return m, nil
	}
	m.statusMsg = ""
	if len(m.fields) == 0 {
		if msg.String() == "esc" {
			m.closed = true
		}
		return m, nil
	}
	f := m.fields[m.focus]

	switch msg.String() {
	case "esc":
		m.closed = true
	case "ctrl+s":
		return m.trySubmit()
	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.fields)
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
	case "enter":
		if m.focus == len(m.fields)-1 {
			return m.trySubmit()
		}
		m.focus++
	case "left", "right", " ":
		switch f.kind {
		case kindBool:
			m.values[f.key] = yesNo(!m.values.bool(f.key))
			return m, nil
		case kindChoice:
			m.values[f.key] = cycleChoice(f.choices, m.values[f.key], msg.String() != "left")
			return m, nil
		}
		m.values[f.key] = editText(m.values[f.key], msg)
	default:
		if f.kind == kindBool || f.kind == kindChoice {
			return m, nil
		}
		m.values[f.key] = editText(m.values[f.key], msg)
	}
	return m, nil
}

func cycleChoice(choices []string, current string, forward bool) string {
	if len(choices) == 0 {
		return current
	}
	idx := 0
	for i, c := range choices {
		if c == current {
			idx = i
			break
		}
	}
	if forward {
		idx = (idx + 1) % len(choices)
	} else {
		idx = (idx - 1 + len(choices)) % len(choices)
	}
	return choices[idx]
}

// validate checks required fields and number syntax before anything is sent.
func (m formModel) validate() error {
	for _, f := range m.fields {
		v := m.values.str(f.key)
		if f.required && v == "" {
			return fmt.Errorf("%s is required", f.label)
		}
		switch f.kind {
		case kindNumber:
			if _, err := m.values.float(f.key); err != nil {
				return fmt.Errorf("%s must be a number", f.label)
			}
		case kindInt:
			if _, err := m.values.int(f.key); err != nil {
				return fmt.Errorf("%s must be a whole number", f.label)
			}
		}
	}
	return nil
}

func (m formModel) trySubmit() (formModel, tea.Cmd) {
	if err := m.validate(); err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}
	if m.submit == nil {
		m.closed = true
		return m, nil
	}
	m.submitted = true
	values := formValues{}
	for k, v := range m.values {
		values[k] = v
	}
	submit, resource, done := m.submit, m.resource, m.done
	return m, func() tea.Msg {
		err := submit(context.Background(), values)
		return formSubmittedMsg{resource: resource, done: done, err: err}
	}
}

func (m formModel) View() string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render(m.title) + "\n\n")

	labelWidth := 0
	for _, f := range m.fields {
		labelWidth = max(labelWidth, len(f.label))
	}

	for i, f := range m.fields {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = accentStyle.Render(">")
			style = selectedStyle
		}
		label := fmt.Sprintf("%-*s", labelWidth, f.label)
		if f.required {
			label += "*"
		} else {
			label += " "
		}

		value := m.values[f.key]
		switch f.kind {
		case kindBool, kindChoice:
			value = accentStyle.Render(value)
			if i == m.focus {
				value += dimStyle.Render("  (←/→ to change)")
			}
		default:
			if i == m.focus {
				value += "█"
			}
		}
		fmt.Fprintf(&b, " %s %s  %s\n", cursor, style.Render(label), value)
	}

	b.WriteString("\n")
	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("saving..."))
	case m.statusMsg != "":
		b.WriteString(" " + errorStyle.Render(m.statusMsg))
	}
	return b.String()
}
