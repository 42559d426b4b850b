package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/lists/internal/due"
	"github.com/idilsaglam/lists/internal/model"
	"github.com/idilsaglam/lists/internal/ui"
)

// row adapts either item type to bubbles/list.Item.
type row struct {
	kind    model.Kind
	grocery model.GroceryItem
	todo    model.TodoItem
	today   time.Time
}

func (r row) id() string {
	if r.kind == model.Grocery {
		return r.grocery.ID
	}
	return r.todo.ID
}

func (r row) name() string {
	if r.kind == model.Grocery {
		return r.grocery.Name
	}
	return r.todo.Name
}

func (r row) checked() bool {
	if r.kind == model.Grocery {
		return r.grocery.Checked
	}
	return r.todo.Checked
}

func (r row) notes() string {
	if r.kind == model.Grocery {
		return r.grocery.Notes
	}
	return r.todo.Notes
}

func (r row) FilterValue() string { return r.name() }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := r.name()
	if r.checked() {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}

	var extra string
	if r.kind == model.Grocery {
		extra = t.Accent.Render(fmt.Sprintf("×%d", r.grocery.Qty))
	} else {
		extra = ui.Badge(due.ComputeBucket(r.todo.Date, r.today))
	}
	if r.notes() != "" {
		extra += " " + t.Muted.Render("✎")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+box+" "+text+"  "+extra)
}
