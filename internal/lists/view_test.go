package lists_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/lists/internal/due"
	"github.com/idilsaglam/lists/internal/lists"
	"github.com/idilsaglam/lists/internal/model"
)

func ids(items []model.TodoItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestSortTodosForDisplay(t *testing.T) {
	today := due.Midnight(now)

	t.Run("checked last, undated after dated", func(t *testing.T) {
		items := []model.TodoItem{
			{ID: "checked-tomorrow", Checked: true, Date: "2026-03-11", CreatedAt: 1},
			{ID: "open-nodate", CreatedAt: 2},
			{ID: "open-overdue", Date: "2026-03-01", CreatedAt: 3},
		}
		got := lists.SortTodosForDisplay(items, today)
		assert.Equal(t, []string{"open-overdue", "open-nodate", "checked-tomorrow"}, ids(got))
		assert.Equal(t, "checked-tomorrow", items[0].ID, "input must not be reordered")
	})

	t.Run("soonest first then creation", func(t *testing.T) {
		items := []model.TodoItem{
			{ID: "later", Date: "2026-04-01", CreatedAt: 1},
			{ID: "today-new", Date: "2026-03-10", CreatedAt: 9},
			{ID: "today-old", Date: "2026-03-10", CreatedAt: 2},
			{ID: "overdue", Date: "2026-03-08", CreatedAt: 5},
			{ID: "nodate-old", CreatedAt: 1},
			{ID: "nodate-new", CreatedAt: 7},
		}
		got := lists.SortTodosForDisplay(items, today)
		assert.Equal(t, []string{"overdue", "today-old", "today-new", "later", "nodate-old", "nodate-new"}, ids(got))
	})

	t.Run("stable on full ties", func(t *testing.T) {
		items := []model.TodoItem{
			{ID: "b", Date: "2026-03-12"},
			{ID: "a", Date: "2026-03-12"},
		}
		assert.Equal(t, []string{"b", "a"}, ids(lists.SortTodosForDisplay(items, today)))
	})

	t.Run("malformed date sorts as undated", func(t *testing.T) {
		items := []model.TodoItem{
			{ID: "bad", Date: "soon", CreatedAt: 1},
			{ID: "good", Date: "2026-12-01", CreatedAt: 2},
		}
		assert.Equal(t, []string{"good", "bad"}, ids(lists.SortTodosForDisplay(items, today)))
	})

	t.Run("distant years keep their order", func(t *testing.T) {
		items := []model.TodoItem{
			{ID: "y3000", Date: "3000-01-01", CreatedAt: 1},
			{ID: "y2400", Date: "2400-01-01", CreatedAt: 2},
			{ID: "y1000", Date: "1000-01-01", CreatedAt: 3},
			{ID: "y0001", Date: "0001-01-01", CreatedAt: 4},
		}
		assert.Equal(t, []string{"y0001", "y1000", "y2400", "y3000"}, ids(lists.SortTodosForDisplay(items, today)))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, lists.SortTodosForDisplay(nil, today))
	})
}

func TestFilterHidden(t *testing.T) {
	items := []model.GroceryItem{
		{ID: "a", Checked: true},
		{ID: "b"},
		{ID: "c", Checked: true},
	}

	shown := lists.FilterHidden(items, true, lists.GroceryChecked)
	assert.Len(t, shown, 1)
	assert.Equal(t, "b", shown[0].ID)
	assert.Len(t, items, 3, "underlying collection untouched")

	assert.Equal(t, items, lists.FilterHidden(items, false, lists.GroceryChecked))
}

func TestTodoView(t *testing.T) {
	m, _ := newManager(t)
	nodate, _, _ := m.AddTodo("someday", "none")
	soon, _, _ := m.AddTodo("soon", "2026-03-13")
	done, _, _ := m.AddTodo("done", "2026-03-09")
	_, _ = m.ToggleChecked(model.Todo, done.ID)

	assert.Equal(t, []string{soon.ID, nodate.ID, done.ID}, ids(m.TodoView(false)))
	assert.Equal(t, []string{soon.ID, nodate.ID}, ids(m.TodoView(true)))
	assert.Equal(t, []string{done.ID, soon.ID, nodate.ID}, ids(m.Todos()), "stored order stays newest-first")
}
