package lists

import (
	"cmp"
	"slices"
	"time"

	"github.com/idilsaglam/lists/internal/due"
	"github.com/idilsaglam/lists/internal/model"
)

// SortTodosForDisplay returns a sorted copy of items:
//
//  1. unchecked before checked
//  2. dated before undated
//  3. soonest (most overdue) first
//  4. earliest created first
//
// The sort is stable, so items equal on every key keep their stored order.
func SortTodosForDisplay(items []model.TodoItem, today time.Time) []model.TodoItem {
	type keyed struct {
		item  model.TodoItem
		days  int
		dated bool
	}
	ks := make([]keyed, len(items))
	for i, it := range items {
		d, ok := due.Diff(it.Date, today)
		ks[i] = keyed{item: it, days: d, dated: ok}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		if a.item.Checked != b.item.Checked {
			if a.item.Checked {
				return 1
			}
			return -1
		}
		if a.dated != b.dated {
			if a.dated {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(a.days, b.days); c != 0 {
			return c
		}
		return cmp.Compare(a.item.CreatedAt, b.item.CreatedAt)
	})
	out := make([]model.TodoItem, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}

// FilterHidden drops the items matching pred when hide is set. The input
// slice is never modified.
func FilterHidden[T any](items []T, hide bool, pred func(T) bool) []T {
	if !hide {
		return slices.Clone(items)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// GroceryChecked and TodoChecked are the usual FilterHidden predicates.
func GroceryChecked(it model.GroceryItem) bool { return it.Checked }
func TodoChecked(it model.TodoItem) bool       { return it.Checked }

// GroceryView is the grocery list as rendered: stored order, optionally
// without checked items.
func (m *Manager) GroceryView(hideChecked bool) []model.GroceryItem {
	return FilterHidden(m.groceries, hideChecked, GroceryChecked)
}

// TodoView is the to-do list as rendered: display order for today,
// optionally without checked items.
func (m *Manager) TodoView(hideChecked bool) []model.TodoItem {
	return FilterHidden(SortTodosForDisplay(m.todos, m.Today()), hideChecked, TodoChecked)
}

// normalizeGroceries repairs hand-edited records: quantities below 1 and
// duplicate ids.
func normalizeGroceries(items []model.GroceryItem) []model.GroceryItem {
	seen := make(map[string]bool, len(items))
	for i := range items {
		if items[i].Qty < 1 {
			items[i].Qty = 1
		}
		items[i].ID = dedupe(seen, items[i].ID, i)
	}
	return items
}

func normalizeTodos(items []model.TodoItem) []model.TodoItem {
	seen := make(map[string]bool, len(items))
	for i := range items {
		if items[i].Date != "" && !due.Valid(items[i].Date) {
			items[i].Date = ""
		}
		items[i].ID = dedupe(seen, items[i].ID, i)
	}
	return items
}

func dedupe(seen map[string]bool, id string, pos int) string {
	for seen[id] {
		id = id + "-" + string(rune('a'+pos%26))
	}
	seen[id] = true
	return id
}
