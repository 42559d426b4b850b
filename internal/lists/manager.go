// Package lists owns the grocery and to-do collections. Every successful
// mutation is written through to the store before the call returns.
//
// A Manager is not safe for concurrent use; callers drive it from a single
// goroutine (one CLI command, or the TUI update loop).
package lists

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/idilsaglam/lists/internal/due"
	"github.com/idilsaglam/lists/internal/model"
	"github.com/idilsaglam/lists/internal/store"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 8
	idAttempts = 8
)

// NoDue, passed as the date to AddTodo, creates a task without a due date.
const NoDue = "none"

// Manager holds both collections in stored order (newest first).
type Manager struct {
	store  *store.Store
	logger *log.Logger
	now    func() time.Time
	newID  func() (string, error)

	groceries []model.GroceryItem
	todos     []model.TodoItem

	lastCreated int64
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator replaces the nanoid generator.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(m *Manager) { m.newID = fn }
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func defaultID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// Open loads both collections from s. Missing or malformed records start
// empty; it never fails.
func Open(ctx context.Context, s *store.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  s,
		logger: log.New(io.Discard),
		now:    time.Now,
		newID:  defaultID,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.groceries = normalizeGroceries(store.Read[model.GroceryItem](ctx, s, store.GroceryKey))
	m.todos = normalizeTodos(store.Read[model.TodoItem](ctx, s, store.TodoKey))
	for _, t := range m.todos {
		m.lastCreated = max(m.lastCreated, t.CreatedAt)
	}
	m.logger.Debug("lists loaded", "groceries", len(m.groceries), "todos", len(m.todos))
	return m
}

// Today is local midnight of the manager's clock.
func (m *Manager) Today() time.Time { return due.Midnight(m.now()) }

// Groceries returns a copy of the grocery list in stored order.
func (m *Manager) Groceries() []model.GroceryItem { return slices.Clone(m.groceries) }

// Todos returns a copy of the to-do list in stored order.
func (m *Manager) Todos() []model.TodoItem { return slices.Clone(m.todos) }

// Grocery looks an item up by id.
func (m *Manager) Grocery(id string) (model.GroceryItem, bool) {
	if i := m.groceryIndex(id); i >= 0 {
		return m.groceries[i], true
	}
	return model.GroceryItem{}, false
}

// Todo looks a task up by id.
func (m *Manager) Todo(id string) (model.TodoItem, bool) {
	if i := m.todoIndex(id); i >= 0 {
		return m.todos[i], true
	}
	return model.TodoItem{}, false
}

// Stats counts checked and total items of a collection.
func (m *Manager) Stats(kind model.Kind) (done, total int) {
	switch kind {
	case model.Grocery:
		for _, it := range m.groceries {
			if it.Checked {
				done++
			}
		}
		return done, len(m.groceries)
	case model.Todo:
		for _, it := range m.todos {
			if it.Checked {
				done++
			}
		}
		return done, len(m.todos)
	}
	return 0, 0
}

// ParseQty reads a quantity field. Anything that is not a positive integer
// becomes 1.
func ParseQty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// AddGrocery prepends a new unchecked item. An empty name is rejected.
func (m *Manager) AddGrocery(name, qty string) (model.GroceryItem, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.GroceryItem{}, false, nil
	}
	id, err := m.uniqueID(func(id string) bool { return m.groceryIndex(id) >= 0 })
	if err != nil {
		return model.GroceryItem{}, false, err
	}
	it := model.GroceryItem{ID: id, Name: name, Qty: ParseQty(qty)}
	m.groceries = slices.Insert(m.groceries, 0, it)
	return it, true, m.persist(model.Grocery)
}

// AddTodo prepends a new task. An empty or unparseable date means today;
// NoDue leaves the task undated.
func (m *Manager) AddTodo(name, date string) (model.TodoItem, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.TodoItem{}, false, nil
	}
	id, err := m.uniqueID(func(id string) bool { return m.todoIndex(id) >= 0 })
	if err != nil {
		return model.TodoItem{}, false, err
	}
	it := model.TodoItem{ID: id, Name: name, Date: m.defaultDate(date), CreatedAt: m.nextCreated()}
	m.todos = slices.Insert(m.todos, 0, it)
	return it, true, m.persist(model.Todo)
}

func (m *Manager) defaultDate(date string) string {
	date = strings.TrimSpace(date)
	if strings.EqualFold(date, NoDue) {
		return ""
	}
	if t, ok := due.Parse(date, m.now().Location()); ok {
		return due.Format(t)
	}
	return due.Format(m.Today())
}

// nextCreated returns a creation stamp strictly greater than any handed out
// or loaded so far, even if the wall clock goes backwards.
func (m *Manager) nextCreated() int64 {
	ts := m.now().UnixMilli()
	if ts <= m.lastCreated {
		ts = m.lastCreated + 1
	}
	m.lastCreated = ts
	return ts
}

func (m *Manager) uniqueID(taken func(string) bool) (string, error) {
	for i := 0; i < idAttempts; i++ {
		id, err := m.newID()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		if id != "" && !taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate id: no free id after %d attempts", idAttempts)
}

// Remove deletes the item with id. Unknown ids are a no-op, so repeated calls
// are harmless.
func (m *Manager) Remove(kind model.Kind, id string) (bool, error) {
	switch kind {
	case model.Grocery:
		i := m.groceryIndex(id)
		if i < 0 {
			return false, nil
		}
		m.groceries = slices.Delete(m.groceries, i, i+1)
	case model.Todo:
		i := m.todoIndex(id)
		if i < 0 {
			return false, nil
		}
		m.todos = slices.Delete(m.todos, i, i+1)
	default:
		return false, nil
	}
	return true, m.persist(kind)
}

// ToggleChecked flips the checked flag.
func (m *Manager) ToggleChecked(kind model.Kind, id string) (bool, error) {
	return m.update(kind, id,
		func(it *model.GroceryItem) bool { it.Checked = !it.Checked; return true },
		func(it *model.TodoItem) bool { it.Checked = !it.Checked; return true },
	)
}

// Rename replaces the name. A blank name leaves the item untouched.
func (m *Manager) Rename(kind model.Kind, id, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	return m.update(kind, id,
		func(it *model.GroceryItem) bool { it.Name = name; return true },
		func(it *model.TodoItem) bool { it.Name = name; return true },
	)
}

// SetNotes stores trimmed free text; an empty string clears the notes.
func (m *Manager) SetNotes(kind model.Kind, id, text string) (bool, error) {
	text = strings.TrimSpace(text)
	return m.update(kind, id,
		func(it *model.GroceryItem) bool { it.Notes = text; return true },
		func(it *model.TodoItem) bool { it.Notes = text; return true },
	)
}

// Reschedule sets a task's due date, or clears it when date is empty.
// Malformed dates are ignored.
func (m *Manager) Reschedule(id, date string) (bool, error) {
	date = strings.TrimSpace(date)
	if date != "" {
		t, ok := due.Parse(date, m.now().Location())
		if !ok {
			return false, nil
		}
		date = due.Format(t)
	}
	return m.update(model.Todo, id, nil, func(it *model.TodoItem) bool {
		it.Date = date
		return true
	})
}

// AdjustQuantity adds delta to a grocery quantity, never going below 1.
// It reports false when the quantity did not change.
func (m *Manager) AdjustQuantity(id string, delta int) (bool, error) {
	return m.update(model.Grocery, id, func(it *model.GroceryItem) bool {
		q := max(1, it.Qty+delta)
		if q == it.Qty {
			return false
		}
		it.Qty = q
		return true
	}, nil)
}

// ClearChecked drops every checked item and returns how many went.
func (m *Manager) ClearChecked(kind model.Kind) (int, error) {
	var removed int
	switch kind {
	case model.Grocery:
		n := len(m.groceries)
		m.groceries = slices.DeleteFunc(m.groceries, func(it model.GroceryItem) bool { return it.Checked })
		removed = n - len(m.groceries)
	case model.Todo:
		n := len(m.todos)
		m.todos = slices.DeleteFunc(m.todos, func(it model.TodoItem) bool { return it.Checked })
		removed = n - len(m.todos)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, m.persist(kind)
}

// Reset empties a collection. Asking the user first is the caller's job.
func (m *Manager) Reset(kind model.Kind) (bool, error) {
	switch kind {
	case model.Grocery:
		if len(m.groceries) == 0 {
			return false, nil
		}
		m.groceries = []model.GroceryItem{}
	case model.Todo:
		if len(m.todos) == 0 {
			return false, nil
		}
		m.todos = []model.TodoItem{}
	default:
		return false, nil
	}
	return true, m.persist(kind)
}

// update applies fn to the matching item of kind. fn reports whether it
// changed anything; a nil fn means the kind does not support the edit.
func (m *Manager) update(kind model.Kind, id string, gfn func(*model.GroceryItem) bool, tfn func(*model.TodoItem) bool) (bool, error) {
	switch kind {
	case model.Grocery:
		i := m.groceryIndex(id)
		if gfn == nil || i < 0 || !gfn(&m.groceries[i]) {
			return false, nil
		}
	case model.Todo:
		i := m.todoIndex(id)
		if tfn == nil || i < 0 || !tfn(&m.todos[i]) {
			return false, nil
		}
	default:
		return false, nil
	}
	return true, m.persist(kind)
}

func (m *Manager) persist(kind model.Kind) error {
	ctx := context.Background()
	var err error
	switch kind {
	case model.Grocery:
		err = store.Write(ctx, m.store, store.GroceryKey, m.groceries)
	case model.Todo:
		err = store.Write(ctx, m.store, store.TodoKey, m.todos)
	}
	if err != nil {
		m.logger.Warn("write-through failed", "list", kind, "err", err)
	}
	return err
}

func (m *Manager) groceryIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(m.groceries, func(it model.GroceryItem) bool { return it.ID == id })
}

func (m *Manager) todoIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(m.todos, func(it model.TodoItem) bool { return it.ID == id })
}
