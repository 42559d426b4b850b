package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/lists/internal/cli"
	"github.com/idilsaglam/lists/internal/lists"
	"github.com/idilsaglam/lists/internal/model"
	"github.com/idilsaglam/lists/internal/store"
	"github.com/idilsaglam/lists/internal/store/filekv"
	"github.com/idilsaglam/lists/internal/ui"
)

type harness struct {
	m      *lists.Manager
	stdout bytes.Buffer
	stderr bytes.Buffer
	stdin  string
	opt    cli.Options
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })

	kv, err := filekv.Open(t.TempDir())
	require.NoError(t, err)
	s, err := store.New(kv, nil)
	require.NoError(t, err)

	n := 0
	m := lists.Open(context.Background(), s,
		lists.WithClock(func() time.Time { return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC) }),
		lists.WithIDGenerator(func() (string, error) {
			n++
			return fmt.Sprintf("id%d", n), nil
		}),
	)
	return &harness{m: m}
}

func (h *harness) run(args ...string) int {
	h.stdout.Reset()
	h.stderr.Reset()
	opt := h.opt
	opt.Stdout = &h.stdout
	opt.Stderr = &h.stderr
	opt.Stdin = strings.NewReader(h.stdin)
	return cli.Run(h.m, args, opt)
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("add", "grocery", "Oat", "milk", "--qty", "2"))
	assert.Contains(t, h.stdout.String(), "added Oat milk ×2 (id1)")

	require.Equal(t, 0, h.run("add", "todo", "File", "taxes", "--due=2026-03-09"))
	require.Equal(t, 0, h.run("add", "todo", "Someday", "-d", "none"))

	require.Equal(t, 0, h.run("ls"))
	out := h.stdout.String()
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "[ ] Oat milk ×2")
	assert.Contains(t, out, "To-Do")
	assert.Contains(t, out, "File taxes  Overdue by 1 day")
	assert.Contains(t, out, "Someday  No date")
	assert.Less(t, strings.Index(out, "File taxes"), strings.Index(out, "Someday"))
}

func TestAddEmptyNameIsSilentNoop(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 0, h.run("add", "grocery", "--qty", "3"))
	assert.Contains(t, h.stdout.String(), "nothing added")
	assert.Empty(t, h.stderr.String())
	assert.Empty(t, h.m.Groceries())

	assert.Equal(t, 0, h.run("add", "todo", "   ", "--due", "none"))
	assert.Empty(t, h.stderr.String())
	assert.Empty(t, h.m.Todos())
}

func TestAddOptionWithoutValue(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 2, h.run("add", "todo", "Buy", "--due"))
	assert.Contains(t, h.stderr.String(), "--due needs a value")
	assert.Equal(t, 2, h.run("add", "grocery", "Eggs", "-q"))
	assert.Empty(t, h.m.Todos())
	assert.Empty(t, h.m.Groceries())
}

func TestRefByIndexAndID(t *testing.T) {
	h := newHarness(t)
	h.run("add", "grocery", "Bread")
	h.run("add", "grocery", "Eggs")

	// Newest first, so #1 is Eggs.
	require.Equal(t, 0, h.run("done", "grocery", "1"))
	eggs, _ := h.m.Grocery("id2")
	assert.True(t, eggs.Checked)

	require.Equal(t, 0, h.run("rm", "g", "id1"))
	_, found := h.m.Grocery("id1")
	assert.False(t, found)

	assert.Equal(t, 2, h.run("rm", "grocery", "7"))
	assert.Contains(t, h.stderr.String(), "Hint")
}

func TestHideCheckedShiftsIndexes(t *testing.T) {
	h := newHarness(t)
	h.run("add", "todo", "first", "--due", "2026-03-11")
	h.run("add", "todo", "second", "--due", "2026-03-12")
	h.run("done", "todo", "id1")

	h.opt.HideChecked = true
	require.Equal(t, 0, h.run("rename", "todo", "1", "renamed"))
	got, _ := h.m.Todo("id2")
	assert.Equal(t, "renamed", got.Name)

	require.Equal(t, 0, h.run("ls", "todo"))
	assert.NotContains(t, h.stdout.String(), "first")
}

func TestListHideCheckedFlag(t *testing.T) {
	h := newHarness(t)
	h.run("add", "grocery", "Bread")
	h.run("add", "grocery", "Eggs")
	h.run("done", "grocery", "id1")

	require.Equal(t, 0, h.run("ls", "grocery", "--hide-checked"))
	assert.Contains(t, h.stdout.String(), "Eggs")
	assert.NotContains(t, h.stdout.String(), "Bread")

	require.Equal(t, 0, h.run("ls", "--hide-checked"))
	assert.NotContains(t, h.stdout.String(), "Bread")
	assert.Contains(t, h.stdout.String(), "To-Do")

	require.Equal(t, 0, h.run("ls", "grocery"))
	assert.Contains(t, h.stdout.String(), "Bread", "the flag only applies to its own call")
}

func TestRenameBlankIsNoop(t *testing.T) {
	h := newHarness(t)
	h.run("add", "todo", "keep")
	require.Equal(t, 0, h.run("rename", "todo", "id1", "   "))
	assert.Contains(t, h.stdout.String(), "nothing changed")
	got, _ := h.m.Todo("id1")
	assert.Equal(t, "keep", got.Name)
}

func TestDueNoteQtyShow(t *testing.T) {
	h := newHarness(t)
	h.run("add", "todo", "Dentist")
	h.run("add", "grocery", "Limes")

	require.Equal(t, 0, h.run("due", "id1", "2026-03-13"))
	require.Equal(t, 0, h.run("note", "todo", "id1", "bring", "x-rays"))
	require.Equal(t, 0, h.run("qty", "id2", "+3"))
	assert.Equal(t, 2, h.run("qty", "id2", "lots"))

	td, _ := h.m.Todo("id1")
	assert.Equal(t, "2026-03-13", td.Date)
	assert.Equal(t, "bring x-rays", td.Notes)
	g, _ := h.m.Grocery("id2")
	assert.Equal(t, 4, g.Qty)

	require.Equal(t, 0, h.run("show", "todo", "id1"))
	assert.Contains(t, h.stdout.String(), "Due in 3 days")
	assert.Contains(t, h.stdout.String(), "bring x-rays")

	require.Equal(t, 0, h.run("due", "id1", ""))
	td, _ = h.m.Todo("id1")
	assert.Empty(t, td.Date)
}

func TestClearAndReset(t *testing.T) {
	h := newHarness(t)
	h.run("add", "grocery", "a")
	h.run("add", "grocery", "b")
	h.run("done", "grocery", "id1")

	require.Equal(t, 0, h.run("clear", "grocery"))
	assert.Contains(t, h.stdout.String(), "cleared 1 checked")

	h.stdin = "n\n"
	require.Equal(t, 0, h.run("reset", "grocery"))
	assert.Contains(t, h.stdout.String(), "Clear all grocery items? [y/N]")
	assert.Len(t, h.m.Groceries(), 1)

	h.stdin = "y\n"
	require.Equal(t, 0, h.run("reset", "grocery"))
	assert.Empty(t, h.m.Groceries())

	h.run("add", "todo", "x")
	h.stdin = ""
	require.Equal(t, 0, h.run("reset", "todo", "--yes"))
	assert.Empty(t, h.m.Todos())
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)
	cases := [][]string{
		{},
		{"frobnicate"},
		{"ls", "pantry"},
		{"add", "grocery"},
		{"done", "todo"},
		{"due", "x"},
		{"reset", "todo", "--force"},
	}
	for _, args := range cases {
		assert.Equal(t, 2, h.run(args...), "args %v", args)
	}
	assert.Equal(t, 0, h.run("help"))
	assert.Contains(t, h.stdout.String(), "Subcommands:")
}

func TestTUIHook(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 1, h.run("tui"))

	var got *lists.Manager
	h.opt.TUI = func(m *lists.Manager) error { got = m; return nil }
	assert.Equal(t, 0, h.run("tui"))
	assert.Same(t, h.m, got)

	h.opt.TUI = func(*lists.Manager) error { return errors.New("no tty") }
	assert.Equal(t, 1, h.run("tui"))
	assert.Contains(t, h.stderr.String(), "no tty")
}

func TestParseKindAliases(t *testing.T) {
	for _, s := range []string{"grocery", "Groceries", "g"} {
		k, err := model.ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, model.Grocery, k)
	}
}
