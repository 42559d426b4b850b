package cli

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/lists/internal/due"
	"github.com/idilsaglam/lists/internal/model"
	"github.com/idilsaglam/lists/internal/ui"
)

func (r *runner) doList(kinds ...model.Kind) int {
	for i, kind := range kinds {
		if i > 0 {
			fmt.Fprintln(r.opt.Stdout)
		}
		var lines []string
		if kind == model.Grocery {
			lines = r.groceryLines()
		} else {
			lines = r.todoLines()
		}
		fmt.Fprintln(r.opt.Stdout, ui.Panel(lines))
	}
	return 0
}

func (r *runner) header(title string, kind model.Kind) []string {
	t := ui.Current()
	done, total := r.m.Stats(kind)
	return []string{
		fmt.Sprintf("%s   %s %d  %s %d  %s %d",
			t.Title.Render(title),
			t.Success.Render(t.SymDone), done,
			t.Pending.Render(t.SymPending), total-done,
			t.Accent.Render("Total"), total,
		),
		t.Muted.Render(ui.ProgressBar(done, total, 24)),
	}
}

func (r *runner) groceryLines() []string {
	t := ui.Current()
	lines := r.header("Groceries", model.Grocery)
	view := r.m.GroceryView(r.opt.HideChecked)
	if len(view) == 0 {
		return append(lines, t.Muted.Render("nothing to buy"))
	}
	for i, it := range view {
		name := it.Name
		if it.Checked {
			name = t.Done.Render(name)
		}
		line := fmt.Sprintf("%2d. %s %s %s  %s",
			i+1, t.Box(it.Checked), name,
			t.Accent.Render(fmt.Sprintf("×%d", it.Qty)),
			t.Muted.Render(it.ID))
		lines = append(lines, line)
		if it.Notes != "" {
			lines = append(lines, "      "+t.Muted.Render(firstLine(it.Notes)))
		}
	}
	return lines
}

func (r *runner) todoLines() []string {
	t := ui.Current()
	lines := r.header("To-Do", model.Todo)
	view := r.m.TodoView(r.opt.HideChecked)
	if len(view) == 0 {
		return append(lines, t.Muted.Render("all clear"))
	}
	today := r.m.Today()
	for i, it := range view {
		name := it.Name
		if it.Checked {
			name = t.Done.Render(name)
		}
		line := fmt.Sprintf("%2d. %s %s  %s  %s",
			i+1, t.Box(it.Checked), name,
			ui.Badge(due.ComputeBucket(it.Date, today)),
			t.Muted.Render(it.ID))
		lines = append(lines, line)
		if it.Notes != "" {
			lines = append(lines, "      "+t.Muted.Render(firstLine(it.Notes)))
		}
	}
	return lines
}

func (r *runner) doShow(kind model.Kind, id string) int {
	t := ui.Current()
	var lines []string
	if kind == model.Grocery {
		it, _ := r.m.Grocery(id)
		lines = []string{
			t.Title.Render(it.Name),
			fmt.Sprintf("%s  Qty %d  %s", t.Box(it.Checked), it.Qty, t.Muted.Render(it.ID)),
		}
		lines = append(lines, noteLines(it.Notes)...)
	} else {
		it, _ := r.m.Todo(id)
		b := due.ComputeBucket(it.Date, r.m.Today())
		date := "—"
		if it.Date != "" {
			date = it.Date
		}
		lines = []string{
			t.Title.Render(it.Name),
			fmt.Sprintf("%s  %s  %s  %s", t.Box(it.Checked), date, ui.Badge(b), t.Muted.Render(it.ID)),
		}
		lines = append(lines, noteLines(it.Notes)...)
	}
	fmt.Fprintln(r.opt.Stdout, ui.Panel(lines))
	return 0
}

func noteLines(notes string) []string {
	if notes == "" {
		return []string{ui.Current().Muted.Render("no notes")}
	}
	return append([]string{""}, strings.Split(notes, "\n")...)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
