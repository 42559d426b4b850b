package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/idilsaglam/lists/internal/lists"
	"github.com/idilsaglam/lists/internal/model"
	"github.com/idilsaglam/lists/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	HideChecked bool // leave checked items out of listings and index refs

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// TUI starts the interactive UI; nil disables the tui subcommand.
	TUI func(m *lists.Manager) error
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
}

type runner struct {
	m   *lists.Manager
	opt Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(m *lists.Manager, args []string, opt Options) int {
	opt.defaults()
	r := &runner{m: m, opt: opt}
	if len(args) == 0 {
		PrintHelp(opt.Stderr)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ls":
		hide, a := extractFlag(a, "--hide-checked", "-hide-checked")
		if hide {
			r.opt.HideChecked = true
		}
		if len(a) > 1 {
			return r.usage("ls [grocery|todo] [--hide-checked]")
		}
		if len(a) == 0 {
			return r.doList(model.Grocery, model.Todo)
		}
		kind, err := model.ParseKind(a[0])
		if err != nil {
			return r.usageErr(err)
		}
		return r.doList(kind)

	case "add":
		if len(a) < 2 {
			return r.usage("add grocery <name...> [--qty N] | add todo <name...> [--due yyyy-mm-dd|none]")
		}
		kind, err := model.ParseKind(a[0])
		if err != nil {
			return r.usageErr(err)
		}
		if kind == model.Grocery {
			qty, rest, err := extractOption(a[1:], "--qty", "-q")
			if err != nil {
				return r.usageErr(err)
			}
			return r.doAddGrocery(strings.Join(rest, " "), qty)
		}
		date, rest, err := extractOption(a[1:], "--due", "-d")
		if err != nil {
			return r.usageErr(err)
		}
		return r.doAddTodo(strings.Join(rest, " "), date)

	case "done", "rm", "show":
		if len(a) != 2 {
			return r.usage(cmd + " <grocery|todo> <ref>")
		}
		kind, err := model.ParseKind(a[0])
		if err != nil {
			return r.usageErr(err)
		}
		id, code := r.resolve(kind, a[1])
		if code != 0 {
			return code
		}
		switch cmd {
		case "done":
			return r.mutated(r.m.ToggleChecked(kind, id))("toggled")
		case "rm":
			return r.mutated(r.m.Remove(kind, id))("removed")
		default:
			return r.doShow(kind, id)
		}

	case "rename", "note":
		if len(a) < 2 || (cmd == "rename" && len(a) < 3) {
			return r.usage(cmd + " <grocery|todo> <ref> <text...>")
		}
		kind, err := model.ParseKind(a[0])
		if err != nil {
			return r.usageErr(err)
		}
		id, code := r.resolve(kind, a[1])
		if code != 0 {
			return code
		}
		text := strings.Join(a[2:], " ")
		if cmd == "rename" {
			return r.mutated(r.m.Rename(kind, id, text))("renamed")
		}
		return r.mutated(r.m.SetNotes(kind, id, text))("notes saved")

	case "due":
		if len(a) != 2 {
			return r.usage(`due <ref> <yyyy-mm-dd|"">`)
		}
		id, code := r.resolve(model.Todo, a[0])
		if code != 0 {
			return code
		}
		return r.mutated(r.m.Reschedule(id, a[1]))("rescheduled")

	case "qty":
		if len(a) != 2 {
			return r.usage("qty <ref> <+N|-N>")
		}
		id, code := r.resolve(model.Grocery, a[0])
		if code != 0 {
			return code
		}
		delta, err := strconv.Atoi(a[1])
		if err != nil {
			ui.Fail(r.opt.Stderr, "qty: not a number: "+a[1])
			return 2
		}
		return r.mutated(r.m.AdjustQuantity(id, delta))("quantity updated")

	case "clear":
		if len(a) != 1 {
			return r.usage("clear <grocery|todo>")
		}
		kind, err := model.ParseKind(a[0])
		if err != nil {
			return r.usageErr(err)
		}
		return r.doClear(kind)

	case "reset":
		if len(a) < 1 || len(a) > 2 || (len(a) == 2 && a[1] != "--yes" && a[1] != "-y") {
			return r.usage("reset <grocery|todo> [--yes]")
		}
		kind, err := model.ParseKind(a[0])
		if err != nil {
			return r.usageErr(err)
		}
		return r.doReset(kind, len(a) == 2)

	case "tui":
		if r.opt.TUI == nil {
			ui.Fail(r.opt.Stderr, "tui: not available")
			return 1
		}
		if err := r.opt.TUI(r.m); err != nil {
			ui.Fail(r.opt.Stderr, "tui: "+err.Error())
			return 1
		}
		return 0
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `lists - groceries and to-dos in your terminal

Usage:
  lists [flags] <subcommand> [args]

Subcommands:
  ls [grocery|todo] [--hide-checked]      Show lists (to-dos sorted by due date)
  add grocery <name...> [--qty N]         Add a grocery item (quantity defaults to 1)
  add todo <name...> [--due DATE|none]    Add a task (due date defaults to today)
  done <list> <ref>                       Toggle checked
  rm <list> <ref>                         Remove an item
  rename <list> <ref> <name...>           Rename an item
  note <list> <ref> <text...>             Set notes (empty text clears them)
  show <list> <ref>                       Show one item with its notes
  due <ref> <DATE|"">                     Reschedule a task, "" clears the date
  qty <ref> <+N|-N>                       Change a grocery quantity
  clear <list>                            Remove checked items
  reset <list> [--yes]                    Remove every item (asks first)
  tui                                     Interactive two-tab UI

<list> is grocery or todo. <ref> is an item id or its number in ls output.
DATE is yyyy-mm-dd.

Flags:
  -config FILE  -data-dir DIR  -backend file|sqlite  -theme classic|neon|mono
  -log-level LEVEL  -log-format text|json|logfmt  -hide-checked

Examples:
  lists add grocery Oat milk --qty 2
  lists add todo "File taxes" --due 2026-04-15
  lists ls todo
  lists done grocery 1
`)
}

func (r *runner) usage(s string) int {
	ui.Fail(r.opt.Stderr, "usage: lists "+s)
	return 2
}

func (r *runner) usageErr(err error) int {
	ui.Fail(r.opt.Stderr, err.Error())
	return 2
}

// mutated turns a manager result into an exit code, printing msg on success.
// Rejected input is not an error: it prints a notice and exits 0.
func (r *runner) mutated(ok bool, err error) func(msg string) int {
	return func(msg string) int {
		if err != nil {
			ui.Fail(r.opt.Stderr, "save: "+err.Error())
			return 1
		}
		if !ok {
			ui.Note(r.opt.Stdout, "nothing changed")
			return 0
		}
		ui.OK(r.opt.Stdout, msg)
		return 0
	}
}

// resolve maps a ref (id, or 1-based position in the current listing) to an
// item id.
func (r *runner) resolve(kind model.Kind, ref string) (string, int) {
	ref = strings.TrimSpace(ref)
	switch kind {
	case model.Grocery:
		if _, ok := r.m.Grocery(ref); ok {
			return ref, 0
		}
		view := r.m.GroceryView(r.opt.HideChecked)
		if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(view) {
			return view[n-1].ID, 0
		}
		return "", r.badRef(kind, ref, len(view))
	default:
		if _, ok := r.m.Todo(ref); ok {
			return ref, 0
		}
		view := r.m.TodoView(r.opt.HideChecked)
		if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(view) {
			return view[n-1].ID, 0
		}
		return "", r.badRef(kind, ref, len(view))
	}
}

func (r *runner) badRef(kind model.Kind, ref string, have int) int {
	ui.Fail(r.opt.Stderr, fmt.Sprintf("no %s item %q (have %d)", kind, ref, have))
	fmt.Fprintln(r.opt.Stderr, ui.Current().Muted.Render("Hint: run `lists ls "+kind.String()+"` to see ids and numbers"))
	return 2
}

func (r *runner) doAddGrocery(name, qty string) int {
	it, ok, err := r.m.AddGrocery(name, qty)
	if err != nil {
		ui.Fail(r.opt.Stderr, "save: "+err.Error())
		return 1
	}
	if !ok {
		ui.Note(r.opt.Stdout, "nothing added: empty name")
		return 0
	}
	ui.OK(r.opt.Stdout, fmt.Sprintf("added %s ×%d (%s)", it.Name, it.Qty, it.ID))
	return 0
}

func (r *runner) doAddTodo(name, date string) int {
	it, ok, err := r.m.AddTodo(name, date)
	if err != nil {
		ui.Fail(r.opt.Stderr, "save: "+err.Error())
		return 1
	}
	if !ok {
		ui.Note(r.opt.Stdout, "nothing added: empty name")
		return 0
	}
	when := "no date"
	if it.Date != "" {
		when = "due " + it.Date
	}
	ui.OK(r.opt.Stdout, fmt.Sprintf("added %s, %s (%s)", it.Name, when, it.ID))
	return 0
}

func (r *runner) doClear(kind model.Kind) int {
	n, err := r.m.ClearChecked(kind)
	if err != nil {
		ui.Fail(r.opt.Stderr, "save: "+err.Error())
		return 1
	}
	ui.OK(r.opt.Stdout, fmt.Sprintf("cleared %d checked", n))
	return 0
}

func (r *runner) doReset(kind model.Kind, yes bool) int {
	if !yes && !r.confirm(resetPrompt(kind)) {
		ui.Note(r.opt.Stdout, "kept everything")
		return 0
	}
	return r.mutated(r.m.Reset(kind))("cleared all")
}

func resetPrompt(kind model.Kind) string {
	if kind == model.Grocery {
		return "Clear all grocery items?"
	}
	return "Clear all tasks?"
}

func (r *runner) confirm(question string) bool {
	fmt.Fprintf(r.opt.Stdout, "%s [y/N] ", question)
	line, _ := bufio.NewReader(r.opt.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// extractOption pulls "--name value" or "--name=value" out of args. A name
// with no value after it is an error.
func extractOption(args []string, names ...string) (string, []string, error) {
	var value string
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		matched := false
		for _, n := range names {
			if a == n {
				if i+1 >= len(args) {
					return "", nil, fmt.Errorf("%s needs a value", n)
				}
				value = args[i+1]
				i++
				matched = true
				break
			}
			if strings.HasPrefix(a, n+"=") {
				value = strings.TrimPrefix(a, n+"=")
				matched = true
				break
			}
		}
		if !matched {
			rest = append(rest, a)
		}
	}
	return value, rest, nil
}

// extractFlag removes every occurrence of a boolean flag and reports whether
// one was present.
func extractFlag(args []string, names ...string) (bool, []string) {
	found := false
	rest := make([]string, 0, len(args))
	for _, a := range args {
		if slices.Contains(names, a) {
			found = true
			continue
		}
		rest = append(rest, a)
	}
	return found, rest
}
