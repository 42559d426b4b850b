// Package tui is the interactive two-tab view over a lists.Manager. Every
// key that changes an item goes straight through the manager, so changes are
// on disk before the next frame is drawn.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/lists/internal/lists"
	"github.com/idilsaglam/lists/internal/model"
	"github.com/idilsaglam/lists/internal/ui"
)

type mode int

const (
	modeBrowse mode = iota
	modeAddName
	modeAddDetail // quantity for groceries, due date for todos
	modeEdit
	modeDate
	modeNotes
	modeConfirmReset
)

var tabs = []model.Kind{model.Grocery, model.Todo}

type modelTUI struct {
	mgr *lists.Manager

	tab   int
	lists [2]list.Model
	hide  [2]bool

	mode     mode
	ti       textinput.Model // shared by add, edit and date
	notes    textarea.Model
	editID   string
	addName  string
	inputErr string

	status string // last action result or save error

	width, height int
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check"))
	delBind    = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	notesBind  = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes"))
	dateBind   = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "due date"))
	qtyBind    = key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "qty"))
	hideBind   = key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide checked"))
	clearBind  = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear checked"))
	resetBind  = key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset"))
	tabBind    = key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch list"))
)

func newModel(mgr *lists.Manager, hideChecked bool) modelTUI {
	m := modelTUI{mgr: mgr, hide: [2]bool{hideChecked, hideChecked}}
	for i, kind := range tabs {
		m.lists[i] = newList(kind)
	}

	// set up text input for inline add/edit
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.notes = textarea.New()
	m.notes.Placeholder = "Notes..."
	m.notes.ShowLineNumbers = false
	m.notes.CharLimit = 2000

	m.refresh()
	return m
}

func newList(kind model.Kind) list.Model {
	t := ui.Current()
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = t.Title
	l.Styles.HelpStyle = t.Help
	l.Styles.PaginationStyle = t.Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.DisableQuitKeybindings()

	// h and d are ours; page with arrows only.
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "pgup"), key.WithHelp("←/pgup", "prev page"))
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "pgdown"), key.WithHelp("→/pgdn", "next page"))

	extra := []key.Binding{tabBind, addBind, editBind, toggleBind, delBind, notesBind, hideBind, clearBind, resetBind}
	if kind == model.Grocery {
		extra = append(extra, qtyBind)
	} else {
		extra = append(extra, dateBind)
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return extra[:4] }
	l.AdditionalFullHelpKeys = func() []key.Binding { return extra }
	return l
}

func (m *modelTUI) kind() model.Kind { return tabs[m.tab] }

// refresh rebuilds both lists from the manager.
func (m *modelTUI) refresh() tea.Cmd {
	today := m.mgr.Today()

	groceries := m.mgr.GroceryView(m.hide[0])
	gi := make([]list.Item, len(groceries))
	for i, it := range groceries {
		gi[i] = row{kind: model.Grocery, grocery: it, today: today}
	}
	todos := m.mgr.TodoView(m.hide[1])
	ti := make([]list.Item, len(todos))
	for i, it := range todos {
		ti[i] = row{kind: model.Todo, todo: it, today: today}
	}

	m.lists[0].Title = m.title("Groceries", model.Grocery, 0)
	m.lists[1].Title = m.title("To-Do", model.Todo, 1)
	return tea.Batch(m.lists[0].SetItems(gi), m.lists[1].SetItems(ti))
}

func (m *modelTUI) title(name string, kind model.Kind, idx int) string {
	t := ui.Current()
	done, total := m.mgr.Stats(kind)
	s := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		name,
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), total-done,
		t.Accent.Render("Total"), total,
	)
	if m.hide[idx] {
		s += "  " + t.Muted.Render("(checked hidden)")
	}
	return s
}

func (m *modelTUI) selected() (row, bool) {
	r, ok := m.lists[m.tab].SelectedItem().(row)
	return r, ok
}

// apply records the outcome of a manager call and redraws.
func (m *modelTUI) apply(ok bool, err error, msg string) tea.Cmd {
	switch {
	case err != nil:
		m.status = ui.Current().Error.Render("save failed: " + err.Error())
	case ok:
		m.status = msg
	default:
		m.status = ""
	}
	return m.refresh()
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	switch m.mode {
	case modeAddName, modeAddDetail, modeEdit, modeDate:
		return m.updateInput(msg)
	case modeNotes:
		return m.updateNotes(msg)
	case modeConfirmReset:
		return m.updateConfirm(msg)
	}

	km, isKey := msg.(tea.KeyMsg)
	if !isKey || m.lists[m.tab].FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.lists[m.tab], cmd = m.lists[m.tab].Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.tab = (m.tab + 1) % len(tabs)
		m.status = ""
		return m, nil
	case "a":
		m.mode = modeAddName
		m.inputErr = ""
		m.ti.SetValue("")
		m.ti.Placeholder = "Name..."
		return m, m.ti.Focus()
	case "h":
		m.hide[m.tab] = !m.hide[m.tab]
		return m, m.refresh()
	case "c":
		n, err := m.mgr.ClearChecked(m.kind())
		return m, m.apply(n > 0, err, fmt.Sprintf("cleared %d checked", n))
	case "R":
		m.mode = modeConfirmReset
		return m, nil
	}

	r, ok := m.selected()
	if !ok {
		var cmd tea.Cmd
		m.lists[m.tab], cmd = m.lists[m.tab].Update(msg)
		return m, cmd
	}
	switch km.String() {
	case " ", "space":
		ok, err := m.mgr.ToggleChecked(r.kind, r.id())
		return m, m.apply(ok, err, "")
	case "d":
		ok, err := m.mgr.Remove(r.kind, r.id())
		return m, m.apply(ok, err, "deleted "+r.name())
	case "e":
		m.mode = modeEdit
		m.editID = r.id()
		m.inputErr = ""
		m.ti.SetValue(r.name())
		m.ti.CursorEnd()
		m.ti.Placeholder = "Edit name..."
		return m, m.ti.Focus()
	case "n":
		m.mode = modeNotes
		m.editID = r.id()
		m.notes.SetValue(r.notes())
		return m, m.notes.Focus()
	case "s":
		if r.kind != model.Todo {
			return m, nil
		}
		m.mode = modeDate
		m.editID = r.id()
		m.inputErr = ""
		m.ti.SetValue(r.todo.Date)
		m.ti.CursorEnd()
		m.ti.Placeholder = "yyyy-mm-dd, empty clears"
		return m, m.ti.Focus()
	case "+", "-":
		if r.kind != model.Grocery {
			return m, nil
		}
		delta := 1
		if km.String() == "-" {
			delta = -1
		}
		ok, err := m.mgr.AdjustQuantity(r.id(), delta)
		return m, m.apply(ok, err, "")
	}

	var cmd tea.Cmd
	m.lists[m.tab], cmd = m.lists[m.tab].Update(msg)
	return m, cmd
}

func (m modelTUI) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if ok {
		switch km.String() {
		case "esc":
			m.closeInput()
			return m, nil
		case "enter":
			return m.submitInput()
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m modelTUI) submitInput() (tea.Model, tea.Cmd) {
	value := m.ti.Value()
	switch m.mode {
	case modeAddName:
		if strings.TrimSpace(value) == "" {
			m.inputErr = "Name cannot be empty"
			return m, nil
		}
		// Second step mirrors the add form: quantity or due date.
		m.addName = value
		m.mode = modeAddDetail
		if m.kind() == model.Grocery {
			m.ti.SetValue("1")
			m.ti.Placeholder = "Quantity"
		} else {
			m.ti.SetValue("")
			m.ti.Placeholder = "Due yyyy-mm-dd (empty = today, none = no date)"
		}
		m.ti.CursorEnd()
		return m, nil
	case modeAddDetail:
		var (
			added bool
			err   error
		)
		if m.kind() == model.Grocery {
			_, added, err = m.mgr.AddGrocery(m.addName, value)
		} else {
			_, added, err = m.mgr.AddTodo(m.addName, value)
		}
		name := strings.TrimSpace(m.addName)
		m.closeInput()
		m.lists[m.tab].Select(0)
		return m, m.apply(added, err, "added "+name)
	case modeEdit:
		if strings.TrimSpace(value) == "" {
			m.inputErr = "Name cannot be empty"
			return m, nil
		}
		ok, err := m.mgr.Rename(m.kind(), m.editID, value)
		m.closeInput()
		return m, m.apply(ok, err, "renamed")
	case modeDate:
		ok, err := m.mgr.Reschedule(m.editID, value)
		if !ok && err == nil {
			m.inputErr = "Use yyyy-mm-dd"
			return m, nil
		}
		m.closeInput()
		return m, m.apply(ok, err, "rescheduled")
	}
	return m, nil
}

func (m *modelTUI) closeInput() {
	m.mode = modeBrowse
	m.editID = ""
	m.addName = ""
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m modelTUI) updateNotes(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.mode = modeBrowse
			m.notes.Blur()
			return m, nil
		case "ctrl+s":
			ok, err := m.mgr.SetNotes(m.kind(), m.editID, m.notes.Value())
			m.mode = modeBrowse
			m.editID = ""
			m.notes.Blur()
			return m, m.apply(ok, err, "notes saved")
		}
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m modelTUI) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.mode = modeBrowse
	switch km.String() {
	case "y", "Y":
		ok, err := m.mgr.Reset(m.kind())
		return m, m.apply(ok, err, "cleared all")
	}
	m.status = "kept everything"
	return m, nil
}

func (m *modelTUI) resize() {
	w, h := m.width, m.height
	if w == 0 {
		w, h = 80, 24
	}
	// tabs + borders + status line
	listHeight := h - 6
	if m.mode != modeBrowse {
		listHeight -= 4
		if m.mode == modeNotes {
			listHeight -= 4
		}
	}
	if listHeight < 3 {
		listHeight = 3
	}
	for i := range m.lists {
		m.lists[i].SetSize(w-4, listHeight)
	}
	m.ti.Width = w - 10
	m.notes.SetWidth(w - 8)
	m.notes.SetHeight(6)
}

func (m modelTUI) View() string {
	m.resize()
	t := ui.Current()

	var tabLine []string
	for i, kind := range tabs {
		label := " Groceries "
		if kind == model.Todo {
			label = " To-Do "
		}
		if i == m.tab {
			tabLine = append(tabLine, t.Selected.Render(label))
		} else {
			tabLine = append(tabLine, t.Muted.Render(label))
		}
	}

	content := strings.Join(tabLine, " ") + "\n" + m.lists[m.tab].View()

	bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
	switch m.mode {
	case modeAddName, modeAddDetail, modeEdit, modeDate:
		title := m.inputTitle()
		if m.inputErr != "" {
			title += " · " + t.Error.Render(m.inputErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	case modeNotes:
		content += "\n" + bar.Render("Notes  "+t.Help.Render("ctrl+s save · esc cancel")+"\n"+m.notes.View())
	case modeConfirmReset:
		q := "Clear all tasks?"
		if m.kind() == model.Grocery {
			q = "Clear all grocery items?"
		}
		content += "\n" + bar.Render(t.Error.Render(q)+" (y/n)")
	}
	if m.status != "" {
		content += "\n" + t.Muted.Render(m.status)
	}
	return ui.Panel([]string{content})
}

func (m modelTUI) inputTitle() string {
	switch m.mode {
	case modeAddName:
		if m.kind() == model.Grocery {
			return "Add grocery item"
		}
		return "Add task"
	case modeAddDetail:
		if m.kind() == model.Grocery {
			return "Quantity for " + m.addName
		}
		return "Due date for " + m.addName
	case modeEdit:
		return "Edit name"
	default:
		return "Reschedule"
	}
}
