package model

import (
	"fmt"
	"strings"
)

// Kind selects one of the two collections.
type Kind int

const (
	Grocery Kind = iota
	Todo
)

func (k Kind) String() string {
	switch k {
	case Grocery:
		return "grocery"
	case Todo:
		return "todo"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts the names used on the command line.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grocery", "groceries", "g":
		return Grocery, nil
	case "todo", "todos", "t":
		return Todo, nil
	}
	return 0, fmt.Errorf("unknown list %q (want grocery or todo)", s)
}

// GroceryItem is one line of the shopping list.
type GroceryItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Qty     int    `json:"qty"`
	Checked bool   `json:"checked"`
	Notes   string `json:"notes"`
}

// TodoItem is a task with an optional due date (yyyy-mm-dd, empty when unset).
// CreatedAt is unix milliseconds and only used as the last sort key.
type TodoItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Checked   bool   `json:"checked"`
	CreatedAt int64  `json:"createdAt"`
	Notes     string `json:"notes"`
}
