package ui

import (
	"fmt"
	"io"

	"github.com/idilsaglam/lists/internal/due"
)

// OK prints a success line.
func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymDone+" "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Error.Render("✖ "+msg))
}

// Note prints a muted informational line.
func Note(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Muted.Render(msg))
}

// Badge renders a due-date bucket label in its style.
func Badge(b due.Bucket) string {
	return Current().DueStyle(b.Tag()).Render(b.Label)
}
