package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/lists/internal/due"
	"github.com/idilsaglam/lists/internal/ui"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░ 1/2", ui.ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░ 0/0", ui.ProgressBar(0, 0, 1))
	assert.Equal(t, "█████ 9/3", ui.ProgressBar(9, 3, 5))
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { ui.SetTheme("classic") })

	ui.SetTheme("MONO")
	assert.Equal(t, "mono", ui.Current().Name)
	assert.Equal(t, "[x]", ui.Current().Box(true))
	assert.Equal(t, "[ ]", ui.Current().Box(false))

	ui.SetTheme("whatever")
	assert.Equal(t, "classic", ui.Current().Name)
}

func TestMonoPlainText(t *testing.T) {
	t.Cleanup(func() { ui.SetTheme("classic") })
	ui.SetTheme("mono")

	var buf bytes.Buffer
	ui.OK(&buf, "added")
	ui.Fail(&buf, "nope")
	assert.Equal(t, "x added\n✖ nope\n", buf.String())

	b := due.Bucket{Kind: due.Overdue, Label: "Overdue by 2 days"}
	assert.Equal(t, "Overdue by 2 days", ui.Badge(b))
}

func TestPanelContainsLines(t *testing.T) {
	out := ui.Panel([]string{"first", "second"})
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Equal(t, 4, len(strings.Split(out, "\n")))
}
