package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chartweb/internal/view"
)

func TestFindAndWalk(t *testing.T) {
	root := view.Div("root",
		view.Header("Title"),
		view.Div("inner",
			view.Dropdown("pick", []view.Option{{Label: "A", Value: "A"}}, "A"),
			view.Text("echo", "hi"),
		),
	)

	assert.Equal(t, view.KindDropdown, root.Find("pick").Kind)
	assert.Equal(t, "hi", root.Find("echo").Text)
	assert.Nil(t, root.Find("missing"))

	var kinds []view.Kind
	root.Walk(func(n *view.Node) { kinds = append(kinds, n.Kind) })
	assert.Equal(t, []view.Kind{view.KindDiv, view.KindHeader, view.KindDiv, view.KindDropdown, view.KindText}, kinds)
}

func TestNilNode(t *testing.T) {
	var n *view.Node
	assert.Nil(t, n.Find("x"))
	n.Walk(func(*view.Node) { t.Fatal("walked a nil node") })
}
